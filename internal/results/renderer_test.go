package results

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doc-scanner/client/internal/models"
)

func newRendererWith(results ...models.ProcessingResult) *Renderer {
	store := NewStore()
	store.ReplaceAll(results)
	return NewRenderer(store)
}

func TestRenderer_Summary(t *testing.T) {
	r := newRendererWith(models.ProcessingResult{
		FileName:     "invoice.png",
		DocumentType: models.DocTypeInvoice,
		OCR:          &models.OCRText{Text: "Total $100", Confidence: 0.92, WordCount: 2, Engine: "Tesseract"},
		Metadata:     &models.DocumentMetadata{Amounts: []string{"$100"}},
	})

	s, err := r.Summary(0)
	require.NoError(t, err)

	assert.Equal(t, "invoice.png", s.Title)
	assert.Equal(t, "invoice", s.Badge)
	assert.Equal(t, "Total $100", s.TextPreview)
	assert.Equal(t, 92.0, s.ConfidencePercent)
	assert.Equal(t, 2, s.WordCount)
	assert.Equal(t, "Tesseract", s.Engine)
}

func TestRenderer_TextPreviewTruncation(t *testing.T) {
	long := strings.Repeat("x", 450)
	r := newRendererWith(models.ProcessingResult{
		FileName: "long.png",
		OCR:      &models.OCRText{Text: long},
	})

	s, err := r.Summary(0)
	require.NoError(t, err)
	assert.Equal(t, long[:200]+"...", s.TextPreview)

	// Exactly at the limit: no ellipsis.
	r = newRendererWith(models.ProcessingResult{
		FileName: "exact.png",
		OCR:      &models.OCRText{Text: strings.Repeat("y", 200)},
	})
	s, err = r.Summary(0)
	require.NoError(t, err)
	assert.Len(t, s.TextPreview, 200)
	assert.False(t, strings.HasSuffix(s.TextPreview, "..."))

	// The detail view keeps the full text.
	r = newRendererWith(models.ProcessingResult{
		FileName: "long.png",
		OCR:      &models.OCRText{Text: long},
	})
	d, err := r.Detail(0)
	require.NoError(t, err)
	assert.Equal(t, long, d.FullText)
}

func TestRenderer_TextPreviewCountsRunes(t *testing.T) {
	// Multi-byte text must truncate on rune boundaries, never emit
	// invalid UTF-8 from a split rune.
	text := strings.Repeat("a", 199) + "₹100 due for наглядність"
	r := newRendererWith(models.ProcessingResult{
		FileName: "rupee.png",
		OCR:      &models.OCRText{Text: text},
	})

	s, err := r.Summary(0)
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(s.TextPreview))
	assert.Equal(t, string([]rune(text)[:200])+"...", s.TextPreview)
	assert.True(t, strings.HasSuffix(s.TextPreview, "₹..."))

	// 200 runes of multi-byte text exceed 200 bytes but fit the limit.
	exact := strings.Repeat("₹", 200)
	r = newRendererWith(models.ProcessingResult{
		FileName: "exact.png",
		OCR:      &models.OCRText{Text: exact},
	})
	s, err = r.Summary(0)
	require.NoError(t, err)
	assert.Equal(t, exact, s.TextPreview)
}

func TestRenderer_ConfidenceRounding(t *testing.T) {
	cases := []struct {
		confidence float64
		want       float64
	}{
		{0.92, 92.0},
		{0.8, 80.0},
		{0.12345, 12.3},
		{0.9999, 100.0},
		{0, 0},
	}
	for _, tc := range cases {
		r := newRendererWith(models.ProcessingResult{
			FileName: "doc.png",
			OCR:      &models.OCRText{Confidence: tc.confidence},
		})
		s, err := r.Summary(0)
		require.NoError(t, err)
		assert.Equal(t, tc.want, s.ConfidencePercent, "confidence %v", tc.confidence)
	}
}

func TestRenderer_MissingBlocksDegrade(t *testing.T) {
	r := newRendererWith(models.ProcessingResult{FileName: "sparse.png"})

	s, err := r.Summary(0)
	require.NoError(t, err)
	assert.Equal(t, "sparse.png", s.Title)
	assert.Equal(t, "unknown", s.Badge)
	assert.Empty(t, s.TextPreview)
	assert.Zero(t, s.ConfidencePercent)
	assert.Zero(t, s.WordCount)
	assert.Equal(t, "unknown", s.Engine)

	d, err := r.Detail(0)
	require.NoError(t, err)
	assert.Empty(t, d.FullText)
	assert.Empty(t, d.Groups)
}

func TestRenderer_DetailOmitsEmptyGroups(t *testing.T) {
	r := newRendererWith(models.ProcessingResult{
		FileName: "letter.jpg",
		OCR:      &models.OCRText{Text: "Dear Sir"},
		Metadata: &models.DocumentMetadata{
			Dates:  []string{"01/02/2024"},
			Emails: []string{"sir@example.com"},
		},
	})

	d, err := r.Detail(0)
	require.NoError(t, err)

	require.Len(t, d.Groups, 2)
	assert.Equal(t, "Dates", d.Groups[0].Label)
	assert.Equal(t, []string{"01/02/2024"}, d.Groups[0].Values)
	assert.Equal(t, "Emails", d.Groups[1].Label)

	for _, g := range d.Groups {
		assert.NotEmpty(t, g.Values)
	}
}

func TestRenderer_SummariesPreserveOrder(t *testing.T) {
	r := newRendererWith(
		models.ProcessingResult{FileName: "c.png"},
		models.ProcessingResult{FileName: "a.png"},
		models.ProcessingResult{FileName: "b.png"},
	)

	summaries := r.Summaries()
	require.Len(t, summaries, 3)
	assert.Equal(t, "c.png", summaries[0].Title)
	assert.Equal(t, "a.png", summaries[1].Title)
	assert.Equal(t, "b.png", summaries[2].Title)
}

func TestRenderer_OutOfRange(t *testing.T) {
	r := newRendererWith()

	_, err := r.Summary(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = r.Detail(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRenderer_Stats(t *testing.T) {
	r := newRendererWith(
		models.ProcessingResult{FileName: "a.png", OCR: &models.OCRText{Confidence: 0.9, WordCount: 10}},
		models.ProcessingResult{FileName: "b.png", OCR: &models.OCRText{Confidence: 0.7, WordCount: 5}},
		models.ProcessingResult{FileName: "c.png"}, // missing ocr counts as zero
	)

	stats := r.Stats()
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 15, stats.TotalWords)
	assert.InDelta(t, 53.3, stats.AverageConfidence, 0.01)
}

func TestRenderer_StatsEmpty(t *testing.T) {
	stats := newRendererWith().Stats()
	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.AverageConfidence)
}
