package results

import (
	"math"

	"github.com/doc-scanner/client/internal/models"
)

// textPreviewLimit is the number of characters (runes, not bytes)
// shown on summary cards.
const textPreviewLimit = 200

// fallbackEngine labels results whose engine name is absent.
const fallbackEngine = "unknown"

// Summary is the card view of one result.
type Summary struct {
	Title             string  `json:"title"`
	Badge             string  `json:"badge"`
	TextPreview       string  `json:"textPreview"`
	ConfidencePercent float64 `json:"confidencePercent"`
	WordCount         int     `json:"wordCount"`
	Engine            string  `json:"engine"`
}

// MetadataGroup is one labeled, non-empty entity category in a detail
// view. Empty categories are omitted entirely.
type MetadataGroup struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Detail is the expanded view of one result.
type Detail struct {
	Summary
	FullText string          `json:"fullText"`
	Groups   []MetadataGroup `json:"groups,omitempty"`
}

// Stats summarizes the whole result set.
type Stats struct {
	Count             int     `json:"count"`
	AverageConfidence float64 `json:"averageConfidence"`
	TotalWords        int     `json:"totalWords"`
}

// Renderer produces view models from the result store. It performs
// pure reads; missing OCR or metadata blocks degrade to zero values.
type Renderer struct {
	store *Store
}

// NewRenderer creates a renderer over the given store.
func NewRenderer(store *Store) *Renderer {
	return &Renderer{store: store}
}

// Summaries returns one card per result, in run order.
func (r *Renderer) Summaries() []Summary {
	list := r.store.List()
	out := make([]Summary, len(list))
	for i, res := range list {
		out[i] = summarize(res)
	}
	return out
}

// Summary returns the card for one result.
func (r *Renderer) Summary(index int) (Summary, error) {
	res, err := r.store.Get(index)
	if err != nil {
		return Summary{}, err
	}
	return summarize(res), nil
}

// Detail returns the expanded view for one result: the full text plus
// each non-empty metadata category as a labeled group.
func (r *Renderer) Detail(index int) (Detail, error) {
	res, err := r.store.Get(index)
	if err != nil {
		return Detail{}, err
	}

	meta := res.MetadataOrEmpty()
	var groups []MetadataGroup
	for _, g := range []MetadataGroup{
		{Label: "Dates", Values: meta.Dates},
		{Label: "Emails", Values: meta.Emails},
		{Label: "Phone Numbers", Values: meta.PhoneNumbers},
		{Label: "Amounts", Values: meta.Amounts},
	} {
		if len(g.Values) > 0 {
			groups = append(groups, g)
		}
	}

	return Detail{
		Summary:  summarize(res),
		FullText: res.OCROrEmpty().Text,
		Groups:   groups,
	}, nil
}

// Stats aggregates confidence and word counts across all results.
func (r *Renderer) Stats() Stats {
	list := r.store.List()
	stats := Stats{Count: len(list)}
	if len(list) == 0 {
		return stats
	}

	var confSum float64
	for _, res := range list {
		ocr := res.OCROrEmpty()
		confSum += ocr.Confidence
		stats.TotalWords += ocr.WordCount
	}
	stats.AverageConfidence = round1(confSum / float64(len(list)) * 100)
	return stats
}

func summarize(res models.ProcessingResult) Summary {
	ocr := res.OCROrEmpty()

	preview := ocr.Text
	if runes := []rune(preview); len(runes) > textPreviewLimit {
		preview = string(runes[:textPreviewLimit]) + "..."
	}

	engine := ocr.Engine
	if engine == "" {
		engine = fallbackEngine
	}

	return Summary{
		Title:             res.FileName,
		Badge:             res.Type(),
		TextPreview:       preview,
		ConfidencePercent: round1(ocr.Confidence * 100),
		WordCount:         ocr.WordCount,
		Engine:            engine,
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
