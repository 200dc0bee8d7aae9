package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/doc-scanner/client/internal/models"
)

func fixtures() []models.ProcessingResult {
	return []models.ProcessingResult{
		{
			FileName:     "invoice.png",
			DocumentType: models.DocTypeInvoice,
			OCR:          &models.OCRText{Text: "Total $100", Confidence: 0.92, WordCount: 2, Engine: "Tesseract"},
			Metadata:     &models.DocumentMetadata{Amounts: []string{"$100"}},
		},
		{
			FileName:     "letter.jpg",
			DocumentType: models.DocTypeLetter,
			OCR:          &models.OCRText{Text: "Dear Sir", Confidence: 0.8, WordCount: 2},
			Metadata:     &models.DocumentMetadata{},
		},
	}
}

func TestJSONBytes_RoundTrip(t *testing.T) {
	in := fixtures()

	data, err := JSONBytes(in)
	require.NoError(t, err)

	var out []models.ProcessingResult
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestJSONBytes_IsPrettyPrinted(t *testing.T) {
	data, err := JSONBytes(fixtures())
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  ")
	assert.Contains(t, string(data), `"file_name": "invoice.png"`)
}

func TestCSVBytes_LineCountAndQuoting(t *testing.T) {
	in := fixtures()

	data, err := CSVBytes(in)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, len(in)+1, "one header row plus one row per result")

	assert.Equal(t, `"Filename","Confidence","Word Count","Dates","Emails","Phone Numbers"`, lines[0])

	for _, line := range lines {
		for _, cell := range strings.Split(line, `","`) {
			cell = strings.Trim(cell, `"`)
			assert.NotContains(t, cell, "\n")
		}
		assert.True(t, strings.HasPrefix(line, `"`), "row must start quoted: %s", line)
		assert.True(t, strings.HasSuffix(line, `"`), "row must end quoted: %s", line)
	}
}

func TestCSVBytes_RowContent(t *testing.T) {
	data, err := CSVBytes(fixtures())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, `"invoice.png","92.0%","2","","",""`, lines[1])
	assert.Equal(t, `"letter.jpg","80.0%","2","","",""`, lines[2])
}

func TestCSVBytes_MultiValuedFieldsJoined(t *testing.T) {
	in := []models.ProcessingResult{{
		FileName: "form.png",
		OCR:      &models.OCRText{Confidence: 0.755, WordCount: 40},
		Metadata: &models.DocumentMetadata{
			Dates:        []string{"01/02/2024", "15 Mar 2024"},
			Emails:       []string{"a@example.com", "b@example.com"},
			PhoneNumbers: []string{"555-123-4567"},
		},
	}}

	data, err := CSVBytes(in)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t,
		`"form.png","75.5%","40","01/02/2024; 15 Mar 2024","a@example.com; b@example.com","555-123-4567"`,
		lines[1])
}

func TestCSVBytes_EscapesEmbeddedQuotes(t *testing.T) {
	in := []models.ProcessingResult{{
		FileName: `weird "name".png`,
	}}

	data, err := CSVBytes(in)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, `"weird ""name"".png","0.0%","0","","",""`, lines[1])
}

func TestCSVBytes_MissingBlocksDegrade(t *testing.T) {
	in := []models.ProcessingResult{{FileName: "sparse.png"}}

	data, err := CSVBytes(in)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"sparse.png","0.0%","0","","",""`, lines[1])
}

func TestCSVBytes_EmptyResults(t *testing.T) {
	data, err := CSVBytes(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 1)
}

func TestMsgpackBytes_RoundTrip(t *testing.T) {
	in := fixtures()

	data, err := MsgpackBytes(in)
	require.NoError(t, err)

	var out []models.ProcessingResult
	require.NoError(t, msgpack.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestArtifactNames(t *testing.T) {
	assert.Equal(t, "scan_results.json", JSONFileName)
	assert.Equal(t, "scan_results.csv", CSVFileName)
}
