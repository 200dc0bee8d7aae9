// Package export turns the result sequence into downloadable
// artifacts. All exporters are pure reads.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/doc-scanner/client/internal/models"
)

// Artifact names offered for download.
const (
	JSONFileName    = "scan_results.json"
	CSVFileName     = "scan_results.csv"
	MsgpackFileName = "scan_results.msgpack"
)

var csvHeader = []string{"Filename", "Confidence", "Word Count", "Dates", "Emails", "Phone Numbers"}

// JSONBytes serializes the full result sequence as pretty-printed
// JSON. The dump is lossless: parsing it back reproduces the store
// contents structurally.
func JSONBytes(results []models.ProcessingResult) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}

// MsgpackBytes serializes the result sequence in msgpack for the
// compact results endpoint.
func MsgpackBytes(results []models.ProcessingResult) ([]byte, error) {
	return msgpack.Marshal(results)
}

// WriteCSV writes one header row plus one row per result. Every cell
// is double-quoted; multi-valued entity fields are joined with "; ".
// encoding/csv only quotes when forced to, so the quoting is done by
// hand here.
func WriteCSV(w io.Writer, results []models.ProcessingResult) error {
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}

	for _, res := range results {
		ocr := res.OCROrEmpty()
		meta := res.MetadataOrEmpty()
		row := []string{
			res.FileName,
			fmt.Sprintf("%.1f%%", ocr.Confidence*100),
			fmt.Sprintf("%d", ocr.WordCount),
			strings.Join(meta.Dates, "; "),
			strings.Join(meta.Emails, "; "),
			strings.Join(meta.PhoneNumbers, "; "),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// CSVBytes renders the CSV artifact in memory.
func CSVBytes(results []models.ProcessingResult) ([]byte, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, results); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func writeRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Join(quoted, ","))
	return err
}
