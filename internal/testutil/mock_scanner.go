// mock_scanner.go - Fake scan service for testing
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/doc-scanner/client/internal/models"
)

// SubmittedFile is one file as seen by the fake scan service.
type SubmittedFile struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
	Size     int64  `json:"size"`
}

// ScannerServer is an httptest-backed stand-in for the remote scan
// service, implementing its /process and /health contract.
type ScannerServer struct {
	*httptest.Server

	// Respond builds the result list for a batch. When nil, a
	// canonical result per file is returned in request order.
	Respond func(files []SubmittedFile) []models.ProcessingResult

	// FailStatus, when non-zero, makes /process answer that status
	// with an error body instead of results.
	FailStatus int

	// Requests records every decoded batch, in arrival order.
	Requests [][]SubmittedFile
}

// NewScannerServer starts the fake service. The caller must Close it.
func NewScannerServer() *ScannerServer {
	s := &ScannerServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Files []SubmittedFile `json:"files"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "bad request"})
			return
		}
		s.Requests = append(s.Requests, req.Files)

		if s.FailStatus != 0 {
			w.WriteHeader(s.FailStatus)
			json.NewEncoder(w).Encode(map[string]string{"error": "processing unavailable"})
			return
		}

		results := make([]models.ProcessingResult, 0, len(req.Files))
		if s.Respond != nil {
			results = s.Respond(req.Files)
		} else {
			for _, f := range req.Files {
				results = append(results, SampleResult(f.Filename))
			}
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"results": results,
			"count":   len(results),
		})
	})

	s.Server = httptest.NewServer(mux)
	return s
}

// SampleResult builds a fully-populated result for a file name.
func SampleResult(fileName string) models.ProcessingResult {
	return models.ProcessingResult{
		FileName:     fileName,
		DocumentType: models.DocTypeInvoice,
		OCR: &models.OCRText{
			Text:       "Total $100 due by 01/02/2024",
			Confidence: 0.92,
			WordCount:  6,
			Engine:     "tesseract",
		},
		Metadata: &models.DocumentMetadata{
			Dates:   []string{"01/02/2024"},
			Amounts: []string{"$100"},
		},
	}
}
