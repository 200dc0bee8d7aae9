// handlers_export.go - Downloadable export artifacts
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/doc-scanner/client/internal/export"
	"github.com/doc-scanner/client/internal/results"
)

// ExportHandler offers the result store as downloadable artifacts.
type ExportHandler struct {
	results *results.Store
}

// NewExportHandler creates an export handler.
func NewExportHandler(store *results.Store) *ExportHandler {
	return &ExportHandler{results: store}
}

// HandleExportJSON downloads the full result dump as scan_results.json.
func (h *ExportHandler) HandleExportJSON(c echo.Context) error {
	data, err := export.JSONBytes(h.results.List())
	if err != nil {
		return NewInternalError("failed to export results", err)
	}
	setAttachment(c, export.JSONFileName)
	return c.Blob(http.StatusOK, "application/json", data)
}

// HandleExportCSV downloads the summary table as scan_results.csv.
func (h *ExportHandler) HandleExportCSV(c echo.Context) error {
	data, err := export.CSVBytes(h.results.List())
	if err != nil {
		return NewInternalError("failed to export results", err)
	}
	setAttachment(c, export.CSVFileName)
	return c.Blob(http.StatusOK, "text/csv", data)
}

func setAttachment(c echo.Context, name string) {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, name))
}
