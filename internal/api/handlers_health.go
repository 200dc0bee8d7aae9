// handlers_health.go - Liveness endpoint
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/doc-scanner/client/internal/submit"
)

// HealthHandler reports client liveness plus reachability of the
// remote scan service.
type HealthHandler struct {
	scanner *submit.Client
	version string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(scanner *submit.Client, version string) *HealthHandler {
	return &HealthHandler{scanner: scanner, version: version}
}

type healthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	ScannerBaseURL string `json:"scannerBaseUrl"`
	ScannerHealthy bool   `json:"scannerHealthy"`
	ScannerError   string `json:"scannerError,omitempty"`
}

// HandleHealth always returns 200; a broken scan service is reported
// in the body, never blocks the UI.
func (h *HealthHandler) HandleHealth(c echo.Context) error {
	resp := healthResponse{
		Status:         "ok",
		Version:        h.version,
		ScannerBaseURL: h.scanner.BaseURL(),
		ScannerHealthy: true,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()
	if err := h.scanner.Health(ctx); err != nil {
		resp.ScannerHealthy = false
		resp.ScannerError = err.Error()
	}

	return c.JSON(http.StatusOK, resp)
}
