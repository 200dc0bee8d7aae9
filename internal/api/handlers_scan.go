// handlers_scan.go - Batch run trigger and status endpoints
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/doc-scanner/client/internal/scan"
	"github.com/doc-scanner/client/internal/staging"
)

// ScanHandler triggers and reports batch runs.
type ScanHandler struct {
	staging      *staging.Store
	orchestrator *scan.Orchestrator
}

// NewScanHandler creates a scan handler.
func NewScanHandler(store *staging.Store, orchestrator *scan.Orchestrator) *ScanHandler {
	return &ScanHandler{staging: store, orchestrator: orchestrator}
}

// HandleStartScan starts a run over the staged files. An empty store
// is a 400; a run already in flight is a 409 (runs are never queued).
func (h *ScanHandler) HandleStartScan(c echo.Context) error {
	if h.staging.IsEmpty() {
		return NewBadRequestError("no files staged", nil)
	}

	// The run outlives this request; it is driven to completion in
	// the background and observed via /scan/status or the WebSocket.
	state, err := h.orchestrator.Start(context.Background())
	if err != nil {
		if errors.Is(err, scan.ErrRunInFlight) {
			return NewConflictError("a scan is already in progress")
		}
		return NewInternalError("failed to start scan", err)
	}

	return c.JSON(http.StatusAccepted, state)
}

// HandleScanStatus returns the current run state for polling clients.
func (h *ScanHandler) HandleScanStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.orchestrator.State())
}
