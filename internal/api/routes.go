// routes.go - Route registration for the local UI API
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/doc-scanner/client/internal/results"
	"github.com/doc-scanner/client/internal/scan"
	"github.com/doc-scanner/client/internal/staging"
	"github.com/doc-scanner/client/internal/submit"
)

// Dependencies holds all handler collaborators.
type Dependencies struct {
	Staging      *staging.Store
	Results      *results.Store
	Renderer     *results.Renderer
	Orchestrator *scan.Orchestrator
	Scanner      *submit.Client
	Version      string
}

// Handlers holds all handler instances.
type Handlers struct {
	Health  *HealthHandler
	Staging *StagingHandler
	Scan    *ScanHandler
	Results *ResultsHandler
	Export  *ExportHandler
	WS      *WebSocketHandler
}

// NewHandlers creates all handler instances.
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Scanner, deps.Version),
		Staging: NewStagingHandler(deps.Staging),
		Scan:    NewScanHandler(deps.Staging, deps.Orchestrator),
		Results: NewResultsHandler(deps.Results, deps.Renderer),
		Export:  NewExportHandler(deps.Results),
		WS:      NewWebSocketHandler(deps.Orchestrator),
	}
}

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.Health.HandleHealth)

	// Staging
	apiGroup.POST("/files", h.Staging.HandleStageFile)
	apiGroup.GET("/files", h.Staging.HandleListFiles)
	apiGroup.DELETE("/files/:index", h.Staging.HandleRemoveFile)
	apiGroup.DELETE("/files", h.Staging.HandleClearFiles)

	// Batch run
	apiGroup.POST("/scan", h.Scan.HandleStartScan)
	apiGroup.GET("/scan/status", h.Scan.HandleScanStatus)
	apiGroup.GET("/ws/scan", h.WS.HandleWebSocket)

	// Results
	apiGroup.GET("/results", h.Results.HandleListResults)
	apiGroup.GET("/results/stats", h.Results.HandleResultStats)
	apiGroup.GET("/results/msgpack", h.Results.HandleResultsMsgpack)
	apiGroup.GET("/results/:index", h.Results.HandleGetResult)

	// Export artifacts
	apiGroup.GET("/export/json", h.Export.HandleExportJSON)
	apiGroup.GET("/export/csv", h.Export.HandleExportCSV)
}
