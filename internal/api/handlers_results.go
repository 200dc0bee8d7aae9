// handlers_results.go - Result views for the browser UI
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/doc-scanner/client/internal/export"
	"github.com/doc-scanner/client/internal/results"
)

// ResultsHandler serves summary cards, detail views and stats from
// the last run's results.
type ResultsHandler struct {
	results  *results.Store
	renderer *results.Renderer
}

// NewResultsHandler creates a results handler.
func NewResultsHandler(store *results.Store, renderer *results.Renderer) *ResultsHandler {
	return &ResultsHandler{results: store, renderer: renderer}
}

type listResultsResponse struct {
	Results []results.Summary `json:"results"`
	Count   int               `json:"count"`
}

// HandleListResults returns one summary card per result, in run order.
func (h *ResultsHandler) HandleListResults(c echo.Context) error {
	summaries := h.renderer.Summaries()
	return c.JSON(http.StatusOK, listResultsResponse{
		Results: summaries,
		Count:   len(summaries),
	})
}

// HandleGetResult returns the detail view at :index.
func (h *ResultsHandler) HandleGetResult(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return NewBadRequestError("index must be an integer", err)
	}

	detail, err := h.renderer.Detail(index)
	if err != nil {
		return NewNotFoundError("result", c.Param("index"))
	}
	return c.JSON(http.StatusOK, detail)
}

// HandleResultStats returns aggregate stats for the summary bar.
func (h *ResultsHandler) HandleResultStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.renderer.Stats())
}

// HandleResultsMsgpack returns the raw result sequence in msgpack for
// bandwidth-sensitive clients.
func (h *ResultsHandler) HandleResultsMsgpack(c echo.Context) error {
	data, err := export.MsgpackBytes(h.results.List())
	if err != nil {
		return NewInternalError("failed to encode results", err)
	}
	return c.Blob(http.StatusOK, "application/x-msgpack", data)
}
