// handlers_staging.go - Staging store endpoints for the browser UI
package api

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/doc-scanner/client/internal/staging"
)

// StagingHandler exposes the file staging store.
type StagingHandler struct {
	staging *staging.Store
}

// NewStagingHandler creates a staging handler.
func NewStagingHandler(store *staging.Store) *StagingHandler {
	return &StagingHandler{staging: store}
}

type stageFileRequest struct {
	Name        string `json:"name"`
	Data        string `json:"data"` // base64, no data-URL prefix
	ContentType string `json:"contentType,omitempty"`
}

type stageFileResponse struct {
	Staged bool `json:"staged"`
	Count  int  `json:"count"`
	Empty  bool `json:"empty"`
}

type listFilesResponse struct {
	Files []stagedFileView `json:"files"`
	Empty bool             `json:"empty"`
}

type stagedFileView struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// HandleStageFile stages one file sent by the browser. A duplicate
// name is a silent skip, reported as staged:false, never an error.
func (h *StagingHandler) HandleStageFile(c echo.Context) error {
	var req stageFileRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Name == "" {
		return NewValidationError("name")
	}
	if req.Data == "" {
		return NewValidationError("data")
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return NewBadRequestError("invalid base64 data", err)
	}

	added := h.staging.Add(staging.FromBytes(req.Name, req.ContentType, data))

	return c.JSON(http.StatusOK, stageFileResponse{
		Staged: added > 0,
		Count:  h.staging.Len(),
		Empty:  h.staging.IsEmpty(),
	})
}

// HandleListFiles returns the ordered staged snapshot.
func (h *StagingHandler) HandleListFiles(c echo.Context) error {
	staged := h.staging.List()
	files := make([]stagedFileView, len(staged))
	for i, f := range staged {
		files[i] = stagedFileView{Name: f.Name, Size: f.Size, ContentType: f.ContentType}
	}
	return c.JSON(http.StatusOK, listFilesResponse{Files: files, Empty: len(files) == 0})
}

// HandleRemoveFile removes the staged entry at :index. A malformed or
// out-of-range index is a 404, never a crash.
func (h *StagingHandler) HandleRemoveFile(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return NewBadRequestError("index must be an integer", err)
	}

	if err := h.staging.Remove(index); err != nil {
		return NewNotFoundError("staged file", c.Param("index"))
	}

	return c.JSON(http.StatusOK, stageFileResponse{
		Staged: false,
		Count:  h.staging.Len(),
		Empty:  h.staging.IsEmpty(),
	})
}

// HandleClearFiles empties the staging store.
func (h *StagingHandler) HandleClearFiles(c echo.Context) error {
	h.staging.Clear()
	return c.JSON(http.StatusOK, stageFileResponse{Count: 0, Empty: true})
}
