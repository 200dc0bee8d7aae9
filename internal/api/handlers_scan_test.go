// handlers_scan_test.go - Tests for run trigger and status endpoints
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doc-scanner/client/internal/models"
	"github.com/doc-scanner/client/internal/results"
	"github.com/doc-scanner/client/internal/scan"
	"github.com/doc-scanner/client/internal/staging"
	"github.com/doc-scanner/client/internal/testutil"
)

// blockingSubmitter holds a run in the submitting phase until released.
type blockingSubmitter struct {
	release chan struct{}
}

func (s *blockingSubmitter) Submit(ctx context.Context, payloads []models.EncodedFilePayload) ([]models.ProcessingResult, error) {
	if s.release != nil {
		<-s.release
	}
	out := make([]models.ProcessingResult, len(payloads))
	for i, p := range payloads {
		out[i] = testutil.SampleResult(p.FileName)
	}
	return out, nil
}

type scanFixture struct {
	handler      *ScanHandler
	staging      *staging.Store
	results      *results.Store
	orchestrator *scan.Orchestrator
}

func newScanFixture(submitter scan.Submitter) *scanFixture {
	stagingStore := staging.NewStore()
	resultStore := results.NewStore()
	orchestrator := scan.New(stagingStore, resultStore, submitter)
	return &scanFixture{
		handler:      NewScanHandler(stagingStore, orchestrator),
		staging:      stagingStore,
		results:      resultStore,
		orchestrator: orchestrator,
	}
}

func scanRequest(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestScanHandler_StartWithEmptyStaging(t *testing.T) {
	f := newScanFixture(&blockingSubmitter{})

	c, _ := scanRequest(http.MethodPost, "/api/scan")
	err := f.handler.HandleStartScan(c)

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestScanHandler_StartAndComplete(t *testing.T) {
	f := newScanFixture(&blockingSubmitter{})
	f.staging.Add(staging.FromBytes("invoice.png", "image/png", []byte("img")))

	c, rec := scanRequest(http.MethodPost, "/api/scan")
	require.NoError(t, f.handler.HandleStartScan(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		return f.orchestrator.State().Phase == models.PhaseDone
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, f.results.Len())

	c, rec = scanRequest(http.MethodGet, "/api/scan/status")
	require.NoError(t, f.handler.HandleScanStatus(c))

	var state models.RunState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, models.PhaseDone, state.Phase)
	assert.Equal(t, 100, state.Progress)
}

func TestScanHandler_ConflictWhileInFlight(t *testing.T) {
	submitter := &blockingSubmitter{release: make(chan struct{})}
	f := newScanFixture(submitter)
	f.staging.Add(staging.FromBytes("invoice.png", "", []byte("img")))

	c, _ := scanRequest(http.MethodPost, "/api/scan")
	require.NoError(t, f.handler.HandleStartScan(c))

	require.Eventually(t, f.orchestrator.InFlight, time.Second, time.Millisecond)

	c, _ = scanRequest(http.MethodPost, "/api/scan")
	err := f.handler.HandleStartScan(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "CONFLICT", apiErr.Code)

	close(submitter.release)
	require.Eventually(t, func() bool {
		return f.orchestrator.State().Phase == models.PhaseDone
	}, time.Second, time.Millisecond)

	// The trigger re-arms after the run finishes.
	f.staging.Add(staging.FromBytes("letter.jpg", "", []byte("img2")))
	c, rec := scanRequest(http.MethodPost, "/api/scan")
	require.NoError(t, f.handler.HandleStartScan(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
