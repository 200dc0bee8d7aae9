// Package submit performs the single request/response exchange with
// the remote scan service.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doc-scanner/client/internal/models"
)

// ErrRequestFailed marks a transport failure or non-success response
// from the scan service. Callers treat every flavor uniformly.
var ErrRequestFailed = errors.New("submit: batch request failed")

// Client talks to the scan service's batch endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL (e.g.
// "http://localhost:5000/api"). Timeout bounds the whole exchange;
// the orchestrator enforces no timeout of its own.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type batchRequest struct {
	Files []models.EncodedFilePayload `json:"files"`
}

type batchResponse struct {
	Success bool                      `json:"success"`
	Results []models.ProcessingResult `json:"results"`
	Count   int                       `json:"count"`
	Error   string                    `json:"error,omitempty"`
}

// Submit sends the whole batch in one POST and returns the parsed
// result sequence, which the service guarantees to be in request
// order. Non-2xx responses and transport errors both wrap
// ErrRequestFailed.
func (c *Client) Submit(ctx context.Context, payloads []models.EncodedFilePayload) ([]models.ProcessingResult, error) {
	body, err := json.Marshal(batchRequest{Files: payloads})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var parsed batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrRequestFailed, err)
	}

	// Some deployments omit the success flag; only an explicit error
	// string fails the run. Missing result fields degrade downstream.
	if parsed.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, parsed.Error)
	}

	return parsed.Results, nil
}

// Health probes the scan service. Best-effort: callers log failures
// and carry on.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
