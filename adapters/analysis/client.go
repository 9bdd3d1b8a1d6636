// Package analysis is the HTTP client for the external analysis service
// that computes priors, posteriors, and evidence likelihoods. The engine
// only ever consumes the resolved payload; the Bayesian inference itself
// happens on the service side.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"hypotourney/domain/core"
	"hypotourney/internal/errors"
	"hypotourney/ports"
)

// Client talks to the analysis service. Completion is polled with a fixed
// interval and a bounded attempt count; cancelling the context stops
// retrying immediately.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	interval    time.Duration
	maxAttempts int
}

// NewClient creates an analysis client.
func NewClient(baseURL string, interval time.Duration, maxAttempts int) *Client {
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

type submitRequest struct {
	Proposition string `json:"proposition"`
	Paradigm    string `json:"paradigm"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Submit starts an analysis of the proposition under one paradigm
func (c *Client) Submit(ctx context.Context, proposition string, paradigm core.ParadigmID) (ports.AnalysisHandle, error) {
	body, err := json.Marshal(submitRequest{Proposition: proposition, Paradigm: string(paradigm)})
	if err != nil {
		return ports.AnalysisHandle{}, err
	}

	var resp submitResponse
	if err := c.doJSON(ctx, http.MethodPost, "/analyses", bytes.NewReader(body), &resp); err != nil {
		return ports.AnalysisHandle{}, errors.ExternalServiceError("analysis", err)
	}
	return ports.AnalysisHandle{ID: resp.ID, Paradigm: paradigm}, nil
}

// Status reports the current lifecycle state of a job
func (c *Client) Status(ctx context.Context, handle ports.AnalysisHandle) (ports.AnalysisStatus, error) {
	var resp statusResponse
	path := fmt.Sprintf("/analyses/%s/status", handle.ID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", errors.ExternalServiceError("analysis", err)
	}
	return ports.AnalysisStatus(resp.Status), nil
}

// Result fetches the resolved payload of a completed job
func (c *Client) Result(ctx context.Context, handle ports.AnalysisHandle) (*ports.AnalysisResult, error) {
	var result ports.AnalysisResult
	path := fmt.Sprintf("/analyses/%s/result", handle.ID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, errors.ExternalServiceError("analysis", err)
	}
	result.Paradigm = handle.Paradigm
	return &result, nil
}

// Await polls a job until completion, a reported failure, or attempt
// exhaustion. Each attempt checks status once and then waits the fixed
// interval; ctx cancellation wins over the wait.
func (c *Client) Await(ctx context.Context, handle ports.AnalysisHandle) (*ports.AnalysisResult, error) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		status, err := c.Status(ctx, handle)
		if err != nil {
			return nil, err
		}

		switch status {
		case ports.AnalysisComplete:
			return c.Result(ctx, handle)
		case ports.AnalysisFailed:
			return nil, errors.ExternalServiceError("analysis", fmt.Errorf("job %s reported failure", handle.ID))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.interval):
		}
	}
	return nil, errors.ExternalServiceError("analysis", fmt.Errorf("job %s timed out after %d attempts", handle.ID, c.maxAttempts))
}

// AwaitAll polls several jobs concurrently, one goroutine per paradigm,
// and returns results keyed by paradigm. The first failure cancels the
// remaining polls.
func (c *Client) AwaitAll(ctx context.Context, handles []ports.AnalysisHandle) (map[core.ParadigmID]*ports.AnalysisResult, error) {
	group, ctx := errgroup.WithContext(ctx)
	results := make([]*ports.AnalysisResult, len(handles))

	for i, handle := range handles {
		group.Go(func() error {
			result, err := c.Await(ctx, handle)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	byParadigm := make(map[core.ParadigmID]*ports.AnalysisResult, len(results))
	for _, result := range results {
		byParadigm[result.Paradigm] = result
	}
	return byParadigm, nil
}

// doJSON performs one HTTP round trip and decodes a JSON response.
func (c *Client) doJSON(ctx context.Context, method, path string, body *bytes.Reader, out interface{}) error {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s %s", resp.StatusCode, method, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
