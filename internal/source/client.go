// Package source fetches the two input lists — tracking events and source
// aggregates — from the upstream collector API. The pipeline only starts
// once both have resolved; a snapshot is all-or-nothing.
//
// Transport resilience (retry, backoff) deliberately lives upstream of this
// client; a failed fetch surfaces to the caller, which decides whether to
// retry the whole snapshot.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"linklens/internal/config"
	"linklens/internal/model"
	"linklens/internal/pkg/async"
)

// StatusError reports a non-2xx collector response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("collector returned status %d for %s", e.StatusCode, e.URL)
}

// Snapshot is one atomic pair of input lists.
type Snapshot struct {
	Events     []model.TrackingEvent
	Aggregates []model.AggregateRecord
	FetchedAt  time.Time
}

// Client talks to the collector API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a collector client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.CollectorBaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// FetchEvents retrieves the tracking event list.
func (c *Client) FetchEvents(ctx context.Context) ([]model.TrackingEvent, error) {
	payload, err := c.get(ctx, "/api/v1/events")
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	return model.DecodeEvents(payload)
}

// FetchAggregates retrieves the per-source aggregate list.
func (c *Client) FetchAggregates(ctx context.Context) ([]model.AggregateRecord, error) {
	payload, err := c.get(ctx, "/api/v1/aggregates")
	if err != nil {
		return nil, fmt.Errorf("fetching aggregates: %w", err)
	}
	return model.DecodeAggregates(payload)
}

// FetchSnapshot fetches both lists concurrently and returns them together.
// If either fetch fails the snapshot fails; the pipeline never runs on half
// a snapshot.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	pool := async.NewPool(2)
	results := pool.Execute(ctx, []async.Task{
		{Name: "events", Execute: func() (interface{}, error) {
			return c.FetchEvents(ctx)
		}},
		{Name: "aggregates", Execute: func() (interface{}, error) {
			return c.FetchAggregates(ctx)
		}},
	})

	for _, name := range []string{"events", "aggregates"} {
		result, ok := results[name]
		if !ok {
			return nil, fmt.Errorf("fetching %s: %w", name, ctx.Err())
		}
		if result.Err != nil {
			return nil, result.Err
		}
	}

	snapshot := &Snapshot{FetchedAt: time.Now()}
	snapshot.Events, _ = results["events"].Data.([]model.TrackingEvent)
	snapshot.Aggregates, _ = results["aggregates"].Data.([]model.AggregateRecord)
	c.logger.Debug("fetched collector snapshot",
		slog.Int("events", len(snapshot.Events)),
		slog.Int("aggregates", len(snapshot.Aggregates)))
	return snapshot, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
