package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linklens/internal/config"
	"linklens/internal/geo"
	internalhttp "linklens/internal/http"
	"linklens/internal/model"
	"linklens/internal/server"
	"linklens/internal/source"
	"linklens/internal/testsupport"
)

type stubFetcher struct {
	snapshot *source.Snapshot
	err      error
}

func (s *stubFetcher) FetchSnapshot(context.Context) (*source.Snapshot, error) {
	return s.snapshot, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:           "linklens",
		AppPort:           "0",
		Environment:       config.Test,
		DefaultTopK:       10,
		DefaultPageSize:   25,
		RecentWindowHours: 24,
	}
}

func newTestApp(t *testing.T, fetcher internalhttp.SnapshotFetcher) *fiber.App {
	t.Helper()
	cfg := testConfig()
	logger := testsupport.SilentLogger()
	resolver := geo.NewResolver("", logger)
	t.Cleanup(resolver.Close)

	handler := internalhttp.NewHandler(cfg, logger, fetcher, resolver)
	return server.New(cfg, logger, handler).App()
}

func referenceSnapshot() *source.Snapshot {
	return &source.Snapshot{
		Events: []model.TrackingEvent{
			testsupport.Event("evt-1", testsupport.WithSource("google.com"), testsupport.WithOccurredAt("2024-01-01T08:00:00Z")),
			testsupport.Event("evt-2", testsupport.WithSource("facebook.com"), testsupport.WithOccurredAt("2024-01-01T12:00:00Z")),
			testsupport.Event("evt-3", testsupport.WithSource("google.com"), testsupport.WithOccurredAt("2024-01-02T09:00:00Z")),
		},
		Aggregates: testsupport.ReferenceAggregates(),
	}
}

func decodeBody(t *testing.T, resp io.Reader, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp).Decode(out))
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t, &stubFetcher{snapshot: referenceSnapshot()})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var health internalhttp.HealthStatus
	decodeBody(t, resp.Body, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "disabled", health.GeoStatus)
}

func TestDashboardEndpoint(t *testing.T) {
	app := newTestApp(t, &stubFetcher{snapshot: referenceSnapshot()})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body internalhttp.DashboardResponse
	decodeBody(t, resp.Body, &body)

	// Time series: two days, counts 2 and 1.
	require.Len(t, body.TimeSeries, 2)
	assert.Equal(t, "2024-01-01", body.TimeSeries[0].DateKey)
	assert.Equal(t, 2, body.TimeSeries[0].Count)

	// Destination distribution from the reference fan-out.
	require.Len(t, body.Destinations, 2)
	assert.Equal(t, "/a", body.Destinations[0].Label)
	assert.Equal(t, int64(300), body.Destinations[0].RawCount)

	// Bar series ordering.
	require.Len(t, body.Sources, 3)
	assert.Equal(t, "google.com", body.Sources[0].Label)

	// KPI scalars.
	assert.Equal(t, int64(300), body.KPIs.TotalCount)
	assert.Equal(t, "google.com", body.KPIs.TopCategoryLabel)
	assert.Equal(t, int64(100), body.KPIs.AveragePerCategory)
	assert.Equal(t, 1, body.EventKPIs.UniqueClients, "all three events share the default client address")
	assert.Zero(t, body.EventKPIs.RecentCount, "fixture timestamps are far outside the trailing window")

	// One color per destination slice.
	assert.Len(t, body.Colors, len(body.Destinations))

	// Geo disabled: countries render as the empty state.
	assert.Empty(t, body.Countries)
}

func TestDashboardCollectorDown(t *testing.T) {
	app := newTestApp(t, &stubFetcher{err: errors.New("connection refused")})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, "COLLECTOR_UNAVAILABLE", body["code"])
}

func TestEventsEndpointFilterSortPage(t *testing.T) {
	app := newTestApp(t, &stubFetcher{snapshot: referenceSnapshot()})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/events?f_source=google&sort_key=occurred_at&sort_dir=desc&page=1&page_size=1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body internalhttp.EventsResponse
	decodeBody(t, resp.Body, &body)

	assert.Equal(t, 2, body.FilteredCount)
	assert.Equal(t, 3, body.UnfilteredCount)
	assert.Equal(t, 2, body.TotalPages)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "evt-3", body.Items[0].ID, "newest google event first")
}

func TestEventsEndpointGlobalSearch(t *testing.T) {
	app := newTestApp(t, &stubFetcher{snapshot: referenceSnapshot()})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/events?q=FACEBOOK", nil))
	require.NoError(t, err)

	var body internalhttp.EventsResponse
	decodeBody(t, resp.Body, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "evt-2", body.Items[0].ID)
}

func TestCSVExportEndpoint(t *testing.T) {
	app := newTestApp(t, &stubFetcher{snapshot: referenceSnapshot()})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/export/csv?type=combined", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"Data Type"`)
	assert.Contains(t, string(body), `"Summary"`)
	assert.Contains(t, string(body), `"Event"`)
}

func TestCSVExportUnknownType(t *testing.T) {
	app := newTestApp(t, &stubFetcher{snapshot: referenceSnapshot()})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/export/csv?type=parquet", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, "UNSUPPORTED_EXPORT", body["code"])
}

func TestImageExportUnknownLayout(t *testing.T) {
	app := newTestApp(t, &stubFetcher{snapshot: referenceSnapshot()})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/export/image?layout=diagonal", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestImageExportNoSurfaces(t *testing.T) {
	empty := &source.Snapshot{Events: nil, Aggregates: nil}
	app := newTestApp(t, &stubFetcher{snapshot: empty})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/export/image", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, "NO_EXPORTABLE_SURFACES", body["code"])
}

func TestImageExportProducesPNG(t *testing.T) {
	app := newTestApp(t, &stubFetcher{snapshot: referenceSnapshot()})

	req := httptest.NewRequest("GET", "/api/v1/export/image?layout=vertical&charts=sources,destinations", nil)
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), body[:4])
}
