package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"log/slog"

	"linklens/internal/dashboard"
	"linklens/internal/pkg/async"
	"linklens/internal/source"
)

// DashboardResponse is the full chart/KPI payload for one snapshot.
type DashboardResponse struct {
	TimeSeries   []dashboard.TimeBucket    `json:"time_series"`
	Destinations []dashboard.CategorySlice `json:"destinations"`
	Sources      []dashboard.BarPoint      `json:"sources"`
	Countries    []dashboard.CategorySlice `json:"countries"`
	KPIs         dashboard.KPISet          `json:"kpis"`
	EventKPIs    dashboard.EventKPIs       `json:"event_kpis"`
	Colors       []string                  `json:"colors"`
	GeneratedAt  time.Time                 `json:"generated_at"`
}

// DashboardAction fetches a snapshot and computes every dashboard view from
// it. The stages are independent pure functions, so they run as parallel
// named tasks over the same immutable snapshot.
func (h *Handler) DashboardAction(c *fiber.Ctx) error {
	snapshot, err := h.fetcher.FetchSnapshot(c.Context())
	if err != nil {
		h.logger.Error("failed to fetch snapshot", slog.Any("error", err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to fetch data from collector",
			"code":  "COLLECTOR_UNAVAILABLE",
		})
	}

	response := h.buildDashboard(c, snapshot)
	return c.JSON(response)
}

func (h *Handler) buildDashboard(c *fiber.Ctx, snapshot *source.Snapshot) *DashboardResponse {
	topK := h.cfg.DefaultTopK

	tasks := []async.Task{
		{
			Name: "timeSeries",
			Execute: func() (interface{}, error) {
				return dashboard.BucketByDay(snapshot.Events, h.logger), nil
			},
		},
		{
			Name: "destinations",
			Execute: func() (interface{}, error) {
				return dashboard.BuildDestinationDistribution(snapshot.Aggregates, topK), nil
			},
		},
		{
			Name: "sources",
			Execute: func() (interface{}, error) {
				return dashboard.BuildSourceSeries(snapshot.Aggregates), nil
			},
		},
		{
			Name: "countries",
			Execute: func() (interface{}, error) {
				if !h.resolver.Enabled() {
					return []dashboard.CategorySlice{}, nil
				}
				return dashboard.BuildCountDistribution(h.resolver.CountryTotals(snapshot.Events), topK), nil
			},
		},
		{
			Name: "kpis",
			Execute: func() (interface{}, error) {
				return dashboard.KPIsFromAggregates(snapshot.Aggregates), nil
			},
		},
		{
			Name: "eventKPIs",
			Execute: func() (interface{}, error) {
				return dashboard.KPIsFromEvents(snapshot.Events, h.cfg.RecentWindowHours, time.Now()), nil
			},
		},
	}

	pool := async.NewPool(len(tasks))
	results := pool.Execute(c.Context(), tasks)

	response := &DashboardResponse{
		TimeSeries:   []dashboard.TimeBucket{},
		Destinations: []dashboard.CategorySlice{},
		Sources:      []dashboard.BarPoint{},
		Countries:    []dashboard.CategorySlice{},
		GeneratedAt:  time.Now().UTC(),
	}

	if r, ok := results["timeSeries"]; ok && r.Err == nil {
		response.TimeSeries = r.Data.([]dashboard.TimeBucket)
	}
	if r, ok := results["destinations"]; ok && r.Err == nil {
		response.Destinations = r.Data.([]dashboard.CategorySlice)
	}
	if r, ok := results["sources"]; ok && r.Err == nil {
		response.Sources = r.Data.([]dashboard.BarPoint)
	}
	if r, ok := results["countries"]; ok && r.Err == nil {
		response.Countries = r.Data.([]dashboard.CategorySlice)
	}
	if r, ok := results["kpis"]; ok && r.Err == nil {
		response.KPIs = r.Data.(dashboard.KPISet)
	} else {
		response.KPIs = dashboard.KPIsFromAggregates(nil)
	}
	if r, ok := results["eventKPIs"]; ok && r.Err == nil {
		response.EventKPIs = r.Data.(dashboard.EventKPIs)
	}

	// One color per destination slice, assigned by position so the same
	// ordered set always renders the same way.
	colors := make([]string, len(response.Destinations))
	for i := range colors {
		colors[i] = dashboard.ColorAt(i)
	}
	response.Colors = colors

	return response
}
