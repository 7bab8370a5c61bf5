package dashboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"linklens/internal/dashboard"
	"linklens/internal/model"
	"linklens/internal/testsupport"
)

func TestKPIsFromAggregatesReferenceScenario(t *testing.T) {
	set := dashboard.KPIsFromAggregates(testsupport.ReferenceAggregates())

	assert.Equal(t, dashboard.KPISet{
		TotalCount:         300,
		TotalUniqueClients: 150,
		TopCategoryLabel:   "google.com",
		TopCategoryCount:   150,
		CategoryCount:      3,
		AveragePerCategory: 100,
	}, set)
}

func TestKPIsFromAggregatesEmptyInput(t *testing.T) {
	set := dashboard.KPIsFromAggregates(nil)
	assert.Equal(t, dashboard.KPISet{TopCategoryLabel: dashboard.NoDataLabel}, set)
}

func TestKPIsFromAggregatesTopCategoryTieBreaksToFirst(t *testing.T) {
	aggregates := []model.AggregateRecord{
		testsupport.Aggregate("second.com", 80, 10),
		testsupport.Aggregate("first-max.com", 100, 10),
		testsupport.Aggregate("later-max.com", 100, 10),
	}
	set := dashboard.KPIsFromAggregates(aggregates)
	assert.Equal(t, "first-max.com", set.TopCategoryLabel, "ties resolve in input order, not re-sorted")
	assert.Equal(t, int64(100), set.TopCategoryCount)
}

func TestKPIsFromAggregatesAverageRoundsHalfUp(t *testing.T) {
	aggregates := []model.AggregateRecord{
		testsupport.Aggregate("a", 5, 1),
		testsupport.Aggregate("b", 0, 1),
	}
	set := dashboard.KPIsFromAggregates(aggregates)
	assert.Equal(t, int64(3), set.AveragePerCategory, "5/2 = 2.5 rounds up to 3")
}

func TestKPIsFromEvents(t *testing.T) {
	now := mustTime(t, "2024-06-10T12:00:00Z")
	events := []model.TrackingEvent{
		testsupport.Event("recent", testsupport.WithOccurredAt("2024-06-10T06:00:00Z"), testsupport.WithDestination("/a"), testsupport.WithClient("10.0.0.1")),
		testsupport.Event("stale", testsupport.WithOccurredAt("2024-06-01T06:00:00Z"), testsupport.WithDestination("/b"), testsupport.WithClient("10.0.0.2")),
		testsupport.Event("edge", testsupport.WithOccurredAt("2024-06-09T12:00:00Z"), testsupport.WithDestination("/a"), testsupport.WithClient("10.0.0.1")),
		testsupport.Event("broken", testsupport.WithOccurredAt("???"), testsupport.WithDestination("/c"), testsupport.WithClient("10.0.0.3")),
	}

	kpis := dashboard.KPIsFromEvents(events, 24, now)
	assert.Equal(t, 3, kpis.UniqueDestinations)
	assert.Equal(t, 3, kpis.UniqueClients)
	// "edge" sits exactly on the window boundary and counts; "broken" is
	// omitted, neither recent nor stale.
	assert.Equal(t, 2, kpis.RecentCount)
}

func TestKPIsFromEventsEmpty(t *testing.T) {
	kpis := dashboard.KPIsFromEvents(nil, 24, time.Now())
	assert.Equal(t, dashboard.EventKPIs{}, kpis)
}

func TestKPIsFromEventsDefaultsWindow(t *testing.T) {
	now := mustTime(t, "2024-06-10T12:00:00Z")
	events := []model.TrackingEvent{
		testsupport.Event("in", testsupport.WithOccurredAt("2024-06-10T00:00:00Z")),
		testsupport.Event("out", testsupport.WithOccurredAt("2024-06-08T00:00:00Z")),
	}
	kpis := dashboard.KPIsFromEvents(events, 0, now)
	assert.Equal(t, 1, kpis.RecentCount, "non-positive window falls back to 24h")
}
