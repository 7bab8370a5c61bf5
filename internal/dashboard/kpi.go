package dashboard

import (
	"math"
	"time"

	"linklens/internal/model"
)

// NoDataLabel is the top-category sentinel for an empty aggregate set. It is
// a renderable label, not an empty string, so cards can show it directly.
const NoDataLabel = "No data"

// DefaultRecentWindowHours is the trailing window for the recent-events KPI.
const DefaultRecentWindowHours = 24

// KPIsFromAggregates folds the aggregate list into the summary-card scalars.
// The top category is the single record with the maximum count; ties resolve
// to the first maximal record in input order, without re-sorting. The
// per-category average rounds half up. An empty input yields a zeroed set
// with the NoDataLabel sentinel.
func KPIsFromAggregates(aggregates []model.AggregateRecord) KPISet {
	set := KPISet{TopCategoryLabel: NoDataLabel}
	if len(aggregates) == 0 {
		return set
	}

	for i, rec := range aggregates {
		set.TotalCount += rec.Count
		set.TotalUniqueClients += rec.UniqueClientCount
		if i == 0 || rec.Count > set.TopCategoryCount {
			set.TopCategoryLabel = rec.DisplaySource()
			set.TopCategoryCount = rec.Count
		}
	}
	set.CategoryCount = len(aggregates)
	set.AveragePerCategory = int64(math.Floor(float64(set.TotalCount)/float64(set.CategoryCount) + 0.5))
	return set
}

// KPIsFromEvents derives the cross-cutting event scalars: distinct
// destination and client counts, and the number of events whose parsed
// timestamp falls within windowHours of now. Events with unparsable
// timestamps are omitted from the recent count entirely, the same rule the
// time-series bucketer applies. now is explicit so callers (and tests)
// control the evaluation instant.
func KPIsFromEvents(events []model.TrackingEvent, windowHours int, now time.Time) EventKPIs {
	if windowHours < 1 {
		windowHours = DefaultRecentWindowHours
	}
	cutoff := now.Add(-time.Duration(windowHours) * time.Hour)

	destinations := make(map[string]struct{})
	clients := make(map[string]struct{})
	recent := 0
	for _, ev := range events {
		destinations[ev.DestinationURL] = struct{}{}
		clients[ev.ClientAddress] = struct{}{}
		if t, ok := ev.OccurredAtTime(); ok && !t.Before(cutoff) && !t.After(now) {
			recent++
		}
	}

	return EventKPIs{
		UniqueDestinations: len(destinations),
		UniqueClients:      len(clients),
		RecentCount:        recent,
	}
}
