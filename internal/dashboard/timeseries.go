package dashboard

import (
	"log/slog"
	"sort"

	"linklens/internal/model"
)

// dateKeyLayout is the bucket key format, a plain UTC calendar date.
const dateKeyLayout = "2006-01-02"

// BucketByDay groups events into UTC calendar-day buckets and returns them
// in ascending date order, ready to render left-to-right as a time axis.
//
// Bucketing uses the UTC truncation of each parsed timestamp, never local
// time, so the series is identical regardless of viewer timezone. Events
// with unparsable timestamps are excluded with a diagnostic on logger; one
// bad record never aborts the series. The bucket counts always sum to the
// number of parsable input events.
func BucketByDay(events []model.TrackingEvent, logger *slog.Logger) []TimeBucket {
	counts := make(map[string]int)
	for _, ev := range events {
		t, ok := ev.OccurredAtTime()
		if !ok {
			logger.Warn("skipping event with unparsable timestamp",
				slog.String("event_id", ev.ID),
				slog.String("occurred_at", ev.OccurredAt))
			continue
		}
		counts[t.UTC().Format(dateKeyLayout)]++
	}

	buckets := make([]TimeBucket, 0, len(counts))
	for key, count := range counts {
		buckets = append(buckets, TimeBucket{DateKey: key, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].DateKey < buckets[j].DateKey
	})
	return buckets
}
