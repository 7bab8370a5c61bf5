// Package testsupport provides shared fixtures for package tests: canonical
// event and aggregate sets and a quiet logger.
package testsupport

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"linklens/internal/model"
)

// SilentLogger returns a logger that discards everything. Components require
// a logger for diagnostics; tests that don't assert on them use this.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Event builds a tracking event with sensible defaults and the given
// overrides applied.
func Event(id string, overrides ...func(*model.TrackingEvent)) model.TrackingEvent {
	ev := model.TrackingEvent{
		ID:                id,
		OccurredAt:        "2024-01-01T08:00:00Z",
		SourceAttribution: "google.com",
		DestinationURL:    "/landing",
		ClientAddress:     "203.0.113.1",
		TimeToLiveSeconds: 3600,
	}
	for _, o := range overrides {
		o(&ev)
	}
	return ev
}

// WithOccurredAt sets the raw timestamp string.
func WithOccurredAt(raw string) func(*model.TrackingEvent) {
	return func(ev *model.TrackingEvent) { ev.OccurredAt = raw }
}

// WithSource sets the source attribution.
func WithSource(src string) func(*model.TrackingEvent) {
	return func(ev *model.TrackingEvent) { ev.SourceAttribution = src }
}

// WithDestination sets the destination URL.
func WithDestination(dest string) func(*model.TrackingEvent) {
	return func(ev *model.TrackingEvent) { ev.DestinationURL = dest }
}

// WithClient sets the client address.
func WithClient(addr string) func(*model.TrackingEvent) {
	return func(ev *model.TrackingEvent) { ev.ClientAddress = addr }
}

// Aggregate builds an aggregate record.
func Aggregate(source string, count, uniqueClients int64, destinations ...string) model.AggregateRecord {
	return model.AggregateRecord{
		SourceAttribution: source,
		Count:             count,
		UniqueClientCount: uniqueClients,
		Destinations:      destinations,
	}
}

// ReferenceAggregates is the three-source fixture used across scenario
// tests: google 150/75 → /a,/b; facebook 100/50 → /a; twitter 50/25 → /a.
func ReferenceAggregates() []model.AggregateRecord {
	return []model.AggregateRecord{
		Aggregate("google.com", 150, 75, "/a", "/b"),
		Aggregate("facebook.com", 100, 50, "/a"),
		Aggregate("twitter.com", 50, 25, "/a"),
	}
}

// SequentialEvents builds n events with distinct ids and timestamps spaced
// one minute apart starting from start.
func SequentialEvents(n int, start time.Time) []model.TrackingEvent {
	events := make([]model.TrackingEvent, 0, n)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * time.Minute)
		events = append(events, Event(
			fmt.Sprintf("evt-%03d", i),
			WithOccurredAt(ts.UTC().Format(time.RFC3339)),
		))
	}
	return events
}
