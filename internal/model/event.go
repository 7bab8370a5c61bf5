// Package model defines the value types the dashboard pipeline consumes:
// tracking events and per-source aggregates as delivered by the collector
// API, plus tolerant decoding for untrusted payloads.
package model

import "time"

// UnknownSource is the display label for events with no source attribution.
const UnknownSource = "Unknown"

// Timestamp layouts accepted from the collector, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TrackingEvent is a single redirect hit. Instances are immutable once
// decoded; every pipeline stage treats them read-only.
type TrackingEvent struct {
	ID                string `json:"id"`
	OccurredAt        string `json:"occurred_at"` // raw timestamp string, may be unparsable
	SourceAttribution string `json:"source_attribution"`
	DestinationURL    string `json:"destination_url"`
	ClientAddress     string `json:"client_address"`
	TimeToLiveSeconds int    `json:"time_to_live_seconds"`
}

// OccurredAtTime parses the raw timestamp. The boolean reports whether the
// value was parsable; an unparsable timestamp is invalid, not absent, so the
// raw string stays available for display and matching.
func (e TrackingEvent) OccurredAtTime() (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, e.OccurredAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplaySource returns the attribution label shown to users, substituting
// UnknownSource for empty attributions.
func (e TrackingEvent) DisplaySource() string {
	if e.SourceAttribution == "" {
		return UnknownSource
	}
	return e.SourceAttribution
}

// DisplayOccurredAt returns the timestamp as shown in the table: RFC3339 in
// UTC when parsable, otherwise the raw string as delivered.
func (e TrackingEvent) DisplayOccurredAt() string {
	if t, ok := e.OccurredAtTime(); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return e.OccurredAt
}
