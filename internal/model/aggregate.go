package model

// AggregateRecord is a server-computed rollup for one traffic source: the
// total hit count, the distinct client count, and the destination pages the
// source sent traffic to. Counts are authoritative; this layer never
// recomputes them.
type AggregateRecord struct {
	SourceAttribution string   `json:"source_attribution"`
	Count             int64    `json:"count"`
	UniqueClientCount int64    `json:"unique_client_count"`
	Destinations      []string `json:"destinations"`
}

// DisplaySource returns the attribution label, substituting UnknownSource
// for empty attributions, same as TrackingEvent.
func (a AggregateRecord) DisplaySource() string {
	if a.SourceAttribution == "" {
		return UnknownSource
	}
	return a.SourceAttribution
}
