// Package dashboard implements the data pipeline behind the analytics views:
// filtering, sorting and paginating tracking events into table windows, and
// reducing events and aggregates into chart-ready series and KPI scalars.
//
// Every operation is a pure function over the snapshot it receives. Nothing
// here holds state between calls and nothing mutates its inputs; each view is
// recomputed wholesale whenever the snapshot or a spec changes. That is what
// keeps the ordering and determinism guarantees without any coordination.
package dashboard

import "linklens/internal/model"

// SortDirection is the direction of an active sort.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Field names accepted by filter and sort specs.
const (
	FieldID          = "id"
	FieldOccurredAt  = "occurred_at"
	FieldSource      = "source"
	FieldDestination = "destination"
	FieldClient      = "client"
	FieldTTL         = "ttl"
)

// FilterSpec is a snapshot of the active filters: one global term matched
// against all searchable fields plus optional per-field terms. Empty terms
// always pass.
type FilterSpec struct {
	GlobalTerm string
	PerField   map[string]string
}

// SortSpec names the active sort key and direction. The zero value means "no
// sort": records stay in API-delivered order.
type SortSpec struct {
	Key       string
	Direction SortDirection
}

// PageSpec selects a window of the filtered+sorted set. Index is 1-based.
type PageSpec struct {
	Size  int
	Index int
}

// TableWindow is one visible page of the table plus its metadata. FirstIndex
// and LastIndex are 1-based inclusive positions within the filtered set, both
// zero when the set is empty.
type TableWindow struct {
	Items      []model.TrackingEvent `json:"items"`
	TotalCount int                   `json:"total_count"`
	TotalPages int                   `json:"total_pages"`
	Page       int                   `json:"page"`
	FirstIndex int                   `json:"first_index"`
	LastIndex  int                   `json:"last_index"`
}

// TimeBucket is one calendar day (UTC) of event counts. DateKey is
// "YYYY-MM-DD".
type TimeBucket struct {
	DateKey string `json:"date"`
	Count   int    `json:"count"`
}

// CategorySlice is one slice of a categorical distribution. The synthetic
// overflow slice carries the reserved Others label and IsOverflow set, and is
// excluded from drill-down interactions.
type CategorySlice struct {
	Label        string  `json:"label"`
	RawCount     int64   `json:"count"`
	SharePercent float64 `json:"share_percent"`
	IsOverflow   bool    `json:"is_overflow,omitempty"`
}

// BarPoint is one bar of the per-source series: the hit count with the
// unique-client count aligned to the same ordering.
type BarPoint struct {
	Label         string `json:"label"`
	Count         int64  `json:"count"`
	UniqueClients int64  `json:"unique_clients"`
}

// KPISet holds the scalars derived from the aggregate list.
type KPISet struct {
	TotalCount         int64  `json:"total_count"`
	TotalUniqueClients int64  `json:"total_unique_clients"`
	TopCategoryLabel   string `json:"top_category_label"`
	TopCategoryCount   int64  `json:"top_category_count"`
	CategoryCount      int    `json:"category_count"`
	AveragePerCategory int64  `json:"average_per_category"`
}

// EventKPIs holds the scalars derived from the raw event list.
type EventKPIs struct {
	UniqueDestinations int `json:"unique_destinations"`
	UniqueClients      int `json:"unique_clients"`
	RecentCount        int `json:"recent_count"`
}
