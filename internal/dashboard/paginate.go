package dashboard

import "linklens/internal/model"

// DefaultPageSize is used when a page spec carries no usable size.
const DefaultPageSize = 25

// Paginate cuts one page out of an already filtered and sorted set.
//
// Callers are expected to reset the index to 1 whenever the underlying set
// changes (new filter, new sort, new page size); stale indices must never be
// shown against a changed result set. As a backstop this clamps defensively:
// an index past the last page lands on the last page, anything below 1 on
// the first. Callers should not rely on the clamping, only on the reset.
func Paginate(events []model.TrackingEvent, spec PageSpec) TableWindow {
	size := spec.Size
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(events)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	page := spec.Index
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	first := (page-1)*size + 1
	last := page * size
	if last > total {
		last = total
	}
	if total == 0 {
		first, last = 0, 0
	}

	var items []model.TrackingEvent
	if total > 0 {
		items = events[first-1 : last]
	} else {
		items = []model.TrackingEvent{}
	}

	return TableWindow{
		Items:      items,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
		FirstIndex: first,
		LastIndex:  last,
	}
}
