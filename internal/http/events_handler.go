package http

import (
	"github.com/gofiber/fiber/v2"
	"log/slog"

	"linklens/internal/dashboard"
)

// EventsResponse is one table window plus the size of the unfiltered set.
type EventsResponse struct {
	dashboard.TableWindow
	FilteredCount   int `json:"filtered_count"`
	UnfilteredCount int `json:"unfiltered_count"`
}

// filterableFields maps the f_* query parameters onto filter field names.
var filterableFields = []string{
	dashboard.FieldID,
	dashboard.FieldOccurredAt,
	dashboard.FieldSource,
	dashboard.FieldDestination,
	dashboard.FieldClient,
	dashboard.FieldTTL,
}

// EventsAction serves the filtered, sorted, paginated events table.
//
// The page parameter is clamped by the pagination window, but the contract
// with the presentation layer is that it sends page=1 whenever it changes
// any filter, the sort, or the page size; a stale page number against a
// changed result set is a caller bug the clamping merely softens.
func (h *Handler) EventsAction(c *fiber.Ctx) error {
	snapshot, err := h.fetcher.FetchSnapshot(c.Context())
	if err != nil {
		h.logger.Error("failed to fetch snapshot", slog.Any("error", err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to fetch data from collector",
			"code":  "COLLECTOR_UNAVAILABLE",
		})
	}

	filterSpec := dashboard.FilterSpec{
		GlobalTerm: c.Query("q"),
		PerField:   map[string]string{},
	}
	for _, field := range filterableFields {
		if term := c.Query("f_" + field); term != "" {
			filterSpec.PerField[field] = term
		}
	}

	sortSpec := dashboard.SortSpec{
		Key:       c.Query("sort_key"),
		Direction: dashboard.SortDirection(c.Query("sort_dir", string(dashboard.SortAscending))),
	}
	if sortSpec.Direction != dashboard.SortDescending {
		sortSpec.Direction = dashboard.SortAscending
	}

	pageSpec := dashboard.PageSpec{
		Size:  c.QueryInt("page_size", h.cfg.DefaultPageSize),
		Index: c.QueryInt("page", 1),
	}

	filtered := dashboard.Filter(snapshot.Events, filterSpec)
	ordered := dashboard.Sort(filtered, sortSpec)
	window := dashboard.Paginate(ordered, pageSpec)

	return c.JSON(EventsResponse{
		TableWindow:     window,
		FilteredCount:   window.TotalCount,
		UnfilteredCount: len(snapshot.Events),
	})
}
