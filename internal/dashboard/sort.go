package dashboard

import (
	"sort"
	"strings"

	"linklens/internal/model"
)

// Sort returns a copy of events ordered by spec. The input slice is never
// mutated. Sorting is stable: records with equal keys keep their relative
// input order, which downstream pagination depends on for deterministic
// pages across recomputations. A zero spec or an unknown key returns the
// events in API-delivered order.
func Sort(events []model.TrackingEvent, spec SortSpec) []model.TrackingEvent {
	out := make([]model.TrackingEvent, len(events))
	copy(out, events)

	less := lessFunc(spec.Key)
	if less == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if spec.Direction == SortDescending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// NextSortSpec applies the toggle rule: sorting by the already-active key
// flips the direction, sorting by a new key starts ascending.
func NextSortSpec(current SortSpec, key string) SortSpec {
	if current.Key == key && current.Direction == SortAscending {
		return SortSpec{Key: key, Direction: SortDescending}
	}
	return SortSpec{Key: key, Direction: SortAscending}
}

// lessFunc returns the ascending comparator for a sort key, or nil for an
// unknown key. Strings compare case-insensitively, the TTL compares
// numerically, and timestamps compare chronologically with unparsable values
// ordered before all parsable ones (grouped, still stable among themselves).
func lessFunc(key string) func(a, b model.TrackingEvent) bool {
	switch key {
	case FieldID:
		return func(a, b model.TrackingEvent) bool { return lessFold(a.ID, b.ID) }
	case FieldSource:
		return func(a, b model.TrackingEvent) bool { return lessFold(a.DisplaySource(), b.DisplaySource()) }
	case FieldDestination:
		return func(a, b model.TrackingEvent) bool { return lessFold(a.DestinationURL, b.DestinationURL) }
	case FieldClient:
		return func(a, b model.TrackingEvent) bool { return lessFold(a.ClientAddress, b.ClientAddress) }
	case FieldTTL:
		return func(a, b model.TrackingEvent) bool { return a.TimeToLiveSeconds < b.TimeToLiveSeconds }
	case FieldOccurredAt:
		return func(a, b model.TrackingEvent) bool {
			ta, okA := a.OccurredAtTime()
			tb, okB := b.OccurredAtTime()
			if okA != okB {
				return !okA
			}
			if !okA {
				return false
			}
			return ta.Before(tb)
		}
	default:
		return nil
	}
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return a < b
	}
	return la < lb
}
