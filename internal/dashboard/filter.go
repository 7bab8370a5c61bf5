package dashboard

import (
	"strconv"
	"strings"

	"linklens/internal/model"
)

// globalSearchSeparator joins the searchable fields before the global
// substring test. Any non-empty separator works; a space keeps adjacent
// field values from matching across the boundary by accident.
const globalSearchSeparator = " "

// Filter returns the events matching spec, preserving input order. A record
// is kept iff it matches the global term (when non-empty) and every non-empty
// per-field term. All matching is unanchored, case-insensitive substring
// matching over the string form of the field; missing values match as empty
// strings, so no input can make this fail.
func Filter(events []model.TrackingEvent, spec FilterSpec) []model.TrackingEvent {
	if spec.GlobalTerm == "" && !hasActiveFieldTerms(spec.PerField) {
		return events
	}

	kept := make([]model.TrackingEvent, 0, len(events))
	for _, ev := range events {
		if matches(ev, spec) {
			kept = append(kept, ev)
		}
	}
	return kept
}

func matches(ev model.TrackingEvent, spec FilterSpec) bool {
	if spec.GlobalTerm != "" && !containsFold(globalSearchText(ev), spec.GlobalTerm) {
		return false
	}
	for field, term := range spec.PerField {
		if term == "" {
			continue
		}
		if !containsFold(fieldValue(ev, field), term) {
			return false
		}
	}
	return true
}

func hasActiveFieldTerms(perField map[string]string) bool {
	for _, term := range perField {
		if term != "" {
			return true
		}
	}
	return false
}

// globalSearchText concatenates the fixed set of fields the global term is
// matched against.
func globalSearchText(ev model.TrackingEvent) string {
	return strings.Join([]string{
		ev.DisplaySource(),
		ev.DestinationURL,
		ev.ClientAddress,
		ev.ID,
		ev.DisplayOccurredAt(),
	}, globalSearchSeparator)
}

// fieldValue returns the string form of a named field. Unknown field names
// yield an empty string, which only matches an empty term.
func fieldValue(ev model.TrackingEvent, field string) string {
	switch field {
	case FieldID:
		return ev.ID
	case FieldOccurredAt:
		return ev.DisplayOccurredAt()
	case FieldSource:
		return ev.DisplaySource()
	case FieldDestination:
		return ev.DestinationURL
	case FieldClient:
		return ev.ClientAddress
	case FieldTTL:
		return strconv.Itoa(ev.TimeToLiveSeconds)
	default:
		return ""
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
