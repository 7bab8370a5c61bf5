package export

import (
	"strconv"
	"strings"

	"linklens/internal/model"
)

// CSV export types accepted by Delimited.
const (
	TypeEvents   = "events"
	TypeSummary  = "summary"
	TypeCombined = "combined"
)

// Discriminator values for the combined export's leading Data Type column.
const (
	rowTypeSummary = "Summary"
	rowTypeEvent   = "Event"
)

var eventHeader = []string{"ID", "Occurred At", "Source", "Destination", "Client Address", "TTL Seconds"}

var summaryHeader = []string{"Source", "Count", "Unique Clients", "Destinations"}

// combinedHeader is the union convention: the discriminator, the summary
// columns, then the event columns. Column order is fixed per export type and
// never varies with data content.
var combinedHeader = []string{
	"Data Type",
	"Source", "Count", "Unique Clients", "Destinations",
	"ID", "Occurred At", "Destination", "Client Address", "TTL Seconds",
}

// Delimited serializes the snapshot as the named export type. Unknown types
// return an UnsupportedError.
func Delimited(exportType string, events []model.TrackingEvent, aggregates []model.AggregateRecord) (string, error) {
	switch exportType {
	case TypeEvents:
		return EventsCSV(events), nil
	case TypeSummary:
		return SummaryCSV(aggregates), nil
	case TypeCombined:
		return CombinedCSV(aggregates, events), nil
	default:
		return "", &UnsupportedError{Kind: "type", Value: exportType}
	}
}

// EventsCSV serializes events with one row per event.
func EventsCSV(events []model.TrackingEvent) string {
	var sb strings.Builder
	writeRow(&sb, eventHeader)
	for _, ev := range events {
		writeRow(&sb, eventFields(ev))
	}
	return sb.String()
}

// SummaryCSV serializes aggregate records with one row per source.
func SummaryCSV(aggregates []model.AggregateRecord) string {
	var sb strings.Builder
	writeRow(&sb, summaryHeader)
	for _, rec := range aggregates {
		writeRow(&sb, summaryFields(rec))
	}
	return sb.String()
}

// CombinedCSV interleaves a Summary block and an Event block under a single
// header, separated by one blank row, with a leading Data Type discriminator
// on every data row.
func CombinedCSV(aggregates []model.AggregateRecord, events []model.TrackingEvent) string {
	var sb strings.Builder
	writeRow(&sb, combinedHeader)

	pad := len(combinedHeader)
	for _, rec := range aggregates {
		row := append([]string{rowTypeSummary}, summaryFields(rec)...)
		writeRow(&sb, padFields(row, pad))
	}

	sb.WriteString("\n")

	for _, ev := range events {
		row := make([]string, 0, pad)
		row = append(row, rowTypeEvent)
		row = append(row, "", "", "", "") // summary columns stay empty on event rows
		row = append(row, eventFields(ev)...)
		writeRow(&sb, row)
	}
	return sb.String()
}

func eventFields(ev model.TrackingEvent) []string {
	return []string{
		ev.ID,
		ev.DisplayOccurredAt(),
		ev.DisplaySource(),
		ev.DestinationURL,
		ev.ClientAddress,
		strconv.Itoa(ev.TimeToLiveSeconds),
	}
}

func summaryFields(rec model.AggregateRecord) []string {
	return []string{
		rec.DisplaySource(),
		strconv.FormatInt(rec.Count, 10),
		strconv.FormatInt(rec.UniqueClientCount, 10),
		strings.Join(rec.Destinations, "; "),
	}
}

func padFields(fields []string, width int) []string {
	for len(fields) < width {
		fields = append(fields, "")
	}
	return fields
}

// writeRow writes one record with every field quoted and internal quotes
// doubled, whether or not escaping is needed. Unconditional quoting buys
// parser round-trip safety for slightly larger output.
func writeRow(sb *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
