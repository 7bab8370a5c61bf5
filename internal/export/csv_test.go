package export_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linklens/internal/export"
	"linklens/internal/model"
	"linklens/internal/testsupport"
)

func TestEventsCSVQuotesEveryField(t *testing.T) {
	events := []model.TrackingEvent{
		testsupport.Event("evt-1"),
	}
	out := export.EventsCSV(events)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	for _, line := range lines {
		for _, field := range strings.Split(line, ",") {
			assert.True(t, strings.HasPrefix(field, `"`), "field %q not quoted", field)
			assert.True(t, strings.HasSuffix(field, `"`), "field %q not quoted", field)
		}
	}
}

func TestEventsCSVEscapesInternalQuotes(t *testing.T) {
	events := []model.TrackingEvent{
		testsupport.Event("evt-1", testsupport.WithDestination(`/search?q="hello, world"`)),
	}
	out := export.EventsCSV(events)
	assert.Contains(t, out, `"/search?q=""hello, world"""`)

	// Round-trips through a standard CSV parser.
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `/search?q="hello, world"`, records[1][3])
}

func TestEventsCSVEmptyInputStillHasHeader(t *testing.T) {
	out := export.EventsCSV(nil)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ID", records[0][0])
}

func TestSummaryCSV(t *testing.T) {
	out := export.SummaryCSV(testsupport.ReferenceAggregates())
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Source", "Count", "Unique Clients", "Destinations"}, records[0])
	assert.Equal(t, []string{"google.com", "150", "75", "/a; /b"}, records[1])
}

func TestCombinedCSVLayout(t *testing.T) {
	events := []model.TrackingEvent{testsupport.Event("evt-1")}
	out := export.CombinedCSV(testsupport.ReferenceAggregates(), events)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header, 3 summary rows, blank separator, 1 event row.
	require.Len(t, lines, 6)
	assert.Equal(t, "", lines[4], "one blank row between blocks")
	assert.True(t, strings.HasPrefix(lines[0], `"Data Type"`))
	assert.True(t, strings.HasPrefix(lines[1], `"Summary"`))
	assert.True(t, strings.HasPrefix(lines[5], `"Event"`))

	// Every data row has the full header width.
	reader := csv.NewReader(strings.NewReader(out))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	width := len(records[0])
	for i, rec := range records {
		assert.Len(t, rec, width, "row %d", i)
	}
}

func TestDelimitedUnknownType(t *testing.T) {
	_, err := export.Delimited("spreadsheet", nil, nil)
	var unsupported *export.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "type", unsupported.Kind)
}

func TestDelimitedDispatch(t *testing.T) {
	out, err := export.Delimited(export.TypeSummary, nil, testsupport.ReferenceAggregates())
	require.NoError(t, err)
	assert.Contains(t, out, `"google.com"`)
}
