package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linklens/internal/geo"
	"linklens/internal/model"
	"linklens/internal/testsupport"
)

func TestResolverDisabledWithoutDatabase(t *testing.T) {
	r := geo.NewResolver("", testsupport.SilentLogger())
	defer r.Close()

	assert.False(t, r.Enabled())
	assert.Equal(t, geo.UnknownCountry, r.CountryName("203.0.113.9"))
}

func TestResolverMissingDatabaseFile(t *testing.T) {
	r := geo.NewResolver("/nonexistent/GeoLite2-City.mmdb", testsupport.SilentLogger())
	defer r.Close()

	assert.False(t, r.Enabled())
}

func TestCountryTotalsDisabledResolver(t *testing.T) {
	r := geo.NewResolver("", testsupport.SilentLogger())
	defer r.Close()

	events := []model.TrackingEvent{
		testsupport.Event("a", testsupport.WithClient("203.0.113.1")),
		testsupport.Event("b", testsupport.WithClient("198.51.100.2")),
	}
	totals := r.CountryTotals(events)
	require.Len(t, totals, 1)
	assert.Equal(t, int64(2), totals[geo.UnknownCountry])
}
