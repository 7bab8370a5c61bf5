// Package geo resolves event client addresses to countries through an
// optional GeoLite2 database. The feature is disabled, not an error, when no
// database is configured or present.
package geo

import (
	"log/slog"
	"net"
	"os"

	"github.com/oschwald/geoip2-golang"
	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"linklens/internal/model"
)

// UnknownCountry is the label for addresses that cannot be resolved:
// private ranges, unparsable strings, or lookups missing from the database.
const UnknownCountry = "Unknown"

// Resolver maps client addresses to country display names.
type Resolver struct {
	reader    *geoip2.Reader
	countries *gountries.Query
	caser     cases.Caser
	logger    *slog.Logger
}

// NewResolver opens the GeoLite2 database at dbPath. A missing or empty
// path yields a disabled resolver; every lookup then answers UnknownCountry.
func NewResolver(dbPath string, logger *slog.Logger) *Resolver {
	r := &Resolver{
		countries: gountries.New(),
		caser:     cases.Upper(language.AmericanEnglish),
		logger:    logger,
	}

	if dbPath == "" {
		logger.Debug("GeoLite2 path not configured, country resolution disabled")
		return r
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		logger.Info("GeoLite2 database not found, country resolution disabled",
			slog.String("path", dbPath))
		return r
	}

	reader, err := geoip2.Open(dbPath)
	if err != nil {
		logger.Warn("failed to open GeoLite2 database, country resolution disabled",
			slog.String("path", dbPath),
			slog.Any("error", err))
		return r
	}
	r.reader = reader
	return r
}

// Enabled reports whether a database is loaded.
func (r *Resolver) Enabled() bool {
	return r.reader != nil
}

// Close releases the database handle.
func (r *Resolver) Close() {
	if r.reader != nil {
		r.reader.Close()
		r.reader = nil
	}
}

// CountryName resolves one client address to a display name. The alpha-2
// code from the database goes through gountries for its common name; if that
// fails the uppercased code is shown as-is.
func (r *Resolver) CountryName(addr string) string {
	if r.reader == nil {
		return UnknownCountry
	}
	ip := net.ParseIP(addr)
	if ip == nil || ip.IsPrivate() || ip.IsLoopback() {
		return UnknownCountry
	}

	record, err := r.reader.Country(ip)
	if err != nil || record.Country.IsoCode == "" {
		return UnknownCountry
	}

	country, err := r.countries.FindCountryByAlpha(record.Country.IsoCode)
	if err != nil {
		return r.caser.String(record.Country.IsoCode)
	}
	return country.Name.Common
}

// CountryTotals counts events per resolved country, ready for the top-N
// distribution builder. With resolution disabled every event lands in
// UnknownCountry, which the caller may treat as an empty state.
func (r *Resolver) CountryTotals(events []model.TrackingEvent) map[string]int64 {
	totals := make(map[string]int64)
	for _, ev := range events {
		totals[r.CountryName(ev.ClientAddress)]++
	}
	return totals
}
