// Package export turns pipeline outputs into downloadable artifacts: an
// always-quoted delimited text format and composed raster images. Everything
// here is deterministic formatting; triggering the actual download belongs
// to the caller.
package export

import "fmt"

// NoSurfacesError reports an image export where no valid chart surface
// remained after validation. A user-initiated export that would produce a
// blank image is a failure, not an empty state.
type NoSurfacesError struct{}

func (e *NoSurfacesError) Error() string {
	return "no exportable surfaces"
}

// UnsupportedError reports an unknown export type or layout.
type UnsupportedError struct {
	Kind  string // "type" or "layout"
	Value string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported export %s: %q", e.Kind, e.Value)
}
