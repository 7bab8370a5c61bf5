package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"linklens/internal/dashboard"
)

// Default chart surface extent in pixels.
const (
	chartWidth  = 640
	chartHeight = 400
)

// Surface is one rendered chart ready for composition.
type Surface struct {
	Title string
	Image image.Image
}

// Valid reports whether the surface can participate in a composition: a
// present drawing surface with non-zero extent.
func (s Surface) Valid() bool {
	if s.Image == nil {
		return false
	}
	b := s.Image.Bounds()
	return b.Dx() > 0 && b.Dy() > 0
}

// paletteColor maps a pipeline palette position to a drawing color.
func paletteColor(i int) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(dashboard.ColorAt(i), "#"))
}

// RenderTimeSeries draws the daily event counts as a line chart. At least
// one bucket is required; a single bucket is padded to a flat two-point line
// so the renderer has a drawable series.
func RenderTimeSeries(buckets []dashboard.TimeBucket, title string) (Surface, error) {
	if len(buckets) == 0 {
		return Surface{}, fmt.Errorf("time series: no buckets to render")
	}

	xs := make([]time.Time, 0, len(buckets)+1)
	ys := make([]float64, 0, len(buckets)+1)
	for _, b := range buckets {
		day, err := time.Parse("2006-01-02", b.DateKey)
		if err != nil {
			return Surface{}, fmt.Errorf("time series: bad date key %q: %w", b.DateKey, err)
		}
		xs = append(xs, day)
		ys = append(ys, float64(b.Count))
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	c := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Events per day",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: paletteColor(0),
					StrokeWidth: 2,
				},
			},
		},
	}
	return renderToSurface(&c, title)
}

// RenderDistribution draws category slices as a pie chart, colored in the
// same palette order as the JSON view.
func RenderDistribution(slices []dashboard.CategorySlice, title string) (Surface, error) {
	if len(slices) == 0 {
		return Surface{}, fmt.Errorf("distribution: no slices to render")
	}

	values := make([]chart.Value, 0, len(slices))
	for i, s := range slices {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", s.Label, s.SharePercent),
			Value: float64(s.RawCount),
			Style: chart.Style{FillColor: paletteColor(i)},
		})
	}

	c := chart.PieChart{
		Width:  chartHeight, // square canvas keeps the pie round
		Height: chartHeight,
		Values: values,
	}
	return renderToSurface(&c, title)
}

// RenderSourceBars draws the per-source hit counts as a bar chart.
func RenderSourceBars(series []dashboard.BarPoint, title string) (Surface, error) {
	if len(series) == 0 {
		return Surface{}, fmt.Errorf("source bars: no points to render")
	}

	bars := make([]chart.Value, 0, len(series))
	for i, p := range series {
		bars = append(bars, chart.Value{
			Label: p.Label,
			Value: float64(p.Count),
			Style: chart.Style{FillColor: paletteColor(i)},
		})
	}

	c := chart.BarChart{
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Bars:     bars,
	}
	return renderToSurface(&c, title)
}

// renderable is the slice of the go-chart API the surface renderers use.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderToSurface(c renderable, title string) (Surface, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return Surface{}, fmt.Errorf("rendering chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return Surface{}, fmt.Errorf("decoding rendered chart: %w", err)
	}
	return Surface{Title: title, Image: img}, nil
}
