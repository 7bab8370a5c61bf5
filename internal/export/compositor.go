package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Layouts accepted by Compose.
const (
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"
	LayoutGrid       = "grid"
)

// titleBandHeight is the vertical space reserved above a titled surface.
const titleBandHeight = 24

// Compose lays the valid surfaces out on one canvas and returns the combined
// image. Surfaces failing validation (nil or zero-extent image) are dropped
// before the layout extent is computed; if none remain the composition fails
// with NoSurfacesError rather than emitting a blank image. An unknown layout
// fails with UnsupportedError.
//
// Extents: horizontal is sum of widths by max height; vertical is max width
// by sum of heights; grid is ceil(sqrt(n)) columns by ceil(n/cols) rows of
// uniform max-extent cells. A surface with a title grows by the title band.
func Compose(surfaces []Surface, layout string) (image.Image, error) {
	valid := make([]Surface, 0, len(surfaces))
	for _, s := range surfaces {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return nil, &NoSurfacesError{}
	}

	switch layout {
	case LayoutHorizontal:
		return composeHorizontal(valid), nil
	case LayoutVertical:
		return composeVertical(valid), nil
	case LayoutGrid:
		return composeGrid(valid), nil
	default:
		return nil, &UnsupportedError{Kind: "layout", Value: layout}
	}
}

// cellHeight is the surface height plus its title band, if any.
func cellHeight(s Surface) int {
	h := s.Image.Bounds().Dy()
	if s.Title != "" {
		h += titleBandHeight
	}
	return h
}

func composeHorizontal(surfaces []Surface) image.Image {
	width, height := 0, 0
	for _, s := range surfaces {
		width += s.Image.Bounds().Dx()
		if h := cellHeight(s); h > height {
			height = h
		}
	}

	canvas := newCanvas(width, height)
	x := 0
	for _, s := range surfaces {
		drawSurface(canvas, s, x, 0)
		x += s.Image.Bounds().Dx()
	}
	return canvas
}

func composeVertical(surfaces []Surface) image.Image {
	width, height := 0, 0
	for _, s := range surfaces {
		if w := s.Image.Bounds().Dx(); w > width {
			width = w
		}
		height += cellHeight(s)
	}

	canvas := newCanvas(width, height)
	y := 0
	for _, s := range surfaces {
		drawSurface(canvas, s, 0, y)
		y += cellHeight(s)
	}
	return canvas
}

func composeGrid(surfaces []Surface) image.Image {
	n := len(surfaces)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	cellW, cellH := 0, 0
	for _, s := range surfaces {
		if w := s.Image.Bounds().Dx(); w > cellW {
			cellW = w
		}
		if h := cellHeight(s); h > cellH {
			cellH = h
		}
	}

	canvas := newCanvas(cols*cellW, rows*cellH)
	for i, s := range surfaces {
		drawSurface(canvas, s, (i%cols)*cellW, (i/cols)*cellH)
	}
	return canvas
}

func newCanvas(width, height int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return canvas
}

// drawSurface places one surface at (x, y): the title text in its band, then
// the chart image below it.
func drawSurface(canvas *image.RGBA, s Surface, x, y int) {
	if s.Title != "" {
		drawer := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(color.Black),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(x+8, y+titleBandHeight-8),
		}
		drawer.DrawString(s.Title)
		y += titleBandHeight
	}

	bounds := s.Image.Bounds()
	target := image.Rect(x, y, x+bounds.Dx(), y+bounds.Dy())
	draw.Draw(canvas, target, s.Image, bounds.Min, draw.Over)
}

// EncodePNG serializes a composed canvas to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
