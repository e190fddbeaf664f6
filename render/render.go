package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/pagetree/model"
)

// ErrInvalidOptions is returned for a scale below 1 or a page without a
// usable size
var ErrInvalidOptions = errors.New("render: invalid options")

// Structure colours, combined with the background by XOR so they stay
// visible on any background
var (
	boxColor    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	groupColor  = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	marginColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Options controls how a page is painted
type Options struct {
	// Scale is the number of pixels per point
	// Default: 1
	Scale int

	// Ink is the colour of rulings and text
	// Default: black
	Ink color.Color

	// Background fills the page
	// Default: white
	Background color.Color

	// ShowStructure outlines boxes, groups and margins
	ShowStructure bool
}

// DefaultOptions returns sensible default options
func DefaultOptions() Options {
	return Options{
		Scale:      1,
		Ink:        color.Black,
		Background: color.White,
	}
}

// Page paints the component tree of a page. Children are painted before
// their parent. Rulings are drawn as lines or rectangle outlines, and text
// is written with its baseline at the bottom-left corner of its box.
func Page(page *model.Page, opts Options) (*image.RGBA, error) {
	if opts.Scale < 1 {
		return nil, fmt.Errorf("%w: scale %d", ErrInvalidOptions, opts.Scale)
	}
	if !(page.Width > 0 && page.Height > 0) || math.IsInf(page.Width, 0) || math.IsInf(page.Height, 0) {
		return nil, fmt.Errorf("%w: page size %vx%v", ErrInvalidOptions, page.Width, page.Height)
	}
	if opts.Ink == nil {
		opts.Ink = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}

	w, h := int(math.Round(page.Width)), int(math.Round(page.Height))
	c := &canvas{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		ink:        opts.Ink,
		background: opts.Background,
		structure:  opts.ShowStructure,
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	for _, comp := range page.Components {
		c.paint(comp)
	}

	if opts.Scale == 1 {
		return c.img, nil
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w*opts.Scale, h*opts.Scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	return scaled, nil
}

// WritePNG paints a page and encodes it as PNG
func WritePNG(w io.Writer, page *model.Page, opts Options) error {
	img, err := Page(page, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

type canvas struct {
	img        *image.RGBA
	ink        color.Color
	background color.Color
	structure  bool
}

func (c *canvas) paint(comp *model.Component) {
	for _, child := range comp.Children() {
		c.paint(child)
	}

	b := comp.BBox()
	switch comp.Type() {
	case model.TypeBox:
		if c.structure {
			c.rect(int(b.FromX), int(b.FromY), int(b.Width()), int(b.Height()), xor(boxColor, c.background))
		}
	case model.TypeGroup:
		if c.structure {
			c.rect(round(b.FromX), round(b.FromY), round(b.Width()), round(b.Height()), xor(groupColor, c.background))
		}
	case model.TypeMargin:
		if c.structure {
			c.rect(round(b.FromX), round(b.FromY), round(b.Width()), round(b.Height()), xor(marginColor, c.background))
		}
	case model.TypeLine:
		c.line(round(b.FromX), round(b.FromY), round(b.ToX), round(b.ToY), c.ink)
	case model.TypeRect:
		c.rect(round(b.FromX), round(b.FromY), round(b.Width()), round(b.Height()), c.ink)
	case model.TypeText:
		d := font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(c.ink),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(round(b.FromX), round(b.ToY)),
		}
		d.DrawString(comp.Text())
	}
}

// rect outlines the rectangle from (x, y) to (x+w, y+h) inclusive
func (c *canvas) rect(x, y, w, h int, col color.Color) {
	c.line(x, y, x+w, y, col)
	c.line(x, y+h, x+w, y+h, col)
	c.line(x, y, x, y+h, col)
	c.line(x+w, y, x+w, y+h, col)
}

// line draws a one-pixel line with Bresenham's algorithm
func (c *canvas) line(x0, y0, x1, y1 int, col color.Color) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.img.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// xor combines two colours channel by channel; the result is opaque
func xor(a, b color.Color) color.Color {
	ca := color.RGBAModel.Convert(a).(color.RGBA)
	cb := color.RGBAModel.Convert(b).(color.RGBA)
	return color.RGBA{R: ca.R ^ cb.R, G: ca.G ^ cb.G, B: ca.B ^ cb.B, A: 255}
}

func round(v float64) int {
	return int(math.Round(v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
