// Package raster renders glyph outlines to square images.
package raster

import (
	"fmt"
	"html"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/marjoballabani/lazyicons/pkg/glyph"
	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Renderer draws glyphs with an anti-aliased scanline rasterizer.
// The zero value is ready to use and safe for concurrent use.
type Renderer struct{}

// NewRenderer returns a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws g scaled to size×size pixels, painted with fg over bg.
// A fully transparent bg leaves the area outside the glyph transparent.
func (r *Renderer) Render(g glyph.Glyph, size int, fg, bg color.NRGBA) (*image.NRGBA, error) {
	if size < 1 {
		return nil, errors.Errorf("invalid size %d", size)
	}

	mask, err := coverage(g, size)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, size, size)
	layer := image.NewNRGBA(rect)
	draw.DrawMask(layer, rect, image.NewUniform(fg), image.Point{}, mask, image.Point{}, draw.Src)

	if bg.A == 0 {
		return layer, nil
	}
	return imaging.Overlay(imaging.New(size, size, bg), layer, image.Point{}, 1.0), nil
}

// coverage rasterizes the outline into an alpha mask.
func coverage(g glyph.Glyph, size int) (*image.Alpha, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(SVG(g, color.NRGBA{A: 0xff})), oksvg.StrictErrorMode)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse outline of %s", g.ID)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, mask, mask.Bounds())
	dasher := rasterx.NewDasher(size, size, scanner)
	icon.Draw(dasher, 1.0)
	return mask, nil
}

// SVG returns a standalone SVG document for g filled with fill.
func SVG(g glyph.Glyph, fill color.NRGBA) string {
	viewBox := g.ViewBox
	if viewBox <= 0 {
		viewBox = glyph.DefaultViewBox
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`,
		viewBox, viewBox, viewBox, viewBox)
	b.WriteString("\n")
	fmt.Fprintf(&b, `  <path d="%s" fill="%s"`, html.EscapeString(g.Path), FormatColor(color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: 0xff}))
	if fill.A != 0xff {
		fmt.Fprintf(&b, ` fill-opacity="%.3f"`, float64(fill.A)/0xff)
	}
	b.WriteString("/>\n</svg>\n")
	return b.String()
}
