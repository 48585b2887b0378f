package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Transparent is the fully transparent color.
var Transparent = color.NRGBA{}

// ErrInvalidColor is returned by ParseColor for unrecognized input.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa", an SVG color name such as
// "white", or "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))

	switch {
	case spec == "":
		return Transparent, errors.Wrap(ErrInvalidColor, "empty color")
	case spec == "transparent":
		return Transparent, nil
	case strings.HasPrefix(spec, "#"):
		alpha := uint8(0xff)
		hex := spec
		if len(spec) == 9 {
			a, err := strconv.ParseUint(spec[7:], 16, 8)
			if err != nil {
				return Transparent, errors.Wrapf(ErrInvalidColor, "%q", s)
			}
			alpha = uint8(a)
			hex = spec[:7]
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return Transparent, errors.Wrapf(ErrInvalidColor, "%q", s)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
	}

	if c, ok := colornames.Map[spec]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return Transparent, errors.Wrapf(ErrInvalidColor, "%q", s)
}

// FormatColor renders c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func FormatColor(c color.NRGBA) string {
	hex := colorful.Color{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
	}.Hex()
	if c.A == 0xff {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, c.A)
}
