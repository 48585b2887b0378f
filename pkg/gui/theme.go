package gui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jesseduffield/gocui"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/marjoballabani/lazyicons/pkg/config"
)

// Theme holds the resolved gocui attributes of the configured colors.
type Theme struct {
	ActiveBorderColor   gocui.Attribute
	InactiveBorderColor gocui.Attribute
	OptionsTextColor    gocui.Attribute
	SelectedLineBgColor gocui.Attribute
	FilterBorderColor   gocui.Attribute
}

var namedColors = map[string]gocui.Attribute{
	"default": gocui.ColorDefault,
	"black":   gocui.ColorBlack,
	"red":     gocui.ColorRed,
	"green":   gocui.ColorGreen,
	"yellow":  gocui.ColorYellow,
	"blue":    gocui.ColorBlue,
	"magenta": gocui.ColorMagenta,
	"cyan":    gocui.ColorCyan,
	"white":   gocui.ColorWhite,
}

var textAttributes = map[string]gocui.Attribute{
	"bold":      gocui.AttrBold,
	"underline": gocui.AttrUnderline,
	"reverse":   gocui.AttrReverse,
}

func NewTheme(cfg config.ThemeConfig) *Theme {
	return &Theme{
		ActiveBorderColor:   parseColor(cfg.ActiveBorderColor),
		InactiveBorderColor: parseColor(cfg.InactiveBorderColor),
		OptionsTextColor:    parseColor(cfg.OptionsTextColor),
		SelectedLineBgColor: parseColor(cfg.SelectedLineBgColor),
		FilterBorderColor:   parseColor(cfg.FilterBorderColor),
	}
}

// parseColor combines one color with any number of text attributes,
// e.g. ["cyan", "bold"].
func parseColor(spec []string) gocui.Attribute {
	if len(spec) == 0 {
		return gocui.ColorDefault
	}

	var attr gocui.Attribute
	for _, part := range spec {
		part = strings.ToLower(strings.TrimSpace(part))
		if a, ok := textAttributes[part]; ok {
			attr |= a
			continue
		}
		attr |= parseColorValue(part)
	}
	return attr
}

// parseColorValue accepts a color name, "#rgb", "#rrggbb" or a 256-color
// palette index. Anything else is the terminal default.
func parseColorValue(value string) gocui.Attribute {
	if strings.HasPrefix(value, "#") {
		c, err := colorful.Hex(value)
		if err != nil {
			return gocui.ColorDefault
		}
		r, g, b := c.RGB255()
		return gocui.NewRGBColor(int32(r), int32(g), int32(b))
	}
	if attr, ok := namedColors[value]; ok {
		return attr
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 0 && n < 256 {
		return gocui.Attribute(n) | gocui.AttrIsValidColor
	}
	return gocui.ColorDefault
}

// GetAnsiColorCode returns the ANSI foreground escape of the active border color
func (t *Theme) GetAnsiColorCode() string {
	return attributeToAnsi(t.ActiveBorderColor)
}

// attributeToAnsi maps true colors and the eight basic colors; everything
// else falls back to cyan.
func attributeToAnsi(attr gocui.Attribute) string {
	if attr&gocui.AttrIsValidColor != 0 {
		rgb := uint32(attr & 0xFFFFFF)
		return fmt.Sprintf("\033[38;2;%d;%d;%dm", rgb>>16&0xFF, rgb>>8&0xFF, rgb&0xFF)
	}
	// gocui numbers black..white 1..8
	if n := int(attr & 0xFF); n >= 1 && n <= 8 {
		return fmt.Sprintf("\033[%dm", 29+n)
	}
	return "\033[36m"
}
