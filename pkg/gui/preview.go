package gui

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/marjoballabani/lazyicons/pkg/catalog"
	"github.com/marjoballabani/lazyicons/pkg/config"
	"github.com/marjoballabani/lazyicons/pkg/export"
	"github.com/marjoballabani/lazyicons/pkg/glyph"
	"github.com/marjoballabani/lazyicons/pkg/gui/icons"
	"github.com/marjoballabani/lazyicons/pkg/raster"
)

const (
	minPreviewSide = 8
	maxPreviewSide = 48
	// Pixels with less coverage are drawn as terminal background.
	alphaThreshold = 0x80
)

// previewSide picks the rendered side for a view of width×height cells.
// One cell shows two pixel rows, so height counts twice. The result is even.
func previewSide(width, height int) int {
	side := width - 4
	if rows := height * 2; rows < side {
		side = rows
	}
	if side > maxPreviewSide {
		side = maxPreviewSide
	}
	if side < minPreviewSide {
		side = minPreviewSide
	}
	return side &^ 1
}

// renderHalfBlocks draws img with "▀" cells: the foreground color is the
// upper pixel and the background color the lower one.
func renderHalfBlocks(img *image.NRGBA) string {
	b := img.Bounds()
	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.NRGBAAt(x, y)
			var bottom color.NRGBA
			if y+1 < b.Max.Y {
				bottom = img.NRGBAAt(x, y+1)
			}
			out.WriteString(halfBlock(top, bottom))
		}
		out.WriteString("\033[0m\n")
	}
	return out.String()
}

func halfBlock(top, bottom color.NRGBA) string {
	topOn, bottomOn := top.A >= alphaThreshold, bottom.A >= alphaThreshold
	switch {
	case topOn && bottomOn:
		return fmt.Sprintf("\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
	case topOn:
		return fmt.Sprintf("\033[49m\033[38;2;%d;%d;%dm▀", top.R, top.G, top.B)
	case bottomOn:
		return fmt.Sprintf("\033[49m\033[38;2;%d;%d;%dm▄", bottom.R, bottom.G, bottom.B)
	default:
		return "\033[0m "
	}
}

// glyphValue is the jq input of the Preview panel: the group plus the
// selected glyph's outline.
func glyphValue(group catalog.Group, g glyph.Glyph) map[string]any {
	value := group.Value()
	value["id"] = string(g.ID)
	value["path"] = g.Path
	value["viewBox"] = g.ViewBox
	return value
}

// previewKey identifies rendered preview content.
type previewKey struct {
	id          glyph.ID
	fg, bg      color.NRGBA
	transparent bool
	side        int
}

// buildPreview renders the details and the image of g.
func (g *Gui) buildPreview(group catalog.Group, gl glyph.Glyph, key previewKey) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("\033[36m─── %s ───\033[0m\n\n", gl.ID))
	content.WriteString(fmt.Sprintf("  \033[33mKey:\033[0m        %s\n", group.Key))
	content.WriteString(fmt.Sprintf("  \033[33mNames:\033[0m      %s\n", joinIDs(group.IDs)))
	content.WriteString(fmt.Sprintf("  \033[33mAliases:\033[0m    %s\n", strings.Join(gl.Aliases, ", ")))
	content.WriteString(fmt.Sprintf("  \033[33mViewBox:\033[0m    %g\n", gl.ViewBox))

	bgText := raster.FormatColor(key.bg)
	if key.transparent {
		bgText = "transparent"
	}
	content.WriteString(fmt.Sprintf("  \033[33mColors:\033[0m     %s on %s\n", raster.FormatColor(key.fg), bgText))
	output := filepath.Join(config.ExpandPath(g.config.Icons.OutputDir), string(gl.ID)+export.Extension)
	content.WriteString(fmt.Sprintf("  \033[33mOutput:\033[0m     %s\n\n", withIcon(icons.FOLDER, output)))

	bg := key.bg
	if key.transparent {
		bg = raster.Transparent
	}
	img, err := g.renderer.Render(gl, key.side, key.fg, bg)
	if err != nil {
		content.WriteString(fmt.Sprintf("\033[31mRender failed: %v\033[0m\n", err))
	} else {
		for _, line := range strings.Split(strings.TrimSuffix(renderHalfBlocks(img), "\n"), "\n") {
			content.WriteString("  ")
			content.WriteString(line)
			content.WriteString("\n")
		}
	}

	content.WriteString("\n\033[36m─── SVG ───\033[0m\n\n")
	content.WriteString(colorizeSVG(raster.SVG(gl, key.fg)))
	return content.String()
}

// renderFilteredPreview applies the preview filter. A filter starting with
// "." is a jq expression over glyphValue; anything else keeps the matching
// lines of the SVG markup.
func (g *Gui) renderFilteredPreview(group catalog.Group, gl glyph.Glyph, fg color.NRGBA, filter string) string {
	var content strings.Builder

	if strings.HasPrefix(filter, ".") {
		content.WriteString(fmt.Sprintf("\033[36m─── %s (jq: %s) ───\033[0m\n\n", gl.ID, filter))
		results, err := catalog.Query(filter, glyphValue(group, gl))
		for _, result := range results {
			data, merr := json.MarshalIndent(result, "", "  ")
			if merr != nil {
				content.WriteString(fmt.Sprintf("%v\n", result))
				continue
			}
			content.WriteString(colorizeJSON(string(data)))
			content.WriteString("\n")
		}
		if err != nil {
			content.WriteString(fmt.Sprintf("\033[31m%v\033[0m\n", err))
		} else if len(results) == 0 {
			content.WriteString("\033[90mnull\033[0m\n")
		}
		return content.String()
	}

	content.WriteString(fmt.Sprintf("\033[36m─── %s (filtered) ───\033[0m\n\n", gl.ID))
	matchCount := 0
	for _, line := range strings.Split(raster.SVG(gl, fg), "\n") {
		if catalog.MatchesFilter(line, filter) {
			content.WriteString(colorizeSVG(line))
			content.WriteString("\n")
			matchCount++
		}
	}
	if matchCount == 0 {
		content.WriteString("\033[90mNo matching lines\033[0m\n")
	}
	return content.String()
}

func joinIDs(ids []glyph.ID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
