package gui

import (
	"fmt"
	"path/filepath"

	"github.com/marjoballabani/lazyicons/pkg/config"
	"github.com/marjoballabani/lazyicons/pkg/export"
	"go.uber.org/multierr"
)

// exportSelectedAction writes the selected glyph to the output directory
func (g *Gui) exportSelectedAction() error {
	id, ok := g.currentGlyphID()
	if !ok {
		g.logCommand("e", "No glyph selected", "error")
		return g.refresh()
	}
	fg, bg, err := g.colors()
	if err != nil {
		g.logCommand("e", err.Error(), "error")
		return g.refresh()
	}

	dir := config.ExpandPath(g.config.Icons.OutputDir)
	ex := g.exporterForRun()
	if err := ex.EnsureDir(dir); err != nil {
		g.logCommand("e", err.Error(), "error")
		return g.refresh()
	}

	req := export.Request{
		ID:          id,
		Path:        filepath.Join(dir, string(id)+export.Extension),
		Foreground:  fg,
		Background:  bg,
		Transparent: g.transparent,
	}
	g.startExport(1)
	g.logCommand("e", fmt.Sprintf("Exporting %s...", id), "running")

	g.background(func() {
		err := ex.ExportOne(req)
		g.update(func() {
			g.exporting.Store(false)
			if err != nil {
				g.logCommand("e", fmt.Sprintf("Export failed: %v", err), "error")
				return
			}
			g.logCommand("e", fmt.Sprintf("Saved %s", req.Path), "success")
		})
	})
	return g.refresh()
}

// exportAllAction writes every glyph, alias names included
func (g *Gui) exportAllAction() error {
	fg, bg, err := g.colors()
	if err != nil {
		g.logCommand("E", err.Error(), "error")
		return g.refresh()
	}

	dir := config.ExpandPath(g.config.Icons.OutputDir)
	total := len(g.source.Entries())
	ex := g.exporterForRun()
	transparent := g.transparent

	g.startExport(total)
	g.logCommand("E", fmt.Sprintf("Exporting %d glyphs to %s...", total, dir), "running")

	g.background(func() {
		written, err := ex.ExportAll(dir, bg, fg, transparent)
		g.update(func() {
			g.exporting.Store(false)
			switch {
			case err != nil && ex.ContinueOnError:
				failed := len(multierr.Errors(err))
				g.logCommand("E", fmt.Sprintf("Exported %d/%d, %d failed: %v", written, total, failed, err), "error")
			case err != nil:
				g.logCommand("E", fmt.Sprintf("Stopped after %d/%d: %v", written, total, err), "error")
			default:
				g.logCommand("E", fmt.Sprintf("Exported %d glyphs to %s", written, dir), "success")
			}
		})
	})
	return g.refresh()
}

func (g *Gui) startExport(total int) {
	g.exportTotal = total
	g.exportProgress.Store(0)
	g.exporting.Store(true)
}

// exporterForRun copies the shared exporter with the current config's sizes
// and error policy. Progress is counted per attempted file.
func (g *Gui) exporterForRun() *export.Exporter {
	ex := *g.exporter
	if sizes := g.config.Icons.Sizes; len(sizes) > 0 {
		ex.Sizes = append([]int(nil), sizes...)
	}
	ex.ContinueOnError = g.config.Icons.ContinueOnError
	ex.OnEvent = func(export.Event) {
		g.exportProgress.Inc()
	}
	return &ex
}
