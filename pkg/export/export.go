// Package export renders glyphs at several sizes and writes them as icon files.
package export

import (
	"image"
	"image/color"
	"path/filepath"

	"github.com/marjoballabani/lazyicons/pkg/glyph"
	"github.com/marjoballabani/lazyicons/pkg/ico"
	"github.com/marjoballabani/lazyicons/pkg/raster"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// Extension is appended to glyph IDs by ExportAll.
const Extension = ".ico"

// DefaultSizes are the pixel sides rendered into every icon file.
var DefaultSizes = []int{16, 24, 32, 48, 64, 128, 256}

// Rasterizer renders a glyph to a size×size image.
type Rasterizer interface {
	Render(g glyph.Glyph, size int, fg, bg color.NRGBA) (*image.NRGBA, error)
}

// Request describes one icon file to produce.
type Request struct {
	ID          glyph.ID
	Path        string
	Foreground  color.NRGBA
	Background  color.NRGBA
	Transparent bool // overrides Background
}

// Event is emitted after each attempted file.
type Event struct {
	ID   glyph.ID
	Path string
	Err  error
}

// Exporter coordinates rasterizing and encoding.
type Exporter struct {
	Source     glyph.Source
	Rasterizer Rasterizer
	// Sizes are rendered in order. Empty means DefaultSizes.
	Sizes []int
	// Fs receives the files. Nil means the OS filesystem.
	Fs afero.Fs
	// ContinueOnError makes ExportAll keep going after a failed glyph and
	// return every failure combined.
	ContinueOnError bool
	// OnEvent, when set, is called after every file, successful or not.
	OnEvent func(Event)
}

// New returns an Exporter writing to the OS filesystem at DefaultSizes.
func New(src glyph.Source, r Rasterizer) *Exporter {
	return &Exporter{
		Source:     src,
		Rasterizer: r,
		Sizes:      append([]int(nil), DefaultSizes...),
		Fs:         afero.NewOsFs(),
	}
}

// NewDefault returns an Exporter using the built-in renderer.
func NewDefault(src glyph.Source) *Exporter {
	return New(src, raster.NewRenderer())
}

// ExportOne renders req.ID at every size and writes the icon to req.Path,
// replacing any existing file. Nothing is written when rendering or encoding fails.
func (e *Exporter) ExportOne(req Request) error {
	err := e.exportOne(req)
	e.notify(Event{ID: req.ID, Path: req.Path, Err: err})
	return err
}

func (e *Exporter) exportOne(req Request) error {
	g, ok := e.Source.Glyph(req.ID)
	if !ok {
		return errors.Wrapf(ErrUnknownGlyph, "%q", req.ID)
	}

	bg := req.Background
	if req.Transparent {
		bg = raster.Transparent
	}

	data, err := e.Encode(g, req.Foreground, bg)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(e.fs(), req.Path, data, 0644); err != nil {
		return &WriteError{Path: req.Path, Err: err}
	}
	return nil
}

// Encode renders g at every size and returns the icon file bytes.
func (e *Exporter) Encode(g glyph.Glyph, fg, bg color.NRGBA) ([]byte, error) {
	sizes := e.sizes()
	images := make([]*ico.Image, 0, len(sizes))
	for _, size := range sizes {
		img, err := e.Rasterizer.Render(g, size, fg, bg)
		if err != nil {
			return nil, &RasterizeError{ID: g.ID, Size: size, Err: err}
		}
		images = append(images, ico.FromImage(img))
	}

	data, err := ico.Encode(images)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s", g.ID)
	}
	return data, nil
}

// ExportAll writes dir/<ID>.ico for every entry of the source, alias variants
// included. It creates dir if needed and stops at the first failure unless
// ContinueOnError is set. It returns the number of files written.
func (e *Exporter) ExportAll(dir string, bg, fg color.NRGBA, transparent bool) (int, error) {
	if err := e.EnsureDir(dir); err != nil {
		return 0, err
	}

	var errs error
	written := 0
	for _, entry := range e.Source.Entries() {
		err := e.ExportOne(Request{
			ID:          entry.ID,
			Path:        filepath.Join(dir, string(entry.ID)+Extension),
			Foreground:  fg,
			Background:  bg,
			Transparent: transparent,
		})
		if err != nil {
			if !e.ContinueOnError {
				return written, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		written++
	}
	return written, errs
}

// EnsureDir creates dir and its parents on the exporter's filesystem.
func (e *Exporter) EnsureDir(dir string) error {
	if err := e.fs().MkdirAll(dir, 0755); err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	return nil
}

func (e *Exporter) sizes() []int {
	if len(e.Sizes) == 0 {
		return DefaultSizes
	}
	return e.Sizes
}

func (e *Exporter) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

func (e *Exporter) notify(ev Event) {
	if e.OnEvent != nil {
		e.OnEvent(ev)
	}
}
