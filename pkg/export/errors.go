package export

import (
	"fmt"

	"github.com/marjoballabani/lazyicons/pkg/glyph"
	"github.com/pkg/errors"
)

// ErrUnknownGlyph is returned when a request names an ID the source does not have.
var ErrUnknownGlyph = errors.New("unknown glyph")

// RasterizeError reports a rasterizer failure for one glyph at one size.
type RasterizeError struct {
	ID   glyph.ID
	Size int
	Err  error
}

func (e *RasterizeError) Error() string {
	return fmt.Sprintf("failed to rasterize %s at %dpx: %v", e.ID, e.Size, e.Err)
}

func (e *RasterizeError) Unwrap() error { return e.Err }

// WriteError reports a filesystem failure at Path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
