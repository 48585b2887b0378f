package export

import (
	"image"
	"image/color"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marjoballabani/lazyicons/pkg/glyph"
	"github.com/marjoballabani/lazyicons/pkg/ico"
	"github.com/marjoballabani/lazyicons/pkg/raster"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

const testSet = `
viewBox: 24
glyphs:
  - key: home
    names: [Home, House]
    path: "M10,20V14H14V20H19V12H22L12,3L2,12H5V20H10Z"
  - key: square
    names: [Square]
    path: "M3,3H21V21H3Z"
  - key: broken
    names: [Broken]
    path: "M0,0H24V24H0Z"
`

var (
	fg = color.NRGBA{R: 0x67, G: 0x3a, B: 0xb7, A: 0xff}
	bg = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
)

func loadSet(t *testing.T) *glyph.Set {
	t.Helper()
	set, err := glyph.Load(strings.NewReader(testSet))
	if err != nil {
		t.Fatal(err)
	}
	return set
}

// fakeRasterizer fills the square with bg and records every call.
type fakeRasterizer struct {
	fail  glyph.ID
	calls []call
}

type call struct {
	ID   glyph.ID
	Size int
	BG   color.NRGBA
}

func (f *fakeRasterizer) Render(g glyph.Glyph, size int, _, bg color.NRGBA) (*image.NRGBA, error) {
	f.calls = append(f.calls, call{ID: g.ID, Size: size, BG: bg})
	if g.ID == f.fail {
		return nil, errors.New("boom")
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	return img, nil
}

func newTestExporter(t *testing.T, r Rasterizer) (*Exporter, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	e := New(loadSet(t), r)
	e.Fs = fs
	return e, fs
}

func TestExportOneDirectory(t *testing.T) {
	e, fs := newTestExporter(t, raster.NewRenderer())

	if err := e.ExportOne(Request{ID: "Home", Path: "/out/home.ico", Foreground: fg, Transparent: true}); err != nil {
		t.Fatal(err)
	}

	data, err := afero.ReadFile(fs, "/out/home.ico")
	if err != nil {
		t.Fatal(err)
	}
	entries, err := ico.ReadDirectory(data)
	if err != nil {
		t.Fatal(err)
	}

	var sides []int
	for _, entry := range entries {
		if entry.Width != entry.Height {
			t.Errorf("entry %dx%d is not square", entry.Width, entry.Height)
		}
		sides = append(sides, entry.Width)
	}
	if diff := cmp.Diff(DefaultSizes, sides); diff != "" {
		t.Errorf("sides mismatch (-want +got):\n%s", diff)
	}
	// Side 256 is stored as 0.
	if got := data[6+16*6]; got != 0 {
		t.Errorf("last width byte = %d, want 0", got)
	}
}

func TestExportOneBackground(t *testing.T) {
	tests := []struct {
		name        string
		transparent bool
		want        color.NRGBA
	}{
		{"opaque", false, bg},
		{"transparent", true, raster.Transparent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRasterizer{}
			e, _ := newTestExporter(t, r)

			err := e.ExportOne(Request{ID: "Square", Path: "/sq.ico", Foreground: fg, Background: bg, Transparent: tt.transparent})
			if err != nil {
				t.Fatal(err)
			}

			if len(r.calls) != len(DefaultSizes) {
				t.Fatalf("got %d render calls, want %d", len(r.calls), len(DefaultSizes))
			}
			for i, c := range r.calls {
				if c.Size != DefaultSizes[i] {
					t.Errorf("call %d size = %d, want %d", i, c.Size, DefaultSizes[i])
				}
				if c.BG != tt.want {
					t.Errorf("call %d background = %v, want %v", i, c.BG, tt.want)
				}
			}
		})
	}
}

func TestExportOneCustomSizes(t *testing.T) {
	e, fs := newTestExporter(t, &fakeRasterizer{})
	e.Sizes = []int{16, 32}

	if err := e.ExportOne(Request{ID: "Square", Path: "/sq.ico", Foreground: fg}); err != nil {
		t.Fatal(err)
	}
	data, _ := afero.ReadFile(fs, "/sq.ico")
	entries, err := ico.ReadDirectory(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Width != 16 || entries[1].Width != 32 {
		t.Errorf("entries = %+v, want sides 16 and 32", entries)
	}
}

func TestExportOneOverwrites(t *testing.T) {
	e, fs := newTestExporter(t, &fakeRasterizer{})
	if err := afero.WriteFile(fs, "/sq.ico", []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := e.ExportOne(Request{ID: "Square", Path: "/sq.ico"}); err != nil {
		t.Fatal(err)
	}
	data, _ := afero.ReadFile(fs, "/sq.ico")
	if _, err := ico.ReadDirectory(data); err != nil {
		t.Errorf("file was not replaced: %v", err)
	}
}

func TestExportOneErrors(t *testing.T) {
	t.Run("unknown glyph", func(t *testing.T) {
		e, _ := newTestExporter(t, &fakeRasterizer{})
		err := e.ExportOne(Request{ID: "Nope", Path: "/nope.ico"})
		if !errors.Is(err, ErrUnknownGlyph) {
			t.Errorf("err = %v, want ErrUnknownGlyph", err)
		}
	})

	t.Run("rasterize", func(t *testing.T) {
		e, fs := newTestExporter(t, &fakeRasterizer{fail: "Broken"})
		err := e.ExportOne(Request{ID: "Broken", Path: "/broken.ico"})

		var rerr *RasterizeError
		if !errors.As(err, &rerr) {
			t.Fatalf("err = %v, want *RasterizeError", err)
		}
		if rerr.ID != "Broken" || rerr.Size != 16 {
			t.Errorf("RasterizeError = %+v", rerr)
		}
		if ok, _ := afero.Exists(fs, "/broken.ico"); ok {
			t.Error("partial file written")
		}
	})

	t.Run("encode", func(t *testing.T) {
		e, fs := newTestExporter(t, &fakeRasterizer{})
		e.Sizes = []int{16, 512}
		err := e.ExportOne(Request{ID: "Square", Path: "/sq.ico"})
		if !errors.Is(err, ico.ErrInvalidImageSet) {
			t.Errorf("err = %v, want ErrInvalidImageSet", err)
		}
		if ok, _ := afero.Exists(fs, "/sq.ico"); ok {
			t.Error("partial file written")
		}
	})

	t.Run("write", func(t *testing.T) {
		e, _ := newTestExporter(t, &fakeRasterizer{})
		e.Fs = afero.NewReadOnlyFs(afero.NewMemMapFs())
		err := e.ExportOne(Request{ID: "Square", Path: "/sq.ico"})

		var werr *WriteError
		if !errors.As(err, &werr) {
			t.Fatalf("err = %v, want *WriteError", err)
		}
		if werr.Path != "/sq.ico" {
			t.Errorf("WriteError.Path = %q", werr.Path)
		}
	})
}

func TestExportOneEvent(t *testing.T) {
	e, _ := newTestExporter(t, &fakeRasterizer{fail: "Broken"})
	var events []Event
	e.OnEvent = func(ev Event) { events = append(events, ev) }

	_ = e.ExportOne(Request{ID: "Square", Path: "/sq.ico"})
	_ = e.ExportOne(Request{ID: "Broken", Path: "/broken.ico"})

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Err != nil || events[0].Path != "/sq.ico" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Err == nil || events[1].ID != "Broken" {
		t.Errorf("second event = %+v", events[1])
	}
}

func listDir(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		t.Fatal(err)
	}
	names := []string{}
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names
}

func TestExportAll(t *testing.T) {
	e, fs := newTestExporter(t, &fakeRasterizer{})

	n, err := e.ExportAll("/icons", bg, fg, false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("written = %d, want 4", n)
	}

	want := []string{"Broken.ico", "Home.ico", "House.ico", "Square.ico"}
	if diff := cmp.Diff(want, listDir(t, fs, "/icons")); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestExportAllAborts(t *testing.T) {
	r := &fakeRasterizer{fail: "Square"}
	e, fs := newTestExporter(t, r)

	n, err := e.ExportAll("/icons", bg, fg, true)

	var rerr *RasterizeError
	if !errors.As(err, &rerr) || rerr.ID != "Square" {
		t.Fatalf("err = %v, want RasterizeError for Square", err)
	}
	// Home and House come first in the set.
	if n != 2 {
		t.Errorf("written = %d, want 2", n)
	}
	if diff := cmp.Diff([]string{"Home.ico", "House.ico"}, listDir(t, fs, "/icons")); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestExportAllContinueOnError(t *testing.T) {
	e, fs := newTestExporter(t, &fakeRasterizer{fail: "Square"})
	e.ContinueOnError = true

	n, err := e.ExportAll("/icons", bg, fg, true)
	if err == nil {
		t.Fatal("expected error")
	}
	if errs := multierr.Errors(err); len(errs) != 1 {
		t.Errorf("got %d errors, want 1", len(errs))
	}
	if n != 3 {
		t.Errorf("written = %d, want 3", n)
	}
	want := []string{"Broken.ico", "Home.ico", "House.ico"}
	if diff := cmp.Diff(want, listDir(t, fs, "/icons")); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestExportAllEmpty(t *testing.T) {
	set, err := glyph.Load(strings.NewReader("glyphs: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	e := New(set, &fakeRasterizer{})
	e.Fs = afero.NewMemMapFs()

	n, err := e.ExportAll(filepath.Join("/", "empty"), bg, fg, false)
	if err != nil || n != 0 {
		t.Errorf("ExportAll = %d, %v; want 0, nil", n, err)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	set := loadSet(t)
	g, _ := set.Glyph("Home")
	e := NewDefault(set)

	a, err := e.Encode(g, fg, bg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Encode(g, fg, bg)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("encodings differ for identical input")
	}
}
