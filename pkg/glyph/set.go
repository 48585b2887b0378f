package glyph

import (
	"bytes"
	_ "embed"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultViewBox is used when neither the set nor the glyph declares one.
const DefaultViewBox = 24

//go:embed glyphs.yaml
var defaultSet []byte

// ErrInvalidSet is returned when a glyph set document fails validation.
var ErrInvalidSet = errors.New("invalid glyph set")

// Set is a Source loaded from a YAML glyph set document.
type Set struct {
	entries []Entry
	glyphs  map[ID]Glyph
}

var _ Source = (*Set)(nil)

// document mirrors the on-disk YAML layout.
type document struct {
	ViewBox float64 `yaml:"viewBox"`
	Glyphs  []struct {
		Key     string   `yaml:"key"`
		Names   []string `yaml:"names"`
		Tags    []string `yaml:"tags"`
		Path    string   `yaml:"path"`
		ViewBox float64  `yaml:"viewBox"`
	} `yaml:"glyphs"`
}

// Default returns the glyph set embedded in the binary.
func Default() (*Set, error) {
	return Load(bytes.NewReader(defaultSet))
}

// LoadFile reads a glyph set from a YAML file.
func LoadFile(path string) (*Set, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs reads a glyph set from a YAML file on fs.
func LoadFs(fs afero.Fs, path string) (*Set, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open glyph set")
	}
	defer f.Close()

	set, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "glyph set %s", path)
	}
	return set, nil
}

// Load parses and validates a glyph set document. Every name becomes one
// glyph; the names of one document entry share its key.
func Load(r io.Reader) (*Set, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse glyph set")
	}

	setViewBox := doc.ViewBox
	if setViewBox <= 0 {
		setViewBox = DefaultViewBox
	}

	set := &Set{glyphs: make(map[ID]Glyph)}
	for i, item := range doc.Glyphs {
		if len(item.Names) == 0 {
			return nil, errors.Wrapf(ErrInvalidSet, "glyph #%d has no names", i)
		}
		if strings.TrimSpace(item.Path) == "" {
			return nil, errors.Wrapf(ErrInvalidSet, "glyph %q has an empty path", item.Names[0])
		}

		key := item.Key
		if key == "" {
			key = item.Names[0]
		}
		viewBox := item.ViewBox
		if viewBox <= 0 {
			viewBox = setViewBox
		}

		for _, name := range item.Names {
			if err := validateName(name); err != nil {
				return nil, err
			}
			id := ID(name)
			if _, dup := set.glyphs[id]; dup {
				return nil, errors.Wrapf(ErrInvalidSet, "duplicate glyph name %q", name)
			}

			aliases := make([]string, 0, 1+len(item.Tags))
			aliases = append(aliases, name)
			aliases = append(aliases, item.Tags...)

			entry := Entry{ID: id, Aliases: aliases, Key: key}
			set.entries = append(set.entries, entry)
			set.glyphs[id] = Glyph{Entry: entry, Path: item.Path, ViewBox: viewBox}
		}
	}
	return set, nil
}

// validateName rejects names that cannot be used as a file name.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrInvalidSet, "empty glyph name")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.Wrapf(ErrInvalidSet, "glyph name %q is not a valid file name", name)
	}
	return nil
}

// Entries returns every glyph in document order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Glyph resolves an ID to its outline.
func (s *Set) Glyph(id ID) (Glyph, bool) {
	g, ok := s.glyphs[id]
	return g, ok
}

// Len returns the number of glyphs, counting every name separately.
func (s *Set) Len() int {
	return len(s.entries)
}
