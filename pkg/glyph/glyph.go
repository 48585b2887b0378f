// Package glyph provides the catalog of named vector glyphs that lazyicons
// browses and exports. A glyph is identified by its name; several names may
// share a canonical key when an icon was renamed and its old names were kept.
package glyph

// ID is the stable identifier of one glyph. It is also the glyph's file name
// on bulk export.
type ID string

// Entry is one item of the enumeration: an identifier, the strings it can be
// found by, and the canonical key it is grouped under.
type Entry struct {
	ID      ID
	Aliases []string
	Key     string
}

// Glyph is an Entry together with its vector outline.
type Glyph struct {
	Entry
	Path    string  // SVG path data
	ViewBox float64 // side of the square viewBox the path is drawn in
}

// Source enumerates glyphs and resolves an ID to its outline.
// Entries must return the same order on every call.
type Source interface {
	Entries() []Entry
	Glyph(id ID) (Glyph, bool)
}
