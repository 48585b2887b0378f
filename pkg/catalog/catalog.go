// Package catalog groups the glyphs of a source by canonical key and answers
// substring queries over their aliases.
package catalog

import (
	"sort"
	"strings"

	"github.com/marjoballabani/lazyicons/pkg/glyph"
	"golang.org/x/text/cases"
)

// Group holds every glyph that shares one canonical key.
type Group struct {
	Key     string
	IDs     []glyph.ID
	Aliases []string

	folded []string // case-folded Aliases, same order
}

// Index is the immutable, ordered list of groups built from a source.
// It is safe for concurrent use once built.
type Index struct {
	groups []Group
	size   int
}

// Build enumerates src once and groups its entries by key. Groups are sorted
// by key; members keep enumeration order.
func Build(src glyph.Source) *Index {
	entries := src.Entries()

	byKey := make(map[string]int)
	var groups []Group
	for _, e := range entries {
		idx, ok := byKey[e.Key]
		if !ok {
			idx = len(groups)
			byKey[e.Key] = idx
			groups = append(groups, Group{Key: e.Key})
		}
		grp := &groups[idx]
		grp.IDs = append(grp.IDs, e.ID)
		for _, alias := range e.Aliases {
			if !contains(grp.Aliases, alias) {
				grp.Aliases = append(grp.Aliases, alias)
			}
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})

	caser := cases.Fold()
	for i := range groups {
		groups[i].folded = make([]string, len(groups[i].Aliases))
		for j, alias := range groups[i].Aliases {
			groups[i].folded[j] = caser.String(alias)
		}
	}

	return &Index{groups: groups, size: len(entries)}
}

// Groups returns every group in key order.
func (x *Index) Groups() []Group {
	return x.groups
}

// Len returns the number of groups.
func (x *Index) Len() int {
	return len(x.groups)
}

// GlyphCount returns the number of glyphs across all groups.
func (x *Index) GlyphCount() int {
	return x.size
}

// Find returns the group that contains id.
func (x *Index) Find(id glyph.ID) (Group, bool) {
	for _, grp := range x.groups {
		for _, member := range grp.IDs {
			if member == id {
				return grp, true
			}
		}
	}
	return Group{}, false
}

// Search returns the groups with at least one alias containing query,
// compared case-insensitively. A blank query returns every group.
func (x *Index) Search(query string) []Group {
	if strings.TrimSpace(query) == "" {
		return x.groups
	}

	needle := cases.Fold().String(query)
	matched := make([]Group, 0)
	for _, grp := range x.groups {
		for _, alias := range grp.folded {
			if strings.Contains(alias, needle) {
				matched = append(matched, grp)
				break
			}
		}
	}
	return matched
}

// MatchesFilter reports whether text contains filter, ignoring case.
// An empty filter matches everything.
func MatchesFilter(text, filter string) bool {
	if filter == "" {
		return true
	}
	caser := cases.Fold()
	return strings.Contains(caser.String(text), caser.String(filter))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
