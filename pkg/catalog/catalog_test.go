package catalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/marjoballabani/lazyicons/pkg/glyph"
)

// fakeSource is an in-memory glyph.Source.
type fakeSource []glyph.Entry

func (f fakeSource) Entries() []glyph.Entry { return f }

func (f fakeSource) Glyph(id glyph.ID) (glyph.Glyph, bool) {
	for _, e := range f {
		if e.ID == id {
			return glyph.Glyph{Entry: e, Path: "M0,0Z", ViewBox: 24}, true
		}
	}
	return glyph.Glyph{}, false
}

func entry(id, key string, tags ...string) glyph.Entry {
	return glyph.Entry{ID: glyph.ID(id), Aliases: append([]string{id}, tags...), Key: key}
}

var testSource = fakeSource{
	entry("Star", "star", "rating"),
	entry("Home", "home", "building"),
	entry("House", "home", "building"),
	entry("Account", "account"),
	entry("User", "account"),
	entry("Café", "cafe"),
}

func keys(groups []Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}

func TestBuild(t *testing.T) {
	idx := Build(testSource)

	if got, want := keys(idx.Groups()), []string{"account", "cafe", "home", "star"}; !cmp.Equal(got, want) {
		t.Errorf("group keys = %v, expected %v", got, want)
	}
	if idx.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", idx.Len())
	}
	if idx.GlyphCount() != len(testSource) {
		t.Errorf("GlyphCount() = %d, expected %d", idx.GlyphCount(), len(testSource))
	}

	home, ok := idx.Find("House")
	if !ok {
		t.Fatal("Find(House) not found")
	}
	if diff := cmp.Diff([]glyph.ID{"Home", "House"}, home.IDs); diff != "" {
		t.Errorf("home IDs mismatch (-want +got):\n%s", diff)
	}
	// Shared tags are not repeated
	if diff := cmp.Diff([]string{"Home", "building", "House"}, home.Aliases); diff != "" {
		t.Errorf("home aliases mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCoversEveryGlyphOnce(t *testing.T) {
	set, err := glyph.Default()
	if err != nil {
		t.Fatal(err)
	}
	idx := Build(set)

	seen := make(map[glyph.ID]int)
	for _, grp := range idx.Groups() {
		for _, id := range grp.IDs {
			seen[id]++
		}
	}
	entries := set.Entries()
	if len(seen) != len(entries) {
		t.Errorf("grouped %d distinct IDs, source has %d", len(seen), len(entries))
	}
	for _, e := range entries {
		if seen[e.ID] != 1 {
			t.Errorf("%s appears %d times, expected 1", e.ID, seen[e.ID])
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := keys(Build(testSource).Groups())
	b := keys(Build(testSource).Groups())
	if !cmp.Equal(a, b) {
		t.Errorf("repeated builds differ: %v vs %v", a, b)
	}
}

func TestBuildEmpty(t *testing.T) {
	idx := Build(fakeSource{})
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", idx.Len())
	}
	if got := idx.Search("home"); len(got) != 0 {
		t.Errorf("Search on empty catalog = %v, expected none", keys(got))
	}
}

func TestSearch(t *testing.T) {
	idx := Build(testSource)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"empty query returns all", "", []string{"account", "cafe", "home", "star"}},
		{"whitespace query returns all", "  \t ", []string{"account", "cafe", "home", "star"}},
		{"exact name", "Home", []string{"home"}},
		{"lowercase", "home", []string{"home"}},
		{"uppercase", "HOME", []string{"home"}},
		{"matches alias of a variant", "hous", []string{"home"}},
		{"matches tag", "RATING", []string{"star"}},
		{"substring across groups", "u", []string{"account", "home"}},
		{"unicode folding", "CAFÉ", []string{"cafe"}},
		{"no match", "zebra", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys(idx.Search(tt.query))
			if !cmp.Equal(got, tt.expected) {
				t.Errorf("Search(%q) = %v, expected %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestSearchCaseInsensitiveEquivalence(t *testing.T) {
	idx := Build(testSource)
	lower := keys(idx.Search("home"))
	upper := keys(idx.Search("HOME"))
	if !cmp.Equal(lower, upper) {
		t.Errorf("Search(home) = %v, Search(HOME) = %v", lower, upper)
	}
}

func TestMatchesFilter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		filter   string
		expected bool
	}{
		{"empty filter matches everything", "anything", "", true},
		{"partial match", "ArrowLeft", "left", true},
		{"case insensitive filter", "arrowleft", "LEFT", true},
		{"no match", "ArrowLeft", "right", false},
		{"empty text with filter", "", "x", false},
		{"unicode match", "Café", "CAFÉ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFilter(tt.text, tt.filter); got != tt.expected {
				t.Errorf("MatchesFilter(%q, %q) = %v, expected %v", tt.text, tt.filter, got, tt.expected)
			}
		})
	}
}

func TestSearcher(t *testing.T) {
	s := NewSearcher(Build(testSource))

	firstSeq, first := s.Submit("home")
	secondSeq, second := s.Submit("star")

	if secondSeq <= firstSeq {
		t.Fatalf("sequence numbers should increase: %d then %d", firstSeq, secondSeq)
	}
	if s.IsCurrent(firstSeq) {
		t.Error("first submission should be stale after a second one")
	}
	if !s.IsCurrent(secondSeq) {
		t.Error("latest submission should be current")
	}

	// Results arrive in either order; each carries its own sequence number
	for i := 0; i < 2; i++ {
		select {
		case r := <-first:
			if r.Seq != firstSeq || !cmp.Equal(keys(r.Groups), []string{"home"}) {
				t.Errorf("first result = %d %v", r.Seq, keys(r.Groups))
			}
			first = nil
		case r := <-second:
			if r.Seq != secondSeq || !cmp.Equal(keys(r.Groups), []string{"star"}) {
				t.Errorf("second result = %d %v", r.Seq, keys(r.Groups))
			}
			second = nil
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for search results")
		}
	}
}
