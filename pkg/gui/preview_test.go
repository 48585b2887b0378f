package gui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/jesseduffield/gocui"
	"github.com/marjoballabani/lazyicons/pkg/config"
)

func TestPreviewSide(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		expected      int
	}{
		{"limited by width", 20, 40, 16},
		{"limited by height", 100, 10, 20},
		{"capped", 200, 200, maxPreviewSide},
		{"tiny view", 3, 2, minPreviewSide},
		{"rounded to even", 17, 40, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := previewSide(tt.width, tt.height); got != tt.expected {
				t.Errorf("previewSide(%d, %d) = %d, expected %d", tt.width, tt.height, got, tt.expected)
			}
		})
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, blue)

	want := "\033[38;2;255;0;0m\033[48;2;0;0;255m▀" +
		"\033[49m\033[38;2;0;0;255m▄" +
		"\033[0m\n"
	if got := renderHalfBlocks(img); got != want {
		t.Errorf("renderHalfBlocks() = %q, want %q", got, want)
	}
}

func TestHalfBlockThreshold(t *testing.T) {
	faint := color.NRGBA{R: 255, A: alphaThreshold - 1}
	if got := halfBlock(faint, faint); got != "\033[0m " {
		t.Errorf("faint pixels should be blank, got %q", got)
	}
	solid := color.NRGBA{G: 255, A: alphaThreshold}
	if got := halfBlock(solid, color.NRGBA{}); !strings.HasSuffix(got, "▀") {
		t.Errorf("upper pixel at threshold should draw, got %q", got)
	}
}

func TestBuildPreview(t *testing.T) {
	g, _ := newTestGui(t)
	group, _ := g.selectedGroup()
	gl, _ := g.source.Glyph("Account")
	fg, bg, err := g.colors()
	if err != nil {
		t.Fatal(err)
	}

	out := g.buildPreview(group, gl, previewKey{id: gl.ID, fg: fg, bg: bg, transparent: true, side: 16})
	plain := stripANSI(out)

	for _, want := range []string{"Key:        account", "Account, User", "#673ab7 on transparent", "/out/Account.ico", "▀", "<svg", "fill=\"#673ab7\""} {
		if !strings.Contains(plain, want) {
			t.Errorf("preview missing %q:\n%s", want, plain)
		}
	}
}

func TestRenderFilteredPreview(t *testing.T) {
	g, _ := newTestGui(t)
	g.selectGroup(1)
	group, _ := g.selectedGroup()
	gl, _ := g.source.Glyph("House")
	fg := color.NRGBA{A: 255}

	tests := []struct {
		name     string
		filter   string
		contains []string
		excludes []string
	}{
		{
			name:     "jq field",
			filter:   ".id",
			contains: []string{"(jq: .id)", `"House"`},
		},
		{
			name:     "jq over the group",
			filter:   ".ids | length",
			contains: []string{"2"},
		},
		{
			name:     "jq error",
			filter:   ".ids[",
			contains: []string{"(jq: .ids[)"},
			excludes: []string{"null"},
		},
		{
			name:     "line filter",
			filter:   "PATH",
			contains: []string{"<path", "(filtered)"},
			excludes: []string{"<svg"},
		},
		{
			name:     "no matching lines",
			filter:   "zzz",
			contains: []string{"No matching lines"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := stripANSI(g.renderFilteredPreview(group, gl, fg, tt.filter))
			for _, want := range tt.contains {
				if !strings.Contains(plain, want) {
					t.Errorf("output missing %q:\n%s", want, plain)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(plain, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, plain)
				}
			}
		})
	}
}

func TestPopupNavigation(t *testing.T) {
	ran := false
	p := NewPopup("Test", []PopupItem{
		{Label: "Section", IsHeader: true},
		{Key: "a", Label: "First"},
		{Label: "Other", IsHeader: true},
		{Key: "b", Label: "Second", Action: func() error { ran = true; return nil }},
	}, NewTheme(defaultThemeConfig()))

	if p.SelectedIdx != 1 {
		t.Fatalf("initial selection = %d, want first selectable (1)", p.SelectedIdx)
	}
	p.MoveUp()
	if p.SelectedIdx != 1 {
		t.Errorf("MoveUp at top moved to %d", p.SelectedIdx)
	}
	p.MoveDown()
	if p.SelectedIdx != 3 {
		t.Errorf("MoveDown should skip the header, got %d", p.SelectedIdx)
	}
	p.MoveDown()
	if p.SelectedIdx != 3 {
		t.Errorf("MoveDown at bottom moved to %d", p.SelectedIdx)
	}

	if item := p.GetSelectedItem(); item == nil || item.Action == nil {
		t.Fatal("selected item has no action")
	}
	p.GetSelectedItem().Action()
	if !ran {
		t.Error("action did not run")
	}

	lines := p.lines()
	if got := stripANSI(lines[0]); got != " ─── Section ───" {
		t.Errorf("header line = %q", got)
	}
}

func TestHelpCloseRunsAction(t *testing.T) {
	g, _ := newTestGui(t)
	g.doToggleHelp()
	for g.helpPopup.GetSelectedItem().Key != "t" {
		before := g.helpPopup.SelectedIdx
		g.helpMoveDown()
		if g.helpPopup.SelectedIdx == before {
			t.Fatal("no help item for t")
		}
	}

	if err := g.helpClose(); err != nil {
		t.Fatal(err)
	}
	if g.helpOpen || g.transparent {
		t.Errorf("helpOpen = %v, transparent = %v", g.helpOpen, g.transparent)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		spec     []string
		expected gocui.Attribute
	}{
		{"empty", nil, gocui.ColorDefault},
		{"named", []string{"cyan"}, gocui.ColorCyan},
		{"with attribute", []string{"cyan", "bold"}, gocui.ColorCyan | gocui.AttrBold},
		{"hex", []string{"#ff8000"}, gocui.NewRGBColor(255, 128, 0)},
		{"short hex", []string{"#f80"}, gocui.NewRGBColor(255, 136, 0)},
		{"palette", []string{"208"}, gocui.Attribute(208) | gocui.AttrIsValidColor},
		{"unknown", []string{"chartreuse-ish"}, gocui.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseColor(tt.spec); got != tt.expected {
				t.Errorf("parseColor(%v) = %v, expected %v", tt.spec, got, tt.expected)
			}
		})
	}
}

func defaultThemeConfig() config.ThemeConfig {
	return config.Default().UI.Theme
}

func TestAttributeToAnsi(t *testing.T) {
	tests := []struct {
		attr gocui.Attribute
		want string
	}{
		{gocui.NewRGBColor(255, 128, 0), "\033[38;2;255;128;0m"},
		{gocui.ColorDefault, "\033[36m"},
	}
	for _, tt := range tests {
		if got := attributeToAnsi(tt.attr); got != tt.want {
			t.Errorf("attributeToAnsi(%v) = %q, want %q", tt.attr, got, tt.want)
		}
	}
}
