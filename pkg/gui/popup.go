package gui

import (
	"fmt"

	"github.com/jesseduffield/gocui"
)

// PopupItem is one row of a popup list
type PopupItem struct {
	Key      string       // Shortcut key to display
	Label    string       // Item label/description
	IsHeader bool         // Headers are non-selectable section titles
	Action   func() error // Runs on Enter (optional)
}

// Popup is a modal list with selectable items
type Popup struct {
	Title       string
	Items       []PopupItem
	SelectedIdx int
	Theme       *Theme
}

func NewPopup(title string, items []PopupItem, theme *Theme) *Popup {
	p := &Popup{
		Title: title,
		Items: items,
		Theme: theme,
	}
	p.SelectedIdx = p.findNextSelectable(-1, 1)
	return p
}

// findNextSelectable finds the next selectable item in the given direction.
// It stays at from when there is none.
func (p *Popup) findNextSelectable(from int, direction int) int {
	for i := from + direction; i >= 0 && i < len(p.Items); i += direction {
		if !p.Items[i].IsHeader {
			return i
		}
	}
	return from
}

func (p *Popup) MoveUp() {
	p.SelectedIdx = p.findNextSelectable(p.SelectedIdx, -1)
}

func (p *Popup) MoveDown() {
	p.SelectedIdx = p.findNextSelectable(p.SelectedIdx, 1)
}

// GetSelectedItem returns the currently selected item, or nil
func (p *Popup) GetSelectedItem() *PopupItem {
	if p.SelectedIdx >= 0 && p.SelectedIdx < len(p.Items) {
		return &p.Items[p.SelectedIdx]
	}
	return nil
}

// Render draws the popup content to the view using gocui's native highlighting
func (p *Popup) Render(v *gocui.View) {
	v.Clear()
	v.Highlight = true
	v.SelBgColor = p.Theme.SelectedLineBgColor
	v.SelFgColor = gocui.ColorDefault

	for _, line := range p.lines() {
		fmt.Fprintln(v, line)
	}
	fmt.Fprint(v, "\n\033[90m  Enter to execute · Esc to close\033[0m")

	v.FocusPoint(0, p.SelectedIdx, true)
}

// lines formats one line per item: headers as cyan dividers, items with
// the key in yellow.
func (p *Popup) lines() []string {
	lines := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if item.IsHeader {
			lines = append(lines, fmt.Sprintf("\033[36m ─── %s ───\033[0m", item.Label))
			continue
		}
		lines = append(lines, fmt.Sprintf("  \033[33m%-12s\033[0m %s", item.Key, item.Label))
	}
	return lines
}
