package gui

import (
	"fmt"

	"github.com/jesseduffield/gocui"
)

func (g *Gui) isModalOpen() bool {
	return g.modalOpen || g.helpOpen
}

// setFocus sets the current column and updates gocui's current view
func (g *Gui) setFocus(column string) error {
	if g.currentColumn != column && g.currentColumn == panelIcons {
		g.previewViewDirty = true
	}
	g.currentColumn = column
	if g.g == nil {
		return nil
	}
	if _, err := g.g.SetCurrentView(column); err != nil {
		return err
	}
	return g.refresh()
}

// Help popup builder

func (g *Gui) buildHelpPopup() {
	items := []PopupItem{
		{Label: "Global", IsHeader: true},
		{Key: "←/→ h/l", Label: "Switch panels"},
		{Key: "↑/↓ j/k", Label: "Move up/down"},
		{Key: "/", Label: "Filter / Search", Action: g.startFilter},
		{Key: "Esc", Label: "Back / Clear filter / Close"},
		{Key: "E", Label: "Export every glyph", Action: g.doExportAll},
		{Key: "t", Label: "Toggle transparent background", Action: g.doToggleTransparency},
		{Key: "@", Label: "Command log", Action: g.doToggleModal},
		{Key: "?", Label: "This help"},
		{Key: "q", Label: "Quit", Action: g.doQuit},
		{Label: g.getPanelName(), IsHeader: true},
	}

	switch g.currentColumn {
	case panelIcons:
		items = append(items,
			PopupItem{Key: "Space/Enter", Label: "Show names", Action: g.doSpace},
			PopupItem{Key: "/", Label: "Search names and aliases", Action: g.startFilter},
		)
	case panelNames:
		items = append(items,
			PopupItem{Key: "e/Enter", Label: "Export as .ico", Action: g.doExport},
			PopupItem{Key: "/", Label: "Filter names", Action: g.startFilter},
		)
	case panelPreview:
		items = append(items,
			PopupItem{Key: "j/k", Label: "Scroll content"},
			PopupItem{Key: "/", Label: "Filter SVG lines, or .jq", Action: g.startFilter},
		)
	}

	g.helpPopup = NewPopup("Keyboard Shortcuts", items, g.theme)
}

func (g *Gui) renderHelpContent(v *gocui.View) {
	if g.helpPopup == nil {
		return
	}
	g.helpPopup.Render(v)
}

func (g *Gui) getPanelName() string {
	return g.getPanelNameFor(g.currentColumn)
}

func (g *Gui) getPanelNameFor(panel string) string {
	switch panel {
	case panelIcons:
		return "Icons"
	case panelNames:
		return "Names"
	case panelPreview:
		return "Preview"
	default:
		return fmt.Sprintf("Panel %q", panel)
	}
}
