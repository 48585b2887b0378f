package gui

import (
	"errors"
	"fmt"

	"github.com/jesseduffield/gocui"
	"github.com/marjoballabani/lazyicons/pkg/gui/icons"
)

func (g *Gui) Layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()

	// Background view (covers entire screen, behind everything)
	if v, err := gui.SetView(g.views.background, -1, -1, maxX, maxY, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
	}

	leftWidth := maxX / 3
	leftHeight := maxY - 3 // Leave room for help bar
	commandsHeight := 3

	// The focused list gets the larger share
	iconsEnd := leftHeight * 2 / 3
	if g.currentColumn == panelNames {
		iconsEnd = leftHeight / 2
	}

	if err := g.layoutPanel(gui, g.views.icons, 0, 0, leftWidth-1, iconsEnd-1); err != nil {
		return err
	}
	if v, err := gui.View(g.views.icons); err == nil {
		g.decoratePanel(gui, v, panelIcons, withIcon(icons.GROUPS_ICON, "Icons"))
		filtered := g.getFilteredGroups()
		if g.hasActiveFilter(panelIcons) || g.isFilteringPanel(panelIcons) {
			v.Footer = fmt.Sprintf("%d/%d matched", len(filtered), g.index.Len())
		} else {
			v.Footer = listFooter(g.selectedGroupIdx, len(filtered))
		}
		g.updateIconsView(v)
	}

	if err := g.layoutPanel(gui, g.views.names, 0, iconsEnd, leftWidth-1, maxY-3); err != nil {
		return err
	}
	if v, err := gui.View(g.views.names); err == nil {
		g.decoratePanel(gui, v, panelNames, withIcon(icons.NAMES_ICON, "Names"))
		filtered := g.getFilteredNames()
		if g.hasActiveFilter(panelNames) || g.isFilteringPanel(panelNames) {
			group, _ := g.selectedGroup()
			v.Footer = fmt.Sprintf("%d/%d matched", len(filtered), len(group.IDs))
		} else {
			v.Footer = listFooter(g.selectedNameIdx, len(filtered))
		}
		g.updateNamesView(v)
	}

	if err := g.layoutPanel(gui, g.views.preview, leftWidth, 0, maxX-1, maxY-commandsHeight-3); err != nil {
		return err
	}
	if v, err := gui.View(g.views.preview); err == nil {
		v.Wrap = false
		v.SelBgColor = gocui.ColorDefault
		title := withIcon(icons.PREVIEW_ICON, "Preview")
		switch {
		case g.currentColumn == panelPreview && g.hasActiveFilter(panelPreview):
			title += " (filtered)"
		case g.currentColumn == panelPreview:
			title += " (j/k scroll)"
		}
		g.decoratePanel(gui, v, panelPreview, title)
		g.updatePreviewView(v)
		v.SetOrigin(0, g.previewScrollPos)
	}

	// Commands panel (bottom-right, single row)
	if err := g.layoutPanel(gui, g.views.commands, leftWidth, maxY-commandsHeight-2, maxX-1, maxY-3); err != nil {
		return err
	}
	if v, err := gui.View(g.views.commands); err == nil {
		v.Title = " " + withIcon(icons.COMMAND_ICON, "Commands") + " "
		v.SelBgColor = gocui.ColorDefault
		g.updateCommandsView(v)
	}

	// Help bar (bottom, full width)
	if v, err := gui.SetView(g.views.help, 0, maxY-2, maxX-1, maxY, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
		v.SelBgColor = gocui.ColorDefault
		v.SelFgColor = gocui.ColorDefault
	}
	if v, err := gui.View(g.views.help); err == nil {
		g.updateHelpView(v)
	}

	if g.helpOpen {
		return g.layoutHelpModal(gui, maxX, maxY)
	}
	gui.DeleteView(g.views.helpModal)

	if g.modalOpen {
		return g.layoutCommandLog(gui, maxX, maxY)
	}
	gui.DeleteView(g.views.modal)

	if _, err := gui.SetCurrentView(g.currentColumn); err != nil {
		return fmt.Errorf("failed to set current view '%s': %w", g.currentColumn, err)
	}
	return nil
}

// layoutPanel places a framed panel, creating it on first use.
func (g *Gui) layoutPanel(gui *gocui.Gui, name string, x0, y0, x1, y1 int) error {
	v, err := gui.SetView(name, x0, y0, x1, y1, 0)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	v.TitleColor = g.theme.InactiveBorderColor
	v.BgColor = gocui.ColorDefault
	v.FgColor = gocui.ColorDefault
	v.SelBgColor = g.theme.SelectedLineBgColor
	v.SelFgColor = gocui.ColorDefault
	v.FrameRunes = g.roundedFrameRunes
	return nil
}

// decoratePanel sets title and border colors: the filter color when the panel
// is focused with a committed filter, the active color when focused.
func (g *Gui) decoratePanel(gui *gocui.Gui, v *gocui.View, panel, title string) {
	isFocused := g.currentColumn == panel
	color := g.theme.InactiveBorderColor
	switch {
	case isFocused && g.hasActiveFilter(panel):
		color = g.theme.FilterBorderColor
	case isFocused:
		color = g.theme.ActiveBorderColor
	}
	if isFocused {
		// gocui uses the global colors for the focused view
		gui.SelFrameColor = color
		gui.SelFgColor = color
	}
	v.TitleColor = color
	v.FrameColor = color
	v.Title = " " + title + " "
}

// withIcon prefixes text with icon unless icons are disabled.
func withIcon(icon, text string) string {
	if icon == "" {
		return text
	}
	return icon + " " + text
}

func listFooter(selected, total int) string {
	if total == 0 {
		return "0 of 0"
	}
	return fmt.Sprintf("%d of %d", selected+1, total)
}

func (g *Gui) layoutHelpModal(gui *gocui.Gui, maxX, maxY int) error {
	modalWidth := 50
	modalHeight := 22
	if modalHeight > maxY-4 {
		modalHeight = maxY - 4
	}
	modalX := (maxX - modalWidth) / 2
	modalY := (maxY - modalHeight) / 2

	if v, err := gui.SetView(g.views.helpModal, modalX, modalY, modalX+modalWidth, modalY+modalHeight, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = " " + withIcon(icons.KEYBOARD_ICON, "Keyboard Shortcuts") + " "
		v.TitleColor = g.theme.ActiveBorderColor
		v.FrameColor = g.theme.ActiveBorderColor
		v.FrameRunes = g.roundedFrameRunes
		v.SelBgColor = g.theme.SelectedLineBgColor
		v.SelFgColor = gocui.ColorDefault
	}

	if v, err := gui.View(g.views.helpModal); err == nil {
		g.renderHelpContent(v)
		if _, err := gui.SetCurrentView(g.views.helpModal); err != nil {
			return fmt.Errorf("failed to set help view: %w", err)
		}
	}
	return nil
}

func (g *Gui) layoutCommandLog(gui *gocui.Gui, maxX, maxY int) error {
	modalWidth := maxX - 10
	modalHeight := 15
	if modalHeight > maxY-6 {
		modalHeight = maxY - 6
	}
	modalX := (maxX - modalWidth) / 2
	modalY := (maxY - modalHeight) / 2

	if v, err := gui.SetView(g.views.modal, modalX, modalY, modalX+modalWidth, modalY+modalHeight, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = " Command Log "
		v.BgColor = gocui.ColorDefault
		v.FgColor = gocui.ColorDefault
		v.SelBgColor = gocui.ColorDefault
		v.SelFgColor = gocui.ColorDefault
		v.Wrap = true
	}

	if v, err := gui.View(g.views.modal); err == nil {
		v.Clear()
		fmt.Fprint(v, g.formatCommandLog())
		if _, err := gui.SetCurrentView(g.views.modal); err != nil {
			return fmt.Errorf("failed to set modal view: %w", err)
		}
	}
	return nil
}

func (g *Gui) formatCommandLog() string {
	var out string
	if len(g.commandHistory) == 0 {
		out += "  No commands yet\n"
	}
	for _, cmd := range g.commandHistory {
		out += fmt.Sprintf("  [%s] %s%s\033[0m: %s\n", cmd.Timestamp, statusColor(cmd.Status), cmd.Command, cmd.Description)
	}
	out += "\n  \033[36mPress Esc or @ to close\033[0m\n"
	return out
}

func statusColor(status string) string {
	switch status {
	case "error":
		return "\033[31m"
	case "running":
		return "\033[33m"
	default:
		return "\033[32m"
	}
}

func (g *Gui) updateIconsView(v *gocui.View) {
	v.Clear()

	filtered := g.getFilteredGroups()
	if g.searching.Load() && len(filtered) == 0 {
		v.Highlight = false
		fmt.Fprint(v, g.getLoadingText(withIcon(icons.SEARCH, "Searching...")))
		return
	}

	v.Highlight = g.currentColumn == panelIcons && len(filtered) > 0
	if len(filtered) == 0 {
		fmt.Fprint(v, "\033[90m  No matching icons\033[0m")
		return
	}

	icon := icons.GLYPH
	if icon != "" {
		icon += " "
	}
	for _, group := range filtered {
		extra := ""
		if n := len(group.IDs); n > 1 {
			extra = fmt.Sprintf(" \033[90m(%d names)\033[0m", n)
		}
		fmt.Fprintf(v, "  %s%s%s\n", icon, group.Key, extra)
	}

	if g.selectedGroupIdx >= len(filtered) {
		g.selectedGroupIdx = len(filtered) - 1
	}
	v.FocusPoint(0, g.selectedGroupIdx, true)
}

func (g *Gui) updateNamesView(v *gocui.View) {
	v.Clear()

	names := g.getFilteredNames()
	v.Highlight = g.currentColumn == panelNames && len(names) > 0
	if len(names) == 0 {
		return
	}

	icon := icons.ALIAS
	if icon != "" {
		icon += " "
	}
	current, _ := g.currentGlyphID()
	for _, id := range names {
		if id == current {
			fmt.Fprintf(v, "%s%s\033[0m %s%s\n", g.getActiveColorCode(), icons.SELECTED, icon, id)
		} else {
			fmt.Fprintf(v, "  %s%s\n", icon, id)
		}
	}

	if g.selectedNameIdx >= len(names) {
		g.selectedNameIdx = len(names) - 1
	}
	v.FocusPoint(0, g.selectedNameIdx, true)
}

func (g *Gui) updatePreviewView(v *gocui.View) {
	group, ok := g.selectedGroup()
	id, hasID := g.currentGlyphID()
	if !ok || !hasID {
		g.clearPreviewCache()
		v.Clear()
		g.showWelcome(v)
		return
	}
	gl, found := g.source.Glyph(id)
	if !found {
		v.SetContent(fmt.Sprintf("\033[31m%s\033[0m\n", withIcon(icons.WARNING, "Unknown glyph "+string(id))))
		return
	}

	fg, bg, err := g.colors()
	if err != nil {
		v.SetContent(fmt.Sprintf("\033[31m%s\033[0m\n", withIcon(icons.WARNING, "Invalid color: "+err.Error())))
		return
	}

	if filter := g.activeFilter(panelPreview); filter != "" {
		v.SetContent(g.renderFilteredPreview(group, gl, fg, filter))
		return
	}

	width, height := v.Size()
	key := previewKey{id: id, fg: fg, bg: bg, transparent: g.transparent, side: previewSide(width, height-8)}
	if key == g.cachedPreviewKey && g.cachedPreview != "" {
		// Only push content when dirty (avoids expensive redraw)
		if g.previewViewDirty {
			v.SetContent(g.cachedPreview)
			g.previewViewDirty = false
		}
		return
	}

	g.cachedPreview = g.buildPreview(group, gl, key)
	g.cachedPreviewKey = key
	v.SetContent(g.cachedPreview)
	g.previewViewDirty = false
}

func (g *Gui) showWelcome(v *gocui.View) {
	fmt.Fprintln(v, "")
	fmt.Fprintf(v, "\033[36m  %s  L A Z Y I C O N S\033[0m\n", icons.APP_ICON)
	fmt.Fprintln(v, "")
	fmt.Fprintf(v, "\033[90m   %d glyphs in %d groups\033[0m\n", g.index.GlyphCount(), g.index.Len())
	fmt.Fprintln(v, "")
	fmt.Fprintln(v, "\033[90m   Select an icon to preview it\033[0m")
}

func (g *Gui) updateCommandsView(v *gocui.View) {
	v.Clear()

	if g.exporting.Load() && g.exportTotal > 0 {
		text := fmt.Sprintf("Exporting %d/%d...", g.exportProgress.Load(), g.exportTotal)
		fmt.Fprint(v, g.getLoadingText(withIcon(icons.EXPORT, text)))
		return
	}

	if len(g.commandHistory) == 0 {
		return
	}

	// Show last command
	cmd := g.commandHistory[len(g.commandHistory)-1]

	var statusIcon string
	switch cmd.Status {
	case "running":
		statusIcon = icons.LOADING
	case "error":
		statusIcon = icons.ERROR
	case "success":
		statusIcon = icons.SUCCESS
	default:
		statusIcon = "•"
	}

	fmt.Fprintf(v, "%s%s %s\033[0m %s", statusColor(cmd.Status), statusIcon, cmd.Command, cmd.Description)
}

func (g *Gui) updateHelpView(v *gocui.View) {
	v.Clear()

	if g.filterInputActive {
		panelName := g.getPanelNameFor(g.filterInputPanel)
		beforeCursor := g.filterInputText[:g.filterCursorPos]
		afterCursor := g.filterInputText[g.filterCursorPos:]
		// Cursor shown as reverse video
		cursorChar, rest := " ", ""
		if len(afterCursor) > 0 {
			cursorChar = string(afterCursor[0])
			rest = afterCursor[1:]
		}
		fmt.Fprintf(v, " \033[33mFilter %s:\033[0m %s\033[7m%s\033[0m%s  \033[90m(Enter to keep, Esc to cancel)\033[0m",
			panelName, beforeCursor, cursorChar, rest)
		return
	}

	if filter := g.getFilterForPanel(g.currentColumn); filter != "" {
		panelName := g.getPanelNameFor(g.currentColumn)
		fmt.Fprintf(v, " \033[33m%s filtered:\033[0m '%s'  \033[90m(Esc to clear filter)\033[0m", panelName, filter)
		return
	}

	transparency := "off"
	if g.transparent {
		transparency = "on"
	}
	helpText := fmt.Sprintf(" \033[36m←/→\033[0m panels  \033[36mj/k\033[0m move  \033[32me\033[0m export  \033[32mE\033[0m export all  \033[33mt\033[0m transparent:%s  \033[35m/\033[0m filter  \033[35m?\033[0m help  \033[31mq\033[0m quit", transparency)
	versionText := fmt.Sprintf("\033[90mv%s\033[0m ", g.version)

	// Right-align version
	width, _ := v.Size()
	helpLen := 92 // Approximate visible length without ANSI codes
	padding := width - helpLen - len(g.version) - 2
	if padding < 1 {
		padding = 1
	}

	fmt.Fprintf(v, "%s%*s%s", helpText, padding, "", versionText)
}
