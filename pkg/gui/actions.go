package gui

import (
	"fmt"

	"github.com/jesseduffield/gocui"
)

// Actions - plain handler functions.
// State checks are handled by the binding system's GetDisabledReason.

func (g *Gui) doQuit() error {
	return gocui.ErrQuit
}

// doEscape closes modals, cancels filter input, or clears the filter
func (g *Gui) doEscape() error {
	// Priority: help popup > command modal > filter input > committed filter
	if g.helpOpen {
		g.closeHelp()
		return g.refresh()
	}
	if g.modalOpen {
		g.modalOpen = false
		return g.refresh()
	}
	if g.filterInputActive {
		return g.cancelFilterInput()
	}
	if g.hasActiveFilter(g.currentColumn) {
		return g.clearCurrentFilter()
	}
	return nil
}

func (g *Gui) doToggleHelp() error {
	if g.helpOpen {
		g.closeHelp()
	} else {
		g.buildHelpPopup()
		g.helpOpen = true
	}
	return g.refresh()
}

func (g *Gui) doToggleModal() error {
	g.modalOpen = !g.modalOpen
	return g.refresh()
}

func (g *Gui) closeHelp() {
	g.helpOpen = false
	g.helpPopup = nil
}

// Help popup handlers
func (g *Gui) helpMoveUp() error {
	if g.helpPopup != nil {
		g.helpPopup.MoveUp()
	}
	return g.refresh()
}

func (g *Gui) helpMoveDown() error {
	if g.helpPopup != nil {
		g.helpPopup.MoveDown()
	}
	return g.refresh()
}

// helpClose closes the popup and runs the selected item's action
func (g *Gui) helpClose() error {
	var action func() error
	if g.helpPopup != nil {
		if item := g.helpPopup.GetSelectedItem(); item != nil {
			action = item.Action
		}
	}

	g.closeHelp()

	if action != nil {
		return action()
	}
	return g.refresh()
}

// Filter mode handlers
func (g *Gui) filterCursorLeft() error {
	if g.filterCursorPos > 0 {
		g.filterCursorPos--
	}
	return g.refresh()
}

func (g *Gui) filterCursorRight() error {
	if g.filterCursorPos < len(g.filterInputText) {
		g.filterCursorPos++
	}
	return g.refresh()
}

func (g *Gui) filterInsert(ch rune) func() error {
	return func() error {
		return g.insertFilterChar(ch)
	}
}

func (g *Gui) doFilterBackspace() error {
	if !g.filterInputActive {
		return nil
	}
	return g.deleteFilterChar()
}

// makeFilterCharAction creates a handler for a character that only types
func (g *Gui) makeFilterCharAction(ch rune) func() error {
	return func() error {
		if !g.filterInputActive {
			return nil
		}
		return g.insertFilterChar(ch)
	}
}

// Block handler - does nothing (for modal context)
func (g *Gui) blockAction() error {
	return nil
}

// Panel navigation

func (g *Gui) doColumnLeft() error {
	return g.setFocus(g.adjacentColumn(-1))
}

func (g *Gui) doColumnRight() error {
	return g.setFocus(g.adjacentColumn(1))
}

func (g *Gui) doNextColumn() error {
	return g.doColumnRight()
}

// adjacentColumn returns the panel step positions away, wrapping around.
func (g *Gui) adjacentColumn(step int) string {
	for i, panel := range panelOrder {
		if panel == g.currentColumn {
			n := len(panelOrder)
			return panelOrder[((i+step)%n+n)%n]
		}
	}
	return panelOrder[0]
}

func (g *Gui) doCursorUp() error {
	switch g.currentColumn {
	case panelIcons:
		if g.selectedGroupIdx > 0 {
			g.selectGroup(g.selectedGroupIdx - 1)
		}
	case panelNames:
		if g.selectedNameIdx > 0 {
			g.selectedNameIdx--
			g.previewScrollPos = 0
		}
	case panelPreview:
		if g.previewScrollPos > 0 {
			g.previewScrollPos--
		}
	}
	return g.refresh()
}

func (g *Gui) doCursorDown() error {
	switch g.currentColumn {
	case panelIcons:
		if g.selectedGroupIdx < len(g.getFilteredGroups())-1 {
			g.selectGroup(g.selectedGroupIdx + 1)
		}
	case panelNames:
		if g.selectedNameIdx < len(g.getFilteredNames())-1 {
			g.selectedNameIdx++
			g.previewScrollPos = 0
		}
	case panelPreview:
		g.previewScrollPos++
	}
	return g.refresh()
}

// selectGroup moves the icons cursor; the names list starts over.
func (g *Gui) selectGroup(idx int) {
	g.selectedGroupIdx = idx
	g.selectedNameIdx = 0
	g.namesFilter = ""
	g.clearPreviewCache()
}

// doSpace opens the selected group in the names panel
func (g *Gui) doSpace() error {
	if g.currentColumn == panelIcons {
		if _, ok := g.selectedGroup(); ok {
			return g.setFocus(panelNames)
		}
	}
	return nil
}

// doEnter opens a group from the icons panel and exports from the names panel
func (g *Gui) doEnter() error {
	switch g.currentColumn {
	case panelIcons:
		return g.doSpace()
	case panelNames:
		return g.doExport()
	}
	return nil
}

func (g *Gui) doToggleTransparency() error {
	g.transparent = !g.transparent
	g.clearPreviewCache()
	state := "off"
	if g.transparent {
		state = "on"
	}
	g.logCommand("t", fmt.Sprintf("Transparent background %s", state), "success")
	return g.refresh()
}

func (g *Gui) doExport() error {
	return g.exportSelectedAction()
}

func (g *Gui) doExportAll() error {
	return g.exportAllAction()
}

func (g *Gui) doPreviewScrollUp() error {
	if g.previewScrollPos > 0 {
		g.previewScrollPos--
	}
	return g.refresh()
}

func (g *Gui) doPreviewScrollDown() error {
	g.previewScrollPos++
	return g.refresh()
}

// Mouse click handlers

func (g *Gui) doHelpClick() error {
	if g.helpPopup == nil {
		return nil
	}
	line, ok := g.clickedLine(g.views.helpModal)
	if ok && line < len(g.helpPopup.Items) && !g.helpPopup.Items[line].IsHeader {
		g.helpPopup.SelectedIdx = line
	}
	return g.refresh()
}

func (g *Gui) doIconsClick() error {
	if g.helpOpen {
		g.closeHelp()
		return g.refresh()
	}
	g.currentColumn = panelIcons
	if line, ok := g.clickedLine(g.views.icons); ok && line < len(g.getFilteredGroups()) && line != g.selectedGroupIdx {
		g.selectGroup(line)
	}
	return g.refresh()
}

func (g *Gui) doNamesClick() error {
	if g.helpOpen {
		g.closeHelp()
		return g.refresh()
	}
	g.currentColumn = panelNames
	if line, ok := g.clickedLine(g.views.names); ok && line < len(g.getFilteredNames()) {
		g.selectedNameIdx = line
		g.previewScrollPos = 0
	}
	return g.refresh()
}

func (g *Gui) doPreviewClick() error {
	if g.helpOpen {
		g.closeHelp()
		return g.refresh()
	}
	g.currentColumn = panelPreview
	return g.refresh()
}

func (g *Gui) doOutsideClick() error {
	if g.helpOpen {
		g.closeHelp()
		return g.refresh()
	}
	return nil
}

// clickedLine returns the buffer line under the cursor of view name.
func (g *Gui) clickedLine(name string) (int, bool) {
	v, err := g.g.View(name)
	if err != nil {
		return 0, false
	}
	_, cy := v.Cursor()
	_, oy := v.Origin()
	line := cy + oy
	return line, line >= 0
}
