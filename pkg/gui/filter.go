package gui

import (
	"github.com/marjoballabani/lazyicons/pkg/catalog"
	"github.com/marjoballabani/lazyicons/pkg/glyph"
)

func (g *Gui) isFilteringPanel(panel string) bool {
	return g.filterInputActive && g.filterInputPanel == panel
}

func (g *Gui) getFilterForPanel(panel string) string {
	switch panel {
	case panelIcons:
		return g.iconsFilter
	case panelNames:
		return g.namesFilter
	case panelPreview:
		return g.previewFilter
	}
	return ""
}

func (g *Gui) setFilterForPanel(panel, filter string) {
	switch panel {
	case panelIcons:
		g.iconsFilter = filter
	case panelNames:
		g.namesFilter = filter
	case panelPreview:
		g.previewFilter = filter
	}
}

func (g *Gui) hasActiveFilter(panel string) bool {
	return g.getFilterForPanel(panel) != ""
}

// activeFilter is the filter in effect for panel: the input text while
// typing, otherwise the committed filter.
func (g *Gui) activeFilter(panel string) string {
	if g.isFilteringPanel(panel) {
		return g.filterInputText
	}
	return g.getFilterForPanel(panel)
}

// filterChanged reacts to a new filter text on panel. The icons panel is
// searched in the background; the other panels filter while rendering.
func (g *Gui) filterChanged(panel string) {
	switch panel {
	case panelIcons:
		g.submitSearch(g.activeFilter(panelIcons))
	case panelNames:
		g.selectedNameIdx = 0
		g.clearPreviewCache()
	case panelPreview:
		g.previewScrollPos = 0
		g.previewViewDirty = true
	}
}

// submitSearch starts a background search. Its result is applied on the UI
// goroutine unless a newer search was submitted meanwhile.
func (g *Gui) submitSearch(query string) {
	_, results := g.searcher.Submit(query)
	g.searching.Store(true)
	g.background(func() {
		res := <-results
		g.update(func() {
			g.applySearchResult(res)
		})
	})
}

// applySearchResult installs res as the icons list. Stale results are
// dropped and reported as not applied.
func (g *Gui) applySearchResult(res catalog.Result) bool {
	if !g.searcher.IsCurrent(res.Seq) {
		return false
	}
	g.searching.Store(false)

	var previous glyph.ID
	if group, ok := g.selectedGroup(); ok {
		previous = group.IDs[0]
	}

	g.groups = res.Groups
	g.selectedGroupIdx = 0
	for i, group := range g.groups {
		if group.IDs[0] == previous {
			g.selectedGroupIdx = i
			break
		}
	}
	g.selectedNameIdx = 0
	g.clearPreviewCache()
	return true
}

// getFilteredGroups returns the groups shown in the icons panel.
func (g *Gui) getFilteredGroups() []catalog.Group {
	return g.groups
}

// getFilteredNames returns the selected group's IDs matching the names filter.
func (g *Gui) getFilteredNames() []glyph.ID {
	group, ok := g.selectedGroup()
	if !ok {
		return nil
	}
	filter := g.activeFilter(panelNames)
	if filter == "" {
		return group.IDs
	}
	var filtered []glyph.ID
	for _, id := range group.IDs {
		if catalog.MatchesFilter(string(id), filter) {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

func (g *Gui) selectedGroup() (catalog.Group, bool) {
	groups := g.getFilteredGroups()
	if g.selectedGroupIdx < 0 || g.selectedGroupIdx >= len(groups) {
		return catalog.Group{}, false
	}
	return groups[g.selectedGroupIdx], true
}

// currentGlyphID is the glyph the preview shows and "e" exports.
func (g *Gui) currentGlyphID() (glyph.ID, bool) {
	names := g.getFilteredNames()
	if len(names) == 0 {
		return "", false
	}
	idx := g.selectedNameIdx
	if idx >= len(names) {
		idx = len(names) - 1
	}
	return names[idx], true
}

// Filter input editing

func (g *Gui) startFilter() error {
	if g.isModalOpen() || g.filterInputActive {
		return nil
	}
	hadFilter := g.hasActiveFilter(g.currentColumn)
	g.setFilterForPanel(g.currentColumn, "")
	g.filterInputActive = true
	g.filterInputPanel = g.currentColumn
	g.filterInputText = ""
	g.filterCursorPos = 0
	if hadFilter {
		g.filterChanged(g.currentColumn)
	}
	return g.refresh()
}

func (g *Gui) commitFilter() error {
	panel := g.filterInputPanel
	g.setFilterForPanel(panel, g.filterInputText)
	g.resetFilterInput()
	// The result for this text was already requested while typing.
	if panel != panelIcons {
		g.filterChanged(panel)
	}
	return g.refresh()
}

func (g *Gui) cancelFilterInput() error {
	panel := g.filterInputPanel
	g.resetFilterInput()
	g.filterChanged(panel)
	return g.refresh()
}

func (g *Gui) clearCurrentFilter() error {
	g.setFilterForPanel(g.currentColumn, "")
	g.filterChanged(g.currentColumn)
	return g.refresh()
}

func (g *Gui) resetFilterInput() {
	g.filterInputActive = false
	g.filterInputText = ""
	g.filterInputPanel = ""
	g.filterCursorPos = 0
}

// insertFilterChar inserts a character at the cursor position
func (g *Gui) insertFilterChar(ch rune) error {
	s := string(ch)
	g.filterInputText = g.filterInputText[:g.filterCursorPos] + s + g.filterInputText[g.filterCursorPos:]
	g.filterCursorPos += len(s)
	g.filterChanged(g.filterInputPanel)
	return g.refresh()
}

func (g *Gui) deleteFilterChar() error {
	if g.filterCursorPos > 0 && len(g.filterInputText) > 0 {
		g.filterInputText = g.filterInputText[:g.filterCursorPos-1] + g.filterInputText[g.filterCursorPos:]
		g.filterCursorPos--
		g.filterChanged(g.filterInputPanel)
	}
	return g.refresh()
}
