package gui

import (
	"strings"

	"github.com/jesseduffield/gocui"
)

// dedicatedKeys have their own context-aware bindings and insert themselves
// into the filter through those.
const dedicatedKeys = "qjkhl/?@eEt "

func (g *Gui) setKeybindings() error {
	km := g.newKeybindingManager()

	km.RegisterAll(g.globalBindings())
	km.RegisterAll(g.navigationBindings())
	km.RegisterAll(g.filterBindings())
	km.RegisterAll(g.actionBindings(km))
	km.RegisterAll(g.mouseBindings())

	return km.Apply()
}

// inFilter returns the Contexts map shared by most keys: ch is typed into
// the filter, popups swallow the key.
func (g *Gui) inFilter(ch rune) map[Context]func() error {
	return map[Context]func() error{
		ContextFilter: g.filterInsert(ch),
		ContextHelp:   g.blockAction,
		ContextModal:  g.blockAction,
	}
}

// globalBindings - always available (quit, escape, help)
func (g *Gui) globalBindings() []*Binding {
	return []*Binding{
		{
			Key:         gocui.KeyCtrlC,
			Handler:     g.doQuit,
			Description: "Force quit",
		},
		{
			Key:         'q',
			Handler:     g.doQuit,
			Description: "Quit",
			Contexts:    g.inFilter('q'),
		},
		{
			Key:         gocui.KeyEsc,
			Handler:     g.doEscape,
			Description: "Close/Cancel",
		},
		{
			Key:         '?',
			Handler:     g.doToggleHelp,
			Description: "Show help",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterInsert('?'),
			},
		},
		{
			Key:         '@',
			Handler:     g.doToggleModal,
			Description: "Command log",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterInsert('@'),
				ContextHelp:   g.blockAction,
			},
		},
	}
}

// navigationBindings - panel and list navigation
func (g *Gui) navigationBindings() []*Binding {
	up := map[Context]func() error{
		ContextHelp:  g.helpMoveUp,
		ContextModal: g.blockAction,
	}
	down := map[Context]func() error{
		ContextHelp:  g.helpMoveDown,
		ContextModal: g.blockAction,
	}
	vim := func(ch rune, help func() error) map[Context]func() error {
		contexts := g.inFilter(ch)
		if help != nil {
			contexts[ContextHelp] = help
		}
		return contexts
	}

	return []*Binding{
		{Key: gocui.KeyArrowUp, Handler: g.doCursorUp, Description: "Move up", Contexts: up},
		{Key: gocui.KeyArrowDown, Handler: g.doCursorDown, Description: "Move down", Contexts: down},
		{
			Key:         gocui.KeyArrowLeft,
			Handler:     g.doColumnLeft,
			Description: "Move left",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterCursorLeft,
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
			},
		},
		{
			Key:         gocui.KeyArrowRight,
			Handler:     g.doColumnRight,
			Description: "Move right",
			Contexts: map[Context]func() error{
				ContextFilter: g.filterCursorRight,
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
			},
		},
		{Key: 'j', Handler: g.doCursorDown, Description: "Move down", Contexts: vim('j', g.helpMoveDown)},
		{Key: 'k', Handler: g.doCursorUp, Description: "Move up", Contexts: vim('k', g.helpMoveUp)},
		{Key: 'h', Handler: g.doColumnLeft, Description: "Move left", Contexts: vim('h', nil)},
		{Key: 'l', Handler: g.doColumnRight, Description: "Move right", Contexts: vim('l', nil)},
		{
			Key:         gocui.KeyTab,
			Handler:     g.doNextColumn,
			Description: "Next panel",
			Contexts: map[Context]func() error{
				ContextFilter: g.blockAction,
				ContextHelp:   g.blockAction,
				ContextModal:  g.blockAction,
			},
		},
		{
			Key:         gocui.KeySpace,
			Handler:     g.doSpace,
			Description: "Open group",
			Contexts:    g.inFilter(' '),
		},
		{
			Key:         gocui.KeyEnter,
			Handler:     g.doEnter,
			Description: "Open/Export",
			Contexts: map[Context]func() error{
				ContextFilter: g.commitFilter,
				ContextHelp:   g.helpClose,
				ContextModal:  g.blockAction,
			},
		},
	}
}

// filterBindings - filter mode specific
func (g *Gui) filterBindings() []*Binding {
	bindings := []*Binding{
		{
			Key:         '/',
			Handler:     g.startFilter,
			Description: "Start filter",
			Contexts:    g.inFilter('/'),
		},
		{Key: gocui.KeyBackspace, Handler: g.doFilterBackspace},
		{Key: gocui.KeyBackspace2, Handler: g.doFilterBackspace},
	}

	// Plain characters only type while filtering (includes jq syntax chars)
	filterChars := "abcdfghijklmnoprsuvwxyzABCDFGHIJKLMNOPQRSTUVWXYZ0123456789"
	filterChars += "-_."
	filterChars += "[]|(){}:\"'`,<>=!+*^$#~;&%\\"
	for _, ch := range filterChars {
		if strings.ContainsRune(dedicatedKeys, ch) {
			continue
		}
		bindings = append(bindings, &Binding{
			Key:     ch,
			Handler: g.makeFilterCharAction(ch),
		})
	}

	return bindings
}

// actionBindings - export and preview actions
func (g *Gui) actionBindings(km *KeybindingManager) []*Binding {
	return []*Binding{
		{
			Key:               'e',
			Handler:           g.doExport,
			Description:       "Export",
			GetDisabledReason: require(km.disabled.PopupOpen, km.disabled.NoGlyph, km.disabled.Exporting),
			Contexts:          g.inFilter('e'),
		},
		{
			Key:               'E',
			Handler:           g.doExportAll,
			Description:       "Export all",
			GetDisabledReason: require(km.disabled.PopupOpen, km.disabled.Exporting),
			Contexts:          g.inFilter('E'),
		},
		{
			Key:         't',
			Handler:     km.guards.NoPopup(g.doToggleTransparency),
			Description: "Toggle transparency",
			Contexts:    g.inFilter('t'),
		},
	}
}

// mouseBindings - click handlers
func (g *Gui) mouseBindings() []*Binding {
	return []*Binding{
		{Key: gocui.MouseLeft, ViewName: g.views.helpModal, Handler: g.doHelpClick},
		{Key: gocui.MouseLeft, ViewName: g.views.icons, Handler: g.doIconsClick},
		{Key: gocui.MouseLeft, ViewName: g.views.names, Handler: g.doNamesClick},
		{Key: gocui.MouseLeft, ViewName: g.views.preview, Handler: g.doPreviewClick},
		{Key: gocui.MouseLeft, ViewName: g.views.commands, Handler: g.doOutsideClick},
		{Key: gocui.MouseLeft, ViewName: g.views.help, Handler: g.doOutsideClick},
		{Key: gocui.MouseLeft, ViewName: g.views.background, Handler: g.doOutsideClick},
		{Key: gocui.MouseWheelUp, ViewName: g.views.preview, Handler: g.doPreviewScrollUp},
		{Key: gocui.MouseWheelDown, ViewName: g.views.preview, Handler: g.doPreviewScrollDown},
	}
}
