package gui

import "github.com/jesseduffield/gocui"

// Context represents the current UI context/mode
type Context string

const (
	ContextNormal Context = "normal"
	ContextFilter Context = "filter"
	ContextHelp   Context = "help"
	ContextModal  Context = "modal"
)

// Binding represents a keybinding with context-aware handling
type Binding struct {
	Key         interface{} // gocui.Key or rune
	Modifier    gocui.Modifier
	ViewName    string // Empty for global, specific view name otherwise
	Handler     func() error
	Description string
	// GetDisabledReason returns "" if enabled, or a reason string if disabled
	GetDisabledReason func() string
	// Contexts maps specific contexts to different handlers (optional)
	// If current context has a handler here, it's used instead of Handler
	Contexts map[Context]func() error
}

// Guards wrap handlers with state checks
type Guards struct {
	NoPopup func(func() error) func() error
}

func (g *Gui) newGuards() Guards {
	return Guards{
		NoPopup: func(f func() error) func() error {
			return func() error {
				if g.isModalOpen() {
					return nil
				}
				return f()
			}
		},
	}
}

// DisabledReasons provides common disable-reason check functions
type DisabledReasons struct {
	PopupOpen func() string
	NoGlyph   func() string
	Exporting func() string
}

func (g *Gui) newDisabledReasons() DisabledReasons {
	return DisabledReasons{
		PopupOpen: func() string {
			if g.isModalOpen() {
				return "Close popup first"
			}
			return ""
		},
		NoGlyph: func() string {
			if _, ok := g.currentGlyphID(); !ok {
				return "No glyph selected"
			}
			return ""
		},
		Exporting: func() string {
			if g.exporting.Load() {
				return "Export already running"
			}
			return ""
		},
	}
}

// require combines multiple disable-reason checks into one.
// Returns the first non-empty reason.
func require(checks ...func() string) func() string {
	return func() string {
		for _, check := range checks {
			if reason := check(); reason != "" {
				return reason
			}
		}
		return ""
	}
}

// getContext returns the current UI context
func (g *Gui) getContext() Context {
	if g.helpOpen {
		return ContextHelp
	}
	if g.modalOpen {
		return ContextModal
	}
	if g.filterInputActive {
		return ContextFilter
	}
	return ContextNormal
}

// KeybindingManager handles registration and execution of keybindings
type KeybindingManager struct {
	gui      *Gui
	bindings []*Binding
	guards   Guards
	disabled DisabledReasons
}

func (g *Gui) newKeybindingManager() *KeybindingManager {
	return &KeybindingManager{
		gui:      g,
		guards:   g.newGuards(),
		disabled: g.newDisabledReasons(),
	}
}

func (km *KeybindingManager) RegisterAll(bindings []*Binding) {
	km.bindings = append(km.bindings, bindings...)
}

// Apply registers all bindings with gocui
func (km *KeybindingManager) Apply() error {
	for _, b := range km.bindings {
		handler := km.wrapHandler(b)

		var err error
		switch key := b.Key.(type) {
		case gocui.Key:
			err = km.gui.g.SetKeybinding(b.ViewName, key, b.Modifier, handler)
		case rune:
			err = km.gui.g.SetKeybinding(b.ViewName, key, b.Modifier, handler)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (km *KeybindingManager) wrapHandler(b *Binding) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		return km.dispatch(b)
	}
}

// dispatch runs the handler for the current context. Disabled bindings log
// their reason to the command log instead of running.
func (km *KeybindingManager) dispatch(b *Binding) error {
	if handler, ok := b.Contexts[km.gui.getContext()]; ok {
		return handler()
	}
	if b.GetDisabledReason != nil {
		if reason := b.GetDisabledReason(); reason != "" {
			if b.Description != "" {
				km.gui.logCommand(b.Description, reason, "error")
			}
			return nil
		}
	}
	return b.Handler()
}
