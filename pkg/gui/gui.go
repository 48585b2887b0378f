package gui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/jesseduffield/gocui"
	"github.com/marjoballabani/lazyicons/pkg/catalog"
	"github.com/marjoballabani/lazyicons/pkg/config"
	"github.com/marjoballabani/lazyicons/pkg/export"
	"github.com/marjoballabani/lazyicons/pkg/glyph"
	"github.com/marjoballabani/lazyicons/pkg/gui/icons"
	"github.com/marjoballabani/lazyicons/pkg/raster"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const maxCommandHistory = 10

// Panel names double as gocui view names.
const (
	panelIcons   = "icons"
	panelNames   = "names"
	panelPreview = "preview"
)

var panelOrder = []string{panelIcons, panelNames, panelPreview}

type CommandExecution struct {
	Timestamp   string
	Command     string
	Description string
	Status      string
}

// Deps are the collaborators the GUI works with. Index must be built from
// Source.
type Deps struct {
	Source   glyph.Source
	Index    *catalog.Index
	Exporter *export.Exporter
	Renderer export.Rasterizer
}

type Gui struct {
	g       *gocui.Gui
	config  *config.Config
	version string
	theme   *Theme

	source   glyph.Source
	index    *catalog.Index
	searcher *catalog.Searcher
	exporter *export.Exporter
	renderer export.Rasterizer

	// Icons state: groups is the latest accepted search result
	groups           []catalog.Group
	selectedGroupIdx int
	searching        atomic.Bool

	// Names state
	selectedNameIdx int

	// Preview state
	transparent      bool
	previewScrollPos int
	cachedPreviewKey previewKey
	cachedPreview    string
	previewViewDirty bool

	// Export state
	exporting      atomic.Bool
	exportProgress atomic.Int64
	exportTotal    int

	commandHistory []CommandExecution

	views struct {
		background string
		icons      string
		names      string
		preview    string
		commands   string
		help       string
		modal      string
		helpModal  string
	}

	currentColumn string

	// Modal state
	modalOpen bool
	helpOpen  bool
	helpPopup *Popup

	spinnerFrame atomic.Uint32

	// Filter state
	filterInputActive bool
	filterInputText   string
	filterInputPanel  string
	filterCursorPos   int

	// Committed filters (persist after Enter, cleared by Esc)
	iconsFilter   string
	namesFilter   string
	previewFilter string

	roundedFrameRunes []rune
}

func NewGui(cfg *config.Config, deps Deps, version string) (*Gui, error) {
	if deps.Source == nil || deps.Index == nil || deps.Exporter == nil {
		return nil, errors.New("gui needs a glyph source, an index and an exporter")
	}
	if deps.Renderer == nil {
		deps.Renderer = raster.NewRenderer()
	}

	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode:      gocui.OutputTrue,
		SupportOverlaps: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gui")
	}

	icons.Configure(cfg.UI.ShowIcons, cfg.UI.NerdFontsVersion)

	gui := newGuiState(cfg, deps, version)
	gui.g = g

	// Configure gocui
	g.Cursor = false
	g.Mouse = true
	g.InputEsc = true
	g.ShowListFooter = true
	g.BgColor = gocui.ColorDefault
	g.FgColor = gocui.ColorDefault
	g.Highlight = true
	gui.applyFrameColors()

	g.SetManagerFunc(func(g *gocui.Gui) error {
		return gui.Layout(g)
	})

	if err := gui.setKeybindings(); err != nil {
		return nil, err
	}

	gui.logCommand("init", fmt.Sprintf("Loaded %d glyphs in %d groups", deps.Index.GlyphCount(), deps.Index.Len()), "success")
	return gui, nil
}

// newGuiState builds the GUI state without a terminal.
func newGuiState(cfg *config.Config, deps Deps, version string) *Gui {
	gui := &Gui{
		config:        cfg,
		version:       version,
		theme:         NewTheme(cfg.UI.Theme),
		source:        deps.Source,
		index:         deps.Index,
		searcher:      catalog.NewSearcher(deps.Index),
		exporter:      deps.Exporter,
		renderer:      deps.Renderer,
		groups:        deps.Index.Groups(),
		transparent:   cfg.Icons.Transparent,
		currentColumn: panelIcons,
	}

	gui.views.background = "background"
	gui.views.icons = panelIcons
	gui.views.names = panelNames
	gui.views.preview = panelPreview
	gui.views.commands = "commands"
	gui.views.help = "help"
	gui.views.modal = "modal"
	gui.views.helpModal = "helpModal"

	// Rounded frame characters: ─ │ ╭ ╮ ╰ ╯
	gui.roundedFrameRunes = []rune{'─', '│', '╭', '╮', '╰', '╯'}
	return gui
}

func (g *Gui) applyFrameColors() {
	g.g.FrameColor = g.theme.InactiveBorderColor
	g.g.SelFrameColor = g.theme.ActiveBorderColor
	g.g.SelFgColor = g.theme.ActiveBorderColor
}

func (g *Gui) getActiveColorCode() string {
	return g.theme.GetAnsiColorCode()
}

func (g *Gui) logCommand(command, description, status string) {
	g.commandHistory = append(g.commandHistory, CommandExecution{
		Timestamp:   time.Now().Format("15:04:05"),
		Command:     command,
		Description: description,
		Status:      status,
	})

	if len(g.commandHistory) > maxCommandHistory {
		g.commandHistory = g.commandHistory[1:]
	}
}

// OnConfigChange is the config.Watch callback. It may be called from any
// goroutine.
func (g *Gui) OnConfigChange(cfg *config.Config, err error) {
	g.update(func() {
		if err != nil {
			g.logCommand("config", fmt.Sprintf("Reload failed: %v", err), "error")
			return
		}
		g.applyConfig(cfg)
		if g.g != nil {
			g.applyFrameColors()
		}
		g.logCommand("config", "Configuration reloaded", "success")
	})
}

// applyConfig swaps in a new configuration. Export colors are read from it
// on the next export and preview; the transparency toggle is kept.
func (g *Gui) applyConfig(cfg *config.Config) {
	g.config = cfg
	g.theme = NewTheme(cfg.UI.Theme)
	g.clearPreviewCache()
}

// colors resolves the configured export colors.
func (g *Gui) colors() (fg, bg color.NRGBA, err error) {
	fg, err = raster.ParseColor(g.config.Icons.Foreground)
	if err != nil {
		return fg, bg, errors.Wrap(err, "icons.foreground")
	}
	bg, err = raster.ParseColor(g.config.Icons.Background)
	if err != nil {
		return fg, bg, errors.Wrap(err, "icons.background")
	}
	return fg, bg, nil
}

func (g *Gui) Run() error {
	defer g.g.Close()

	// Start spinner animation ticker
	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			g.spinnerFrame.Inc()
			if g.isAnyLoading() {
				g.g.Update(func(gui *gocui.Gui) error {
					return nil
				})
			}
		}
	}()

	if err := g.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

// refresh redraws the screen. Without a terminal only the state changes.
func (g *Gui) refresh() error {
	if g.g == nil {
		return nil
	}
	return g.Layout(g.g)
}

// update runs fn on the UI goroutine, or inline without a terminal.
func (g *Gui) update(fn func()) {
	if g.g == nil {
		fn()
		return
	}
	g.g.Update(func(*gocui.Gui) error {
		fn()
		return nil
	})
}

// background runs fn on its own goroutine, or inline without a terminal.
func (g *Gui) background(fn func()) {
	if g.g == nil {
		fn()
		return
	}
	go fn()
}

func (g *Gui) clearPreviewCache() {
	g.cachedPreview = ""
	g.cachedPreviewKey = previewKey{}
	g.previewViewDirty = true
	g.previewScrollPos = 0
}

// getLoadingText returns formatted loading text with animated spinner
func (g *Gui) getLoadingText(text string) string {
	frame := g.spinnerFrame.Load()
	spinner := spinnerFrames[frame%uint32(len(spinnerFrames))]
	return fmt.Sprintf("\033[33m%s %s\033[0m", spinner, text)
}

// isAnyLoading returns true if a search or an export is running
func (g *Gui) isAnyLoading() bool {
	return g.searching.Load() || g.exporting.Load()
}
