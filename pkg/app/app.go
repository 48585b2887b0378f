// Package app is the main application entry point for LazyIcons.
// It coordinates configuration, the glyph catalog, the exporter and either
// the GUI or one of the command line commands.
package app

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/marjoballabani/lazyicons/pkg/catalog"
	"github.com/marjoballabani/lazyicons/pkg/config"
	"github.com/marjoballabani/lazyicons/pkg/export"
	"github.com/marjoballabani/lazyicons/pkg/glyph"
	"github.com/marjoballabani/lazyicons/pkg/gui"
	"github.com/marjoballabani/lazyicons/pkg/ico"
	"github.com/marjoballabani/lazyicons/pkg/raster"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BuildInfo contains version information set at compile time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage error")

const usage = `Usage:
  lazyicons [flags]                     browse glyphs in the terminal UI
  lazyicons list [query] [--jq EXPR]    print matching glyph groups
  lazyicons export NAME [-o FILE]       write one glyph as an .ico file
  lazyicons export-all [-o DIR]         write every glyph as DIR/<name>.ico
  lazyicons inspect FILE                print the image directory of an .ico file

Flags:
`

// App is the main application struct that holds all components.
type App struct {
	buildInfo *BuildInfo
	config    *config.Config
	viper     *viper.Viper
	fs        afero.Fs
	stdout    io.Writer
	stderr    io.Writer

	source   glyph.Source
	index    *catalog.Index
	renderer *raster.Renderer
	exporter *export.Exporter
}

// options are the parsed command line flags.
type options struct {
	version         bool
	foreground      string
	background      string
	transparent     bool
	sizes           []int
	glyphs          string
	output          string
	jq              string
	continueOnError bool
}

// NewApp creates a new App instance with the given build information.
// It loads configuration but does not load glyphs or start the GUI yet.
func NewApp(buildInfo *BuildInfo) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	app := newApp(buildInfo, cfg, afero.NewOsFs(), os.Stdout, os.Stderr)
	app.viper = viper.GetViper()
	return app, nil
}

func newApp(buildInfo *BuildInfo, cfg *config.Config, fs afero.Fs, stdout, stderr io.Writer) *App {
	return &App{
		buildInfo: buildInfo,
		config:    cfg,
		fs:        fs,
		stdout:    stdout,
		stderr:    stderr,
	}
}

// Run parses args (without the program name) and runs the selected command.
// Without a command it runs the GUI and blocks until the user quits.
func (app *App) Run(args []string) error {
	flags, opts := newFlagSet(app.stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return errors.Wrap(ErrUsage, err.Error())
	}

	if opts.version {
		fmt.Fprintf(app.stdout, "lazyicons %s (commit %s, built %s)\n", app.buildInfo.Version, app.buildInfo.Commit, app.buildInfo.Date)
		return nil
	}

	app.applyFlags(flags, opts)
	if err := app.init(); err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return app.runGUI()
	}

	command, params := rest[0], rest[1:]
	switch command {
	case "list":
		if len(params) > 1 {
			return errors.Wrap(ErrUsage, "list takes at most one query")
		}
		return app.list(strings.Join(params, ""), opts.jq)
	case "export":
		if len(params) != 1 {
			return errors.Wrap(ErrUsage, "export takes exactly one glyph name")
		}
		return app.exportOne(glyph.ID(params[0]), opts.output)
	case "export-all":
		if len(params) != 0 {
			return errors.Wrap(ErrUsage, "export-all takes no arguments")
		}
		return app.exportAll(opts.output)
	case "inspect":
		if len(params) != 1 {
			return errors.Wrap(ErrUsage, "inspect takes exactly one file")
		}
		return app.inspect(params[0])
	default:
		return errors.Wrapf(ErrUsage, "unknown command %q", command)
	}
}

func newFlagSet(out io.Writer) (*pflag.FlagSet, *options) {
	opts := &options{}
	flags := pflag.NewFlagSet("lazyicons", pflag.ContinueOnError)
	flags.SetOutput(out)
	flags.Usage = func() {
		fmt.Fprint(out, usage)
		flags.PrintDefaults()
	}

	flags.BoolVarP(&opts.version, "version", "v", false, "print version and exit")
	flags.StringVar(&opts.foreground, "fg", "", "glyph color (#rrggbb, #rrggbbaa or a color name)")
	flags.StringVar(&opts.background, "bg", "", "background color")
	flags.BoolVar(&opts.transparent, "transparent", false, "use a transparent background")
	flags.IntSliceVar(&opts.sizes, "sizes", nil, "icon sizes, e.g. 16,32,48")
	flags.StringVar(&opts.glyphs, "glyphs", "", "glyph set YAML file (default: built-in set)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (export) or directory (export-all)")
	flags.StringVar(&opts.jq, "jq", "", "jq expression applied to the list output")
	flags.BoolVar(&opts.continueOnError, "continue-on-error", false, "export-all: keep going after a failed glyph")
	return flags, opts
}

// applyFlags overrides configuration values with flags set on the command line.
func (app *App) applyFlags(flags *pflag.FlagSet, opts *options) {
	icons := &app.config.Icons
	if flags.Changed("fg") {
		icons.Foreground = opts.foreground
	}
	if flags.Changed("bg") {
		icons.Background = opts.background
	}
	if flags.Changed("transparent") {
		icons.Transparent = opts.transparent
	}
	if flags.Changed("sizes") {
		icons.Sizes = opts.sizes
	}
	if flags.Changed("continue-on-error") {
		icons.ContinueOnError = opts.continueOnError
	}
	if flags.Changed("glyphs") {
		app.config.Glyphs.File = opts.glyphs
	}
}

// init loads the glyph source and builds the index and exporter.
func (app *App) init() error {
	source, err := app.loadGlyphs()
	if err != nil {
		return err
	}

	app.source = source
	app.index = catalog.Build(source)
	app.renderer = raster.NewRenderer()
	app.exporter = export.New(source, app.renderer)
	app.exporter.Fs = app.fs
	if len(app.config.Icons.Sizes) > 0 {
		app.exporter.Sizes = app.config.Icons.Sizes
	}
	app.exporter.ContinueOnError = app.config.Icons.ContinueOnError
	return nil
}

func (app *App) loadGlyphs() (*glyph.Set, error) {
	if file := app.config.Glyphs.File; file != "" {
		return glyph.LoadFs(app.fs, config.ExpandPath(file))
	}
	return glyph.Default()
}

func (app *App) runGUI() error {
	g, err := gui.NewGui(app.config, gui.Deps{
		Source:   app.source,
		Index:    app.index,
		Exporter: app.exporter,
		Renderer: app.renderer,
	}, app.buildInfo.Version)
	if err != nil {
		return errors.Wrap(err, "failed to initialize GUI")
	}

	if app.viper != nil && app.viper.ConfigFileUsed() != "" {
		config.Watch(app.viper, g.OnConfigChange)
	}
	return g.Run()
}

// list prints the groups matching query, one per line, or the jq results
// over their JSON form.
func (app *App) list(query, jq string) error {
	groups := app.index.Search(query)

	if jq != "" {
		results, err := catalog.Query(jq, catalog.Values(groups))
		for _, result := range results {
			data, merr := json.MarshalIndent(result, "", "  ")
			if merr != nil {
				return errors.Wrap(merr, "failed to format jq result")
			}
			fmt.Fprintln(app.stdout, string(data))
		}
		return err
	}

	for _, group := range groups {
		names := make([]string, len(group.IDs))
		for i, id := range group.IDs {
			names[i] = string(id)
		}
		fmt.Fprintf(app.stdout, "%-24s %s\n", group.Key, strings.Join(names, ", "))
	}
	return nil
}

func (app *App) colors() (fg, bg color.NRGBA, err error) {
	if fg, err = raster.ParseColor(app.config.Icons.Foreground); err != nil {
		return fg, bg, errors.Wrap(err, "foreground")
	}
	if bg, err = raster.ParseColor(app.config.Icons.Background); err != nil {
		return fg, bg, errors.Wrap(err, "background")
	}
	return fg, bg, nil
}

// exportOne writes id to output. Without -o the file goes to the configured
// output directory, which is created if needed.
func (app *App) exportOne(id glyph.ID, output string) error {
	fg, bg, err := app.colors()
	if err != nil {
		return err
	}

	if output == "" {
		dir := config.ExpandPath(app.config.Icons.OutputDir)
		if err := app.exporter.EnsureDir(dir); err != nil {
			return err
		}
		output = filepath.Join(dir, string(id)+export.Extension)
	}

	app.exporter.OnEvent = app.reportEvent
	return app.exporter.ExportOne(export.Request{
		ID:          id,
		Path:        output,
		Foreground:  fg,
		Background:  bg,
		Transparent: app.config.Icons.Transparent,
	})
}

func (app *App) exportAll(output string) error {
	fg, bg, err := app.colors()
	if err != nil {
		return err
	}

	dir := output
	if dir == "" {
		dir = config.ExpandPath(app.config.Icons.OutputDir)
	}

	app.exporter.OnEvent = app.reportEvent
	written, err := app.exporter.ExportAll(dir, bg, fg, app.config.Icons.Transparent)
	fmt.Fprintf(app.stderr, "exported %d of %d glyphs to %s\n", written, len(app.source.Entries()), dir)
	return err
}

// reportEvent prints one status line per attempted file.
func (app *App) reportEvent(ev export.Event) {
	if ev.Err != nil {
		fmt.Fprintf(app.stderr, "failed %s: %v\n", ev.ID, ev.Err)
		return
	}
	fmt.Fprintf(app.stderr, "saved %s\n", ev.Path)
}

func (app *App) inspect(path string) error {
	data, err := afero.ReadFile(app.fs, path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	entries, err := ico.ReadDirectory(data)
	if err != nil {
		return errors.Wrap(err, path)
	}

	fmt.Fprintf(app.stdout, "%s: %d images, %d bytes\n", path, len(entries), len(data))
	for _, e := range entries {
		fmt.Fprintf(app.stdout, "  %3dx%-3d  %2d bpp  %7d bytes at offset %d\n", e.Width, e.Height, e.BitsPerPixel, e.Size, e.Offset)
	}
	return nil
}
