// Package config handles loading and parsing of LazyIcons configuration.
// Configuration is loaded from ~/.lazyicons/config.yaml or ./config.yaml
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// DirName is the configuration directory inside the user's home.
const DirName = ".lazyicons"

// Config is the root configuration structure for LazyIcons.
type Config struct {
	UI     UIConfig     `mapstructure:"ui"`
	Icons  IconsConfig  `mapstructure:"icons"`
	Glyphs GlyphsConfig `mapstructure:"glyphs"`
}

// UIConfig contains user interface configuration options.
type UIConfig struct {
	// NerdFontsVersion is "2", "3" or empty to disable icons
	NerdFontsVersion string      `mapstructure:"nerdFontsVersion"`
	ShowIcons        bool        `mapstructure:"showIcons"`
	Theme            ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig defines the color scheme for the terminal UI.
// Colors can be specified as:
//   - Named colors: "cyan", "blue", "red", "green", "yellow", "magenta", "white", "black", "default"
//   - Hex colors: "#ed8796"
//   - 256-color numbers: "0" to "255"
//   - Attributes: "bold", "underline", "reverse"
//
// A comma separated string such as "cyan,bold" is accepted as well.
type ThemeConfig struct {
	// ActiveBorderColor is the color of the focused panel's border and title
	ActiveBorderColor []string `mapstructure:"activeBorderColor"`
	// InactiveBorderColor is the color of unfocused panel borders
	InactiveBorderColor []string `mapstructure:"inactiveBorderColor"`
	// OptionsTextColor is the color of help text in the footer
	OptionsTextColor []string `mapstructure:"optionsTextColor"`
	// SelectedLineBgColor is the background color of the highlighted row
	SelectedLineBgColor []string `mapstructure:"selectedLineBgColor"`
	// FilterBorderColor is the border color of a panel while it is filtered
	FilterBorderColor []string `mapstructure:"filterBorderColor"`
}

// IconsConfig holds the export defaults. Colors use the syntax of
// raster.ParseColor.
type IconsConfig struct {
	Foreground      string `mapstructure:"foreground"`
	Background      string `mapstructure:"background"`
	Transparent     bool   `mapstructure:"transparent"`
	Sizes           []int  `mapstructure:"sizes"`
	OutputDir       string `mapstructure:"outputDir"`
	ContinueOnError bool   `mapstructure:"continueOnError"`
}

// GlyphsConfig selects the glyph catalog.
type GlyphsConfig struct {
	// File is a glyph set YAML document. Empty means the built-in set.
	File string `mapstructure:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		UI: UIConfig{
			NerdFontsVersion: "3",
			ShowIcons:        true,
			Theme: ThemeConfig{
				ActiveBorderColor:   []string{"cyan", "bold"},
				InactiveBorderColor: []string{"default"},
				OptionsTextColor:    []string{"cyan"},
				SelectedLineBgColor: []string{"blue"},
				FilterBorderColor:   []string{"yellow"},
			},
		},
		Icons: IconsConfig{
			Foreground:  "#673ab7",
			Background:  "#fafafa",
			Transparent: true,
			Sizes:       []int{16, 24, 32, 48, 64, 128, 256},
			OutputDir:   filepath.Join(home, "Downloads", "lazyicons"),
		},
	}
}

// LoadConfig loads configuration from file or returns defaults.
// It searches for config.yaml in ~/.lazyicons/ and the current directory.
func LoadConfig() (*Config, error) {
	config := Default()

	// Create config directory if it doesn't exist
	home, err := os.UserHomeDir()
	if err != nil {
		return config, nil
	}

	configDir := filepath.Join(home, DirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return config, nil
	}

	return Load(viper.GetViper(), configDir, ".")
}

// Load reads config.yaml from the first of dirs that has one, using v and
// its filesystem. Missing files yield the defaults.
func Load(v *viper.Viper, dirs ...string) (*Config, error) {
	config := Default()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return config, nil
		}
		return config, errors.Wrap(err, "failed to read config")
	}

	if err := decode(v, config); err != nil {
		return config, err
	}
	return config, nil
}

// Reload decodes the current contents of v over the defaults.
func Reload(v *viper.Viper) (*Config, error) {
	config := Default()
	if err := decode(v, config); err != nil {
		return config, err
	}
	return config, nil
}

// Watch calls fn with the freshly decoded configuration every time the
// config file loaded into v changes. Decoding errors are passed along with
// the previous defaults.
func Watch(v *viper.Viper, fn func(*Config, error)) {
	v.OnConfigChange(func(fsnotify.Event) {
		fn(Reload(v))
	})
	v.WatchConfig()
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// NewViper returns an isolated viper instance reading from fs.
func NewViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	return v
}

func decode(v *viper.Viper, config *Config) error {
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToIntSliceHook(),
		mapstructure.StringToSliceHookFunc(","),
	))
	// Lists from the file replace the defaults instead of overlaying them.
	replace := func(c *mapstructure.DecoderConfig) { c.ZeroFields = true }
	if err := v.Unmarshal(config, hook, replace); err != nil {
		return errors.Wrap(err, "failed to decode config")
	}
	return nil
}

// stringToIntSliceHook turns "16, 32 48" into []int{16, 32, 48}.
func stringToIntSliceHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf([]int{}) {
			return data, nil
		}
		fields := strings.FieldsFunc(data.(string), func(r rune) bool {
			return r == ',' || r == ' '
		})
		sizes, err := cast.ToIntSliceE(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid size list %q", data)
		}
		return sizes, nil
	}
}
