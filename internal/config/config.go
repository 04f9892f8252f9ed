// Package config loads pangrid settings from defaults, an optional YAML
// file, PANGRID_ environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phanxgames/pangrid"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. PANGRID_LOG_LEVEL
// for log.level.
const EnvPrefix = "PANGRID"

// Config is the complete pangrid configuration.
type Config struct {
	Window        WindowConfig `mapstructure:"window"`
	Grid          GridConfig   `mapstructure:"grid"`
	Log           LogConfig    `mapstructure:"log"`
	Content       string       `mapstructure:"content"`
	Debug         bool         `mapstructure:"debug"`
	ShowFPS       bool         `mapstructure:"show_fps"`
	Script        string       `mapstructure:"script"`
	ScreenshotDir string       `mapstructure:"screenshot_dir"`
	Seed          uint64       `mapstructure:"seed"`
}

// WindowConfig controls the initial window.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// GridConfig controls the cell layout.
type GridConfig struct {
	Columns    int     `mapstructure:"columns"`
	CellWidth  float64 `mapstructure:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height"`
	Gap        float64 `mapstructure:"gap"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Layout converts the grid settings to a pangrid.GridLayout.
func (g GridConfig) Layout() pangrid.GridLayout {
	return pangrid.GridLayout{
		Columns:    g.Columns,
		CellWidth:  g.CellWidth,
		CellHeight: g.CellHeight,
		Gap:        g.Gap,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	l := pangrid.DefaultLayout
	return &Config{
		Window: WindowConfig{
			Title:  "pangrid",
			Width:  int(pangrid.DefaultViewport.W),
			Height: int(pangrid.DefaultViewport.H),
		},
		Grid: GridConfig{
			Columns:    l.Columns,
			CellWidth:  l.CellWidth,
			CellHeight: l.CellHeight,
			Gap:        l.Gap,
		},
		Log:           LogConfig{Level: "info", Format: "text"},
		ScreenshotDir: "screenshots",
	}
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)

	v.SetDefault("grid.columns", d.Grid.Columns)
	v.SetDefault("grid.cell_width", d.Grid.CellWidth)
	v.SetDefault("grid.cell_height", d.Grid.CellHeight)
	v.SetDefault("grid.gap", d.Grid.Gap)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("content", d.Content)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("show_fps", d.ShowFPS)
	v.SetDefault("script", d.Script)
	v.SetDefault("screenshot_dir", d.ScreenshotDir)
	v.SetDefault("seed", d.Seed)
}

// Init prepares v: defaults, the config file (cfgFile, or pangrid.yaml in
// the working directory), and environment overrides. A missing default
// file is not an error; a missing explicit file is.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pangrid")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	// PANGRID_GRID_CELL_WIDTH for grid.cell_width
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}
