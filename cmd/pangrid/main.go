// Command pangrid opens a pannable, animated grid gallery window.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/phanxgames/pangrid"
	"github.com/phanxgames/pangrid/internal/config"
	"github.com/phanxgames/pangrid/internal/content"
	"github.com/phanxgames/pangrid/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// placeholderItems is the number of generated items when no content file is
// configured.
const placeholderItems = 48

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "pangrid [content.yaml]",
		Short: "Pannable animated grid gallery",
		Long: `pangrid shows a large grid of items that can be dragged and scrolled,
with items fading in and out as they enter and leave the window. Clicking an
item slides the grid aside and opens its description.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			if err := config.Init(v, cfgFile); err != nil {
				return err
			}
			if len(args) == 1 {
				v.Set("content", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./pangrid.yaml)")
	f.Int("width", 0, "window width")
	f.Int("height", 0, "window height")
	f.Int("columns", 0, "grid columns")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-format", "", "log format (text, json)")
	f.Bool("debug", false, "show the debug overlay")
	f.Bool("fps", false, "show the FPS counter")
	f.String("script", "", "JSON test script to run")
	f.String("screenshot-dir", "", "directory for test script screenshots")
	f.Uint64("seed", 0, "seed for the intro stagger (0 picks one)")

	return cmd
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"window.width":   "width",
	"window.height":  "height",
	"grid.columns":   "columns",
	"log.level":      "log-level",
	"log.format":     "log-format",
	"debug":          "debug",
	"show_fps":       "fps",
	"script":         "script",
	"screenshot_dir": "screenshot-dir",
	"seed":           "seed",
}

// bindFlags binds every flag in flagKeys to v. A missing flag is an error.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("bind %s: no flag --%s", key, name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	var entries []pangrid.Content
	var preload *pangrid.Preloader
	if cfg.Content != "" {
		m, err := content.Load(cfg.Content)
		if err != nil {
			return err
		}
		entries = m.Items
		if paths := m.ImagePaths(); len(paths) > 0 {
			preload = pangrid.Preload(ctx, m.FS(), paths)
		}
		log.Info("content loaded", slog.String("path", cfg.Content), slog.Int("items", len(entries)))
	} else {
		entries = content.Placeholder(placeholderItems)
		log.Info("no content file, using placeholders", slog.Int("items", len(entries)))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Debug("intro seed", slog.Uint64("seed", seed))

	g, err := pangrid.NewGallery(entries, pangrid.Config{
		Layout:        cfg.Grid.Layout(),
		Viewport:      pangrid.Size{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)},
		Logger:        log,
		Rand:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Background:    pangrid.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
		Preload:       preload,
		ShowFPS:       cfg.ShowFPS,
		Debug:         cfg.Debug,
		ScreenshotDir: cfg.ScreenshotDir,
	})
	if err != nil {
		return err
	}

	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := pangrid.LoadTestScript(data)
		if err != nil {
			return err
		}
		g.SetTestRunner(runner)
	}

	return pangrid.Run(g, pangrid.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: true,
	})
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "pangrid:", err)
		os.Exit(1)
	}
}
