// Command opticview shows the 3-D layout of an optical assembly in a
// window and exports rendered views.
//
//	opticview                      # open the viewer
//	opticview export -o view.png   # render one frame to PNG
//	opticview export -b archive -o view.optv
//	opticview inspect view.optv    # summarize an archived frame
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/scene"
)

// config is the flag set shared by every subcommand.
type config struct {
	optionsPath  string
	settingsPath string
	width        int
	height       int
	parallax     float64
	lang         string
	verbose      bool

	// parallaxSet records an explicit --parallax, which may be zero.
	parallaxSet bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}
	root := &cobra.Command{
		Use:           "opticview",
		Short:         "Interactive 3-D layout view of an optical assembly",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg.parallaxSet = cmd.Flags().Changed("parallax")
			level := slog.LevelInfo
			if cfg.verbose {
				level = slog.LevelDebug
			}
			optiview.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runViewer(cfg)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&cfg.optionsPath, "options", "c", "", "options file (TOML); watched for changes by the viewer")
	f.StringVarP(&cfg.settingsPath, "settings", "s", "", "view settings file (TOML); restored at start, saved after each gesture")
	f.IntVar(&cfg.width, "width", 0, "panel width in pixels (overrides options)")
	f.IntVar(&cfg.height, "height", 0, "panel height in pixels (overrides options)")
	f.Float64Var(&cfg.parallax, "parallax", 0, "anaglyph parallax per pixel of depth (overrides options)")
	f.StringVar(&cfg.lang, "lang", "en", "language for the cursor read-out")
	f.BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newExportCmd(cfg), newInspectCmd())
	return root
}

// options loads the options file, if any, and applies flag overrides.
func (c *config) options() (optiview.Options, error) {
	o := optiview.DefaultOptions()
	if c.optionsPath != "" {
		var err error
		if o, err = optiview.LoadOptions(c.optionsPath); err != nil {
			return o, err
		}
	}
	c.override(&o)
	return o, o.Validate()
}

func (c *config) override(o *optiview.Options) {
	if c.width > 0 {
		o.Width = c.width
	}
	if c.height > 0 {
		o.Height = c.height
	}
	if c.parallaxSet {
		o.Parallax = c.parallax
	}
}

func (c *config) language() language.Tag {
	tag, err := language.Parse(c.lang)
	if err != nil {
		optiview.Logger().Warn("opticview: unknown language, using English", "lang", c.lang)
		return language.English
	}
	return tag
}

// newLayout builds the layout of the demo assembly and restores saved
// view settings when a settings file exists.
func (c *config) newLayout(o optiview.Options) (*scene.Layout, error) {
	l, err := scene.NewLayout(scene.Demo(), o)
	if err != nil {
		return nil, err
	}
	if c.settingsPath == "" {
		return l, nil
	}
	s, err := loadSettings(c.settingsPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("opticview: %w", err)
	default:
		if err := l.Apply(s); err != nil {
			return nil, err
		}
	}
	l.OnPersist = func(s scene.Settings) {
		if err := saveSettings(c.settingsPath, s); err != nil {
			optiview.Logger().Warn("opticview: save settings", "err", err)
		}
	}
	return l, nil
}
