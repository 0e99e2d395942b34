package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"kestrel/pkg/css"
	"kestrel/pkg/dom"
	"kestrel/pkg/layout"
	"kestrel/pkg/text"
)

// config is the optional TOML configuration file.
type config struct {
	Viewport struct {
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
	} `toml:"viewport"`
	Fonts text.FontConfig `toml:"fonts"`
}

func defaultConfig() config {
	var c config
	c.Viewport.Width = 800
	c.Viewport.Height = 600
	return c
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool

		width, height    float64
		scrollX, scrollY float64
		extraCSS         string
		showStacking     bool
	)

	root := &cobra.Command{
		Use:           "kestrel",
		Short:         "HTML/CSS layout engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	layoutCmd := &cobra.Command{
		Use:   "layout <file.html>",
		Short: "Lay out a document and print the box tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(os.Stderr)
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}

			cfg := defaultConfig()
			if configPath != "" {
				if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			if cmd.Flags().Changed("width") {
				cfg.Viewport.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Viewport.Height = height
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := dom.Parse(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			var rules []css.StyleRule
			for _, sheet := range doc.Stylesheets {
				rules = append(rules, css.ParseRules(sheet)...)
			}
			if extraCSS != "" {
				sheet, err := os.ReadFile(extraCSS)
				if err != nil {
					return fmt.Errorf("read stylesheet: %w", err)
				}
				rules = append(rules, css.ParseRules(string(sheet))...)
			}
			logger.Debug("stylesheets parsed", "rules", len(rules))

			var measurer text.Measurer = text.FixedMeasurer{}
			if cfg.Fonts.Regular != "" {
				measurer = text.NewFaceMeasurer(cfg.Fonts)
			}

			engine := layout.NewEngine(cfg.Viewport.Width, cfg.Viewport.Height, measurer)
			engine.SetLogger(logger)
			engine.SetScroll(scrollX, scrollY)

			boxRoot, stacking := engine.LayoutDocument(doc, rules)
			fmt.Print(layout.DumpTree(boxRoot))
			if showStacking {
				fmt.Print(layout.DumpStacking(stacking))
			}
			return nil
		},
	}
	layoutCmd.Flags().Float64Var(&width, "width", 800, "viewport width")
	layoutCmd.Flags().Float64Var(&height, "height", 600, "viewport height")
	layoutCmd.Flags().Float64Var(&scrollX, "scroll-x", 0, "horizontal scroll offset")
	layoutCmd.Flags().Float64Var(&scrollY, "scroll-y", 0, "vertical scroll offset")
	layoutCmd.Flags().StringVar(&extraCSS, "css", "", "additional stylesheet file")
	layoutCmd.Flags().BoolVar(&showStacking, "stacking", false, "also print the stacking tree")

	root.AddCommand(layoutCmd)
	return root
}
