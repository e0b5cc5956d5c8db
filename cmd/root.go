// Package cmd implements the chatwrap CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/client"
	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/dashboard"
	"github.com/theirongolddev/chatwrap/internal/logger"
	"github.com/theirongolddev/chatwrap/internal/pipeline"
	"github.com/theirongolddev/chatwrap/internal/store"
	"github.com/theirongolddev/chatwrap/internal/theme"
)

var (
	flagOutDir  string
	flagConfig  string
	flagServer  string
	flagYear    int
	flagQuiet   bool
	flagNoCache bool
)

var rootCmd = &cobra.Command{
	Use:   "chatwrap",
	Short: "Claude conversation year-in-review",
	Long:  "Turn exported Claude conversation artifacts into a year-in-review dashboard, in the terminal or the browser.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagQuiet {
			logger.Discard()
		} else {
			logger.Setup(os.Stderr, logger.Text)
		}
	},
	RunE:         runSummary,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutDir, "out-dir", "o", "", "Artifact directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Read from a running chatwrap server instead of local files")
	rootCmd.PersistentFlags().IntVar(&flagYear, "year", 0, "Calendar year to show (default: latest with data)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress log output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite parse cache")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return cfg, err
	}
	if flagOutDir != "" {
		cfg.General.OutDir = flagOutDir
	}
	if flagYear != 0 {
		cfg.General.Year = flagYear
	}
	theme.SetActive(cfg.Appearance.Theme)
	return cfg, nil
}

// openArtifacts wires the local artifact reader with the parse cache unless
// it is disabled. The returned cleanup closes the cache.
func openArtifacts(cfg config.Config) (*pipeline.Artifacts, func(), error) {
	var cache *store.Cache
	if cfg.Cache.Enabled && !flagNoCache {
		c, err := store.Open(pipeline.CachePath())
		if err != nil {
			slog.Warn("cache unavailable, parsing without it", "err", err)
		} else {
			cache = c
		}
	}
	cleanup := func() {
		if cache != nil {
			_ = cache.Close()
		}
	}

	arts, err := pipeline.NewArtifacts(cfg, cache)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return arts, cleanup, nil
}

// newSource returns the dashboard input source: a server client with
// --server, local artifacts otherwise.
func newSource(cfg config.Config) (dashboard.Source, func(), error) {
	if flagServer != "" {
		return client.New(flagServer, cfg.Location()), func() {}, nil
	}
	return openArtifacts(cfg)
}

func dashboardOptions(cfg config.Config) dashboard.Options {
	return dashboard.Options{Loc: cfg.Location(), Year: cfg.General.Year}
}

// loadView is the shared data path of the report commands.
func loadView(opts func(*dashboard.Options)) (dashboard.View, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return dashboard.View{}, cfg, err
	}
	src, cleanup, err := newSource(cfg)
	if err != nil {
		return dashboard.View{}, cfg, err
	}
	defer cleanup()

	o := dashboardOptions(cfg)
	if opts != nil {
		opts(&o)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return dashboard.Build(ctx, src, o), cfg, nil
}

func printEmpty(v dashboard.View) bool {
	if v.Conversations > 0 {
		return false
	}
	fmt.Println("\n  No conversations found.")
	fmt.Println("  Run the analysis pipeline first, or point --out-dir at its output.")
	return true
}
