package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	fmt.Printf("  Config file: %s\n", path)
	if config.Exists() || flagConfig != "" {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Artifact directory: %s\n", cfg.General.OutDir)
	fmt.Printf("    Time zone:          %s\n", cfg.General.Timezone)
	if cfg.General.Year != 0 {
		fmt.Printf("    Year:               %d\n", cfg.General.Year)
	}
	fmt.Println()

	fmt.Println("  [Sources]")
	fmt.Printf("    Time patterns: %s\n", cfg.Patterns.Source)
	fmt.Printf("    Tokens:        %s\n", cfg.Tokens.Source)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:         %s\n", cfg.Server.Addr)
	fmt.Printf("    Watch artifacts: %v\n", cfg.Server.Watch)
	if len(cfg.Server.AllowedOrigins) > 0 {
		fmt.Printf("    CORS origins:    %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	} else {
		fmt.Println("    CORS origins:    *")
	}
	fmt.Printf("    Tracing:         %v\n", cfg.Server.Tracing)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Terminal theme: %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Web theme:      %s\n", cfg.Appearance.WebTheme)
	fmt.Printf("    Export zone:    %s\n", cfg.Export.Timezone)
	return nil
}
