package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		// A broken config file is exactly what setup is for.
		cfg = config.DefaultConfig()
	}

	conversations := 0
	if arts, cleanup, err := openArtifacts(cfg); err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if records, err := arts.Conversations(ctx); err == nil {
			conversations = len(records)
		}
		cancel()
		cleanup()
	}

	if _, err := tui.RunSetup(cfg, conversations); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `chatwrap setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
