package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/chatwrap/internal/logger"
	"github.com/theirongolddev/chatwrap/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Log lines would draw over the alt screen.
	logger.Discard()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, cleanup, err := newSource(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Force TrueColor so every background style produces ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		Source:    src,
		Dashboard: dashboardOptions(cfg),
		Config:    cfg,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
