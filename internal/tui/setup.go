package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/chatwrap/internal/config"
	"github.com/theirongolddev/chatwrap/internal/theme"
)

// setupValues holds the first-run form bindings.
type setupValues struct {
	outDir   string
	theme    string
	webTheme string
	timezone string
}

func setupValuesFrom(cfg config.Config) setupValues {
	return setupValues{
		outDir:   cfg.General.OutDir,
		theme:    cfg.Appearance.Theme,
		webTheme: cfg.Appearance.WebTheme,
		timezone: cfg.General.Timezone,
	}
}

func themeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		opts[i] = huh.NewOption(t.Name, t.Name)
	}
	return opts
}

func validateTimezone(s string) error {
	if _, err := time.LoadLocation(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("unknown time zone %q", s)
	}
	return nil
}

func validateOutDir(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("output directory is required")
	}
	return nil
}

// newSetupForm builds the first-run wizard shown after the initial load.
func newSetupForm(conversations int, vals *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to chatwrap").
				Description(fmt.Sprintf("Found %d conversations. A few settings and you are done.", conversations)),
			huh.NewInput().
				Title("Artifact directory").
				Description("Where the pipeline writes conversation.csv and the JSON summaries").
				Value(&vals.outDir).
				Validate(validateOutDir),
			huh.NewInput().
				Title("Time zone").
				Description("IANA name used for the calendar and hourly counts").
				Value(&vals.timezone).
				Validate(validateTimezone),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Terminal theme").
				Options(themeOptions()...).
				Value(&vals.theme),
			huh.NewSelect[string]().
				Title("Web and export theme").
				Options(themeOptions()...).
				Value(&vals.webTheme),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
}

// saveSetupConfig writes the form values over the current config.
func (a App) saveSetupConfig() (config.Config, error) {
	return saveSetup(a.cfg, *a.setupVals)
}

// RunSetup runs the setup form outside the dashboard and saves the result.
func RunSetup(cfg config.Config, conversations int) (config.Config, error) {
	vals := setupValuesFrom(cfg)
	if err := newSetupForm(conversations, &vals).Run(); err != nil {
		return cfg, err
	}
	return saveSetup(cfg, vals)
}

func saveSetup(cfg config.Config, vals setupValues) (config.Config, error) {
	prev := cfg
	cfg.General.OutDir = strings.TrimSpace(vals.outDir)
	cfg.General.Timezone = strings.TrimSpace(vals.timezone)
	cfg.Appearance.Theme = vals.theme
	cfg.Appearance.WebTheme = vals.webTheme

	if err := cfg.Validate(); err != nil {
		return prev, err
	}
	if err := config.Save(cfg); err != nil {
		return prev, fmt.Errorf("saving config: %w", err)
	}
	theme.SetActive(cfg.Appearance.Theme)
	return cfg, nil
}
