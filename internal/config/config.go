// Package config loads chatwrap settings from TOML, .env files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata" // embedded zoneinfo

	"github.com/BurntSushi/toml"
)

// Pattern and token source names.
const (
	SourceConversations = "conversations"
	SourceFile          = "file"
	SourceSynthetic     = "synthetic"
	SourceStatic        = "static"
)

// Config holds all chatwrap configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Artifacts  ArtifactsConfig  `toml:"artifacts"`
	Patterns   PatternsConfig   `toml:"patterns"`
	Tokens     TokensConfig     `toml:"tokens"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Cache      CacheConfig      `toml:"cache"`
	Export     ExportConfig     `toml:"export"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	OutDir   string `toml:"out_dir"`
	Timezone string `toml:"timezone"`
	Year     int    `toml:"year,omitempty"`
}

// ArtifactsConfig names the pipeline output files inside OutDir.
type ArtifactsConfig struct {
	ClusterSummaries string `toml:"cluster_summaries"`
	DurationStats    string `toml:"duration_stats"`
	Conversations    string `toml:"conversations"`
	TimePatterns     string `toml:"time_patterns"`
	TokenStats       string `toml:"token_stats"`
}

// PatternsConfig selects where hourly and seasonal counts come from.
type PatternsConfig struct {
	Source string `toml:"source"`
	Seed   int64  `toml:"seed"`
}

// TokensConfig selects where token totals come from.
// Input, Output and Total are only read by the static source.
type TokensConfig struct {
	Source string `toml:"source"`
	Input  int64  `toml:"input,omitempty"`
	Output int64  `toml:"output,omitempty"`
	Total  int64  `toml:"total,omitempty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	AllowedOrigins  []string `toml:"allowed_origins,omitempty"`
	Watch           bool     `toml:"watch"`
	PollIntervalSec int      `toml:"poll_interval_sec"`
	EventsBuffer    int      `toml:"events_buffer"`
	Tracing         bool     `toml:"tracing"`
	ReadTimeoutSec  int      `toml:"read_timeout_sec"`
	WriteTimeoutSec int      `toml:"write_timeout_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme    string `toml:"theme"`
	WebTheme string `toml:"web_theme"`
}

// CacheConfig controls the conversation parse cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// ExportConfig controls image and page export.
type ExportConfig struct {
	Timezone string `toml:"timezone"`
}

// TUIConfig holds terminal dashboard preferences.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			OutDir:   "out",
			Timezone: "Asia/Shanghai",
		},
		Artifacts: ArtifactsConfig{
			ClusterSummaries: "cluster_summaries.json",
			DurationStats:    "duration_stats.json",
			Conversations:    "conversation.csv",
			TimePatterns:     "time_patterns.json",
			TokenStats:       "token_stats.json",
		},
		Patterns: PatternsConfig{Source: SourceConversations},
		Tokens:   TokensConfig{Source: SourceConversations},
		Server: ServerConfig{
			Addr:            "127.0.0.1:3000",
			Watch:           true,
			PollIntervalSec: 30,
			EventsBuffer:    200,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 30,
		},
		Appearance: AppearanceConfig{
			Theme:    "flexoki-dark",
			WebTheme: "dawn",
		},
		Cache:  CacheConfig{Enabled: true},
		Export: ExportConfig{Timezone: "Asia/Shanghai"},
		TUI:    TUIConfig{RefreshIntervalSec: 30},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatwrap")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chatwrap")
}

// CacheDir returns the XDG-compliant cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatwrap")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "chatwrap")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path, then applies .env files and
// environment overrides on top.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	loadDotEnv()
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Validate checks source names and time zones.
func (c Config) Validate() error {
	switch c.Patterns.Source {
	case SourceConversations, SourceFile, SourceSynthetic:
	default:
		return fmt.Errorf("unknown patterns source %q (want conversations, file or synthetic)", c.Patterns.Source)
	}
	switch c.Tokens.Source {
	case SourceConversations, SourceFile, SourceStatic:
	default:
		return fmt.Errorf("unknown tokens source %q (want conversations, file or static)", c.Tokens.Source)
	}
	if _, err := time.LoadLocation(c.General.Timezone); err != nil {
		return fmt.Errorf("general.timezone: %w", err)
	}
	if _, err := time.LoadLocation(c.Export.Timezone); err != nil {
		return fmt.Errorf("export.timezone: %w", err)
	}
	if c.General.OutDir == "" {
		return fmt.Errorf("general.out_dir must not be empty")
	}
	return nil
}

// Location returns the configured display time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ExportLocation returns the zone used for export filenames.
func (c Config) ExportLocation() *time.Location {
	loc, err := time.LoadLocation(c.Export.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
