package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// loadDotEnv loads the first .env file found. Variables already present in
// the environment win over the file.
func loadDotEnv() {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func envPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	paths = append(paths, filepath.Join(ConfigDir(), ".env"))
	return paths
}

// applyEnv overrides file settings with CHATWRAP_* variables.
func applyEnv(cfg *Config) {
	cfg.General.OutDir = getEnvString("CHATWRAP_OUT_DIR", cfg.General.OutDir)
	cfg.General.Timezone = getEnvString("CHATWRAP_TIMEZONE", cfg.General.Timezone)
	cfg.General.Year = getEnvInt("CHATWRAP_YEAR", cfg.General.Year)
	cfg.Server.Addr = getEnvString("CHATWRAP_ADDR", cfg.Server.Addr)
	cfg.Patterns.Source = getEnvString("CHATWRAP_PATTERNS_SOURCE", cfg.Patterns.Source)
	cfg.Tokens.Source = getEnvString("CHATWRAP_TOKENS_SOURCE", cfg.Tokens.Source)
	cfg.Appearance.Theme = getEnvString("CHATWRAP_THEME", cfg.Appearance.Theme)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
