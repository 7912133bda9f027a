// Package config loads application settings from an optional JSON config
// file, with sensible defaults when no file exists.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the editor-wide settings.
type Config struct {
	LogLevel   string  `json:"logLevel" mapstructure:"logLevel"`
	ArenaWidth float64 `json:"arenaWidth" mapstructure:"arenaWidth"` // x extent of the arena floor
	ArenaDepth float64 `json:"arenaDepth" mapstructure:"arenaDepth"` // z extent of the arena floor
	OutputDir  string  `json:"outputDir" mapstructure:"outputDir"`
}

// DefaultConfigDir returns the directory searched for the config file,
// ~/.arenaforge by default.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".arenaforge")
}

// defaultConfig returns the settings used when no config file applies.
func defaultConfig() Config {
	return Config{
		LogLevel:   "info",
		ArenaWidth: 40,
		ArenaDepth: 40,
		OutputDir:  ".",
	}
}

// Load reads configuration from arenaforge.cfg.json inside configDir and
// returns the resulting settings. A missing file is not an error; the
// defaults apply. On a malformed file the defaults are returned alongside
// the error, so callers that only log the failure still hold usable settings.
func Load(configDir string) (Config, error) {
	v := viper.New()

	def := defaultConfig()
	v.SetDefault("logLevel", def.LogLevel)
	v.SetDefault("arenaWidth", def.ArenaWidth)
	v.SetDefault("arenaDepth", def.ArenaDepth)
	v.SetDefault("outputDir", def.OutputDir)

	v.SetConfigName("arenaforge.cfg.json")
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return def, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
