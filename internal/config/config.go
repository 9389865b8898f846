// Package config loads and validates tracetide configuration via viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tracetide configuration
type Config struct {
	Pacing  PacingConfig  `mapstructure:"pacing"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Replay  ReplayConfig  `mapstructure:"replay"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PacingConfig controls the settle delay between turn-group transitions
type PacingConfig struct {
	// SettleIntervalMs is how long a turn-group transition is held, in
	// milliseconds, while the stream is still active
	SettleIntervalMs int `mapstructure:"settle_interval_ms"`
}

// SettleInterval returns the settle interval as a duration.
func (c *PacingConfig) SettleInterval() time.Duration {
	return time.Duration(c.SettleIntervalMs) * time.Millisecond
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Expanded starts the completed timeline in its expanded form
	Expanded bool `mapstructure:"expanded"`
	// MaxAnswerLines limits how many lines of answer text to display
	MaxAnswerLines int `mapstructure:"max_answer_lines"`
	// ShowCitations renders the citation list under the answer
	ShowCitations bool `mapstructure:"show_citations"`
}

// ReplayConfig controls how recorded packet logs are played back
type ReplayConfig struct {
	// IntervalMs is the delay between replayed packets, in milliseconds
	IntervalMs int `mapstructure:"interval_ms"`
}

// Interval returns the replay cadence as a duration.
func (c *ReplayConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Level is the log level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Dir is where trace.log is written; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Pacing: PacingConfig{
			SettleIntervalMs: 900,
		},
		TUI: TUIConfig{
			Expanded:       false,
			MaxAnswerLines: 200,
			ShowCitations:  true,
		},
		Replay: ReplayConfig{
			IntervalMs: 40,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers all defaults with viper so they're available
// even without a config file.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("pacing.settle_interval_ms", defaults.Pacing.SettleIntervalMs)

	viper.SetDefault("tui.expanded", defaults.TUI.Expanded)
	viper.SetDefault("tui.max_answer_lines", defaults.TUI.MaxAnswerLines)
	viper.SetDefault("tui.show_citations", defaults.TUI.ShowCitations)

	viper.SetDefault("replay.interval_ms", defaults.Replay.IntervalMs)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load unmarshals and validates the current viper configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// unmarshaling fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the directory searched for the config file.
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tracetide")
	}
	// Fall back to ~/.config/tracetide
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tracetide"
	}
	return filepath.Join(home, ".config", "tracetide")
}
