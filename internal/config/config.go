// Package config loads and persists FinancialHealth settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all FinancialHealth configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Engine  EngineConfig  `toml:"engine"`
	Server  ServerConfig  `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DatabasePath string `toml:"database_path,omitempty"`
	Currency     string `toml:"currency"`
}

// EngineConfig holds the projection engine tunables.
type EngineConfig struct {
	// LookbackMonths is how many whole calendar months of history feed
	// recurrence detection and historical averages.
	LookbackMonths int `toml:"lookback_months"`
	// RecurrenceMinMonths is the minimum number of matching months for a
	// category/type to count as recurring.
	RecurrenceMinMonths int `toml:"recurrence_min_months"`
	// RecurrenceTolerance is the relative band around the median within
	// which a transaction still matches the pattern (0.15 = ±15%).
	RecurrenceTolerance float64 `toml:"recurrence_tolerance"`
	// BlendAlpha weighs recurring amounts against historical averages
	// when projecting (1 = trust recurrence only, 0 = history only).
	BlendAlpha float64 `toml:"blend_alpha"`
	// ProjectionMonths is the default projection horizon.
	ProjectionMonths int `toml:"projection_months"`
	// LimitWarningRatio is the spend/limit ratio at which a spending
	// limit flips from OK to Warning.
	LimitWarningRatio float64 `toml:"limit_warning_ratio"`
	// Health score component weights. They should sum to 1.
	WeightSavings float64 `toml:"weight_savings"`
	WeightLimits  float64 `toml:"weight_limits"`
	WeightGoals   float64 `toml:"weight_goals"`
	// MaxRecommendations bounds the recommendation list.
	MaxRecommendations int `toml:"max_recommendations"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "BRL",
		},
		Engine: EngineConfig{
			LookbackMonths:      6,
			RecurrenceMinMonths: 3,
			RecurrenceTolerance: 0.15,
			BlendAlpha:          0.5,
			ProjectionMonths:    3,
			LimitWarningRatio:   0.8,
			WeightSavings:       0.4,
			WeightLimits:        0.3,
			WeightGoals:         0.3,
			MaxRecommendations:  5,
		},
		Server: ServerConfig{
			Addr: ":5000",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "financialhealth")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "financialhealth")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "financialhealth")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "financialhealth")
}

// DatabasePath resolves the SQLite path: explicit config wins, otherwise
// the XDG data dir.
func (c Config) DatabasePath() string {
	if c.General.DatabasePath != "" {
		return c.General.DatabasePath
	}
	return filepath.Join(DataDir(), "financialhealth.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg.normalized(), nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
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

// normalized clamps user-edited values back into workable ranges so a bad
// config degrades instead of producing nonsense projections.
func (c Config) normalized() Config {
	d := DefaultConfig().Engine
	e := &c.Engine
	if e.LookbackMonths < 1 {
		e.LookbackMonths = d.LookbackMonths
	}
	if e.RecurrenceMinMonths < 1 {
		e.RecurrenceMinMonths = d.RecurrenceMinMonths
	}
	if e.RecurrenceTolerance <= 0 || e.RecurrenceTolerance >= 1 {
		e.RecurrenceTolerance = d.RecurrenceTolerance
	}
	if e.BlendAlpha < 0 || e.BlendAlpha > 1 {
		e.BlendAlpha = d.BlendAlpha
	}
	if e.ProjectionMonths < 1 {
		e.ProjectionMonths = d.ProjectionMonths
	}
	if e.LimitWarningRatio <= 0 || e.LimitWarningRatio >= 1 {
		e.LimitWarningRatio = d.LimitWarningRatio
	}
	sum := e.WeightSavings + e.WeightLimits + e.WeightGoals
	if sum <= 0 {
		e.WeightSavings, e.WeightLimits, e.WeightGoals = d.WeightSavings, d.WeightLimits, d.WeightGoals
	}
	if e.MaxRecommendations < 1 {
		e.MaxRecommendations = d.MaxRecommendations
	}
	return c
}
