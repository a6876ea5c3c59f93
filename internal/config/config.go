// Package config provides configuration management for the trading manager.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
	"github.com/sguzen/trading-manager-pro/internal/playbook"
	"github.com/sguzen/trading-manager-pro/internal/psych"
)

// Config holds all application configuration.
type Config struct {
	Grading     GradingConfig          `mapstructure:"grading"`
	Sizing      map[string]SizingEntry `mapstructure:"sizing"`
	Eligibility EligibilityConfig      `mapstructure:"eligibility"`
	Risk        RiskConfig             `mapstructure:"risk"`
	Logging     LoggingConfig          `mapstructure:"logging"`
	Storage     StorageConfig          `mapstructure:"storage"`
}

// GradingConfig holds grading and analytics configuration.
type GradingConfig struct {
	// MinSamples is the observation count below which a correlation entry
	// is flagged low-confidence.
	MinSamples int `mapstructure:"min_samples"`
}

// SizingEntry configures the position size for one grade.
type SizingEntry struct {
	Contracts   int     `mapstructure:"contracts"`
	DrawdownPct float64 `mapstructure:"drawdown_pct"`
	Label       string  `mapstructure:"label"`
}

// EligibilityConfig holds the daily check-in gate thresholds.
type EligibilityConfig struct {
	BlockOnAlcohol bool `mapstructure:"block_on_alcohol"`
	MaxStress      int  `mapstructure:"max_stress"`
	MinSleep       int  `mapstructure:"min_sleep"`
	MaxHomeStress  int  `mapstructure:"max_home_stress"`
	ModerateStress int  `mapstructure:"moderate_stress"`
}

// RiskConfig holds the per-account risk inputs used to turn a drawdown
// percentage into a contract count.
type RiskConfig struct {
	DailyDrawdown   float64 `mapstructure:"daily_drawdown"`
	RiskPerContract float64 `mapstructure:"risk_per_contract"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// StorageConfig holds persistence configuration.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trading-manager"
	}
	return filepath.Join(home, ".config", "trading-manager")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("grading.min_samples", playbook.DefaultMinSamples)

	v.SetDefault("sizing.A.drawdown_pct", 50.0)
	v.SetDefault("sizing.A.label", "Full Size")
	v.SetDefault("sizing.B.drawdown_pct", 30.0)
	v.SetDefault("sizing.B.label", "Reduced")
	v.SetDefault("sizing.C.drawdown_pct", 15.0)
	v.SetDefault("sizing.C.label", "Minimum")
	v.SetDefault("sizing.F.drawdown_pct", 0.0)
	v.SetDefault("sizing.F.label", "NO TRADE")

	v.SetDefault("eligibility.block_on_alcohol", true)
	v.SetDefault("eligibility.max_stress", 7)
	v.SetDefault("eligibility.min_sleep", 4)
	v.SetDefault("eligibility.max_home_stress", 7)
	v.SetDefault("eligibility.moderate_stress", 5)

	v.SetDefault("risk.daily_drawdown", 400.0)
	v.SetDefault("risk.risk_per_contract", 100.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "manager.log"))
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)

	v.SetDefault("storage.db_path", filepath.Join(configDir, "manager.db"))
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Grading.MinSamples < 1 {
		return apperrors.NewConfigurationError("grading.min_samples", "must be at least 1")
	}
	for grade, entry := range c.Sizing {
		g := models.Grade(grade)
		if g != models.GradeA && g != models.GradeB && g != models.GradeC && g != models.GradeF {
			return apperrors.NewConfigurationError("sizing."+grade, "unknown grade")
		}
		if entry.Contracts < 0 || entry.DrawdownPct < 0 || entry.DrawdownPct > 100 {
			return apperrors.NewConfigurationError("sizing."+grade, "contracts must be >= 0 and drawdown_pct within [0, 100]")
		}
		if g == models.GradeF && (entry.Contracts > 0 || entry.DrawdownPct > 0) {
			return apperrors.NewConfigurationError("sizing.F", "an F grade must never size a trade")
		}
	}
	if c.Eligibility.MaxStress < 0 || c.Eligibility.MaxStress > 10 {
		return apperrors.NewConfigurationError("eligibility.max_stress", "must be within [0, 10]")
	}
	if c.Eligibility.MinSleep < 0 || c.Eligibility.MinSleep > 10 {
		return apperrors.NewConfigurationError("eligibility.min_sleep", "must be within [0, 10]")
	}
	return nil
}

// SizingTable converts the configured sizing entries into the engine's
// table form.
func (c *Config) SizingTable() playbook.SizingTable {
	if len(c.Sizing) == 0 {
		return playbook.DefaultSizing()
	}
	table := make(playbook.SizingTable, len(c.Sizing))
	for grade, entry := range c.Sizing {
		table[models.Grade(grade)] = playbook.SizeEntry{
			Contracts:   entry.Contracts,
			DrawdownPct: entry.DrawdownPct,
			Label:       entry.Label,
		}
	}
	return table
}

// Thresholds converts the eligibility section into gate thresholds.
func (c *Config) Thresholds() psych.Thresholds {
	return psych.Thresholds{
		BlockOnAlcohol: c.Eligibility.BlockOnAlcohol,
		MaxStress:      c.Eligibility.MaxStress,
		MinSleep:       c.Eligibility.MinSleep,
		MaxHomeStress:  c.Eligibility.MaxHomeStress,
		ModerateStress: c.Eligibility.ModerateStress,
	}
}
