// Package config provides configuration management for Podium.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/xvierd/podium/internal/domain"
)

// Config holds all configuration for the Podium application.
type Config struct {
	Timing        TimingConfig       `mapstructure:"timing"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// SpeechTimingConfig holds the default duration and threshold preset
// for one speech category. Green and orange are remaining-time
// boundaries in seconds; red is always zero.
type SpeechTimingConfig struct {
	Duration      Duration `mapstructure:"duration"`
	GreenSeconds  int      `mapstructure:"green_seconds"`
	OrangeSeconds int      `mapstructure:"orange_seconds"`
}

// TimingConfig holds per-speech-type timing settings. Evaluative
// speeches have their own default duration but share the impromptu
// threshold preset.
type TimingConfig struct {
	Prepared   SpeechTimingConfig `mapstructure:"prepared"`
	Impromptu  SpeechTimingConfig `mapstructure:"impromptu"`
	Evaluative SpeechTimingConfig `mapstructure:"evaluative"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorDefault string `mapstructure:"color_default"`
	ColorGreen   string `mapstructure:"color_green"`
	ColorOrange  string `mapstructure:"color_orange"`
	ColorRed     string `mapstructure:"color_red"`
	ColorTitle   string `mapstructure:"color_title"`
	ColorAlert   string `mapstructure:"color_alert"`
	ColorHelp    string `mapstructure:"color_help"`
	IconApp      string `mapstructure:"icon_app"`
	IconAlert    string `mapstructure:"icon_alert"`
	IconPaused   string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorDefault: "#A0AEC0",
		ColorGreen:   "#2ECC71",
		ColorOrange:  "#E67E22",
		ColorRed:     "#E74C3C",
		ColorTitle:   "#6B7280",
		ColorAlert:   "#F1C40F",
		ColorHelp:    "#95A5A6",
		IconApp:      "🎤",
		IconAlert:    "🔔",
		IconPaused:   "⏸",
	}
}

// TimerColorHex maps an urgency band to its configured hex color.
func (t ThemeConfig) TimerColorHex(color domain.TimerColor) string {
	switch color {
	case domain.ColorGreen:
		return t.ColorGreen
	case domain.ColorOrange:
		return t.ColorOrange
	case domain.ColorRed:
		return t.ColorRed
	default:
		return t.ColorDefault
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timing: TimingConfig{
			Prepared: SpeechTimingConfig{
				Duration:      Duration(7 * time.Minute),
				GreenSeconds:  120,
				OrangeSeconds: 60,
			},
			Impromptu: SpeechTimingConfig{
				Duration:      Duration(2 * time.Minute),
				GreenSeconds:  60,
				OrangeSeconds: 30,
			},
			Evaluative: SpeechTimingConfig{
				Duration: Duration(3 * time.Minute),
			},
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.podium",
		},
		Theme: DefaultThemeConfig(),
	}
}

// ToTimingConfig converts the file configuration into the domain
// timing configuration consumed by the countdown controller.
func (c *Config) ToTimingConfig() domain.TimingConfig {
	clock := func(d Duration) domain.Clock {
		return domain.ClockFromSeconds(int(time.Duration(d).Seconds()))
	}
	return domain.TimingConfig{
		Defaults: map[domain.SpeechType]domain.Clock{
			domain.SpeechPrepared:   clock(c.Timing.Prepared.Duration),
			domain.SpeechImpromptu:  clock(c.Timing.Impromptu.Duration),
			domain.SpeechEvaluative: clock(c.Timing.Evaluative.Duration),
		},
		Presets: map[domain.SpeechType]domain.ColorThresholds{
			domain.SpeechPrepared: {
				Green:  c.Timing.Prepared.GreenSeconds,
				Orange: c.Timing.Prepared.OrangeSeconds,
			},
			domain.SpeechImpromptu: {
				Green:  c.Timing.Impromptu.GreenSeconds,
				Orange: c.Timing.Impromptu.OrangeSeconds,
			},
		},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.podium" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".podium")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("timing.prepared.duration", cfg.Timing.Prepared.Duration.String())
	viper.Set("timing.prepared.green_seconds", cfg.Timing.Prepared.GreenSeconds)
	viper.Set("timing.prepared.orange_seconds", cfg.Timing.Prepared.OrangeSeconds)
	viper.Set("timing.impromptu.duration", cfg.Timing.Impromptu.Duration.String())
	viper.Set("timing.impromptu.green_seconds", cfg.Timing.Impromptu.GreenSeconds)
	viper.Set("timing.impromptu.orange_seconds", cfg.Timing.Impromptu.OrangeSeconds)
	viper.Set("timing.evaluative.duration", cfg.Timing.Evaluative.Duration.String())
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_default", cfg.Theme.ColorDefault)
	viper.Set("theme.color_green", cfg.Theme.ColorGreen)
	viper.Set("theme.color_orange", cfg.Theme.ColorOrange)
	viper.Set("theme.color_red", cfg.Theme.ColorRed)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_alert", cfg.Theme.ColorAlert)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_alert", cfg.Theme.IconAlert)
	viper.Set("theme.icon_paused", cfg.Theme.IconPaused)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".podium", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "podium.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("timing.prepared.duration", "7m0s")
	viper.SetDefault("timing.prepared.green_seconds", 120)
	viper.SetDefault("timing.prepared.orange_seconds", 60)
	viper.SetDefault("timing.impromptu.duration", "2m0s")
	viper.SetDefault("timing.impromptu.green_seconds", 60)
	viper.SetDefault("timing.impromptu.orange_seconds", 30)
	viper.SetDefault("timing.evaluative.duration", "3m0s")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("storage.data_dir", "~/.podium")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_default", defaults.ColorDefault)
	viper.SetDefault("theme.color_green", defaults.ColorGreen)
	viper.SetDefault("theme.color_orange", defaults.ColorOrange)
	viper.SetDefault("theme.color_red", defaults.ColorRed)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_alert", defaults.ColorAlert)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_alert", defaults.IconAlert)
	viper.SetDefault("theme.icon_paused", defaults.IconPaused)
}
