package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Org      OrgConfig      `mapstructure:"org"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Breakpoint is the table/card switch width in logical units.
	Breakpoint int `mapstructure:"breakpoint"`
	// UnitsPerCell converts terminal columns to logical units.
	UnitsPerCell   int    `mapstructure:"units_per_cell"`
	PageSize       int    `mapstructure:"page_size"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	ToastSeconds   int    `mapstructure:"toast_seconds"`
}

// ToastDuration is ToastSeconds as a duration.
func (u UIConfig) ToastDuration() time.Duration {
	return time.Duration(u.ToastSeconds) * time.Second
}

// OrgConfig describes the organisation the console is set up for.
type OrgConfig struct {
	Name     string `mapstructure:"name"`
	Timezone string `mapstructure:"timezone"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "fieldops", "fieldops.db"))
	v.SetDefault("ui.breakpoint", 768)
	v.SetDefault("ui.units_per_cell", 8)
	v.SetDefault("ui.page_size", 5)
	v.SetDefault("ui.currency_symbol", "PKR")
	v.SetDefault("ui.toast_seconds", 4)
	v.SetDefault("org.name", "EduReach Education")
	v.SetDefault("org.timezone", "Asia/Karachi")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "fieldops", "fieldops.log"))
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix FIELDOPS_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FIELDOPS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "fieldops"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FIELDOPS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the console cannot render with.
func (c Config) Validate() error {
	switch {
	case c.UI.PageSize < 1:
		return fmt.Errorf("%w: ui.page_size must be at least 1, got %d", ErrInvalidConfig, c.UI.PageSize)
	case c.UI.Breakpoint < 1:
		return fmt.Errorf("%w: ui.breakpoint must be at least 1, got %d", ErrInvalidConfig, c.UI.Breakpoint)
	case c.UI.UnitsPerCell < 1:
		return fmt.Errorf("%w: ui.units_per_cell must be at least 1, got %d", ErrInvalidConfig, c.UI.UnitsPerCell)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("FIELDOPS_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "fieldops", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.breakpoint", cfg.UI.Breakpoint)
	v.Set("ui.units_per_cell", cfg.UI.UnitsPerCell)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.toast_seconds", cfg.UI.ToastSeconds)
	v.Set("org.name", cfg.Org.Name)
	v.Set("org.timezone", cfg.Org.Timezone)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
