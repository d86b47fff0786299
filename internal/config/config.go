package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Table   TableConfig   `mapstructure:"table"`
	Export  ExportConfig  `mapstructure:"export"`
	History HistoryConfig `mapstructure:"history"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
}

type FilterConfig struct {
	AutoApply  bool `mapstructure:"auto_apply"`
	DebounceMs int  `mapstructure:"debounce_ms"`
}

type TableConfig struct {
	MinColumnWidth     int  `mapstructure:"min_column_width"`
	AllowResize        bool `mapstructure:"allow_resize"`
	ShowColumnSelector bool `mapstructure:"show_column_selector"`
}

type ExportConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	BaseName  string `mapstructure:"base_name"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "default",
			MouseEnabled: true,
		},
		Filter: FilterConfig{
			AutoApply:  true,
			DebounceMs: 500,
		},
		Table: TableConfig{
			MinColumnWidth:     4,
			AllowResize:        true,
			ShowColumnSelector: true,
		},
		Export: ExportConfig{
			Enabled:   true,
			Directory: ".",
			BaseName:  "export",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "",
		},
	}
}

// Load loads configuration from files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config paths in priority order: user config dir, cwd, ./config
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "gridview"))
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.mouse_enabled", true)
	v.SetDefault("filter.auto_apply", true)
	v.SetDefault("filter.debounce_ms", 500)
	v.SetDefault("table.min_column_width", 4)
	v.SetDefault("table.allow_resize", true)
	v.SetDefault("table.show_column_selector", true)
	v.SetDefault("export.enabled", true)
	v.SetDefault("export.directory", ".")
	v.SetDefault("export.base_name", "export")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")

	// Missing config file is fine, defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// HistoryPath resolves the export-history database location, defaulting
// to the user config directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "gridview")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
