// Package config loads termweb's configuration from a YAML file, flags,
// and TERMWEB_-prefixed environment variables using spf13/viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/termweb/termweb/internal/logging"
)

var log = logging.L("config")

// ShmMode expresses the three-way override for the shared-memory frame
// pool fast path: auto-probe, force-disabled, force-enabled.
type ShmMode int

const (
	ShmAuto ShmMode = iota
	ShmDisabled
	ShmForced
)

// Config holds all runtime-tunable termweb settings.
type Config struct {
	ChromeBinary        string  `mapstructure:"chrome_binary"`
	RemoteDebuggingPort int     `mapstructure:"remote_debugging_port"`
	Mobile              bool    `mapstructure:"mobile"`
	InitialScale        float64 `mapstructure:"initial_scale"`
	SingleTabMode       bool    `mapstructure:"single_tab_mode"`
	ToolbarEnabled      bool    `mapstructure:"toolbar_enabled"`
	NaturalScroll       int     `mapstructure:"natural_scroll"` // -1 unset, 0 or 1

	DisableSHM bool `mapstructure:"disable_shm"`
	ForceSHM   bool `mapstructure:"force_shm"`

	FrameSlotCount int `mapstructure:"frame_slot_count"`
	FrameSlotSize  int `mapstructure:"frame_slot_size"`

	EventBusHz int `mapstructure:"event_bus_hz"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

// Default returns the baseline configuration before file/env overrides.
func Default() *Config {
	return &Config{
		RemoteDebuggingPort: 9222,
		InitialScale:        1.0,
		ToolbarEnabled:      true,
		NaturalScroll:       -1,
		FrameSlotCount:      8,
		FrameSlotSize:       2 * 1024 * 1024,
		EventBusHz:          30,
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// Load reads configuration from cfgFile (or the default search path),
// applies TERMWEB_-prefixed environment overrides, and validates the
// result. Fatal validation errors abort startup; warnings are logged.
func Load(cfgFile string) (*Config, error) {
	cfg := Default()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("termweb")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TERMWEB")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	applyLegacyEnv(cfg)

	result := cfg.ValidateTiered()
	for _, w := range result.Warnings {
		log.Warn("config validation", "error", w)
	}
	if result.HasFatals() {
		for _, f := range result.Fatals {
			log.Error("config validation fatal", "error", f)
		}
		return nil, fmt.Errorf("config has fatal validation errors: %v", result.Fatals[0])
	}

	return cfg, nil
}

// applyLegacyEnv reads the handful of env vars §6 names directly (rather
// than through viper's TERMWEB_ prefix machinery), matching their exact
// documented names.
func applyLegacyEnv(cfg *Config) {
	if v := os.Getenv("CHROME_BIN"); v != "" && cfg.ChromeBinary == "" {
		cfg.ChromeBinary = v
	}
	if v := os.Getenv("TERMWEB_DISABLE_SHM"); v == "1" {
		cfg.DisableSHM = true
	}
	if v := os.Getenv("TERMWEB_FORCE_SHM"); v == "1" {
		cfg.ForceSHM = true
	}
	switch os.Getenv("TERMWEB_NATURAL_SCROLL") {
	case "0":
		cfg.NaturalScroll = 0
	case "1":
		cfg.NaturalScroll = 1
	}
}

// ShmMode resolves the effective shared-memory mode from the two
// boolean overrides, per SPEC_FULL's Open Question #3 resolution.
func (c *Config) ShmMode() ShmMode {
	switch {
	case c.ForceSHM:
		return ShmForced
	case c.DisableSHM:
		return ShmDisabled
	default:
		return ShmAuto
	}
}

// Save writes the config to its default location.
func Save(cfg *Config) error {
	return SaveTo(cfg, "")
}

// SaveTo writes the config to an explicit path, or the default location
// when cfgFile is empty.
func SaveTo(cfg *Config, cfgFile string) error {
	viper.Set("chrome_binary", cfg.ChromeBinary)
	viper.Set("remote_debugging_port", cfg.RemoteDebuggingPort)
	viper.Set("mobile", cfg.Mobile)
	viper.Set("initial_scale", cfg.InitialScale)
	viper.Set("single_tab_mode", cfg.SingleTabMode)
	viper.Set("toolbar_enabled", cfg.ToolbarEnabled)
	viper.Set("frame_slot_count", cfg.FrameSlotCount)
	viper.Set("frame_slot_size", cfg.FrameSlotSize)
	viper.Set("log_level", cfg.LogLevel)
	viper.Set("log_format", cfg.LogFormat)

	var cfgPath string
	if cfgFile != "" {
		cfgPath = cfgFile
		if dir := filepath.Dir(cfgPath); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return err
			}
		}
	} else {
		cfgPath = filepath.Join(configDir(), "termweb.yaml")
		if err := os.MkdirAll(configDir(), 0700); err != nil {
			return err
		}
	}

	return viper.WriteConfigAs(cfgPath)
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "termweb")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "termweb")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "termweb")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "termweb")
	}
}
