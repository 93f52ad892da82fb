// Package config loads the application configuration from an optional YAML
// file and applies WINMATE_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFeedURL is where release metadata is published.
const DefaultFeedURL = "https://raw.githubusercontent.com/winmate/winmate/main/latest.json"

// Journal selects and configures the journal backend.
type Journal struct {
	// Backend is "file", "redis" or "memory".
	Backend string `mapstructure:"backend"`
	// Dir is the log directory for the file backend.
	Dir string `mapstructure:"dir"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// Monitor configures the background health monitor.
type Monitor struct {
	CPUWarnPercent  float64       `mapstructure:"cpu_warn_percent"`
	RAMWarnPercent  float64       `mapstructure:"ram_warn_percent"`
	DiskWarnPercent float64       `mapstructure:"disk_warn_percent"`
	Interval        time.Duration `mapstructure:"interval"`
	Cooldown        time.Duration `mapstructure:"cooldown"`
}

// Server configures the HTTP agent surface.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Config is the full application configuration.
type Config struct {
	LogLevel      string  `mapstructure:"log_level"`
	ExtensionsDir string  `mapstructure:"extensions_dir"`
	UpdateFeedURL string  `mapstructure:"update_feed_url"`
	GeminiModel   string  `mapstructure:"gemini_model"`
	Journal       Journal `mapstructure:"journal"`
	Monitor       Monitor `mapstructure:"monitor"`
	Server        Server  `mapstructure:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:      "info",
		ExtensionsDir: "extensions",
		UpdateFeedURL: DefaultFeedURL,
		Journal: Journal{
			Backend: "file",
			Dir:     "",
		},
		Monitor: Monitor{
			CPUWarnPercent:  90,
			RAMWarnPercent:  90,
			DiskWarnPercent: 95,
			Interval:        time.Minute,
			Cooldown:        5 * time.Minute,
		},
		Server: Server{
			Addr: "127.0.0.1:8787",
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty or missing)
// and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config file: %w", err)
			}
		} else {
			var raw map[string]any
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return cfg, fmt.Errorf("parse config file %s: %w", path, err)
			}
			if err := decode(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("decode config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// applyEnv overrides configuration fields from WINMATE_* variables.
func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("WINMATE_LOG_LEVEL", &cfg.LogLevel)
	setString("WINMATE_EXTENSIONS_DIR", &cfg.ExtensionsDir)
	setString("WINMATE_UPDATE_FEED_URL", &cfg.UpdateFeedURL)
	setString("WINMATE_GEMINI_MODEL", &cfg.GeminiModel)
	setString("WINMATE_JOURNAL_BACKEND", &cfg.Journal.Backend)
	setString("WINMATE_JOURNAL_DIR", &cfg.Journal.Dir)
	setString("WINMATE_REDIS_ADDR", &cfg.Journal.RedisAddr)
	setString("WINMATE_REDIS_PASSWORD", &cfg.Journal.RedisPassword)
	setString("WINMATE_SERVER_ADDR", &cfg.Server.Addr)

	if v := os.Getenv("WINMATE_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Journal.RedisDB = db
		}
	}
	if v := os.Getenv("WINMATE_MONITOR_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Monitor.Interval = d
		}
	}
}
