package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures configuration values for the leave portal.
type Config struct {
	StoreDSN             string
	LogLevel             slog.Level
	LogFormat            string
	StatsCacheTTL        time.Duration
	StatsCacheMaxEntries int
}

// fileConfig mirrors the optional YAML configuration file. Every field is
// optional; unset fields keep their defaults.
type fileConfig struct {
	StoreDSN   string `yaml:"store_dsn"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	StatsCache struct {
		TTL        string `yaml:"ttl"`
		MaxEntries int    `yaml:"max_entries"`
	} `yaml:"stats_cache"`
}

// Load resolves configuration in three layers: built-in defaults, then the
// YAML file named by LEAVEPORTAL_CONFIG when set, then LEAVEPORTAL_* process
// environment overrides.
func Load() (Config, error) {
	cfg := Config{
		StoreDSN:             "file:leaveportal.db?_foreign_keys=on",
		LogLevel:             slog.LevelInfo,
		LogFormat:            "text",
		StatsCacheTTL:        30 * time.Second,
		StatsCacheMaxEntries: 128,
	}

	invalid := make([]string, 0, 2)

	if path := strings.TrimSpace(os.Getenv("LEAVEPORTAL_CONFIG")); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("LEAVEPORTAL_STORE_DSN")); dsn != "" {
		cfg.StoreDSN = dsn
	}

	if levelValue := strings.TrimSpace(os.Getenv("LEAVEPORTAL_LOG_LEVEL")); levelValue != "" {
		level, err := parseLevel(levelValue)
		if err != nil {
			invalid = append(invalid, "LEAVEPORTAL_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if format := strings.TrimSpace(os.Getenv("LEAVEPORTAL_LOG_FORMAT")); format != "" {
		format = strings.ToLower(format)
		if format != "json" && format != "text" {
			invalid = append(invalid, "LEAVEPORTAL_LOG_FORMAT")
		} else {
			cfg.LogFormat = format
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("LEAVEPORTAL_STATS_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "LEAVEPORTAL_STATS_TTL")
		} else {
			cfg.StatsCacheTTL = ttl
		}
	}

	if entriesValue := strings.TrimSpace(os.Getenv("LEAVEPORTAL_STATS_MAX_ENTRIES")); entriesValue != "" {
		entries, err := strconv.Atoi(entriesValue)
		if err != nil || entries <= 0 {
			invalid = append(invalid, "LEAVEPORTAL_STATS_MAX_ENTRIES")
		} else {
			cfg.StatsCacheMaxEntries = entries
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// applyFile overlays settings from the YAML file at path onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if dsn := strings.TrimSpace(file.StoreDSN); dsn != "" {
		cfg.StoreDSN = dsn
	}
	if levelValue := strings.TrimSpace(file.LogLevel); levelValue != "" {
		level, err := parseLevel(levelValue)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.LogLevel = level
	}
	if format := strings.ToLower(strings.TrimSpace(file.LogFormat)); format != "" {
		if format != "json" && format != "text" {
			return fmt.Errorf("config file %s: log_format must be json or text", path)
		}
		cfg.LogFormat = format
	}
	if ttlValue := strings.TrimSpace(file.StatsCache.TTL); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			return fmt.Errorf("config file %s: stats_cache.ttl must be a positive duration", path)
		}
		cfg.StatsCacheTTL = ttl
	}
	if file.StatsCache.MaxEntries != 0 {
		if file.StatsCache.MaxEntries < 0 {
			return fmt.Errorf("config file %s: stats_cache.max_entries must be positive", path)
		}
		cfg.StatsCacheMaxEntries = file.StatsCache.MaxEntries
	}

	return nil
}

func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", value)
}
