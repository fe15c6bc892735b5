package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort          = 3000
	defaultEnv           = "development"
	defaultDatabasePath  = "data/briefings.db"
	defaultModel         = "claude-sonnet-4-20250514"
	defaultRetentionDays = 7
	defaultThrottleSecs  = 1
)

// defaultPrefetchHours are the wall-clock hours the news cache is warmed at.
var defaultPrefetchHours = []int{8, 17}

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment-variable fallbacks for every key.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	DatabasePath   string          `yaml:"database_path"`
	RedisURL       string          `yaml:"redis_url"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Timezone       string          `yaml:"timezone"`
	RetentionDays  int             `yaml:"retention_days"`
	Anthropic      AnthropicConfig `yaml:"anthropic"`
	Prefetch       PrefetchConfig  `yaml:"prefetch"`
}

// AnthropicConfig configures the external model service.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// PrefetchConfig configures the background news-cache warmer.
type PrefetchConfig struct {
	Hours           []int `yaml:"hours"`
	ThrottleSeconds int   `yaml:"throttle_seconds"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// Load reads the YAML config at path (a missing file is fine), applies
// environment overrides, then defaults.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only configuration
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := envStr("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := envStr("NODE_ENV", "ENV"); v != "" {
		cfg.Env = v
	}
	if v := envStr("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := envStr("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := envStr("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := envStr("ANTHROPIC_MODEL"); v != "" {
		cfg.Anthropic.Model = v
	}
	if v := envStr("TZ", "TIMEZONE"); v != "" && cfg.Timezone == "" {
		cfg.Timezone = v
	}
	if v := envStr("RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.RetentionDays = days
		}
	}
	if v := envStr("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitCSV(v)
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabasePath
	}
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = defaultModel
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = defaultRetentionDays
	}
	if len(cfg.Prefetch.Hours) == 0 {
		cfg.Prefetch.Hours = defaultPrefetchHours
	}
	if cfg.Prefetch.ThrottleSeconds == 0 {
		cfg.Prefetch.ThrottleSeconds = defaultThrottleSecs
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.RetentionDays < 1 {
		return fmt.Errorf("retention_days must be at least 1, got %d", cfg.RetentionDays)
	}
	for _, h := range cfg.Prefetch.Hours {
		if h < 0 || h > 23 {
			return fmt.Errorf("prefetch hour %d out of range 0-23", h)
		}
	}
	return nil
}

func envStr(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
