package config

import (
	"fmt"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// Config keeps runtime settings for the planner daemon.
type Config struct {
	DatabaseURL     string `yaml:"database_url"`
	LogLevel        string `yaml:"log_level"`
	AppURL          string `yaml:"app_url"`   // link opened from a notification
	AppTitle        string `yaml:"app_title"` // notification title
	VAPIDPublicKey  string `yaml:"vapid_public_key"`
	VAPIDPrivateKey string `yaml:"vapid_private_key"`
	VAPIDSubject    string `yaml:"vapid_subject"` // mailto: contact for the push service
	TelegramToken   string `yaml:"telegram_token"`
}

// Load reads configuration from an optional YAML file (CONFIG_FILE)
// with environment variables taking precedence, and applies defaults.
func Load() (Config, error) {
	var cfg Config

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg.DatabaseURL, "DATABASE_URL")
	overrideFromEnv(&cfg.LogLevel, "LOG_LEVEL")
	overrideFromEnv(&cfg.AppURL, "APP_URL")
	overrideFromEnv(&cfg.AppTitle, "APP_TITLE")
	overrideFromEnv(&cfg.VAPIDPublicKey, "VAPID_PUBLIC_KEY")
	overrideFromEnv(&cfg.VAPIDPrivateKey, "VAPID_PRIVATE_KEY")
	overrideFromEnv(&cfg.VAPIDSubject, "VAPID_SUBJECT")
	overrideFromEnv(&cfg.TelegramToken, "TELEGRAM_TOKEN")

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "habit_planner.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppURL == "" {
		cfg.AppURL = "/"
	}
	if cfg.AppTitle == "" {
		cfg.AppTitle = "Habit Planner"
	}

	if !cfg.WebPushEnabled() && !cfg.TelegramEnabled() {
		return cfg, fmt.Errorf("no notification channel configured: set VAPID_PUBLIC_KEY/VAPID_PRIVATE_KEY or TELEGRAM_TOKEN")
	}
	if cfg.WebPushEnabled() && cfg.VAPIDSubject == "" {
		return cfg, fmt.Errorf("VAPID_SUBJECT is required when VAPID keys are set")
	}

	return cfg, nil
}

// WebPushEnabled reports whether a VAPID key pair is configured.
func (c Config) WebPushEnabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

// TelegramEnabled reports whether the telegram channel is configured.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

func overrideFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
