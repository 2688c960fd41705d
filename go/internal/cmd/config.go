package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bestball/drafttrack/go/internal/draft"
)

// Config is the app-level configuration: draft shape from an optional yaml
// file, connection details from the environment.
type Config struct {
	Server struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Draft draft.Settings `yaml:"draft"`
}

func defaultConfig() *Config {
	cfg := &Config{Draft: draft.DefaultSettings()}
	cfg.Server.AllowedOrigins = []string{
		"chrome-extension://*",
		"http://localhost:*",
		"https://underdogfantasy.com",
		"https://app.underdogfantasy.com",
		"https://*.underdogfantasy.com",
	}
	return cfg
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Draft.EntrantCount <= 0 || cfg.Draft.Rounds <= 0 {
		return nil, fmt.Errorf("draft settings must be positive, got entrant_count=%d rounds=%d",
			cfg.Draft.EntrantCount, cfg.Draft.Rounds)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
