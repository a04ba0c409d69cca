// Package config provides configuration management for favstats.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides
const EnvPrefix = "FAVSTATS"

// DefaultGameTypes are the ATG game types reported in live mode
var DefaultGameTypes = []string{"V75", "GS75", "V86", "V64", "V65", "V5", "V4", "V3", "dd", "ld"}

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for every field,
// so the CLI also runs without a config file. A .env file in the working
// directory is loaded first when present.
func LoadWithDefaults(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "favstats")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("atg.base_url", "https://www.atg.se/services/racinginfo/v1/api")
	v.SetDefault("atg.game_types", DefaultGameTypes)
	v.SetDefault("atg.recent_games", 3)
	v.SetDefault("atg.fixture_dir", "test_data")

	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.rate_limit", 5.0)
	v.SetDefault("http.circuit_breaker_max", 5)
	v.SetDefault("http.circuit_cooldown_seconds", 60)

	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("cache.max_size", 500)

	v.SetDefault("report.top_n", 3)
	v.SetDefault("report.format", "table")
	v.SetDefault("report.output_dir", "")

	v.SetDefault("schedule.cron", "0 6 * * *")
	v.SetDefault("schedule.health_port", 8080)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
