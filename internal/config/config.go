// Package config provides configuration management for favstats.
package config

import (
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	ATG      ATGConfig      `mapstructure:"atg" validate:"required"`
	HTTP     HTTPConfig     `mapstructure:"http" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Report   ReportConfig   `mapstructure:"report" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ATGConfig represents the ATG racinginfo data source configuration
type ATGConfig struct {
	BaseURL     string   `mapstructure:"base_url" validate:"required,url"`
	GameTypes   []string `mapstructure:"game_types" validate:"required,min=1,gametypes"`
	RecentGames int      `mapstructure:"recent_games" validate:"required,gt=0,lte=50"`
	FixtureDir  string   `mapstructure:"fixture_dir" validate:"required"`
}

// HTTPConfig represents HTTP client configuration
type HTTPConfig struct {
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`

	// CircuitCooldownSeconds of 0 keeps an open breaker open until restart
	CircuitCooldownSeconds int `mapstructure:"circuit_cooldown_seconds" validate:"gte=0"`
}

// CacheConfig represents the game document cache configuration
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	MaxSize    int `mapstructure:"max_size" validate:"required,gt=0"`
}

// ReportConfig represents report output configuration
type ReportConfig struct {
	TopN      int    `mapstructure:"top_n" validate:"required,gte=3"`
	Format    string `mapstructure:"format" validate:"required,oneof=table csv json"`
	OutputDir string `mapstructure:"output_dir"`
}

// ScheduleConfig represents scheduled report configuration
type ScheduleConfig struct {
	Cron       string `mapstructure:"cron" validate:"required,cron"`
	HealthPort int    `mapstructure:"health_port" validate:"required,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HTTPTimeout returns the HTTP client timeout
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// CircuitCooldown returns the circuit breaker cooldown as a duration
func (c *Config) CircuitCooldown() time.Duration {
	return time.Duration(c.HTTP.CircuitCooldownSeconds) * time.Second
}

// CacheTTL returns the game cache TTL
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// GameTypesUpper returns the configured game types upper-cased, for display
func (c *Config) GameTypesUpper() []string {
	out := make([]string, len(c.ATG.GameTypes))
	for i, gt := range c.ATG.GameTypes {
		out[i] = strings.ToUpper(gt)
	}
	return out
}
