// Package config provides configuration management for favstats.
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	expansionConfigPath   = "testdata/expansion_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "favstats", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, []string{"V75", "GS75", "V86", "dd"}, cfg.ATG.GameTypes)
	assert.Equal(t, 3, cfg.ATG.RecentGames)
	assert.Equal(t, 8081, cfg.Schedule.HealthPort)
	assert.Equal(t, "30 22 * * 6", cfg.Schedule.Cron)
	assert.Equal(t, 4.0, cfg.HTTP.RateLimit)
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	assert.Error(t, err)
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("FAVSTATS_APP_NAME", "favstats-test")

	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "favstats-test", cfg.App.Name)
}

// TestLoadConfigExpansion tests ${VAR} expansion inside the YAML file
func TestLoadConfigExpansion(t *testing.T) {
	t.Setenv("FAVSTATS_TEST_BASE_URL", "http://localhost:9999/api")

	cfg, err := Load(expansionConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/api", cfg.ATG.BaseURL)
	assert.NoError(t, Validate(cfg))
}

// TestLoadWithDefaultsNoFile tests that defaults alone form a valid configuration
func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultGameTypes, cfg.ATG.GameTypes)
	assert.Equal(t, 3, cfg.Report.TopN)
	assert.Equal(t, "table", cfg.Report.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NoError(t, Validate(cfg))
}

// TestLoadWithDefaultsFileOverrides tests that file values win over defaults
func TestLoadWithDefaultsFileOverrides(t *testing.T) {
	cfg, err := LoadWithDefaults(validConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Cache.TTLSeconds)
	assert.Equal(t, []string{"V75", "GS75", "V86", "dd"}, cfg.ATG.GameTypes)
}

// TestValidate tests the validation rules
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{"valid", func(cfg *Config) {}, ""},
		{"invalid environment", func(cfg *Config) { cfg.App.Environment = "invalid" }, "Environment"},
		{"invalid log level", func(cfg *Config) { cfg.App.LogLevel = "trace" }, "LogLevel"},
		{"invalid game type", func(cfg *Config) { cfg.ATG.GameTypes = []string{"V75", "FOO!"} }, "GameTypes"},
		{"empty game types", func(cfg *Config) { cfg.ATG.GameTypes = []string{} }, "GameTypes"},
		{"duplicate game type", func(cfg *Config) { cfg.ATG.GameTypes = []string{"dd", "DD"} }, "duplicate game type"},
		{"top n below three", func(cfg *Config) { cfg.Report.TopN = 2 }, "TopN"},
		{"unknown format", func(cfg *Config) { cfg.Report.Format = "xml" }, "Format"},
		{"bad cron", func(cfg *Config) { cfg.Schedule.Cron = "every day" }, "Cron"},
		{"bad base url", func(cfg *Config) { cfg.ATG.BaseURL = "not a url" }, "BaseURL"},
		{"metrics path", func(cfg *Config) { cfg.Metrics.Path = "metrics" }, "metrics path"},
		{"debug in production", func(cfg *Config) {
			cfg.App.Environment = "production"
			cfg.App.LogLevel = "debug"
		}, "production"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(validConfigPath)
			require.NoError(t, err)

			tt.mutate(cfg)
			err = Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestEnvironmentChecks tests environment check functions
func TestEnvironmentChecks(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "development"}}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
}

// TestDurations tests the duration helpers
func TestDurations(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	assert.Equal(t, "20s", cfg.HTTPTimeout().String())
	assert.Equal(t, "10m0s", cfg.CacheTTL().String())
	assert.Equal(t, "45s", cfg.CircuitCooldown().String())
	assert.Equal(t, []string{"V75", "GS75", "V86", "DD"}, cfg.GameTypesUpper())
}
