package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/favstats/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// ATGSourceType reads from the live ATG racinginfo API
	ATGSourceType SourceType = "atg"
	// FixtureSourceType reads JSON fixtures from disk
	FixtureSourceType SourceType = "fixture"
)

// Factory creates GameSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// SourceTypeFor maps the CLI test-mode flag to a source type
func SourceTypeFor(testMode bool) SourceType {
	if testMode {
		return FixtureSourceType
	}
	return ATGSourceType
}

// Create creates a new data source based on the type
func (f *Factory) Create(sourceType SourceType) (GameSource, error) {
	if f.config == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	switch sourceType {
	case ATGSourceType:
		httpClient := NewRateLimitedHTTPClient(HTTPClientConfig{
			Timeout:           f.config.HTTPTimeout(),
			MaxRetries:        f.config.HTTP.MaxRetries,
			RetryWaitMin:      DefaultHTTPClientConfig().RetryWaitMin,
			RetryWaitMax:      DefaultHTTPClientConfig().RetryWaitMax,
			RateLimit:         f.config.HTTP.RateLimit,
			CircuitBreakerMax: f.config.HTTP.CircuitBreakerMax,
			CircuitCooldown:   f.config.CircuitCooldown(),
		}, f.logger)
		cache := NewGameCache(f.config.CacheTTL(), f.config.Cache.MaxSize)
		return NewATGClient(httpClient, f.config.ATG.BaseURL, cache, f.logger), nil

	case FixtureSourceType:
		if f.config.ATG.FixtureDir == "" {
			return nil, fmt.Errorf("fixture directory is required for test mode")
		}
		return NewFixtureSource(f.config.ATG.FixtureDir, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source type: %s", sourceType)
	}
}

// ListAvailableSources returns a list of available source types
func (f *Factory) ListAvailableSources() []SourceType {
	return []SourceType{ATGSourceType, FixtureSourceType}
}
