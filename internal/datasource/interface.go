package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/favstats/internal/models"
)

// GameSource defines the interface for fetching ATG game documents
type GameSource interface {
	// RecentGameIDs returns the ids of the n most recent completed games of a game type
	RecentGameIDs(ctx context.Context, gameType string, n int) ([]string, error)

	// FetchGame retrieves one game document and decodes it under the given game type
	FetchGame(ctx context.Context, gameID, gameType string) (*models.Game, error)

	// Name returns the name of the data source
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error code
func (e DataSourceError) Is(target error) bool {
	return codeSentinels[e.Code] == target
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
)

// Error constructors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrNetworkError      = errors.New("network error")
	ErrServerError       = errors.New("server error")
)

var codeSentinels = map[string]error{
	ErrCodeRateLimitExceeded: ErrRateLimitExceeded,
	ErrCodeNotFound:          ErrNotFound,
	ErrCodeInvalidData:       ErrInvalidData,
	ErrCodeNetworkError:      ErrNetworkError,
	ErrCodeServerError:       ErrServerError,
}

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
