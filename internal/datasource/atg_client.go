package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	applog "github.com/yourusername/favstats/internal/logger"
	"github.com/yourusername/favstats/internal/metrics"
	"github.com/yourusername/favstats/internal/models"
)

// DefaultATGBaseURL is the public ATG racinginfo API root
const DefaultATGBaseURL = "https://www.atg.se/services/racinginfo/v1/api"

const atgSourceName = "atg"

// ATGClient implements GameSource against the live ATG racinginfo API
type ATGClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	cache      *GameCache
	logger     *logrus.Entry
}

// NewATGClient creates a new ATG API client. cache may be nil.
func NewATGClient(httpClient *RateLimitedHTTPClient, baseURL string, cache *GameCache, logger *logrus.Logger) *ATGClient {
	if baseURL == "" {
		baseURL = DefaultATGBaseURL
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &ATGClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      cache,
		logger:     logger.WithField("source", atgSourceName),
	}
}

// RecentGameIDs returns the ids of the n most recent completed games of a game type
func (c *ATGClient) RecentGameIDs(ctx context.Context, gameType string, n int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(gameType))

	var product ProductDocument
	if err := c.getJSON(ctx, endpoint, &product); err != nil {
		return nil, err
	}

	ids := product.RecentIDs(n)
	if len(ids) < n {
		c.logger.WithFields(logrus.Fields{
			"game_type": gameType,
			"requested": n,
			"available": len(ids),
		}).Warn("Fewer completed games than requested")
	}
	return ids, nil
}

// FetchGame retrieves one game document
func (c *ATGClient) FetchGame(ctx context.Context, gameID, gameType string) (*models.Game, error) {
	if c.cache != nil {
		if game, ok := c.cache.Get(gameID); ok {
			c.logger.WithField("game_id", gameID).Debug("Game served from cache")
			return game, nil
		}
	}

	start := time.Now()
	endpoint := fmt.Sprintf("%s/games/%s", c.baseURL, url.PathEscape(gameID))

	var doc GameDocument
	if err := c.getJSON(ctx, endpoint, &doc); err != nil {
		return nil, err
	}
	metrics.RecordGameFetched(atgSourceName, time.Since(start).Seconds())

	game, err := doc.ToGame(gameID, gameType)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(gameID, game)
	}
	return game, nil
}

// Name returns the data source name
func (c *ATGClient) Name() string {
	return atgSourceName
}

func (c *ATGClient) getJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return NewDataSourceError(atgSourceName, ErrCodeNetworkError, "failed to fetch "+endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(atgSourceName, ErrCodeNotFound, "resource not found: "+endpoint, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(atgSourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewDataSourceError(atgSourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(atgSourceName, ErrCodeInvalidData, "failed to parse response", err)
	}
	return nil
}
