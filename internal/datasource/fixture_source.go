package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	applog "github.com/yourusername/favstats/internal/logger"
	"github.com/yourusername/favstats/internal/metrics"
	"github.com/yourusername/favstats/internal/models"
)

const fixtureSourceName = "fixture"

// FixtureSource implements GameSource over JSON documents on disk. It backs
// the CLI's test mode.
//
// Layout of dir:
//
//	<GAMETYPE>_product.json   product document listing game ids
//	<gameID>.json             a specific game document
//	<GAMETYPE>_game.json      fallback game document for every game of that type
type FixtureSource struct {
	dir    string
	logger *logrus.Entry
}

// NewFixtureSource creates a new disk fixture source
func NewFixtureSource(dir string, logger *logrus.Logger) *FixtureSource {
	if logger == nil {
		logger = applog.Discard()
	}
	return &FixtureSource{
		dir:    dir,
		logger: logger.WithField("source", fixtureSourceName),
	}
}

// RecentGameIDs reads the product fixture of the game type. Without one, the
// game type's fallback document stands in as the single recent game.
func (s *FixtureSource) RecentGameIDs(ctx context.Context, gameType string, n int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, gameType+"_product.json"))
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.WithField("game_type", gameType).Debug("No product fixture, using fallback game")
		return []string{gameType + "_game"}, nil
	}
	if err != nil {
		return nil, NewDataSourceError(fixtureSourceName, ErrCodeNetworkError, "failed to read product fixture", err)
	}

	var product ProductDocument
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, NewDataSourceError(fixtureSourceName, ErrCodeInvalidData, "failed to parse product fixture", err)
	}
	return product.RecentIDs(n), nil
}

// FetchGame loads <gameID>.json, falling back to <gameType>_game.json
func (s *FixtureSource) FetchGame(ctx context.Context, gameID, gameType string) (*models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	candidates := []string{
		filepath.Join(s.dir, gameID+".json"),
		filepath.Join(s.dir, gameType+"_game.json"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, NewDataSourceError(fixtureSourceName, ErrCodeNetworkError, "failed to read "+path, err)
		}
		metrics.RecordGameFetched(fixtureSourceName, time.Since(start).Seconds())
		return DecodeGame(fixtureSourceName, data, gameID, gameType)
	}

	return nil, NewDataSourceError(fixtureSourceName, ErrCodeNotFound,
		fmt.Sprintf("no fixture for game %s (%s) in %s", gameID, gameType, s.dir), nil)
}

// Name returns the data source name
func (s *FixtureSource) Name() string {
	return fixtureSourceName
}
