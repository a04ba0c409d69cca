// Package service wires the data sources, the favorite engine and the
// statistics aggregator into one batch run.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/favstats/internal/datasource"
	"github.com/yourusername/favstats/internal/favorites"
	applog "github.com/yourusername/favstats/internal/logger"
	"github.com/yourusername/favstats/internal/metrics"
	"github.com/yourusername/favstats/internal/models"
	"github.com/yourusername/favstats/internal/stats"
)

// PipelineConfig holds the parameters of one run
type PipelineConfig struct {
	GameTypes   []string
	RecentGames int
	TopN        int
}

// Report is the terminal output of a run: the per-race favorite table and the
// per-cohort statistics table.
type Report struct {
	RunID      string                 `json:"run_id"`
	Source     string                 `json:"source"`
	Games      int                    `json:"games"`
	Races      []models.RaceRow       `json:"races"`
	Statistics []models.StatisticsRow `json:"statistics"`
	Duration   time.Duration          `json:"-"`
}

// Pipeline fetches the recent games of every game type, flattens each race
// into a favorite record and aggregates the records per game type.
type Pipeline struct {
	source datasource.GameSource
	cfg    PipelineConfig
	logger *logrus.Logger
}

// NewPipeline creates a new pipeline
func NewPipeline(source datasource.GameSource, cfg PipelineConfig, logger *logrus.Logger) (*Pipeline, error) {
	if source == nil {
		return nil, fmt.Errorf("game source is required")
	}
	if len(cfg.GameTypes) == 0 {
		return nil, fmt.Errorf("at least one game type is required")
	}
	if cfg.RecentGames <= 0 {
		return nil, fmt.Errorf("recent games must be positive, got %d", cfg.RecentGames)
	}
	if cfg.TopN == 0 {
		cfg.TopN = favorites.DefaultTopN
	}
	if cfg.TopN < favorites.DefaultTopN {
		return nil, fmt.Errorf("pipeline: %w (got %d)", models.ErrInvalidTopN, cfg.TopN)
	}
	if logger == nil {
		logger = applog.Discard()
	}

	return &Pipeline{
		source: source,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Run executes one full pass. Races are processed sequentially and every row
// is materialized before aggregation starts. A malformed race aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	runID := uuid.New().String()
	pl := applog.NewPipelineLogger(p.logger, runID)
	pl.LogRunStarted(p.source.Name(), p.cfg.GameTypes, p.cfg.RecentGames)

	report, err := p.run(ctx, pl)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordPipelineRun("failed", elapsed.Seconds())
		return nil, err
	}

	report.RunID = runID
	report.Source = p.source.Name()
	report.Duration = elapsed

	metrics.RecordPipelineRun("success", elapsed.Seconds())
	pl.LogRunCompleted(report.Games, len(report.Races), float64(elapsed.Milliseconds()))
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, pl *applog.PipelineLogger) (*Report, error) {
	report := &Report{}
	var rows []models.RaceRow

	for _, gameType := range p.cfg.GameTypes {
		ids, err := p.source.RecentGameIDs(ctx, gameType, p.cfg.RecentGames)
		if err != nil {
			return nil, fmt.Errorf("failed to list recent %s games: %w", gameType, err)
		}

		for _, id := range ids {
			gameRows, err := p.processGame(ctx, pl, id, gameType)
			if err != nil {
				return nil, err
			}
			rows = append(rows, gameRows...)
			report.Games++
		}
	}

	report.Races = rows
	report.Statistics = stats.Aggregate(rows, p.cfg.GameTypes)
	for _, stat := range report.Statistics {
		pl.LogCohortStatistics(stat)
		metrics.UpdateFavoriteWinRate(stat.GameType, stat.WinRate)
	}
	return report, nil
}

func (p *Pipeline) processGame(ctx context.Context, pl *applog.PipelineLogger, gameID, gameType string) ([]models.RaceRow, error) {
	game, err := p.source.FetchGame(ctx, gameID, gameType)
	if err != nil {
		p.recordMalformed(pl, err)
		return nil, fmt.Errorf("failed to fetch %s game %s: %w", gameType, gameID, err)
	}

	rows, err := favorites.FlattenGame(game, p.cfg.TopN)
	if err != nil {
		p.recordMalformed(pl, err)
		return nil, fmt.Errorf("failed to process %s game %s: %w", gameType, gameID, err)
	}

	metrics.RecordRacesProcessed(gameType, len(rows))
	pl.LogGameProcessed(gameType, game.ID, len(rows))
	return rows, nil
}

func (p *Pipeline) recordMalformed(pl *applog.PipelineLogger, err error) {
	var malformed *models.MalformedRaceError
	if errors.As(err, &malformed) {
		metrics.RecordMalformedRace(malformed.GameType)
		pl.LogMalformedRace(malformed)
	}
}
