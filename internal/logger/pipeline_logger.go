// Package logger provides pipeline-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/favstats/internal/models"
)

// PipelineLogger provides dedicated logging for pipeline runs.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger, runID string) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithFields(logrus.Fields{
			"component": "pipeline",
			"run_id":    runID,
		}),
	}
}

// LogRunStarted logs the start of a pipeline run.
func (pl *PipelineLogger) LogRunStarted(source string, gameTypes []string, recentGames int) {
	pl.WithFields(logrus.Fields{
		"source":       source,
		"game_types":   gameTypes,
		"recent_games": recentGames,
	}).Info("Pipeline run started")
}

// LogGameProcessed logs a flattened game document.
func (pl *PipelineLogger) LogGameProcessed(gameType, gameID string, races int) {
	pl.WithFields(logrus.Fields{
		"game_type": gameType,
		"game_id":   gameID,
		"races":     races,
	}).Debug("Game processed")
}

// LogMalformedRace logs a race that violated the input contract.
func (pl *PipelineLogger) LogMalformedRace(err *models.MalformedRaceError) {
	pl.WithFields(logrus.Fields{
		"game_type":  err.GameType,
		"game_id":    err.GameID,
		"race_index": err.RaceIndex,
		"reason":     err.Reason,
	}).Error("Malformed race")
}

// LogCohortStatistics logs the statistics of one cohort.
func (pl *PipelineLogger) LogCohortStatistics(stat models.StatisticsRow) {
	fields := logrus.Fields{
		"game_type":      stat.GameType,
		"races":          stat.Races,
		"resolved_races": stat.ResolvedRaces,
	}
	if stat.IsEmpty() {
		pl.WithFields(fields).Warn("No resolvable races for game type")
		return
	}
	if stat.WinRate != nil {
		fields["fav_win_pct"] = *stat.WinRate
	}
	if stat.MedianPlacement != nil {
		fields["median_fav_finish"] = *stat.MedianPlacement
	}
	if stat.MeanPlacement != nil {
		fields["mean_fav_finish"] = *stat.MeanPlacement
	}
	pl.WithFields(fields).Info("Cohort statistics computed")
}

// LogRunCompleted logs the end of a pipeline run.
func (pl *PipelineLogger) LogRunCompleted(games, races int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"games":       games,
		"races":       races,
		"duration_ms": durationMs,
	}).Info("Pipeline run completed")
}
