package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/favstats/internal/models"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerWithOutput(t *testing.T) {
	buf := &bytes.Buffer{}

	log := NewLoggerWithOutput("debug", "production", buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLoggerWithOutput("bogus", "development", buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestNewLoggerWritesToStderr(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	log := NewLogger("warn")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.Equal(t, os.Stderr, log.Out)
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestPipelineLoggerRunStarted(t *testing.T) {
	log, buf := setupTestLogger()
	pl := NewPipelineLogger(log, "run-1")

	pl.LogRunStarted("fixture", []string{"V75"}, 3)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "pipeline", logEntry["component"])
	assert.Equal(t, "run-1", logEntry["run_id"])
	assert.Equal(t, "fixture", logEntry["source"])
	assert.Equal(t, float64(3), logEntry["recent_games"])
}

func TestPipelineLoggerMalformedRace(t *testing.T) {
	log, buf := setupTestLogger()
	pl := NewPipelineLogger(log, "run-2")

	pl.LogMalformedRace(models.NewMalformedRaceError("V86", "V86_x", 4, "race has 2 entrants, need at least 3"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
	assert.Equal(t, "V86", logEntry["game_type"])
	assert.Equal(t, float64(4), logEntry["race_index"])
}

func TestPipelineLoggerCohortStatistics(t *testing.T) {
	rate, median, mean := 50.0, 2.0, 2.5

	t.Run("defined statistics", func(t *testing.T) {
		log, buf := setupTestLogger()
		pl := NewPipelineLogger(log, "run-3")

		pl.LogCohortStatistics(models.StatisticsRow{
			GameType:        "V75",
			WinRate:         &rate,
			MedianPlacement: &median,
			MeanPlacement:   &mean,
			Races:           4,
			ResolvedRaces:   4,
		})

		logEntry := parseLogOutput(buf)
		require.NotNil(t, logEntry)
		assert.Equal(t, "info", logEntry["level"])
		assert.Equal(t, 50.0, logEntry["fav_win_pct"])
	})

	t.Run("empty cohort", func(t *testing.T) {
		log, buf := setupTestLogger()
		pl := NewPipelineLogger(log, "run-4")

		pl.LogCohortStatistics(models.StatisticsRow{GameType: "ld"})

		logEntry := parseLogOutput(buf)
		require.NotNil(t, logEntry)
		assert.Equal(t, "warning", logEntry["level"])
		assert.NotContains(t, logEntry, "fav_win_pct")
	})
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Info("dropped")
	})
}
