// Package metrics provides the Prometheus metrics registry for favstats.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesFetchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "favstats",
		Name:      "games_fetched_total",
		Help:      "Total number of game documents fetched from a source",
	}, []string{"source"})
	RacesProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "favstats",
		Name:      "races_processed_total",
		Help:      "Total number of races flattened into favorite records",
	}, []string{"game_type"})
	MalformedRacesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "favstats",
		Name:      "malformed_races_total",
		Help:      "Total number of races rejected as malformed",
	}, []string{"game_type"})
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "favstats",
		Name:      "pipeline_runs_total",
		Help:      "Total number of pipeline runs by outcome",
	}, []string{"status"})
)

// Gauge metrics
var (
	FavoriteWinRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "favstats",
		Name:      "favorite_win_rate",
		Help:      "Percentage of races won by the favorite, per game type",
	}, []string{"game_type"})
)

// Histogram metrics
var (
	FetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "favstats",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of game document fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "favstats",
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of full pipeline runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GamesFetchedTotal)
		registry.MustRegister(RacesProcessedTotal)
		registry.MustRegister(MalformedRacesTotal)
		registry.MustRegister(PipelineRunsTotal)

		registry.MustRegister(FavoriteWinRate)

		registry.MustRegister(FetchDuration)
		registry.MustRegister(PipelineDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordGameFetched records a game document fetch.
func RecordGameFetched(source string, durationSeconds float64) {
	GamesFetchedTotal.WithLabelValues(source).Inc()
	FetchDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordRacesProcessed records flattened races for a game type.
func RecordRacesProcessed(gameType string, count int) {
	RacesProcessedTotal.WithLabelValues(gameType).Add(float64(count))
}

// RecordMalformedRace records a rejected race.
func RecordMalformedRace(gameType string) {
	MalformedRacesTotal.WithLabelValues(gameType).Inc()
}

// RecordPipelineRun records a finished pipeline run.
func RecordPipelineRun(status string, durationSeconds float64) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
	PipelineDuration.Observe(durationSeconds)
}

// UpdateFavoriteWinRate sets the win rate gauge of a game type. Undefined
// rates remove the series instead of reporting zero.
func UpdateFavoriteWinRate(gameType string, winRate *float64) {
	if winRate == nil {
		FavoriteWinRate.DeleteLabelValues(gameType)
		return
	}
	FavoriteWinRate.WithLabelValues(gameType).Set(*winRate)
}
