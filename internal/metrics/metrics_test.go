package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordRacesProcessed(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(RacesProcessedTotal.WithLabelValues("V75"))

	RecordRacesProcessed("V75", 7)

	assert.Equal(t, before+7, testutil.ToFloat64(RacesProcessedTotal.WithLabelValues("V75")))
}

func TestRecordMalformedRace(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(MalformedRacesTotal.WithLabelValues("GS75"))

	RecordMalformedRace("GS75")

	assert.Equal(t, before+1, testutil.ToFloat64(MalformedRacesTotal.WithLabelValues("GS75")))
}

func TestUpdateFavoriteWinRate(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name     string
		gameType string
		rate     *float64
	}{
		{name: "defined rate", gameType: "V86", rate: ptr(37.5)},
		{name: "zero rate", gameType: "V64", rate: ptr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			UpdateFavoriteWinRate(tt.gameType, tt.rate)
			assert.Equal(t, *tt.rate, testutil.ToFloat64(FavoriteWinRate.WithLabelValues(tt.gameType)))
		})
	}

	t.Run("undefined rate removes series", func(t *testing.T) {
		UpdateFavoriteWinRate("V3", ptr(10))
		UpdateFavoriteWinRate("V3", nil)
		assert.False(t, FavoriteWinRate.DeleteLabelValues("V3"))
	})
}

func TestRecordGameFetchedAndPipelineRun(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordGameFetched("fixture", 0.01)
		RecordPipelineRun("success", 1.5)
	})
}

func TestHandler(t *testing.T) {
	InitRegistry()
	RecordPipelineRun("success", 0.2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "favstats_pipeline_runs_total")
}

func ptr(v float64) *float64 {
	return &v
}
