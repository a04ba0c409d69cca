package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/favstats/internal/metrics"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := NewServer(Config{ServiceName: "favstats", Version: "1.0.0", Commit: "abc123"})
	rec := get(t, s.Handler(), "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "favstats", body.Service)
	assert.Equal(t, "1.0.0", body.Version)
	assert.NotEmpty(t, body.Timestamp)
}

func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		ready      bool
		checkErr   error
		wantStatus int
		wantChecks map[string]string
	}{
		{"not ready", false, nil, http.StatusServiceUnavailable, map[string]string{"service": "not_ready", "scheduler": "ok"}},
		{"ready", true, nil, http.StatusOK, map[string]string{"service": "ok", "scheduler": "ok"}},
		{"failing check", true, errors.New("last run failed"), http.StatusServiceUnavailable,
			map[string]string{"service": "ok", "scheduler": "error: last run failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{ServiceName: "favstats"})
			s.SetReady(tt.ready)
			s.AddCheck("scheduler", CheckerFunc(func(ctx context.Context) error { return tt.checkErr }))

			rec := get(t, s.Handler(), "/ready")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ReadyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantChecks, body.Checks)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.RecordRacesProcessed("V75", 1)
	s := NewServer(Config{ServiceName: "favstats", MetricsHandler: metrics.Handler()})

	rec := get(t, s.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "favstats_races_processed_total")
}

func TestMetricsEndpointDisabled(t *testing.T) {
	s := NewServer(Config{ServiceName: "favstats"})
	rec := get(t, s.Handler(), "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShutdownWithoutStart(t *testing.T) {
	s := NewServer(Config{})
	assert.NoError(t, s.Shutdown())
	assert.Equal(t, 8080, s.port)
}
