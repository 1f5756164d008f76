package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyForecastOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast/weekly", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("weeks"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2025-02-02T00:00:00Z","net":120.5},{"date":"2025-02-09T00:00:00Z","net":-30}]`))
	}))
	defer srv.Close()

	points, err := NewClient(srv.URL).WeeklyForecast(context.Background(), 4, 3000)

	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 120.5, points[0].ForecastNet)
	assert.Equal(t, -30.0, points[1].ForecastNet)
}

func TestWeeklyForecastUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).WeeklyForecast(context.Background(), 4, 3000)
	assert.Error(t, err, "не-2xx ответ должен превращаться в ошибку без повторных попыток")
}

func TestWeeklyForecastEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	points, err := NewClient(srv.URL).WeeklyForecast(context.Background(), 4, 3000)
	require.NoError(t, err)
	assert.Empty(t, points)
}
