package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/daryakuznetsova/finhorizon/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/forecast", strings.NewReader(body))
	req.Header.Set("X-User-ID", "1")
	return req
}

func TestForecastChartNoHistory(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("при пустой истории сервис прогнозов вызываться не должен")
	}))
	defer upstream.Close()

	handler := ForecastChartHandler(forecast.NewClient(upstream.URL))
	rec := httptest.NewRecorder()
	handler(rec, chartRequest(t, `{"history": [], "monthly_budget": 3000}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp forecastChartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Нет исторических данных")
	assert.Empty(t, resp.Buckets)
}

func TestForecastChartUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer upstream.Close()

	handler := ForecastChartHandler(forecast.NewClient(upstream.URL))
	rec := httptest.NewRecorder()
	handler(rec, chartRequest(t, `{
		"history": [
			{"date": "2025-01-06T00:00:00Z", "net": 10},
			{"date": "2025-01-07T00:00:00Z", "net": 20}
		],
		"monthly_budget": 3000
	}`))

	require.Equal(t, http.StatusOK, rec.Code, "отказ сервиса прогнозов деградирует, а не роняет запрос")
	var resp forecastChartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "прогноза недоступны")
	require.Len(t, resp.Buckets, 1)
	assert.Equal(t, 30.0, resp.Buckets[0].Net)
}

func TestForecastChartStitched(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date": "2025-01-19T00:00:00Z", "net": 999},
			{"date": "2025-01-26T00:00:00Z", "net": 100},
			{"date": "2025-02-02T00:00:00Z", "net": 50}
		]`))
	}))
	defer upstream.Close()

	handler := ForecastChartHandler(forecast.NewClient(upstream.URL))
	rec := httptest.NewRecorder()
	handler(rec, chartRequest(t, `{
		"history": [
			{"date": "2025-01-06T00:00:00Z", "net": 10},
			{"date": "2025-01-12T00:00:00Z", "net": 20}
		],
		"monthly_budget": 3000,
		"weeks": 3
	}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp forecastChartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Buckets, 4, "одна историческая корзина и три прогнозных")
	assert.Equal(t, 30.0, resp.Buckets[1].Net, "первая прогнозная корзина повторяет последнее историческое значение")
	assert.Equal(t, 150.0, resp.ProjectedChange)
	assert.Equal(t, 2, resp.WeeksCount)
	assert.Contains(t, resp.Summary, "150.00")
}

func TestForecastChartRequiresUser(t *testing.T) {
	handler := ForecastChartHandler(forecast.NewClient("http://127.0.0.1:0"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/forecast", strings.NewReader(`{}`))

	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
