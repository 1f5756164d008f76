package handlers

import (
	"log"
	"net/http"

	"github.com/daryakuznetsova/finhorizon/internal/analytics"
	"github.com/daryakuznetsova/finhorizon/internal/forecast"
	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/daryakuznetsova/finhorizon/utils"
	"github.com/goccy/go-json"
)

const defaultForecastWeeks = 4

type forecastChartRequest struct {
	History       []models.DailyNet `json:"history"`
	MonthlyBudget float64           `json:"monthly_budget"`
	Weeks         int               `json:"weeks"`
}

type forecastChartResponse struct {
	Buckets         []models.WeeklyBucket `json:"buckets,omitempty"`
	Summary         string                `json:"summary,omitempty"`
	ProjectedChange float64               `json:"projected_change,omitempty"`
	WeeksCount      int                   `json:"weeks_count,omitempty"`
	Message         string                `json:"message,omitempty"`
}

// ForecastChartHandler строит недельный график: история, свёрнутая в 7-дневные
// корзины, плюс пришитый к ней прогноз внешнего сервиса. Недоступность прогноза
// не ошибка: клиент получает одну историю с пояснением.
func ForecastChartHandler(fc *forecast.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := userIDFromRequest(r); err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		var req forecastChartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		history := analytics.AggregateWeekly(req.History)
		if len(history) == 0 {
			// Без истории прогноз не запрашиваем вовсе.
			json.NewEncoder(w).Encode(forecastChartResponse{Message: "Нет исторических данных за период"})
			return
		}

		weeks := req.Weeks
		if weeks <= 0 {
			weeks = defaultForecastWeeks
		}
		budget := utils.AdjustedMonthlyBudget(req.MonthlyBudget, history[0].Start, history[len(history)-1].End)

		points, err := fc.WeeklyForecast(r.Context(), weeks, budget)
		if err != nil || len(points) == 0 {
			if err != nil {
				log.Printf("Сервис прогнозов недоступен: %v", err)
			}
			json.NewEncoder(w).Encode(forecastChartResponse{
				Buckets: history,
				Message: "Данные прогноза недоступны",
			})
			return
		}

		forecastBuckets := analytics.StitchForecast(history, points)
		change, count, summary := analytics.ForecastSummary(forecastBuckets)

		json.NewEncoder(w).Encode(forecastChartResponse{
			Buckets:         append(history, forecastBuckets...),
			Summary:         summary,
			ProjectedChange: change,
			WeeksCount:      count,
		})
	}
}
