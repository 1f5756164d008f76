package routes

import (
	"github.com/daryakuznetsova/finhorizon/internal/events"
	"github.com/daryakuznetsova/finhorizon/internal/forecast"
	"github.com/daryakuznetsova/finhorizon/internal/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SetupRouter собирает аналитические маршруты: прогресс целей, недельный график
// с прогнозом и чат с ассистентом. Монтируется в основной сервер под /api/analytics.
func SetupRouter(pool *pgxpool.Pool, fc *forecast.Client, emitter *events.Emitter) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/analytics/goals/{id}/progress", handlers.GoalProgressHandler(pool, emitter)).Methods("GET")
	r.HandleFunc("/api/analytics/forecast", handlers.ForecastChartHandler(fc)).Methods("POST")
	r.HandleFunc("/api/analytics/chat", handlers.ChatHandler()).Methods("POST")

	return r
}
