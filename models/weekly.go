package models

import "time"

// DailyNet — чистый денежный поток за один день (доходы минус расходы).
type DailyNet struct {
	Date time.Time `json:"date"`
	Net  float64   `json:"net"`
}

// WeeklyBucket — агрегат за 7-дневное окно [Start, End] включительно.
type WeeklyBucket struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Net      float64   `json:"net"`
	Label    string    `json:"label"`
	Forecast bool      `json:"forecast"`
}

// ForecastPoint — точка прогноза от внешнего сервиса: конец недели и прогнозный поток.
type ForecastPoint struct {
	Date        time.Time `json:"date"`
	ForecastNet float64   `json:"net"`
}
