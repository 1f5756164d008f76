package models

import "github.com/shopspring/decimal"

// GoalProgress — результат расчёта прогресса по цели накопления.
type GoalProgress struct {
	GoalID              int             `json:"goal_id"`
	GoalName            string          `json:"goal_name"`
	CurrentAmount       decimal.Decimal `json:"current_amount"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	Percentage          float64         `json:"percentage"`
	AverageDailyDeposit decimal.Decimal `json:"average_daily_deposit"`
	DaysLeft            int             `json:"days_left"`
	ProjectedTotal      decimal.Decimal `json:"projected_total"`
	Advice              string          `json:"advice"`
}
