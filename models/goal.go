package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	GoalStatusActive   = "active"
	GoalStatusAchieved = "achieved"
)

type Goal struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	TargetAmount float64   `json:"target_amount" db:"target_amount"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	GoalDate     time.Time `json:"goal_date" db:"goal_date"`
	AccountIDs   string    `json:"account_ids" db:"account_ids"` // JSON-список идентификаторов счетов
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ParseAccountIDs разбирает сохранённый список счетов цели.
func (g *Goal) ParseAccountIDs() ([]int, error) {
	if g.AccountIDs == "" {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(g.AccountIDs), &ids); err != nil {
		return nil, fmt.Errorf("некорректный формат списка счетов цели: %v", err)
	}
	return ids, nil
}
