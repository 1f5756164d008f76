package models

import "time"

// Сумма хранится со знаком: положительная — пополнение/доход, отрицательная — расход.
type Transaction struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	AccountID  int       `json:"account_id" db:"account_id"`
	CategoryID int       `json:"category_id" db:"category_id"`
	Amount     float64   `json:"amount" db:"amount"`
	Date       time.Time `json:"date" db:"transaction_date"`
	Note       string    `json:"note" db:"note"`
}
