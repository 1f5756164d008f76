package models

import "time"

const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Subscription — тариф пользователя. Квота ограничивает число транзакций в месяц,
// нулевая квота означает безлимит.
type Subscription struct {
	ID               int       `json:"id" db:"id"`
	UserID           int       `json:"user_id" db:"user_id"`
	Tier             string    `json:"tier" db:"tier"`
	MonthlyTxQuota   int       `json:"monthly_tx_quota" db:"monthly_tx_quota"`
	ActiveUntil      time.Time `json:"active_until" db:"active_until"`
	ExternalCustomer string    `json:"external_customer" db:"external_customer"`
}

func (s *Subscription) QuotaExceeded(used int) bool {
	return s.MonthlyTxQuota > 0 && used >= s.MonthlyTxQuota
}
