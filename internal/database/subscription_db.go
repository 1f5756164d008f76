package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Квота бесплатного тарифа по умолчанию, транзакций в месяц.
const defaultFreeQuota = 100

// GetSubscriptionByUserID возвращает тариф пользователя. Если записи нет,
// пользователь считается на бесплатном тарифе с квотой по умолчанию.
func GetSubscriptionByUserID(pool *pgxpool.Pool, userID int) (*models.Subscription, error) {
	query := `
		SELECT id, user_id, tier, monthly_tx_quota, active_until, external_customer
		FROM subscriptions
		WHERE user_id = $1`

	sub := &models.Subscription{}
	err := pool.QueryRow(context.Background(), query, userID).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Tier,
		&sub.MonthlyTxQuota,
		&sub.ActiveUntil,
		&sub.ExternalCustomer,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.Subscription{
				UserID:         userID,
				Tier:           models.TierFree,
				MonthlyTxQuota: defaultFreeQuota,
			}, nil
		}
		return nil, fmt.Errorf("ошибка при получении тарифа: %v", err)
	}
	return sub, nil
}

// UpsertSubscription создаёт или обновляет тариф пользователя. Вызывается
// обработчиком уведомлений от платёжного провайдера.
func UpsertSubscription(pool *pgxpool.Pool, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, tier, monthly_tx_quota, active_until, external_customer)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET tier = $2, monthly_tx_quota = $3, active_until = $4, external_customer = $5
		RETURNING id`
	err := pool.QueryRow(context.Background(), query,
		sub.UserID,
		sub.Tier,
		sub.MonthlyTxQuota,
		sub.ActiveUntil,
		sub.ExternalCustomer).Scan(&sub.ID)
	if err != nil {
		return fmt.Errorf("ошибка сохранения тарифа: %v", err)
	}
	return nil
}
