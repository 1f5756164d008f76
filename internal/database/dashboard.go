package database

import (
	"fmt"
	"time"

	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/net/context"
)

// GetDailyNetSeries возвращает дневной чистый поток пользователя за период,
// объединяя текущие и архивные транзакции. Ряд отдаётся как есть, без
// сортировки, агрегатор сортирует сам.
func GetDailyNetSeries(pool *pgxpool.Pool, userID int, from, to time.Time) ([]models.DailyNet, error) {
	query := `
		SELECT transaction_date::date AS day, SUM(amount) AS net
		FROM (
			SELECT transaction_date, amount
			FROM transactions
			WHERE user_id = $1 AND transaction_date BETWEEN $2 AND $3
			UNION ALL
			SELECT transaction_date, amount
			FROM transactionhistory
			WHERE user_id = $1 AND transaction_date BETWEEN $2 AND $3
		) AS combined
		GROUP BY day`

	rows, err := pool.Query(context.Background(), query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении дневного ряда: %v", err)
	}
	defer rows.Close()

	var series []models.DailyNet
	for rows.Next() {
		var p models.DailyNet
		if err := rows.Scan(&p.Date, &p.Net); err != nil {
			return nil, err
		}
		series = append(series, p)
	}
	return series, nil
}

func GetTotalBalance(pool *pgxpool.Pool, userID int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(balance), 0) AS total_balance
		FROM accounts
		WHERE user_id = $1`
	var totalBalance float64
	err := pool.QueryRow(context.Background(), query, userID).Scan(&totalBalance)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении общего баланса: %v", err)
	}
	return totalBalance, nil
}

func GetIncomeExpenseSummary(pool *pgxpool.Pool, userID int) (map[string]float64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0) AS total_expense
		FROM (
			SELECT amount, transaction_date
			FROM transactions
			WHERE user_id = $1
			AND DATE_TRUNC('month', transaction_date) = DATE_TRUNC('month', CURRENT_DATE)
			UNION ALL
			SELECT amount, transaction_date
			FROM transactionhistory
			WHERE user_id = $1
			AND DATE_TRUNC('month', transaction_date) = DATE_TRUNC('month', CURRENT_DATE)
		) AS combined`
	var totalIncome, totalExpense float64
	err := pool.QueryRow(context.Background(), query, userID).Scan(&totalIncome, &totalExpense)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении доходов и расходов: %v", err)
	}
	return map[string]float64{
		"income":  totalIncome,
		"expense": totalExpense,
	}, nil
}
