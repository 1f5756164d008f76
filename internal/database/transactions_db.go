package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, account_id, category_id, amount, note, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := pool.QueryRow(context.Background(), query,
		transaction.UserID,
		transaction.AccountID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Note,
		transaction.Date).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении транзакции: %v", err)
	}
	return nil
}

func GetTransactionByID(pool *pgxpool.Pool, transactionID int) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, category_id, amount, note, transaction_date
		FROM transactions
		WHERE id = $1`

	transaction := &models.Transaction{}
	err := pool.QueryRow(context.Background(), query, transactionID).Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.AccountID,
		&transaction.CategoryID,
		&transaction.Amount,
		&transaction.Note,
		&transaction.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("транзакция с ID %d не найдена", transactionID)
		}
		return nil, fmt.Errorf("ошибка при получении транзакции: %v", err)
	}

	return transaction, nil
}

func GetTransactionsByUserID(pool *pgxpool.Pool, userID int) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, category_id, amount, note, transaction_date
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении транзакций: %v", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.Amount, &t.Note, &t.Date); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// GetDeposits возвращает пополнения (amount > 0) по указанным счетам
// пользователя за период [from, to]. Используется расчётом прогресса цели.
func GetDeposits(pool *pgxpool.Pool, userID int, accountIDs []int, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, category_id, amount, note, transaction_date
		FROM transactions
		WHERE user_id = $1 AND account_id = ANY($2) AND amount > 0
		AND transaction_date BETWEEN $3 AND $4`
	rows, err := pool.Query(context.Background(), query, userID, accountIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пополнений: %v", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.Amount, &t.Note, &t.Date); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// CountTransactionsInMonth считает транзакции пользователя за текущий
// календарный месяц, включая уже перенесённые в архив. Нужен для проверки
// квоты тарифа.
func CountTransactionsInMonth(pool *pgxpool.Pool, userID int) (int, error) {
	query := `
		SELECT COUNT(*) FROM (
			SELECT id FROM transactions
			WHERE user_id = $1
			AND DATE_TRUNC('month', transaction_date) = DATE_TRUNC('month', CURRENT_DATE)
			UNION ALL
			SELECT id FROM transactionhistory
			WHERE user_id = $1
			AND DATE_TRUNC('month', transaction_date) = DATE_TRUNC('month', CURRENT_DATE)
		) AS combined`
	var count int
	err := pool.QueryRow(context.Background(), query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта транзакций за месяц: %v", err)
	}
	return count, nil
}

func UpdateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, category_id = $2, amount = $3, note = $4, transaction_date = $5
		WHERE id = $6`

	_, err := pool.Exec(context.Background(), query,
		transaction.AccountID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Note,
		transaction.Date,
		transaction.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления транзакции: %v", err)
	}
	return nil
}

func DeleteTransaction(pool *pgxpool.Pool, transactionID int) error {
	query := `
		DELETE FROM transactions
		WHERE id = $1`

	result, err := pool.Exec(context.Background(), query, transactionID)
	if err != nil {
		return fmt.Errorf("ошибка удаления транзакции: %v", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("транзакция с ID %d не найдена", transactionID)
	}
	return nil
}

// MoveTransactionsToHistory переносит транзакции старше трёх месяцев в архивную
// таблицу. Запускается по расписанию из cron.
func MoveTransactionsToHistory(pool *pgxpool.Pool) error {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции БД: %v", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO transactionhistory (id, user_id, account_id, category_id, amount, note, transaction_date)
		SELECT id, user_id, account_id, category_id, amount, note, transaction_date
		FROM transactions
		WHERE transaction_date < CURRENT_DATE - INTERVAL '3 months'`
	if _, err := tx.Exec(ctx, insertQuery); err != nil {
		return fmt.Errorf("ошибка переноса транзакций в архив: %v", err)
	}

	deleteQuery := `
		DELETE FROM transactions
		WHERE transaction_date < CURRENT_DATE - INTERVAL '3 months'`
	if _, err := tx.Exec(ctx, deleteQuery); err != nil {
		return fmt.Errorf("ошибка очистки перенесённых транзакций: %v", err)
	}

	return tx.Commit(ctx)
}
