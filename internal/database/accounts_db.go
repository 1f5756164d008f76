package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CreateAccount добавляет новый счёт пользователя
func CreateAccount(pool *pgxpool.Pool, account *models.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, type, balance, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := pool.QueryRow(context.Background(), query,
		account.UserID,
		account.Name,
		account.Type,
		account.Balance,
		account.Currency,
		account.CreatedAt).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении счёта: %v", err)
	}
	return nil
}

func GetAccountByID(pool *pgxpool.Pool, accountID, userID int) (*models.Account, error) {
	query := `
		SELECT id, user_id, name, type, balance, currency, created_at
		FROM accounts
		WHERE id = $1 AND user_id = $2`

	account := &models.Account{}
	err := pool.QueryRow(context.Background(), query, accountID, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Type,
		&account.Balance,
		&account.Currency,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("счёт с ID %d не найден", accountID)
		}
		return nil, fmt.Errorf("ошибка при получении счёта: %v", err)
	}
	return account, nil
}

// GetAllAccounts извлекает все счета пользователя
func GetAllAccounts(pool *pgxpool.Pool, userID int) ([]models.Account, error) {
	query := `SELECT id, user_id, name, type, balance, currency, created_at FROM accounts WHERE user_id = $1`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении счетов: %v", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &account.Type, &account.Balance, &account.Currency, &account.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// GetAccountBalances возвращает текущие балансы указанных счетов пользователя.
// Счета, которых нет в таблице, в карту не попадают: вызывающая сторона
// трактует отсутствующий баланс как ноль.
func GetAccountBalances(pool *pgxpool.Pool, userID int, accountIDs []int) (map[int]decimal.Decimal, error) {
	query := `SELECT id, balance FROM accounts WHERE user_id = $1 AND id = ANY($2)`
	rows, err := pool.Query(context.Background(), query, userID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении балансов счетов: %v", err)
	}
	defer rows.Close()

	balances := make(map[int]decimal.Decimal, len(accountIDs))
	for rows.Next() {
		var id int
		var balance decimal.Decimal
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, err
		}
		balances[id] = balance
	}
	return balances, nil
}

func UpdateAccount(pool *pgxpool.Pool, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, type = $2, balance = $3, currency = $4
		WHERE id = $5 AND user_id = $6`
	_, err := pool.Exec(context.Background(), query,
		account.Name,
		account.Type,
		account.Balance,
		account.Currency,
		account.ID,
		account.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления счёта: %v", err)
	}
	return nil
}

func DeleteAccount(pool *pgxpool.Pool, accountID, userID int) error {
	query := `
		DELETE FROM accounts
		WHERE id = $1 AND user_id = $2`
	result, err := pool.Exec(context.Background(), query, accountID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления счёта: %v", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("счёт с ID %d не найден", accountID)
	}
	return nil
}
