package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrGoalNotFound = errors.New("цель не найдена")

// CreateGoal добавляет новую цель накопления в базу данных
func CreateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, start_date, goal_date, account_ids, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := pool.QueryRow(context.Background(), query,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.StartDate,
		goal.GoalDate,
		goal.AccountIDs,
		goal.Status,
		goal.CreatedAt).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении цели: %v", err)
	}
	return nil
}

// GetGoalByID извлекает цель по ID, цель должна принадлежать пользователю
func GetGoalByID(pool *pgxpool.Pool, goalID, userID int) (*models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, start_date, goal_date, account_ids, status, created_at
		FROM goals
		WHERE id = $1 AND user_id = $2`

	goal := &models.Goal{}
	err := pool.QueryRow(context.Background(), query, goalID, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.TargetAmount,
		&goal.StartDate,
		&goal.GoalDate,
		&goal.AccountIDs,
		&goal.Status,
		&goal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("ошибка при получении цели: %v", err)
	}
	return goal, nil
}

// GetAllGoals извлекает все цели пользователя
func GetAllGoals(pool *pgxpool.Pool, userID int) ([]models.Goal, error) {
	query := `SELECT id, user_id, name, target_amount, start_date, goal_date, account_ids, status, created_at FROM goals WHERE user_id = $1`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %v", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var goal models.Goal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.StartDate, &goal.GoalDate, &goal.AccountIDs, &goal.Status, &goal.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, nil
}

// UpdateGoal обновляет информацию о цели
func UpdateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, start_date = $3, goal_date = $4, account_ids = $5, status = $6
		WHERE id = $7 AND user_id = $8`
	_, err := pool.Exec(context.Background(), query,
		goal.Name,
		goal.TargetAmount,
		goal.StartDate,
		goal.GoalDate,
		goal.AccountIDs,
		goal.Status,
		goal.ID,
		goal.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления цели: %v", err)
	}
	return nil
}

// DeleteGoal удаляет цель по ID
func DeleteGoal(pool *pgxpool.Pool, goalID, userID int) error {
	query := `
		DELETE FROM goals
		WHERE id = $1 AND user_id = $2`
	result, err := pool.Exec(context.Background(), query, goalID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления цели: %v", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d не найдена", goalID)
	}
	return nil
}

// MarkGoalAchieved обновляет статус цели
func MarkGoalAchieved(pool *pgxpool.Pool, goalID int) error {
	query := `
		UPDATE goals
		SET status = $1
		WHERE id = $2`
	_, err := pool.Exec(context.Background(), query, models.GoalStatusAchieved, goalID)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса цели: %v", err)
	}
	return nil
}
