package database

import (
	"context"
	"errors"
	"fmt"
	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateNotification(pool *pgxpool.Pool, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, message, is_read)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := pool.QueryRow(context.Background(), query,
		notification.UserID,
		notification.Message,
		notification.IsRead).Scan(&notification.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении уведомления: %v", err)
	}
	return nil
}

func GetNotificationsByUserID(pool *pgxpool.Pool, userID int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %v", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func MarkNotificationRead(pool *pgxpool.Pool, notificationID int) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1`

	result, err := pool.Exec(context.Background(), query, notificationID)
	if err != nil {
		return fmt.Errorf("ошибка обновления уведомления: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("уведомление с ID %d не найдено", notificationID)
	}
	return nil
}

func DeleteNotification(pool *pgxpool.Pool, notificationID int) error {
	query := `
		DELETE FROM notifications
		WHERE id = $1`
	result, err := pool.Exec(context.Background(), query, notificationID)
	if err != nil {
		return fmt.Errorf("ошибка удаления уведомления: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("уведомление с ID %d не найдено", notificationID)
	}
	return nil
}

func GetNotificationByID(pool *pgxpool.Pool, notificationID int) (*models.Notification, error) {
	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE id = $1`

	notification := &models.Notification{}
	err := pool.QueryRow(context.Background(), query, notificationID).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Message,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("уведомление с ID %d не найдено", notificationID)
		}
		return nil, fmt.Errorf("ошибка при получении уведомления: %v", err)
	}

	return notification, nil
}
