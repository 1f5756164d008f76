package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/daryakuznetsova/finhorizon/internal/database"
	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Тесты ходят в живую БД из .env, без неё пропускаются.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := database.ConnectDB()
	if err != nil {
		t.Skipf("БД недоступна, тест пропущен: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Skipf("БД недоступна, тест пропущен: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestCreateGoal(t *testing.T) {
	pool := testPool(t)

	goal := &models.Goal{
		UserID:       1,
		Name:         "Новая машина",
		TargetAmount: 500000,
		StartDate:    time.Now(),
		GoalDate:     time.Now().AddDate(1, 0, 0),
		AccountIDs:   "[1,2]",
		Status:       models.GoalStatusActive,
		CreatedAt:    time.Now(),
	}

	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	created, err := database.GetGoalByID(pool, goal.ID, goal.UserID)
	if err != nil {
		t.Fatalf("ошибка получения цели по ID: %v", err)
	}

	if created.TargetAmount != goal.TargetAmount || created.Name != goal.Name {
		t.Errorf("данные цели не совпадают: получили %+v, хотели %+v", created, goal)
	}

	ids, err := created.ParseAccountIDs()
	if err != nil {
		t.Fatalf("ошибка разбора счетов цели: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ожидали 2 привязанных счёта, получили %d", len(ids))
	}
}

func TestGetGoalByIDWrongOwner(t *testing.T) {
	pool := testPool(t)

	goal := &models.Goal{
		UserID:       1,
		Name:         "Чужая цель",
		TargetAmount: 1000,
		StartDate:    time.Now(),
		GoalDate:     time.Now().AddDate(0, 6, 0),
		AccountIDs:   "[1]",
		Status:       models.GoalStatusActive,
		CreatedAt:    time.Now(),
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	if _, err := database.GetGoalByID(pool, goal.ID, 99999); err != database.ErrGoalNotFound {
		t.Errorf("цель чужого пользователя должна считаться не найденной, получили: %v", err)
	}
}

func TestDeleteGoal(t *testing.T) {
	pool := testPool(t)

	goal := &models.Goal{
		UserID:       1,
		Name:         "Временная цель",
		TargetAmount: 100,
		StartDate:    time.Now(),
		GoalDate:     time.Now().AddDate(0, 1, 0),
		AccountIDs:   "[1]",
		Status:       models.GoalStatusActive,
		CreatedAt:    time.Now(),
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("ошибка создания цели: %v", err)
	}

	if err := database.DeleteGoal(pool, goal.ID, goal.UserID); err != nil {
		t.Fatalf("ошибка удаления цели: %v", err)
	}

	if _, err := database.GetGoalByID(pool, goal.ID, goal.UserID); err == nil {
		t.Errorf("ошибка удаления цели по ID, цель все еще существует")
	}
}
