package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/daryakuznetsova/finhorizon/internal/analytics"
	"github.com/daryakuznetsova/finhorizon/internal/database"
	"github.com/daryakuznetsova/finhorizon/internal/events"
	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// userIDFromRequest извлекает идентификатор пользователя из заголовка X-User-ID.
// Без подтверждённой личности аналитические запросы не обслуживаются.
func userIDFromRequest(r *http.Request) (int, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, errors.New("не указан пользователь")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("некорректный идентификатор пользователя")
	}
	return id, nil
}

// GoalProgressHandler считает прогресс по цели накопления и прогноз её достижения
func GoalProgressHandler(pool *pgxpool.Pool, emitter *events.Emitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		goalID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID цели", http.StatusBadRequest)
			return
		}

		goal, err := database.GetGoalByID(pool, goalID, userID)
		if err != nil {
			if errors.Is(err, database.ErrGoalNotFound) {
				http.Error(w, "Цель не найдена", http.StatusNotFound)
				return
			}
			log.Printf("Ошибка получения цели из базы данных: %v", err)
			http.Error(w, "Не удалось получить цель", http.StatusInternalServerError)
			return
		}

		accountIDs, err := goal.ParseAccountIDs()
		if err != nil {
			log.Printf("Ошибка разбора счетов цели %d: %v", goalID, err)
			http.Error(w, "Повреждены данные цели", http.StatusInternalServerError)
			return
		}

		now := time.Now()

		// Балансы и пополнения независимы, запрашиваем их параллельно.
		var (
			wg       sync.WaitGroup
			balances map[int]decimal.Decimal
			deposits []models.Transaction
			balErr   error
			depErr   error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			balances, balErr = database.GetAccountBalances(pool, userID, accountIDs)
		}()
		go func() {
			defer wg.Done()
			deposits, depErr = database.GetDeposits(pool, userID, accountIDs, now.AddDate(0, 0, -30), now)
		}()
		wg.Wait()

		if balErr != nil {
			log.Printf("Ошибка получения балансов: %v", balErr)
			http.Error(w, "Не удалось получить балансы счетов", http.StatusInternalServerError)
			return
		}
		if depErr != nil {
			log.Printf("Ошибка получения пополнений: %v", depErr)
			http.Error(w, "Не удалось получить пополнения", http.StatusInternalServerError)
			return
		}

		progress := analytics.CalculateGoalProgress(goal, accountIDs, balances, deposits, now)

		if goal.Status == models.GoalStatusActive && progress.CurrentAmount.GreaterThanOrEqual(progress.TargetAmount) {
			emitter.Publish(events.Event{Name: events.GoalAchieved, UserID: userID, Payload: goal})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(progress)
	}
}
