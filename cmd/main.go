package main

import (
	"fmt"
	"github.com/daryakuznetsova/finhorizon/internal/database"
	"github.com/daryakuznetsova/finhorizon/internal/events"
	"github.com/daryakuznetsova/finhorizon/internal/forecast"
	"github.com/daryakuznetsova/finhorizon/internal/routes"
	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/daryakuznetsova/finhorizon/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

func ScheduleTransactionArchival(pool *pgxpool.Pool) {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		err := database.MoveTransactionsToHistory(pool)
		if err != nil {
			log.Printf("Ошибка при переносе транзакций в архив: %v", err)
		} else {
			log.Println("Архивирование транзакций завершено успешно.")
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи для архивирования транзакций: %v", err)
	}
	c.Start()
}

func ScheduleChatCachePurge() {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		utils.PurgeExpiredAnswers()
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи для очистки кэша ассистента: %v", err)
	}
	c.Start()
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// registerEventHandlers подключает реакции на события приложения: достижение
// цели и превышение квоты тарифа превращаются в уведомления.
func registerEventHandlers(emitter *events.Emitter, pool *pgxpool.Pool) {
	emitter.Subscribe(events.GoalAchieved, func(ev events.Event) {
		goal, ok := ev.Payload.(*models.Goal)
		if !ok {
			return
		}
		if err := database.MarkGoalAchieved(pool, goal.ID); err != nil {
			log.Printf("Ошибка обновления статуса цели %d: %v", goal.ID, err)
			return
		}
		notification := &models.Notification{
			UserID:  ev.UserID,
			Message: fmt.Sprintf("Цель «%s» достигнута, поздравляем!", goal.Name),
		}
		if err := database.CreateNotification(pool, notification); err != nil {
			log.Printf("Ошибка создания уведомления: %v", err)
		}
	})

	emitter.Subscribe(events.TransactionCreated, func(ev events.Event) {
		used, err := database.CountTransactionsInMonth(pool, ev.UserID)
		if err != nil {
			log.Printf("Ошибка подсчёта транзакций пользователя %d: %v", ev.UserID, err)
			return
		}
		sub, err := database.GetSubscriptionByUserID(pool, ev.UserID)
		if err != nil {
			log.Printf("Ошибка получения тарифа пользователя %d: %v", ev.UserID, err)
			return
		}
		if sub.QuotaExceeded(used) {
			emitter.Publish(events.Event{Name: events.QuotaExceeded, UserID: ev.UserID, Payload: used})
		}
	})

	emitter.Subscribe(events.QuotaExceeded, func(ev events.Event) {
		notification := &models.Notification{
			UserID:  ev.UserID,
			Message: "Исчерпана месячная квота транзакций вашего тарифа. Перейдите на премиум, чтобы снять ограничение.",
		}
		if err := database.CreateNotification(pool, notification); err != nil {
			log.Printf("Ошибка создания уведомления о квоте: %v", err)
		}
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf("Ошибка загрузки .env файла: %v", err)
	}

	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	emitter := events.NewEmitter()
	registerEventHandlers(emitter, pool)

	forecastClient := forecast.NewClient(os.Getenv("FORECAST_API_URL"))

	r := gin.Default()
	r.Use(CORSMiddleware())

	ScheduleTransactionArchival(pool)
	ScheduleChatCachePurge()

	r.POST("/register", func(c *gin.Context) {
		var user models.User

		if err := c.ShouldBindJSON(&user); err != nil {
			log.Printf("Ошибка привязки JSON: %v\n", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных. Проверьте введённые значения."})
			return
		}

		if err := database.RegisterUser(pool, &user); err != nil {
			log.Printf("Ошибка при регистрации пользователя: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Ошибка регистрации: %v", err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Пользователь успешно зарегистрирован", "user_id": user.ID})
	})

	r.POST("/login", func(c *gin.Context) {
		var credentials models.User
		if err := c.ShouldBindJSON(&credentials); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка ввода данных"})
			return
		}
		user, err := database.AuthenticateUser(pool, credentials.Email, credentials.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Ошибка авторизации: неверный email или пароль"})
			return
		}
		user.Password = ""
		c.JSON(http.StatusOK, gin.H{"message": "Авторизация успешна", "user": user})
	})

	r.POST("/accounts", func(c *gin.Context) {
		var account models.Account
		if err := c.ShouldBindJSON(&account); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат счёта"})
			return
		}
		if account.CreatedAt.IsZero() {
			account.CreatedAt = time.Now()
		}
		if err := database.CreateAccount(pool, &account); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании счёта"})
			return
		}
		c.JSON(http.StatusCreated, account)
	})

	r.GET("/accounts", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		accounts, err := database.GetAllAccounts(pool, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка счетов"})
			return
		}
		c.JSON(http.StatusOK, accounts)
	})

	r.PUT("/accounts/:id", func(c *gin.Context) {
		var account models.Account
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор счёта"})
			return
		}
		if err := c.ShouldBindJSON(&account); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных для счёта"})
			return
		}
		account.ID = id
		if err := database.UpdateAccount(pool, &account); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка обновления счёта"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Счёт успешно обновлён"})
	})

	r.DELETE("/accounts/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор счёта"})
			return
		}
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		if err := database.DeleteAccount(pool, id, userID); err != nil {
			log.Printf("Ошибка удаления счёта с ID %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении счёта"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Счёт успешно удалён"})
	})

	r.POST("/transactions", func(c *gin.Context) {
		var transaction models.Transaction
		if err := c.ShouldBindJSON(&transaction); err != nil {
			log.Printf("Ошибка привязки JSON: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод данных"})
			return
		}
		if transaction.UserID == 0 || transaction.AccountID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан пользователь или счёт"})
			return
		}

		// Проверка квоты тарифа до записи.
		used, err := database.CountTransactionsInMonth(pool, transaction.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки квоты"})
			return
		}
		sub, err := database.GetSubscriptionByUserID(pool, transaction.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения тарифа"})
			return
		}
		if sub.QuotaExceeded(used) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Исчерпана месячная квота транзакций тарифа"})
			return
		}

		if transaction.Date.IsZero() {
			transaction.Date = time.Now()
		}
		if err := database.CreateTransaction(pool, &transaction); err != nil {
			log.Printf("Ошибка при создании транзакции: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании транзакции"})
			return
		}

		emitter.Publish(events.Event{Name: events.TransactionCreated, UserID: transaction.UserID, Payload: &transaction})
		c.JSON(http.StatusCreated, transaction)
	})

	r.GET("/transactions", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		transactions, err := database.GetTransactionsByUserID(pool, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении транзакций"})
			return
		}
		c.JSON(http.StatusOK, transactions)
	})

	r.PUT("/transactions/:id", func(c *gin.Context) {
		var transaction models.Transaction
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор транзакции"})
			return
		}
		if err := c.ShouldBindJSON(&transaction); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод данных"})
			return
		}
		transaction.ID = id
		if err := database.UpdateTransaction(pool, &transaction); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении транзакции"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Транзакция успешно обновлена"})
	})

	r.DELETE("/transactions/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор транзакции"})
			return
		}
		if err := database.DeleteTransaction(pool, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении транзакции"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Транзакция успешно удалена"})
	})

	r.POST("/goals", func(c *gin.Context) {
		var goal models.Goal
		if err := c.ShouldBindJSON(&goal); err != nil {
			log.Printf("Ошибка привязки JSON: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод данных"})
			return
		}
		if goal.UserID == 0 || goal.TargetAmount <= 0 || goal.Name == "" || goal.GoalDate.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Все поля должны быть заполнены и корректны"})
			return
		}
		if goal.GoalDate.Before(goal.StartDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Дата цели не может быть раньше даты начала"})
			return
		}
		if _, err := goal.ParseAccountIDs(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный список счетов"})
			return
		}
		if goal.Status == "" {
			goal.Status = models.GoalStatusActive
		}
		if goal.CreatedAt.IsZero() {
			goal.CreatedAt = time.Now()
		}
		if err := database.CreateGoal(pool, &goal); err != nil {
			log.Printf("Ошибка при создании цели: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании цели"})
			return
		}
		c.JSON(http.StatusCreated, goal)
	})

	r.GET("/goals", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		goals, err := database.GetAllGoals(pool, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка целей"})
			return
		}
		c.JSON(http.StatusOK, goals)
	})

	r.PUT("/goals/:id", func(c *gin.Context) {
		var goal models.Goal
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор цели"})
			return
		}
		if err := c.ShouldBindJSON(&goal); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод данных"})
			return
		}
		goal.ID = id
		if _, err := goal.ParseAccountIDs(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный список счетов"})
			return
		}
		if err := database.UpdateGoal(pool, &goal); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении цели"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Цель успешно обновлена"})
	})

	r.DELETE("/goals/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор цели"})
			return
		}
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		if err := database.DeleteGoal(pool, id, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении цели"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Цель успешно удалена"})
	})

	r.GET("/dashboard/balance", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		balance, err := database.GetTotalBalance(pool, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении баланса"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"total_balance": balance})
	})

	r.GET("/dashboard/summary", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		summary, err := database.GetIncomeExpenseSummary(pool, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении сводки"})
			return
		}
		c.JSON(http.StatusOK, summary)
	})

	r.GET("/dashboard/daily-net", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		to := time.Now()
		from := to.AddDate(0, -3, 0)
		series, err := database.GetDailyNetSeries(pool, userID, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении дневного ряда"})
			return
		}
		c.JSON(http.StatusOK, series)
	})

	r.GET("/notifications", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		notifications, err := database.GetNotificationsByUserID(pool, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении уведомлений"})
			return
		}
		c.JSON(http.StatusOK, notifications)
	})

	r.PUT("/notifications/:id/read", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор уведомления"})
			return
		}
		if err := database.MarkNotificationRead(pool, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении уведомления"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Уведомление отмечено прочитанным"})
	})

	r.GET("/subscription", func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Query("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор пользователя"})
			return
		}
		sub, err := database.GetSubscriptionByUserID(pool, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении тарифа"})
			return
		}
		c.JSON(http.StatusOK, sub)
	})

	// Аналитика живёт в отдельном mux-роутере, монтируем его целиком.
	analyticsRouter := routes.SetupRouter(pool, forecastClient, emitter)
	r.Any("/api/analytics/*path", gin.WrapH(analyticsRouter))

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
