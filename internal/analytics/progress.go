package analytics

import (
	"math"
	"time"

	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/shopspring/decimal"
)

// Окно, по которому считается средний дневной темп пополнений.
const depositWindowDays = 30

// CalculateGoalProgress считает текущий прогресс по цели и прогноз её достижения.
// balances — текущие балансы привязанных счетов, deposits — транзакции за последние
// 30 дней по этим счетам. Функция чистая, всё состояние передаётся аргументами.
func CalculateGoalProgress(goal *models.Goal, accountIDs []int, balances map[int]decimal.Decimal, deposits []models.Transaction, now time.Time) models.GoalProgress {
	target := decimal.NewFromFloat(goal.TargetAmount)

	current := decimal.Zero
	for _, id := range accountIDs {
		if b, ok := balances[id]; ok {
			current = current.Add(b)
		}
	}

	linked := make(map[int]bool, len(accountIDs))
	for _, id := range accountIDs {
		linked[id] = true
	}

	windowStart := now.AddDate(0, 0, -depositWindowDays)
	totalDeposits := decimal.Zero
	for _, t := range deposits {
		if t.Amount <= 0 || !linked[t.AccountID] {
			continue
		}
		if t.Date.Before(windowStart) || t.Date.After(now) {
			continue
		}
		totalDeposits = totalDeposits.Add(decimal.NewFromFloat(t.Amount))
	}
	avgDaily := totalDeposits.Div(decimal.NewFromInt(depositWindowDays))

	daysLeft := int(math.Ceil(goal.GoalDate.Sub(now).Hours() / 24))

	percentage := 0.0
	if target.IsPositive() {
		percentage = current.Div(target).Mul(decimal.NewFromInt(100)).InexactFloat64()
		if percentage > 100 {
			percentage = 100
		}
		if percentage < 0 {
			percentage = 0
		}
	}

	projected := current
	if daysLeft > 0 {
		projected = current.Add(avgDaily.Mul(decimal.NewFromInt(int64(daysLeft))))
	}

	return models.GoalProgress{
		GoalID:              goal.ID,
		GoalName:            goal.Name,
		CurrentAmount:       current,
		TargetAmount:        target,
		Percentage:          percentage,
		AverageDailyDeposit: avgDaily,
		DaysLeft:            daysLeft,
		ProjectedTotal:      projected,
		Advice:              adviceFor(current, target, avgDaily, daysLeft),
	}
}

// adviceFor выбирает ровно одну рекомендацию, ветки проверяются строго по порядку:
// цель достигнута, срок истёк, темпа хватает, темпа не хватает.
func adviceFor(current, target, avgDaily decimal.Decimal, daysLeft int) string {
	switch {
	case current.GreaterThanOrEqual(target):
		return "Поздравляем, цель уже достигнута!"
	case daysLeft <= 0:
		return "Срок цели истёк. Обновите дату или сумму цели."
	}

	neededPerDay := target.Sub(current).Div(decimal.NewFromInt(int64(daysLeft)))
	if avgDaily.GreaterThanOrEqual(neededPerDay) {
		return "Вы идёте по плану: текущего темпа пополнений достаточно для достижения цели."
	}
	shortfall := neededPerDay.Sub(avgDaily)
	return "Чтобы успеть к сроку, нужно откладывать ещё " + shortfall.StringFixed(2) + " в день."
}
