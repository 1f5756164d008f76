package analytics

import (
	"testing"
	"time"

	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoal(target float64, goalDate time.Time) *models.Goal {
	return &models.Goal{
		ID:           1,
		UserID:       1,
		Name:         "Отпуск",
		TargetAmount: target,
		StartDate:    goalDate.AddDate(0, -6, 0),
		GoalDate:     goalDate,
		Status:       models.GoalStatusActive,
	}
}

func TestProgressGoalAchieved(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	goal := testGoal(1000, now.AddDate(0, 1, 0))
	balances := map[int]decimal.Decimal{
		10: decimal.NewFromInt(700),
		11: decimal.NewFromInt(450),
	}

	p := CalculateGoalProgress(goal, []int{10, 11}, balances, nil, now)

	assert.Equal(t, 100.0, p.Percentage, "перевыполненная цель должна давать ровно 100%")
	assert.True(t, p.CurrentAmount.Equal(decimal.NewFromInt(1150)))
	assert.Equal(t, "Поздравляем, цель уже достигнута!", p.Advice)
}

func TestProgressGoalDatePassed(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	goal := testGoal(1000, now.AddDate(0, 0, -3))
	balances := map[int]decimal.Decimal{10: decimal.NewFromInt(200)}

	p := CalculateGoalProgress(goal, []int{10}, balances, nil, now)

	assert.LessOrEqual(t, p.DaysLeft, 0)
	assert.Equal(t, "Срок цели истёк. Обновите дату или сумму цели.", p.Advice)
	assert.True(t, p.ProjectedTotal.Equal(p.CurrentAmount), "после срока новые пополнения не прогнозируются")
}

func TestProgressZeroTarget(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := testGoal(0, now.AddDate(0, 0, 10))

	p := CalculateGoalProgress(goal, []int{10}, nil, nil, now)

	assert.Equal(t, 0.0, p.Percentage, "нулевая цель не должна приводить к делению на ноль")
}

func TestProgressShortfallMessage(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := testGoal(1000, now.AddDate(0, 0, 50))
	balances := map[int]decimal.Decimal{10: decimal.NewFromInt(500)}

	// 150 за 30 дней = 5 в день при необходимых 10 в день, дефицит 5.00.
	deposits := []models.Transaction{
		{AccountID: 10, Amount: 150, Date: now.AddDate(0, 0, -10)},
	}

	p := CalculateGoalProgress(goal, []int{10}, balances, deposits, now)

	require.Equal(t, 50, p.DaysLeft)
	assert.True(t, p.AverageDailyDeposit.Equal(decimal.NewFromInt(5)))
	assert.Contains(t, p.Advice, "5.00")
	assert.Contains(t, p.Advice, "в день")
}

func TestProgressOnTrack(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := testGoal(1000, now.AddDate(0, 0, 50))
	balances := map[int]decimal.Decimal{10: decimal.NewFromInt(500)}

	// 600 за 30 дней = 20 в день, необходимо лишь 10.
	deposits := []models.Transaction{
		{AccountID: 10, Amount: 600, Date: now.AddDate(0, 0, -5)},
	}

	p := CalculateGoalProgress(goal, []int{10}, balances, deposits, now)

	assert.Equal(t, "Вы идёте по плану: текущего темпа пополнений достаточно для достижения цели.", p.Advice)
	assert.True(t, p.ProjectedTotal.Equal(decimal.NewFromInt(1500)))
}

func TestProgressDepositFiltering(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := testGoal(1000, now.AddDate(0, 0, 10))

	deposits := []models.Transaction{
		{AccountID: 10, Amount: 300, Date: now.AddDate(0, 0, -1)},  // учитывается
		{AccountID: 10, Amount: -50, Date: now.AddDate(0, 0, -1)},  // расход, не учитывается
		{AccountID: 99, Amount: 300, Date: now.AddDate(0, 0, -1)},  // чужой счёт
		{AccountID: 10, Amount: 300, Date: now.AddDate(0, 0, -40)}, // вне окна 30 дней
	}

	p := CalculateGoalProgress(goal, []int{10}, nil, deposits, now)

	assert.True(t, p.AverageDailyDeposit.Equal(decimal.NewFromInt(10)), "учитываться должны только пополнения по привязанным счетам за 30 дней")
}

func TestProgressEmptyAccountList(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := testGoal(1000, now.AddDate(0, 0, 10))
	balances := map[int]decimal.Decimal{10: decimal.NewFromInt(500)}

	p := CalculateGoalProgress(goal, nil, balances, nil, now)

	assert.True(t, p.CurrentAmount.IsZero(), "без привязанных счетов текущая сумма равна нулю")
}
