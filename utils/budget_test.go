package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdjustedMonthlyBudgetFullMonth(t *testing.T) {
	// День начала на единицу больше дня конца — диапазон считается полным месяцем.
	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3000.0, AdjustedMonthlyBudget(3000, from, to))
}

func TestAdjustedMonthlyBudgetProration(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	// 15 дней включительно из условных 30.
	assert.InDelta(t, 1500.0, AdjustedMonthlyBudget(3000, from, to), 0.001)
}
