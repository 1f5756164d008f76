package utils

import "time"

// AdjustedMonthlyBudget пересчитывает месячный бюджет на произвольный диапазон дат.
// Диапазон считается полным месяцем, когда день начала на единицу больше дня конца;
// условие сохранено как есть из прежней версии расчёта.
func AdjustedMonthlyBudget(monthly float64, from, to time.Time) float64 {
	if from.Day() == to.Day()+1 {
		return monthly
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 0 {
		days = 0
	}
	return monthly / 30 * float64(days)
}
