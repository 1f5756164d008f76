package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/daryakuznetsova/finhorizon/models"
)

// AggregateWeekly сворачивает дневной ряд в последовательные 7-дневные корзины.
// Окна идут подряд от самой ранней даты: [курсор, курсор+6] включительно, затем
// курсор переходит на следующий день после конца окна. Пустой вход — пустой выход.
func AggregateWeekly(points []models.DailyNet) []models.WeeklyBucket {
	if len(points) == 0 {
		return nil
	}

	sorted := make([]models.DailyNet, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	var buckets []models.WeeklyBucket
	cursor := dateOnly(sorted[0].Date)
	idx := 0
	for idx < len(sorted) {
		end := cursor.AddDate(0, 0, 6)
		var net float64
		for idx < len(sorted) && !dateOnly(sorted[idx].Date).After(end) {
			net += sorted[idx].Net
			idx++
		}
		buckets = append(buckets, models.WeeklyBucket{
			Start: cursor,
			End:   end,
			Net:   net,
			Label: weekLabel(cursor, end),
		})
		cursor = end.AddDate(0, 0, 1)
	}
	return buckets
}

// StitchForecast строит корзины прогноза и пришивает их к концу истории.
// Начало каждой корзины — за 6 дней до её конца, но не раньше дня после конца
// предыдущей корзины, чтобы окна не пересекались. Значение первой корзины
// принудительно равно последнему историческому значению — это точка непрерывности
// линии графика, в сводной статистике она не участвует.
func StitchForecast(history []models.WeeklyBucket, forecast []models.ForecastPoint) []models.WeeklyBucket {
	if len(history) == 0 || len(forecast) == 0 {
		return nil
	}

	last := history[len(history)-1]
	prevEnd := dateOnly(last.End)

	buckets := make([]models.WeeklyBucket, 0, len(forecast))
	for _, fp := range forecast {
		end := dateOnly(fp.Date)
		// Точка, не выходящая за конец предыдущей корзины, дала бы окно с
		// началом позже конца. Такие точки пропускаются.
		if !end.After(prevEnd) {
			continue
		}
		start := end.AddDate(0, 0, -6)
		if minStart := prevEnd.AddDate(0, 0, 1); start.Before(minStart) {
			start = minStart
		}
		net := fp.ForecastNet
		if len(buckets) == 0 {
			net = last.Net
		}
		buckets = append(buckets, models.WeeklyBucket{
			Start:    start,
			End:      end,
			Net:      net,
			Label:    weekLabel(start, end),
			Forecast: true,
		})
		prevEnd = end
	}
	return buckets
}

// ForecastSummary считает суммарное прогнозное изменение и одну итоговую фразу.
// Первая корзина — синтетическая точка непрерывности, она исключается и из суммы,
// и из счётчика недель.
func ForecastSummary(forecastBuckets []models.WeeklyBucket) (projectedChange float64, weeksCount int, summary string) {
	for i, b := range forecastBuckets {
		if i == 0 {
			continue
		}
		projectedChange += b.Net
		weeksCount++
	}

	switch {
	case projectedChange > 0:
		summary = fmt.Sprintf("Прогноз: за ближайшие %d нед. баланс вырастет примерно на %.2f.", weeksCount, projectedChange)
	case projectedChange < 0:
		summary = fmt.Sprintf("Прогноз: за ближайшие %d нед. баланс снизится примерно на %.2f.", weeksCount, math.Abs(projectedChange))
	default:
		summary = fmt.Sprintf("Прогноз: в ближайшие %d нед. баланс останется стабильным.", weeksCount)
	}
	return projectedChange, weeksCount, summary
}

// Подпись корзины: день.месяц без года, например "02.01 – 08.01".
func weekLabel(start, end time.Time) string {
	return start.Format("02.01") + " – " + end.Format("02.01")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
