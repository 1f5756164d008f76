package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/daryakuznetsova/finhorizon/models"
)

// Client — клиент внешнего сервиса прогнозирования. Сервис по числу недель и
// месячному бюджету возвращает упорядоченный список недельных точек прогноза.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// WeeklyForecast запрашивает прогноз. Любой не-2xx статус или сетевая ошибка
// возвращаются как ошибка: вызывающая сторона деградирует до одной истории,
// повторных попыток нет.
func (c *Client) WeeklyForecast(ctx context.Context, weeks int, monthlyBudget float64) ([]models.ForecastPoint, error) {
	url := fmt.Sprintf("%s/forecast/weekly?weeks=%d&budget=%.2f", c.baseURL, weeks, monthlyBudget)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к сервису прогнозов: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("сервис прогнозов вернул статус %d", resp.StatusCode)
	}

	var points []models.ForecastPoint
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа сервиса прогнозов: %v", err)
	}
	return points, nil
}
