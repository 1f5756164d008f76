package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

var aiClient = http.Client{Timeout: 30 * time.Second}

// AskAssistant отправляет вопрос внешнему AI-сервису и возвращает текст ответа.
// Адрес сервиса берётся из переменной окружения AI_API_URL.
func AskAssistant(ctx context.Context, userID int, question string) (string, error) {
	apiURL := os.Getenv("AI_API_URL")
	if apiURL == "" {
		return "", errors.New("AI_API_URL не задан")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"user_id":  userID,
		"question": question,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := aiClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса к AI-сервису: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI-сервис вернул статус %d", resp.StatusCode)
	}

	var response struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("ошибка разбора ответа AI-сервиса: %v", err)
	}
	return response.Answer, nil
}
