package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/daryakuznetsova/finhorizon/models"
	"github.com/daryakuznetsova/finhorizon/utils"
	"github.com/goccy/go-json"
)

type chatRequest struct {
	Question string `json:"question"`
}

// ChatHandler отвечает на вопрос пользователя к финансовому ассистенту.
// Ответы кэшируются на неделю по паре (пользователь, вопрос).
func ChatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}
		question := strings.TrimSpace(req.Question)
		if question == "" {
			http.Error(w, "Вопрос не может быть пустым", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if answer, ok := utils.GetCachedAnswer(userID, question); ok {
			json.NewEncoder(w).Encode(models.ChatMessage{Question: question, Answer: answer, Cached: true})
			return
		}

		answer, err := utils.AskAssistant(r.Context(), userID, question)
		if err != nil {
			log.Printf("Ошибка AI-сервиса: %v", err)
			http.Error(w, "Ассистент временно недоступен", http.StatusBadGateway)
			return
		}

		utils.StoreAnswer(userID, question, answer)
		json.NewEncoder(w).Encode(models.ChatMessage{Question: question, Answer: answer})
	}
}
