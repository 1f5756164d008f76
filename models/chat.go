package models

// ChatMessage — ответ финансового ассистента. Cached отмечает ответ,
// отданный из недельного кэша без обращения к внешнему сервису.
type ChatMessage struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
	Cached   bool   `json:"cached"`
}
