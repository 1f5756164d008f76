package utils

import (
	"fmt"
	"log"
	"sync"
	"time"
)

type cachedAnswer struct {
	Answer   string
	StoredAt time.Time
}

var (
	chatCache    = sync.Map{}
	chatCacheTTL = 7 * 24 * time.Hour
)

func chatKey(userID int, question string) string {
	return fmt.Sprintf("%d|%s", userID, question)
}

// Ответ считается свежим в течение семи дней с момента сохранения.
func isFresh(storedAt, now time.Time) bool {
	return now.Sub(storedAt) < chatCacheTTL
}

// GetCachedAnswer возвращает сохранённый ответ ассистента, если он ещё свежий.
func GetCachedAnswer(userID int, question string) (string, bool) {
	v, ok := chatCache.Load(chatKey(userID, question))
	if !ok {
		return "", false
	}
	entry := v.(cachedAnswer)
	if !isFresh(entry.StoredAt, time.Now()) {
		return "", false
	}
	return entry.Answer, true
}

// StoreAnswer кладёт ответ ассистента в кэш для пары (пользователь, вопрос).
func StoreAnswer(userID int, question, answer string) {
	chatCache.Store(chatKey(userID, question), cachedAnswer{
		Answer:   answer,
		StoredAt: time.Now(),
	})
}

// PurgeExpiredAnswers удаляет протухшие записи, возвращает их количество.
// Вызывается по расписанию из cron.
func PurgeExpiredAnswers() int {
	now := time.Now()
	removed := 0
	chatCache.Range(func(key, value interface{}) bool {
		if !isFresh(value.(cachedAnswer).StoredAt, now) {
			chatCache.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		log.Printf("Из кэша ответов ассистента удалено записей: %d", removed)
	}
	return removed
}
