package events

import "sync"

const (
	TransactionCreated = "transaction.created"
	GoalAchieved       = "goal.achieved"
	QuotaExceeded      = "quota.exceeded"
)

// Event — событие приложения. Счётчик использованных транзакций и прочие
// реакции на изменения оформлены подписками на события, а не глобальными
// колбэками: эмиттер создаётся в main и передаётся явно.
type Event struct {
	Name    string
	UserID  int
	Payload interface{}
}

type Handler func(Event)

type Emitter struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[string][]Handler)}
}

// Subscribe регистрирует обработчик события с указанным именем.
func (e *Emitter) Subscribe(name string, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs[name] = append(e.subs[name], h)
}

// Publish синхронно вызывает всех подписчиков события в порядке регистрации.
func (e *Emitter) Publish(ev Event) {
	e.mu.RLock()
	handlers := make([]Handler, len(e.subs[ev.Name]))
	copy(handlers, e.subs[ev.Name])
	e.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
