package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Listener - это обработчик (слушатель) событий.
type Listener func(ctx context.Context, event Event) error

// Bus - шина событий процесса. Слушатели вызываются по порядку подписки,
// в горутине издателя: порядок событий сессии важен для навигации.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
	timeout   time.Duration
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
		timeout:   30 * time.Second,
	}
}

// Subscribe подписывает слушателя на определенное событие.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish вызывает всех подписчиков события. Ошибки слушателей логируются,
// издателю они не возвращаются.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, l := range listeners {
		listenerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
		if err := l(listenerCtx, event); err != nil {
			b.logger.Error("Ошибка в обработчике события",
				zap.String("event", event.Name()),
				zap.Error(err),
			)
		}
		cancel()
	}
}
