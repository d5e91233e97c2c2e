package listeners

import (
	"context"
	"fmt"

	"equipment-tracker/internal/events"
	"equipment-tracker/internal/session"
	"equipment-tracker/pkg/eventbus"

	"go.uber.org/zap"
)

// Resettable - экран, чьи данные нельзя показывать следующему пользователю.
type Resettable interface {
	Reset()
}

// SessionListener связывает сервис аккаунтов с навигацией и экранами.
type SessionListener struct {
	gate    *session.Gate
	screens []Resettable
	logger  *zap.Logger
}

func NewSessionListener(gate *session.Gate, logger *zap.Logger, screens ...Resettable) *SessionListener {
	return &SessionListener{gate: gate, screens: screens, logger: logger}
}

func (l *SessionListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.SessionChangedEventName, l.HandleSessionChanged)
	l.logger.Info("SessionListener подписан на события", zap.String("event", events.SessionChangedEventName))
}

func (l *SessionListener) HandleSessionChanged(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.SessionChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	if !e.State.Present() {
		for _, s := range l.screens {
			s.Reset()
		}
	}
	l.gate.HandleAuthState(e.State)
	return nil
}
