package events

import "equipment-tracker/internal/session"

const SessionChangedEventName = "session.changed"

// SessionChangedEvent публикуется сервисом аккаунтов при каждом изменении {session, loading}.
type SessionChangedEvent struct {
	State session.AuthState
}

func (e SessionChangedEvent) Name() string {
	return SessionChangedEventName
}
