package session

import "time"

// Identity - пользователь, от имени которого работает клиент.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session - активная сессия. Отсутствие сессии выражается nil.
type Session struct {
	User      Identity  `json:"user"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthState - наблюдаемая пара {session, loading} сервиса аккаунтов.
type AuthState struct {
	Session *Session `json:"session"`
	Loading bool     `json:"loading"`
}

func (s AuthState) Present() bool {
	return s.Session != nil
}
