package dto

import (
	"time"

	"equipment-tracker/internal/session"
)

// LoginDTO - форма входа и регистрации.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,custom_email,allowed_domain"`
	Password string `json:"password" validate:"required,strong_password"`
}

type VerifyEmailDTO struct {
	Token string `query:"token" validate:"required,uuid"`
}

type SignUpResponseDTO struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type SessionDTO struct {
	User      session.Identity `json:"user"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type AuthStateDTO struct {
	Session *SessionDTO `json:"session"`
	Loading bool        `json:"loading"`
}

func NewAuthStateDTO(state session.AuthState) AuthStateDTO {
	out := AuthStateDTO{Loading: state.Loading}
	if state.Session != nil {
		out.Session = &SessionDTO{User: state.Session.User, ExpiresAt: state.Session.ExpiresAt}
	}
	return out
}
