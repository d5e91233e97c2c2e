// Файл: internal/entities/user_entity.go
package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	ID               string    `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	Password         string    `json:"-" db:"password"`
	Role             UserRole  `json:"role" db:"role"`
	EmailConfirmedAt null.Time `json:"email_confirmed_at" db:"email_confirmed_at"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

func (u *User) Confirmed() bool {
	return u.EmailConfirmedAt.Valid
}
