package seeders

import (
	"context"
	"errors"
	"strings"

	"equipment-tracker/pkg/customvalidator"
	"equipment-tracker/pkg/utils"

	"github.com/jackc/pgx/v5"
)

// seedDemoUser создает подтвержденного пользователя или возвращает id существующего.
// Пароль существующего пользователя не перезаписывается.
func seedDemoUser(ctx context.Context, tx pgx.Tx, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New("demo email is empty")
	}
	if problem := customvalidator.PasswordProblem(password); problem != "" {
		return "", errors.New(problem)
	}

	var id string
	err := tx.QueryRow(ctx, "SELECT id::text FROM users WHERE lower(email) = $1", email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password, role, email_confirmed_at) VALUES ($1, $2, 'admin', now()) RETURNING id::text`,
		email, hashed,
	).Scan(&id)
	return id, err
}
