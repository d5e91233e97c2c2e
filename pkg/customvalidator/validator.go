// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength - минимальная длина пароля для формы входа.
const MinPasswordLength = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Options struct {
	// AllowedEmailDomain - домен, которым должен заканчиваться email. Пустая строка отключает проверку.
	AllowedEmailDomain string
}

// RegisterCustomValidations регистрирует все кастомные правила в валидаторе.
func RegisterCustomValidations(v *validator.Validate, opts Options) error {
	registerNullTypes(v)

	if err := v.RegisterValidation("custom_email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("allowed_domain", allowedDomain(opts.AllowedEmailDomain)); err != nil {
		return err
	}
	if err := v.RegisterValidation("strong_password", isStrongPassword); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func allowedDomain(domain string) validator.Func {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "@"))
	return func(fl validator.FieldLevel) bool {
		if domain == "" {
			return true
		}
		return strings.HasSuffix(strings.ToLower(fl.Field().String()), "@"+domain)
	}
}

func isStrongPassword(fl validator.FieldLevel) bool {
	return PasswordProblem(fl.Field().String()) == ""
}

// PasswordProblem возвращает первое нарушенное правило пароля или "".
func PasswordProblem(s string) string {
	if len([]rune(s)) < MinPasswordLength {
		return "Password must be at least 12 characters"
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	switch {
	case !upper:
		return "Password must contain at least one uppercase letter"
	case !lower:
		return "Password must contain at least one lowercase letter"
	case !digit:
		return "Password must contain at least one number"
	case !special:
		return "Password must contain at least one special character"
	}
	return ""
}
