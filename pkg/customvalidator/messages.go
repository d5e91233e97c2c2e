package customvalidator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message переводит ошибку валидатора в текст для формы входа.
// Возвращает сообщение первого нарушенного правила.
func Message(err error, opts Options) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}
	return fieldMessage(errs[0], opts)
}

func fieldMessage(fe validator.FieldError, opts Options) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "custom_email", "email":
		return "Invalid email format"
	case "allowed_domain":
		domain := strings.TrimPrefix(strings.TrimSpace(opts.AllowedEmailDomain), "@")
		return fmt.Sprintf("Only @%s email addresses are allowed", domain)
	case "strong_password":
		if value, ok := fe.Value().(string); ok {
			if problem := PasswordProblem(value); problem != "" {
				return problem
			}
		}
		return "Password is too weak"
	}
	return fmt.Sprintf("%s is invalid", field)
}
