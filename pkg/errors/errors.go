package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")

	// Авторизация
	ErrInvalidCredentials  = fmt.Errorf("Invalid login credentials")
	ErrEmailNotConfirmed   = fmt.Errorf("Email not confirmed")
	ErrUserAlreadyExists   = fmt.Errorf("User already registered")
	ErrInvalidVerification = fmt.Errorf("Verification link is invalid or has expired")
	ErrUnauthorized        = fmt.Errorf("not signed in")
	ErrInvalidAPIKey       = fmt.Errorf("invalid API key")

	// Навигация
	ErrScreenUnreachable = fmt.Errorf("screen is not reachable from the current navigation state")

	// Редактор
	ErrEditorClosed    = fmt.Errorf("editor is not open")
	ErrSaveInProgress  = fmt.Errorf("a save is already in progress")
	ErrRequiredFields  = fmt.Errorf("Please fill in all required fields")
	ErrUnknownRecord   = fmt.Errorf("record is not in the current list")
	ErrUnknownField    = fmt.Errorf("unknown field")
	ErrCollectionSetup = fmt.Errorf("collection is not configured")

	// Общие
	ErrNotFound   = fmt.Errorf("record not found")
	ErrBadRequest = fmt.Errorf("bad request")
)

// ValidationError - локальная ошибка валидации, до бэкенда не доходит.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

func NewValidationError(err error, fields ...string) error {
	return &ValidationError{Fields: fields, Err: err}
}

// HttpError - ошибка с HTTP статусом и сообщением для пользователя.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// StatusCode подбирает HTTP статус для ошибки.
func StatusCode(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownRecord):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrInvalidAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, ErrEmailNotConfirmed):
		return http.StatusForbidden
	case errors.Is(err, ErrUserAlreadyExists), errors.Is(err, ErrSaveInProgress),
		errors.Is(err, ErrScreenUnreachable), errors.Is(err, ErrEditorClosed):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrUnknownField), errors.Is(err, ErrInvalidVerification):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ErrInvalidFieldValue - значение поля вне допустимого набора.
var ErrInvalidFieldValue = fmt.Errorf("Please choose a valid value")
