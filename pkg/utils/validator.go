package utils

import (
	"errors"
	"strings"

	apperrors "equipment-tracker/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator подключает go-playground/validator к echo.Context.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

// Validate оборачивает ошибки правил в ValidationError со списком полей
// в нижнем регистре. Исходная ошибка валидатора доступна через errors.As.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return apperrors.NewValidationError(err, fields...)
}
