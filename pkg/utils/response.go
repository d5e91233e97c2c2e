package utils

import (
	"errors"

	apperrors "equipment-tracker/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	return ctx.JSON(code, response)
}

// ErrorResponse отдает ошибку клиенту. Сообщение ошибки уходит как есть.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusCode(err)
	message := err.Error()

	var body interface{} = struct{}{}
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
		if httpErr.Err != nil {
			message = httpErr.Err.Error()
		}
		if httpErr.Details != nil {
			body = httpErr.Details
		}
	}

	if code >= 500 {
		logger.Error("Ошибка обработки запроса",
			zap.String("method", ctx.Request().Method),
			zap.String("uri", ctx.Request().RequestURI),
			zap.Error(err),
		)
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    body,
		Message: message,
	})
}
