package controllers

import (
	"errors"
	"net/http"

	"equipment-tracker/internal/crud"
	"equipment-tracker/internal/dto"
	"equipment-tracker/internal/services"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	reporter    crud.Reporter
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, reporter crud.Reporter, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, reporter: reporter, logger: logger}
}

func (c *AuthController) SignIn(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}

	if _, err := c.authService.SignIn(ctx.Request().Context(), payload); err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, dto.NewAuthStateDTO(c.authService.State()), "Signed in", http.StatusOK)
}

func (c *AuthController) SignUp(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}

	if err := c.authService.SignUp(ctx.Request().Context(), payload); err != nil {
		return c.fail(ctx, err)
	}
	c.reporter.Report(crud.Message{
		Level:  crud.LevelSuccess,
		Title:  services.SignUpTitle,
		Text:   services.SignUpMessage,
		Source: "auth",
	})
	return utils.SuccessResponse(ctx, dto.SignUpResponseDTO{
		Title:   services.SignUpTitle,
		Message: services.SignUpMessage,
	}, services.SignUpMessage, http.StatusCreated)
}

func (c *AuthController) VerifyEmail(ctx echo.Context) error {
	var payload dto.VerifyEmailDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrInvalidVerification, c.logger)
	}

	if err := c.authService.VerifyEmail(ctx.Request().Context(), payload.Token); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Email confirmed. You can now log in.", http.StatusOK)
}

func (c *AuthController) SignOut(ctx echo.Context) error {
	if err := c.authService.SignOut(ctx.Request().Context()); err != nil {
		return c.fail(ctx, err)
	}
	return utils.SuccessResponse(ctx, dto.NewAuthStateDTO(c.authService.State()), "Signed out", http.StatusOK)
}

func (c *AuthController) State(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, dto.NewAuthStateDTO(c.authService.State()), "", http.StatusOK)
}

// fail отправляет ошибку в ленту сообщений и в ответ.
func (c *AuthController) fail(ctx echo.Context, err error) error {
	text := err.Error()
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		text = verr.Err.Error()
	}
	if text == "" {
		text = "An error occurred"
	}
	c.reporter.Report(crud.Message{Level: crud.LevelError, Title: "Error", Text: text, Source: "auth"})
	return utils.ErrorResponse(ctx, err, c.logger)
}
