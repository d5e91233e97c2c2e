package navigation

import (
	"net/http"

	"equipment-tracker/internal/session"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Screen string

const (
	ScreenSplash    Screen = "splash"
	ScreenLogin     Screen = "login"
	ScreenDashboard Screen = "dashboard"
	ScreenTickets   Screen = "tickets"
	ScreenInventory Screen = "inventory"
)

// Reachable - экраны, доступные в данном состоянии навигации.
// Остальные экраны не существуют: назад к ним не вернуться.
func Reachable(state session.State) []Screen {
	switch state {
	case session.UnauthenticatedStack:
		return []Screen{ScreenLogin}
	case session.AuthenticatedStack:
		return []Screen{ScreenDashboard, ScreenTickets, ScreenInventory}
	default:
		return []Screen{ScreenSplash}
	}
}

func IsReachable(state session.State, screen Screen) bool {
	for _, s := range Reachable(state) {
		if s == screen {
			return true
		}
	}
	return false
}

// StateSource - источник текущего состояния навигации.
type StateSource interface {
	State() session.State
}

// RequireScreen пропускает запрос, только если хотя бы один из экранов
// достижим в текущем состоянии. Иначе 409 с текущим состоянием.
func RequireScreen(source StateSource, logger *zap.Logger, screens ...Screen) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := source.State()
			for _, screen := range screens {
				if IsReachable(state, screen) {
					return next(c)
				}
			}
			logger.Debug("Экран недоступен",
				zap.Stringer("state", state),
				zap.String("path", c.Path()),
			)
			return utils.ErrorResponse(c, apperrors.NewHttpError(
				http.StatusConflict,
				apperrors.ErrScreenUnreachable.Error(),
				nil,
				map[string]interface{}{
					"state":   state.String(),
					"screens": Reachable(state),
				},
			), logger)
		}
	}
}
