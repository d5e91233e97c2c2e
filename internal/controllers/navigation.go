package controllers

import (
	"net/http"

	"equipment-tracker/internal/crud"
	"equipment-tracker/internal/navigation"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
)

type NavigationDTO struct {
	State          string              `json:"state"`
	Screens        []navigation.Screen `json:"screens"`
	GestureEnabled bool                `json:"gesture_enabled"`
}

// NavigationController отдает корневое состояние навигации и ленту сообщений.
type NavigationController struct {
	gate navigation.StateSource
	feed *crud.Feed
}

func NewNavigationController(gate navigation.StateSource, feed *crud.Feed) *NavigationController {
	return &NavigationController{gate: gate, feed: feed}
}

func (c *NavigationController) Navigation(ctx echo.Context) error {
	state := c.gate.State()
	return utils.SuccessResponse(ctx, NavigationDTO{
		State:          state.String(),
		Screens:        navigation.Reachable(state),
		GestureEnabled: false,
	}, "", http.StatusOK)
}

// Messages забирает накопленные сообщения пользователю.
func (c *NavigationController) Messages(ctx echo.Context) error {
	messages := c.feed.Drain()
	if messages == nil {
		messages = []crud.Message{}
	}
	return utils.SuccessResponse(ctx, messages, "", http.StatusOK)
}
