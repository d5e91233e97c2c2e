package routes

import (
	"equipment-tracker/internal/controllers"
	"equipment-tracker/internal/navigation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(e *echo.Echo, deps *Dependencies, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(deps.Auth, deps.Feed, logger)

	e.GET("/session", authCtrl.State)
	e.GET("/auth/verify", authCtrl.VerifyEmail)

	login := e.Group("/login", navigation.RequireScreen(deps.Gate, logger, navigation.ScreenLogin))
	login.POST("/sign-in", authCtrl.SignIn)
	login.POST("/sign-up", authCtrl.SignUp)

	secure := e.Group("/session", navigation.RequireScreen(deps.Gate, logger,
		navigation.ScreenDashboard, navigation.ScreenTickets, navigation.ScreenInventory))
	secure.POST("/sign-out", authCtrl.SignOut)
}
