package routes

import (
	"net/http"

	"equipment-tracker/internal/controllers"
	"equipment-tracker/internal/crud"
	"equipment-tracker/internal/entities"
	"equipment-tracker/internal/navigation"
	"equipment-tracker/internal/services"
	"equipment-tracker/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Loggers struct {
	Main *zap.Logger
	Auth *zap.Logger
	CRUD *zap.Logger
}

// Dependencies - собранные в main компоненты клиента.
type Dependencies struct {
	Gate      navigation.StateSource
	Auth      services.AuthServiceInterface
	Dashboard services.DashboardServiceInterface
	Equipment *crud.Controller[entities.Equipment]
	Tickets   *crud.Controller[entities.Ticket]
	Feed      *crud.Feed
	Metrics   http.Handler
	AnonKey   string
}

func InitRouter(e *echo.Echo, deps *Dependencies, loggers *Loggers) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	e.Use(middleware.APIKey(deps.AnonKey, loggers.Main, "/health", "/metrics", "/auth/*"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics))
	}

	navCtrl := controllers.NewNavigationController(deps.Gate, deps.Feed)
	e.GET("/navigation", navCtrl.Navigation)
	e.GET("/messages", navCtrl.Messages)

	runAuthRouter(e, deps, loggers.Auth)

	dashboard := e.Group("/dashboard", navigation.RequireScreen(deps.Gate, loggers.Main, navigation.ScreenDashboard))
	dashboardCtrl := controllers.NewDashboardController(deps.Dashboard, loggers.Main)
	dashboard.GET("", dashboardCtrl.GetOverview)

	inventory := e.Group("/inventory", navigation.RequireScreen(deps.Gate, loggers.CRUD, navigation.ScreenInventory))
	runScreenRouter(inventory, controllers.NewScreenController(deps.Equipment, loggers.CRUD))

	tickets := e.Group("/tickets", navigation.RequireScreen(deps.Gate, loggers.CRUD, navigation.ScreenTickets))
	runScreenRouter(tickets, controllers.NewScreenController(deps.Tickets, loggers.CRUD))
	optionsCtrl := controllers.NewEquipmentOptionsController(deps.Equipment, loggers.CRUD)
	tickets.GET("/equipment-options", optionsCtrl.List)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}

// screenHandlers - обработчики CRUD-экрана, независимые от типа сущности.
type screenHandlers interface {
	List(echo.Context) error
	Refresh(echo.Context) error
	OpenCreate(echo.Context) error
	OpenEdit(echo.Context) error
	UpdateDraft(echo.Context) error
	GetEditor(echo.Context) error
	CloseEditor(echo.Context) error
	Save(echo.Context) error
	Export(echo.Context) error
}

func runScreenRouter(g *echo.Group, ctrl screenHandlers) {
	g.GET("", ctrl.List)
	g.POST("/refresh", ctrl.Refresh)
	g.GET("/export", ctrl.Export)

	g.GET("/editor", ctrl.GetEditor)
	g.POST("/editor", ctrl.OpenCreate)
	g.POST("/editor/save", ctrl.Save)
	g.POST("/editor/:id", ctrl.OpenEdit)
	g.PATCH("/editor", ctrl.UpdateDraft)
	g.DELETE("/editor", ctrl.CloseEditor)
}
