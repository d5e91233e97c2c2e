package controllers

import (
	"net/http"

	"equipment-tracker/internal/services"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	service services.DashboardServiceInterface
	logger  *zap.Logger
}

func NewDashboardController(service services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{service: service, logger: logger}
}

func (c *DashboardController) GetOverview(ctx echo.Context) error {
	overview, err := c.service.Overview(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, overview, "", http.StatusOK)
}
