package controllers

import (
	"net/http"

	"equipment-tracker/internal/crud"
	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EquipmentOptionDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EquipmentOptionsController - список оборудования для выбора в заявке.
type EquipmentOptionsController struct {
	equipment *crud.Controller[entities.Equipment]
	logger    *zap.Logger
}

func NewEquipmentOptionsController(equipment *crud.Controller[entities.Equipment], logger *zap.Logger) *EquipmentOptionsController {
	return &EquipmentOptionsController{equipment: equipment, logger: logger}
}

func (c *EquipmentOptionsController) List(ctx echo.Context) error {
	if err := c.equipment.Load(ctx.Request().Context()); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	items := c.equipment.Items("")
	options := make([]EquipmentOptionDTO, len(items))
	for i, e := range items {
		options[i] = EquipmentOptionDTO{ID: e.ID, Name: e.Name}
	}
	return utils.SuccessResponse(ctx, options, "", http.StatusOK)
}
