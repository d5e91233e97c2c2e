package controllers

import (
	"net/http"

	"equipment-tracker/internal/crud"
	"equipment-tracker/pkg/types"
	"equipment-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ScreenView - состояние CRUD-экрана для слоя отображения.
type ScreenView[T any] struct {
	Items  []T         `json:"items"`
	Busy   bool        `json:"busy"`
	Saving bool        `json:"saving"`
	Editor *crud.Draft `json:"editor"`
}

// ScreenController - HTTP-обвязка над crud.Controller одной сущности.
type ScreenController[T any] struct {
	screen *crud.Controller[T]
	logger *zap.Logger
}

func NewScreenController[T any](screen *crud.Controller[T], logger *zap.Logger) *ScreenController[T] {
	return &ScreenController[T]{screen: screen, logger: logger}
}

func (c *ScreenController[T]) view(query string) ScreenView[T] {
	v := ScreenView[T]{
		Items:  c.screen.Items(query),
		Busy:   c.screen.Busy(),
		Saving: c.screen.Saving(),
	}
	if v.Items == nil {
		v.Items = []T{}
	}
	if draft, open := c.screen.Draft(); open {
		v.Editor = &draft
	}
	return v
}

func (c *ScreenController[T]) List(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.view(ctx.QueryParam("q")), "", http.StatusOK)
}

// Refresh - монтирование экрана или pull-to-refresh.
func (c *ScreenController[T]) Refresh(ctx echo.Context) error {
	if err := c.screen.Load(ctx.Request().Context()); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, c.view(ctx.QueryParam("q")), "", http.StatusOK)
}

func (c *ScreenController[T]) OpenCreate(ctx echo.Context) error {
	seed := types.Row{}
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &seed); err != nil {
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}
	c.screen.OpenCreate(seed)
	return c.editor(ctx)
}

func (c *ScreenController[T]) OpenEdit(ctx echo.Context) error {
	if err := c.screen.OpenEdit(ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.editor(ctx)
}

func (c *ScreenController[T]) UpdateDraft(ctx echo.Context) error {
	patch := types.Row{}
	if err := (&echo.DefaultBinder{}).BindBody(ctx, &patch); err != nil {
		return utils.ErrorResponse(ctx, badBody(err), c.logger)
	}
	if err := c.screen.UpdateDraft(patch); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.editor(ctx)
}

func (c *ScreenController[T]) GetEditor(ctx echo.Context) error {
	return c.editor(ctx)
}

func (c *ScreenController[T]) CloseEditor(ctx echo.Context) error {
	c.screen.CloseEditor()
	return c.editor(ctx)
}

func (c *ScreenController[T]) Save(ctx echo.Context) error {
	if err := c.screen.Save(ctx.Request().Context()); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, c.view(""), "Saved", http.StatusOK)
}

func (c *ScreenController[T]) Export(ctx echo.Context) error {
	schema := c.screen.Schema()
	items := c.screen.Items(ctx.QueryParam("q"))
	rows := make([]types.Row, len(items))
	for i, item := range items {
		rows[i] = schema.Encode(item)
	}
	return respondWithXLSX(ctx, schema.Collection, schema.Columns, rows)
}

func (c *ScreenController[T]) editor(ctx echo.Context) error {
	var body struct {
		Editor *crud.Draft `json:"editor"`
	}
	if draft, open := c.screen.Draft(); open {
		body.Editor = &draft
	}
	return utils.SuccessResponse(ctx, body, "", http.StatusOK)
}
