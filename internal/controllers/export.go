package controllers

import (
	"fmt"
	"net/http"
	"time"

	"equipment-tracker/pkg/types"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// buildWorkbook - книга с одним листом: жирная строка заголовков и строки данных.
func buildWorkbook(sheet string, columns []string, rows []types.Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(columns))
		for j, col := range columns {
			values[j] = cellValue(row[col])
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func cellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02 15:04")
	default:
		return val
	}
}

func respondWithXLSX(ctx echo.Context, sheet string, columns []string, rows []types.Row) error {
	f, err := buildWorkbook(sheet, columns, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	fileName := fmt.Sprintf("%s_%s.xlsx", sheet, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
