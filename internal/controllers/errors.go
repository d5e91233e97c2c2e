package controllers

import (
	"net/http"

	apperrors "equipment-tracker/pkg/errors"
)

func badBody(err error) error {
	return apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", nil, map[string]interface{}{"error": err.Error()})
}
