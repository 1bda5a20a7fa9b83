package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stackmoneyup/backend/internal/service"
)

// serviceError translates typed service failures into HTTP errors. Anything
// unclassified surfaces as an opaque backend failure.
func serviceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to perform this action")
	case errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
