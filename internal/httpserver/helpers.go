package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hairlyf/backend/internal/service"
)

// httpError translates service sentinel errors into HTTP responses.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, reason(err, service.ErrValidation))
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, reason(err, service.ErrUnauthorized))
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, reason(err, service.ErrForbidden))
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, reason(err, service.ErrNotFound))
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, reason(err, service.ErrConflict))
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func reason(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is not an integer")
	}
	return uint(v), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
