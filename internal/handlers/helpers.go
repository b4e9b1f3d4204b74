package handlers

import (
	"errors"
	"net/http"

	"github.com/aadhidev/stockify/internal/service"
	"github.com/labstack/echo/v4"
)

// httpError maps the service error taxonomy onto transport codes. Unknown
// failures come back as a bare 500, the cause stays in server logs.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
