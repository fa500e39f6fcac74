package handler

import (
	"errors"
	"net/http"

	"mailmate/internal/service"

	"github.com/labstack/echo/v4"
)

// errorResponse maps the service error taxonomy to an HTTP response with a
// human-readable message.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrAuthenticationRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrProcessingNotStarted):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrProcessingInFlight):
		status = http.StatusConflict
	case errors.Is(err, service.ErrUpstreamFetch):
		status = http.StatusBadGateway
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
