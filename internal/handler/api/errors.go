package api

import (
	"errors"
	"net/http"

	"RaptorExplorer/internal/domain/models"
	xhttp "RaptorExplorer/pkg/http"

	"github.com/labstack/echo/v4"
)

// errorResponse renders a use case error. fallback is the message used for
// errors that carry no client-facing meaning; they become 500.
func errorResponse(c echo.Context, err error, notFound, fallback string) error {
	var rejected *models.ProviderRejectedError
	if errors.As(err, &rejected) {
		return xhttp.RelayResponse(c, http.StatusBadRequest, rejected.Body)
	}
	return xhttp.AppErrorResponse(c, toAppError(err, notFound, fallback))
}

func toAppError(err error, notFound, fallback string) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrInvalidPrice):
		return xhttp.BadRequestError("Invalid price ID").WithError(err)
	case errors.Is(err, models.ErrInvalidRequest):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrNotFound):
		return xhttp.NotFoundError(notFound).WithError(err)
	case errors.Is(err, models.ErrUnauthorized):
		return xhttp.UnauthorizedError("Unauthorized").WithError(err)
	case errors.Is(err, models.ErrConfiguration):
		return xhttp.ConfigurationError("Server is not configured").WithError(err)
	default:
		return xhttp.InternalError(fallback).WithError(err)
	}
}
