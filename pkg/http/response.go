package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const messageInternal = "Something went wrong"

// SuccessResponse writes data as a 200 JSON body.
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func NoContentResponse(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// ErrorResponse writes a flat {error, code} body.
func ErrorResponse(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorBody{Error: message, Code: code})
}

// ValidationErrorResponse writes a 400 with per-field details.
func ValidationErrorResponse(c echo.Context, errs []ValidationError) error {
	msg := "Invalid request"
	if len(errs) > 0 && errs[0].Message != "" {
		msg = errs[0].Message
	}
	return c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   msg,
		Code:    "ERR_VALIDATION",
		Details: errs,
	})
}

// RelayResponse forwards an upstream body as is when it is JSON, and wraps
// it into an ErrorBody otherwise.
func RelayResponse(c echo.Context, status int, body []byte) error {
	if json.Valid(body) {
		return c.JSONBlob(status, body)
	}
	return ErrorResponse(c, status, "ERR_UPSTREAM", string(body))
}

// AppErrorResponse renders err. Anything that is not an *AppError becomes a
// generic 500 so internals never leak.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, ErrorBody{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
	}
	return ErrorResponse(c, http.StatusInternalServerError, "ERR_INTERNAL", messageInternal)
}
