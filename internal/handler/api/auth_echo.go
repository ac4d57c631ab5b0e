package api

import (
	"errors"

	"RaptorExplorer/internal/domain/models"
	domsvc "RaptorExplorer/internal/domain/service"
	xhttp "RaptorExplorer/pkg/http"
	xlogger "RaptorExplorer/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AuthEchoHandler struct {
	logger *xlogger.Logger
	auth   domsvc.AuthService
	group  []echo.MiddlewareFunc
	// owner, when set, must vouch that the caller's ID token belongs to the
	// uid a custom token is requested for.
	owner domsvc.TokenIssuer
}

func NewAuthEchoHandler(logger *xlogger.Logger, auth domsvc.AuthService, group []echo.MiddlewareFunc, owner domsvc.TokenIssuer) *AuthEchoHandler {
	return &AuthEchoHandler{logger: logger, auth: auth, group: group, owner: owner}
}

func (h *AuthEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth", h.group...)
	g.POST("/token", h.Token)
	g.POST("/refresh", h.Refresh)
	g.OPTIONS("/token", xhttp.NoContentResponse)
	g.OPTIONS("/refresh", xhttp.NoContentResponse)
}

// Token mints a Firebase custom token when uid is given and exchanges an
// OAuth code otherwise.
func (h *AuthEchoHandler) Token(c echo.Context) error {
	req := &models.TokenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}
	ctx := c.Request().Context()

	if req.UID != "" {
		if h.owner != nil {
			if aerr := h.requireOwner(c, req.UID); aerr != nil {
				return xhttp.AppErrorResponse(c, aerr)
			}
		}
		tok, err := h.auth.CustomToken(ctx, req.UID)
		if err != nil {
			h.logger.Error("custom token error", xlogger.Error(err))
			return errorResponse(c, err, "", "Failed to create custom token")
		}
		return xhttp.SuccessResponse(c, models.CustomTokenResponse{CustomToken: tok})
	}

	if req.Code == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("Authorization code is required"))
	}
	grant, err := h.auth.ExchangeCode(ctx, req.Code)
	if err != nil {
		h.logger.Warn("code exchange failed", xlogger.Error(err))
		return errorResponse(c, err, "", "Failed to exchange authorization code")
	}
	return xhttp.SuccessResponse(c, grant)
}

func (h *AuthEchoHandler) requireOwner(c echo.Context, uid string) *xhttp.AppError {
	tok := xhttp.BearerToken(c)
	if tok == "" {
		return xhttp.UnauthorizedError("Missing bearer token")
	}
	got, err := h.owner.VerifyIDToken(c.Request().Context(), tok)
	if err != nil {
		if errors.Is(err, models.ErrConfiguration) {
			return xhttp.ConfigurationError("Server is not configured").WithError(err)
		}
		return xhttp.UnauthorizedError("Invalid token").WithError(err)
	}
	if got != uid {
		h.logger.Warn("custom token requested for another uid", xlogger.String("caller", got))
		return xhttp.UnauthorizedError("Token does not match uid")
	}
	return nil
}

func (h *AuthEchoHandler) Refresh(c echo.Context) error {
	req := &models.RefreshRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}
	grant, err := h.auth.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		h.logger.Warn("token refresh failed", xlogger.Error(err))
		return errorResponse(c, err, "", "Failed to refresh token")
	}
	return xhttp.SuccessResponse(c, grant)
}
