package api

import (
	"errors"

	"RaptorExplorer/internal/domain/models"
	domsvc "RaptorExplorer/internal/domain/service"
	"RaptorExplorer/internal/service/ratelimit"
	xhttp "RaptorExplorer/pkg/http"

	"github.com/labstack/echo/v4"
)

// ContextKeyUID holds the uid of a verified ID token.
const ContextKeyUID = "uid"

// RateLimit applies the limiter per client IP, as resolved by the server's
// IP extractor (forwarding headers count only from trusted proxies).
func RateLimit(l *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("Too many requests"))
			}
			return next(c)
		}
	}
}

// RequireIDToken admits requests carrying a valid Firebase ID token as a
// bearer token.
func RequireIDToken(tokens domsvc.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := xhttp.BearerToken(c)
			if tok == "" {
				return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("Missing bearer token"))
			}
			uid, err := tokens.VerifyIDToken(c.Request().Context(), tok)
			if err != nil {
				if errors.Is(err, models.ErrConfiguration) {
					return xhttp.AppErrorResponse(c, xhttp.ConfigurationError("Server is not configured"))
				}
				return xhttp.AppErrorResponse(c, xhttp.UnauthorizedError("Invalid token"))
			}
			c.Set(ContextKeyUID, uid)
			return next(c)
		}
	}
}
