package middleware

import (
	"time"

	"RaptorExplorer/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per request. 5xx responses are logged as
// errors, responses slower than slow (when > 0) as warnings.
func RequestLogging(l *logger.Logger, slow time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				// let the error handler write the response so the status is final
				c.Error(err)
			}

			res := c.Response()
			latency := time.Since(start)
			fields := []logger.Field{
				logger.String("method", req.Method),
				logger.String("path", routeLabel(c)),
				logger.Int("status", res.Status),
				logger.Duration("latency_ms", latency),
				logger.Int64("bytes", res.Size),
				logger.String("remote_ip", c.RealIP()),
				logger.String("request_id", GetRequestID(c)),
			}

			switch {
			case res.Status >= 500:
				l.Error("http request failed", append(fields, logger.Error(err))...)
			case slow > 0 && latency >= slow:
				l.Warn("http request slow", fields...)
			default:
				l.Info("http request", fields...)
			}
			return nil
		}
	}
}
