package api

import (
	"context"
	"errors"
	"time"

	"RaptorExplorer/internal/domain/models"
	domrepo "RaptorExplorer/internal/domain/repository"
	domsvc "RaptorExplorer/internal/domain/service"
	"RaptorExplorer/internal/usecase"
	xhttp "RaptorExplorer/pkg/http"
	"RaptorExplorer/pkg/http/middleware"
	xlogger "RaptorExplorer/pkg/logger"
	"RaptorExplorer/pkg/util"

	"github.com/labstack/echo/v4"
)

const publishTimeout = 2 * time.Second

// VehicleEchoHandler serves /api/vehicle. group middleware (the CORS gate)
// wraps every route including preflight; route middleware (rate limit, ID
// token) only wraps GET.
type VehicleEchoHandler struct {
	logger    *xlogger.Logger
	resolver  domsvc.MarketValueResolver
	publisher domrepo.LookupPublisher
	group     []echo.MiddlewareFunc
	route     []echo.MiddlewareFunc
}

func NewVehicleEchoHandler(
	logger *xlogger.Logger,
	resolver domsvc.MarketValueResolver,
	publisher domrepo.LookupPublisher,
	group []echo.MiddlewareFunc,
	route []echo.MiddlewareFunc,
) *VehicleEchoHandler {
	return &VehicleEchoHandler{logger: logger, resolver: resolver, publisher: publisher, group: group, route: route}
}

func (h *VehicleEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/vehicle", h.group...)
	g.GET("/market-value", h.MarketValue, h.route...)
	g.OPTIONS("/market-value", xhttp.NoContentResponse)
}

func (h *VehicleEchoHandler) MarketValue(c echo.Context) error {
	start := time.Now()
	req := &models.MarketValueRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}
	// extension builds use either trim or trim[]
	req.Trim = append(req.Trim, c.QueryParams()["trim[]"]...)
	v := req.Descriptor()

	quote, err := h.resolver.Resolve(c.Request().Context(), v)
	h.publish(c, v, quote, err, time.Since(start))
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			h.logger.Error("market value resolve error",
				xlogger.String("vehicle_id", usecase.VehicleID(v)),
				xlogger.Error(err),
			)
		}
		return errorResponse(c, err, "No market value data available", "Failed to fetch market value")
	}
	return xhttp.SuccessResponse(c, quote)
}

// publish records the lookup for analytics. Failures never affect the
// response.
func (h *VehicleEchoHandler) publish(c echo.Context, v models.VehicleDescriptor, q *models.PriceQuote, err error, took time.Duration) {
	if h.publisher == nil {
		return
	}
	id := usecase.VehicleID(v)
	e := &models.LookupEvent{
		RequestID:  middleware.GetRequestID(c),
		VehicleID:  id,
		Year:       v.Year,
		Make:       v.Make,
		Model:      v.Model,
		Trim:       v.Trim,
		DurationMs: took.Milliseconds(),
		OccurredAt: time.Now().UTC(),
	}
	switch {
	case err == nil:
		e.Outcome = models.LookupResolved
		e.Provider = q.Provider
		e.Price, _ = util.ParseDigits(q.Price)
	case errors.Is(err, models.ErrNotFound):
		e.Outcome = models.LookupNotFound
	default:
		e.Outcome = models.LookupError
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), publishTimeout)
	defer cancel()
	if perr := h.publisher.PublishLookup(ctx, id, e); perr != nil {
		h.logger.Warn("publish lookup event failed", xlogger.String("vehicle_id", id), xlogger.Error(perr))
	}
}
