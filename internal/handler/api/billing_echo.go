package api

import (
	"errors"
	"io"
	"net/http"

	"RaptorExplorer/internal/domain/models"
	domsvc "RaptorExplorer/internal/domain/service"
	xhttp "RaptorExplorer/pkg/http"
	xlogger "RaptorExplorer/pkg/logger"

	"github.com/labstack/echo/v4"
)

// maxWebhookBody matches the largest event payload Stripe documents.
const maxWebhookBody = 512 << 10

const headerStripeSignature = "Stripe-Signature"

type BillingEchoHandler struct {
	logger  *xlogger.Logger
	billing domsvc.BillingService
}

func NewBillingEchoHandler(logger *xlogger.Logger, billing domsvc.BillingService) *BillingEchoHandler {
	return &BillingEchoHandler{logger: logger, billing: billing}
}

func (h *BillingEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/create-customer", h.CreateCustomer)
	g.POST("/create-checkout-session", h.CreateCheckoutSession)
	g.POST("/create-portal-session", h.CreatePortalSession)
	g.GET("/verify-purchase", h.VerifyPurchase)
	g.POST("/webhook/stripe", h.Webhook)
}

func (h *BillingEchoHandler) CreateCustomer(c echo.Context) error {
	req := &models.CustomerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}
	id, err := h.billing.EnsureCustomer(c.Request().Context(), req.Email, req.UID)
	if err != nil {
		h.logger.Error("ensure customer error", xlogger.Error(err))
		return errorResponse(c, err, "", "Failed to manage customer")
	}
	return xhttp.SuccessResponse(c, models.CustomerResponse{CustomerID: id})
}

func (h *BillingEchoHandler) CreateCheckoutSession(c echo.Context) error {
	req := &models.CustomerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}
	url, err := h.billing.CreateCheckoutSession(c.Request().Context(), req.Email, req.UID)
	if err != nil {
		h.logger.Error("checkout session error", xlogger.Error(err))
		return errorResponse(c, err, "", "Failed to create checkout session")
	}
	return xhttp.SuccessResponse(c, models.URLResponse{URL: url})
}

func (h *BillingEchoHandler) CreatePortalSession(c echo.Context) error {
	req := &models.CustomerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}
	url, err := h.billing.CreatePortalSession(c.Request().Context(), req.Email, req.UID)
	if err != nil {
		h.logger.Error("portal session error", xlogger.Error(err))
		return errorResponse(c, err, "", "Failed to create portal session")
	}
	return xhttp.SuccessResponse(c, models.URLResponse{URL: url})
}

func (h *BillingEchoHandler) VerifyPurchase(c echo.Context) error {
	req := &models.VerifyPurchaseRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}
	mode, err := h.billing.VerifySession(c.Request().Context(), req.SessionID)
	if err != nil {
		h.logger.Error("verify purchase error", xlogger.Error(err))
		return errorResponse(c, err, "Session not found", "Failed to verify purchase")
	}
	return xhttp.SuccessResponse(c, models.VerifyPurchaseResponse{Mode: mode})
}

// Webhook must see the body byte for byte, so it is read raw instead of
// bound.
func (h *BillingEchoHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("Unreadable body"))
	}

	err = h.billing.HandleWebhookEvent(c.Request().Context(), payload, c.Request().Header.Get(headerStripeSignature))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, xhttp.AckResponse{Received: true})
	case errors.Is(err, models.ErrInvalidSignature):
		h.logger.Warn("webhook rejected", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("Invalid signature"))
	case errors.Is(err, models.ErrConfiguration):
		return xhttp.AppErrorResponse(c, xhttp.ConfigurationError("Server is not configured").WithError(err))
	default:
		// a 5xx makes the provider retry the event
		return xhttp.AppErrorResponse(c, xhttp.InternalError("Webhook handler failed").WithError(err))
	}
}
