package service

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"

	"RaptorExplorer/internal/domain/models"
)

// MarketValueResolver resolves a market price for a vehicle.
type MarketValueResolver interface {
	Resolve(ctx context.Context, v models.VehicleDescriptor) (*models.PriceQuote, error)
}

// IdentityProvider talks to the OAuth token endpoint.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code string) (*models.TokenGrant, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenGrant, error)
}

// TokenIssuer mints and verifies Firebase tokens.
type TokenIssuer interface {
	CustomToken(ctx context.Context, uid string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// BillingGateway is the narrow surface of the billing provider used by the
// billing use case.
type BillingGateway interface {
	FindCustomerByUID(ctx context.Context, uid string) (*models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	AttachUID(ctx context.Context, customerID, uid string) error
	CreateCustomer(ctx context.Context, email, uid string) (*models.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)
	GetPrice(ctx context.Context, priceID string) (*models.Price, error)
	CreateCheckoutSession(ctx context.Context, p *models.CheckoutParams) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	ListLineItems(ctx context.Context, sessionID string) ([]models.LineItem, error)
	ParseWebhookEvent(payload []byte, signature string) (*models.BillingEvent, error)
}

// AuthService backs the /api/auth routes.
type AuthService interface {
	ExchangeCode(ctx context.Context, code string) (*models.TokenGrant, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenGrant, error)
	CustomToken(ctx context.Context, uid string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// BillingService backs the billing routes and the webhook.
type BillingService interface {
	EnsureCustomer(ctx context.Context, email, uid string) (string, error)
	CreateCheckoutSession(ctx context.Context, email, uid string) (string, error)
	CreatePortalSession(ctx context.Context, email, uid string) (string, error)
	VerifySession(ctx context.Context, sessionID string) (string, error)
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error
}
