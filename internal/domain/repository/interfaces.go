package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"time"

	"RaptorExplorer/internal/domain/models"
)

// ListingsProvider searches active listings for a vehicle.
type ListingsProvider interface {
	Name() string
	Search(ctx context.Context, q models.ListingsQuery) models.ListingsResult
}

// AggregateProvider returns aggregate market prices for a composite vehicle id.
type AggregateProvider interface {
	Name() string
	MarketValue(ctx context.Context, vehicleID string) models.AggregateResult
}

// EntitlementStore persists billing state per user.
type EntitlementStore interface {
	UpsertCatalogObject(ctx context.Context, collection, id string, data map[string]interface{}) error
	DeactivateCatalogObject(ctx context.Context, collection, id string) error
	SetSubscription(ctx context.Context, uid string, sub *models.SubscriptionRecord) error
	CancelSubscription(ctx context.Context, uid, subscriptionID string, at time.Time) error
	// CreditPurchase records a one-time purchase and adds its pages in one
	// atomic write. It reports false when the purchase was already recorded.
	CreditPurchase(ctx context.Context, uid string, p *models.PurchaseRecord) (bool, error)
}

// LookupPublisher ships lookup events to the analytics pipeline.
type LookupPublisher interface {
	PublishLookup(ctx context.Context, key string, e *models.LookupEvent) error
	Close() error
}

// LookupStorage persists lookup events.
type LookupStorage interface {
	StoreLookup(ctx context.Context, e *models.LookupEvent) error
	Health(ctx context.Context) error
}

type Metrics interface {
	RecordProviderOutcome(provider, outcome string)
	RecordResolution(outcome string)
	RecordWebhookEvent(eventType, result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
