package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidPrice means the configured checkout price could not be loaded.
	ErrInvalidPrice = fmt.Errorf("%w: invalid price ID", ErrInvalidRequest)
	// ErrInvalidSignature rejects a webhook payload whose signature does not
	// verify. It is the only webhook error answered with 400.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Purchase modes reported by verify-purchase.
const (
	PurchaseModeSubscription = "subscription"
	PurchaseModeOneTime      = "one-time"
)

// Checkout session modes as reported by the billing provider.
const (
	CheckoutModeSubscription = "subscription"
	CheckoutModePayment      = "payment"
)

// Catalog collections mirrored from the billing provider.
const (
	CatalogProducts = "products"
	CatalogPrices   = "prices"
)

// Billing event types handled by the webhook.
const (
	EventProductCreated      = "product.created"
	EventProductUpdated      = "product.updated"
	EventProductDeleted      = "product.deleted"
	EventPriceCreated        = "price.created"
	EventPriceUpdated        = "price.updated"
	EventPriceDeleted        = "price.deleted"
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	PurchaseStatusCompleted    = "completed"
)

type CustomerRequest struct {
	Email string `json:"email" validate:"required,email"`
	UID   string `json:"uid" validate:"required,max=128,excludesall='\\"`
}

type VerifyPurchaseRequest struct {
	SessionID string `query:"session_id" validate:"required"`
}

type URLResponse struct {
	URL string `json:"url"`
}

type CustomerResponse struct {
	CustomerID string `json:"customerId"`
}

type VerifyPurchaseResponse struct {
	Mode string `json:"mode"`
}

// Customer is a billing-provider customer. FirebaseUID comes from metadata.
type Customer struct {
	ID          string
	Email       string
	FirebaseUID string
}

type Price struct {
	ID        string
	ProductID string
	Recurring bool
	Metadata  map[string]string
}

// CheckoutParams describes a checkout session to open.
type CheckoutParams struct {
	CustomerID string
	PriceID    string
	Mode       string
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID              string
	Mode            string
	CustomerID      string
	SubscriptionID  string
	PaymentIntentID string
	AmountTotal     int64
	Currency        string
}

type LineItem struct {
	PriceID  string
	Quantity int64
}

type Subscription struct {
	ID                 string
	CustomerID         string
	Status             string
	PriceID            string
	Quantity           int64
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
	CanceledAt         *time.Time
	CreatedAt          time.Time
}

// BillingEvent is a verified webhook event. Exactly one of the payload
// fields is set, depending on Type.
type BillingEvent struct {
	ID           string
	Type         string
	ObjectID     string
	Object       map[string]interface{}
	Session      *CheckoutSession
	Subscription *Subscription
	Raw          json.RawMessage
}

// SubscriptionRecord is the entitlement document of a subscription.
type SubscriptionRecord struct {
	ID                 string
	Status             string
	PriceID            string
	Quantity           int64
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
	CanceledAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PurchaseRecord is a completed one-time purchase of fax pages, keyed by the
// checkout session that paid for it.
type PurchaseRecord struct {
	SessionID       string
	Amount          int64
	Currency        string
	Pages           int64
	CreatedAt       time.Time
	Status          string
	PaymentIntentID string
	PriceID         string
	ProductID       string
}
