package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"
	portalsession "github.com/stripe/stripe-go/v84/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v84/checkout/session"
	"github.com/stripe/stripe-go/v84/customer"
	"github.com/stripe/stripe-go/v84/price"
	"github.com/stripe/stripe-go/v84/webhook"

	"RaptorExplorer/internal/domain/models"
	"RaptorExplorer/pkg/util"
)

// MetadataUID is the customer metadata key holding the Firebase uid.
const MetadataUID = "firebaseUID"

// Gateway drives Stripe through the package-level stripe-go API. It
// implements service.BillingGateway.
type Gateway struct {
	secretKey     string
	webhookSecret string
}

// NewGateway sets the process-wide Stripe key. An empty key leaves every
// API call failing with ErrConfiguration.
func NewGateway(secretKey, webhookSecret string) *Gateway {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &Gateway{secretKey: secretKey, webhookSecret: webhookSecret}
}

func (g *Gateway) ready() error {
	if g.secretKey == "" {
		return fmt.Errorf("%w: stripe secret key is not set", models.ErrConfiguration)
	}
	return nil
}

func (g *Gateway) FindCustomerByUID(ctx context.Context, uid string) (*models.Customer, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	params := &stripe.CustomerSearchParams{}
	params.Context = ctx
	params.Query = uidSearchQuery(uid)

	it := customer.Search(params)
	if it.Next() {
		return toCustomer(it.Customer()), nil
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("search customer: %w", err)
	}
	return nil, nil
}

var searchEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// uidSearchQuery builds the customer search clause for uid. Values in the
// search language are single-quoted with backslash escapes.
func uidSearchQuery(uid string) string {
	return fmt.Sprintf("metadata['%s']:'%s'", MetadataUID, searchEscaper.Replace(uid))
}

func (g *Gateway) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := customer.List(params)
	if it.Next() {
		return toCustomer(it.Customer()), nil
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return nil, nil
}

func (g *Gateway) AttachUID(ctx context.Context, customerID, uid string) error {
	if err := g.ready(); err != nil {
		return err
	}
	params := &stripe.CustomerParams{}
	params.Context = ctx
	params.AddMetadata(MetadataUID, uid)
	if _, err := customer.Update(customerID, params); err != nil {
		return fmt.Errorf("update customer %s: %w", customerID, err)
	}
	return nil
}

func (g *Gateway) CreateCustomer(ctx context.Context, email, uid string) (*models.Customer, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	params.AddMetadata(MetadataUID, uid)
	c, err := customer.New(params)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return toCustomer(c), nil
}

func (g *Gateway) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	params := &stripe.CustomerParams{}
	params.Context = ctx
	c, err := customer.Get(customerID, params)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", customerID, err)
	}
	return toCustomer(c), nil
}

func (g *Gateway) GetPrice(ctx context.Context, priceID string) (*models.Price, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	params := &stripe.PriceParams{}
	params.Context = ctx
	p, err := price.Get(priceID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: price %s: %v", models.ErrNotFound, priceID, err)
	}
	return toPrice(p), nil
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, p *models.CheckoutParams) (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(p.CustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		AllowPromotionCodes: stripe.Bool(true),
		Mode:                stripe.String(p.Mode),
		SuccessURL:          stripe.String(p.SuccessURL),
		CancelURL:           stripe.String(p.CancelURL),
	}
	// invoice creation is only accepted for one-off payments
	if p.Mode == models.CheckoutModePayment {
		params.InvoiceCreation = &stripe.CheckoutSessionInvoiceCreationParams{Enabled: stripe.Bool(true)}
	}
	params.Context = ctx

	s, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if s.URL == "" {
		return "", fmt.Errorf("checkout session %s has no url", s.ID)
	}
	return s.URL, nil
}

func (g *Gateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	params := &stripe.BillingPortalSessionParams{Customer: stripe.String(customerID)}
	if returnURL != "" {
		params.ReturnURL = stripe.String(returnURL)
	}
	params.Context = ctx

	s, err := portalsession.New(params)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	return s.URL, nil
}

func (g *Gateway) GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.HTTPStatusCode == 404 {
			return nil, fmt.Errorf("%w: checkout session %s", models.ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("get checkout session %s: %w", sessionID, err)
	}
	return toCheckoutSession(s), nil
}

func (g *Gateway) ListLineItems(ctx context.Context, sessionID string) ([]models.LineItem, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	params := &stripe.CheckoutSessionListLineItemsParams{Session: stripe.String(sessionID)}
	params.Context = ctx

	var items []models.LineItem
	it := checkoutsession.ListLineItems(params)
	for it.Next() {
		li := it.LineItem()
		item := models.LineItem{Quantity: li.Quantity}
		if li.Price != nil {
			item.PriceID = li.Price.ID
		}
		items = append(items, item)
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list line items %s: %w", sessionID, err)
	}
	return items, nil
}

// ParseWebhookEvent verifies the Stripe-Signature header and decodes the
// event payload for the types the webhook handles.
func (g *Gateway) ParseWebhookEvent(payload []byte, signature string) (*models.BillingEvent, error) {
	if g.webhookSecret == "" {
		return nil, fmt.Errorf("%w: stripe webhook secret is not set", models.ErrConfiguration)
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidSignature, err)
	}

	out := &models.BillingEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil {
		return out, nil
	}
	out.Raw = event.Data.Raw
	out.Object = event.Data.Object
	if id, ok := event.Data.Object["id"].(string); ok {
		out.ObjectID = id
	}

	switch out.Type {
	case models.EventCheckoutCompleted:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("%w: decode checkout session: %v", models.ErrInvalidRequest, err)
		}
		out.Session = toCheckoutSession(&s)
	case models.EventSubscriptionCreated, models.EventSubscriptionUpdated, models.EventSubscriptionDeleted:
		var s stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("%w: decode subscription: %v", models.ErrInvalidRequest, err)
		}
		out.Subscription = toSubscription(&s)
	}
	return out, nil
}

func toCustomer(c *stripe.Customer) *models.Customer {
	if c == nil {
		return nil
	}
	return &models.Customer{ID: c.ID, Email: c.Email, FirebaseUID: c.Metadata[MetadataUID]}
}

func toPrice(p *stripe.Price) *models.Price {
	out := &models.Price{
		ID:        p.ID,
		Recurring: p.Type == stripe.PriceTypeRecurring || p.Recurring != nil,
		Metadata:  p.Metadata,
	}
	if p.Product != nil {
		out.ProductID = p.Product.ID
	}
	return out
}

func toCheckoutSession(s *stripe.CheckoutSession) *models.CheckoutSession {
	out := &models.CheckoutSession{
		ID:          s.ID,
		Mode:        string(s.Mode),
		AmountTotal: s.AmountTotal,
		Currency:    string(s.Currency),
	}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	if s.Subscription != nil {
		out.SubscriptionID = s.Subscription.ID
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out
}

// toSubscription reads price, quantity and the billing period from the
// first item.
func toSubscription(s *stripe.Subscription) *models.Subscription {
	out := &models.Subscription{
		ID:                s.ID,
		Status:            string(s.Status),
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
		CanceledAt:        util.FromUnixPtr(s.CanceledAt),
		CreatedAt:         util.FromUnix(s.Created),
	}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	if s.Items != nil && len(s.Items.Data) > 0 {
		item := s.Items.Data[0]
		out.Quantity = item.Quantity
		out.CurrentPeriodStart = util.FromUnix(item.CurrentPeriodStart)
		out.CurrentPeriodEnd = util.FromUnix(item.CurrentPeriodEnd)
		if item.Price != nil {
			out.PriceID = item.Price.ID
		}
	}
	return out
}
