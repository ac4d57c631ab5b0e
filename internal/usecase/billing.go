package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"RaptorExplorer/internal/domain/models"
	domrepo "RaptorExplorer/internal/domain/repository"
	domsvc "RaptorExplorer/internal/domain/service"
	"RaptorExplorer/pkg/cache"
	"RaptorExplorer/pkg/logger"
	"RaptorExplorer/pkg/metrics"
)

// Webhook results recorded per event type.
const (
	webhookHandled   = "handled"
	webhookIgnored   = "ignored"
	webhookDuplicate = "duplicate"
	webhookNoUser    = "no_user"
	webhookFailed    = "failed"
)

// subscriptions written from a checkout session get a provisional period
// until the subscription events arrive
const provisionalPeriod = 30 * 24 * time.Hour

type BillingOptions struct {
	PriceID         string
	BaseURL         string
	PortalReturnURL string
	PriceCacheTTL   time.Duration
	DedupTTL        time.Duration
}

// BillingUseCase implements checkout, customer portal and the billing
// webhook. cache may be nil, which disables price caching and event
// deduplication.
type BillingUseCase struct {
	gateway domsvc.BillingGateway
	store   domrepo.EntitlementStore
	cache   cache.Service
	metrics domrepo.Metrics
	log     *logger.Logger
	opts    BillingOptions
	now     func() time.Time
}

func NewBillingUseCase(
	gateway domsvc.BillingGateway,
	store domrepo.EntitlementStore,
	c cache.Service,
	m domrepo.Metrics,
	log *logger.Logger,
	opts BillingOptions,
) *BillingUseCase {
	if m == nil {
		m = metrics.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if opts.PriceCacheTTL <= 0 {
		opts.PriceCacheTTL = 10 * time.Minute
	}
	if opts.DedupTTL <= 0 {
		opts.DedupTTL = 24 * time.Hour
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &BillingUseCase{
		gateway: gateway,
		store:   store,
		cache:   c,
		metrics: m,
		log:     log,
		opts:    opts,
		now:     time.Now,
	}
}

// EnsureCustomer returns the customer tagged with uid, tagging a customer
// found by email or creating one when needed.
func (uc *BillingUseCase) EnsureCustomer(ctx context.Context, email, uid string) (string, error) {
	if email == "" || uid == "" {
		return "", fmt.Errorf("%w: email and uid are required", models.ErrInvalidRequest)
	}

	c, err := uc.gateway.FindCustomerByUID(ctx, uid)
	if err != nil {
		return "", err
	}
	if c != nil {
		return c.ID, nil
	}

	c, err = uc.gateway.FindCustomerByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if c != nil {
		if err := uc.gateway.AttachUID(ctx, c.ID, uid); err != nil {
			return "", err
		}
		return c.ID, nil
	}

	c, err = uc.gateway.CreateCustomer(ctx, email, uid)
	if err != nil {
		return "", err
	}
	uc.log.Info("billing customer created", logger.String("customer_id", c.ID))
	return c.ID, nil
}

func (uc *BillingUseCase) price(ctx context.Context, id string) (*models.Price, error) {
	key := cache.GenerateKey("price", id)
	p, err := cache.GetOrLoad(ctx, uc.cache, key, uc.opts.PriceCacheTTL, func(ctx context.Context) (*models.Price, error) {
		return uc.gateway.GetPrice(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *BillingUseCase) CreateCheckoutSession(ctx context.Context, email, uid string) (string, error) {
	if email == "" || uid == "" {
		return "", fmt.Errorf("%w: email and uid are required", models.ErrInvalidRequest)
	}
	if uc.opts.BaseURL == "" {
		return "", fmt.Errorf("%w: billing base url is not set", models.ErrConfiguration)
	}

	p, err := uc.price(ctx, uc.opts.PriceID)
	if err != nil {
		if errors.Is(err, models.ErrConfiguration) {
			return "", err
		}
		uc.log.Warn("checkout price lookup failed", logger.String("price_id", uc.opts.PriceID), logger.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrInvalidPrice, err)
	}

	customerID, err := uc.EnsureCustomer(ctx, email, uid)
	if err != nil {
		return "", err
	}

	mode := models.CheckoutModePayment
	if p.Recurring {
		mode = models.CheckoutModeSubscription
	}
	return uc.gateway.CreateCheckoutSession(ctx, &models.CheckoutParams{
		CustomerID: customerID,
		PriceID:    p.ID,
		Mode:       mode,
		SuccessURL: uc.opts.BaseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  uc.opts.BaseURL + "/cancel",
	})
}

func (uc *BillingUseCase) CreatePortalSession(ctx context.Context, email, uid string) (string, error) {
	customerID, err := uc.EnsureCustomer(ctx, email, uid)
	if err != nil {
		return "", err
	}
	returnURL := uc.opts.PortalReturnURL
	if returnURL == "" {
		returnURL = uc.opts.BaseURL
	}
	return uc.gateway.CreatePortalSession(ctx, customerID, returnURL)
}

// VerifySession reports the purchase mode of a checkout session.
func (uc *BillingUseCase) VerifySession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: session id is required", models.ErrInvalidRequest)
	}
	s, err := uc.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if s.Mode == models.CheckoutModeSubscription {
		return models.PurchaseModeSubscription, nil
	}
	return models.PurchaseModeOneTime, nil
}

// HandleWebhookEvent verifies and applies one billing event. An event id is
// processed at most once while its dedup key lives; the key is released when
// processing fails so the provider's retry is handled.
func (uc *BillingUseCase) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	ev, err := uc.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		uc.metrics.RecordWebhookEvent("unknown", "rejected")
		return err
	}
	log := uc.log.With(logger.String("event_id", ev.ID), logger.String("event_type", ev.Type))

	var dedupKey string
	if uc.cache != nil && ev.ID != "" {
		key := cache.GenerateKey("webhook", ev.ID)
		owned, err := uc.cache.TryLock(ctx, key, uc.opts.DedupTTL)
		switch {
		case err != nil:
			log.Warn("webhook dedup unavailable", logger.Error(err))
		case !owned:
			log.Info("duplicate webhook event")
			uc.metrics.RecordWebhookEvent(ev.Type, webhookDuplicate)
			return nil
		default:
			dedupKey = key
		}
	}

	result, err := uc.dispatch(ctx, ev)
	if err != nil {
		if dedupKey != "" {
			if uerr := uc.cache.Unlock(ctx, dedupKey); uerr != nil {
				log.Warn("release webhook dedup key", logger.Error(uerr))
			}
		}
		uc.metrics.RecordWebhookEvent(ev.Type, webhookFailed)
		uc.metrics.RecordError("webhook")
		log.Error("webhook handler failed", logger.Error(err))
		return err
	}

	uc.metrics.RecordWebhookEvent(ev.Type, result)
	log.Debug("webhook event processed", logger.String("result", result))
	return nil
}

func (uc *BillingUseCase) dispatch(ctx context.Context, ev *models.BillingEvent) (string, error) {
	switch ev.Type {
	case models.EventProductCreated, models.EventProductUpdated:
		return webhookHandled, uc.store.UpsertCatalogObject(ctx, models.CatalogProducts, ev.ObjectID, ev.Object)
	case models.EventProductDeleted:
		return webhookHandled, uc.store.DeactivateCatalogObject(ctx, models.CatalogProducts, ev.ObjectID)
	case models.EventPriceCreated, models.EventPriceUpdated:
		return webhookHandled, uc.store.UpsertCatalogObject(ctx, models.CatalogPrices, ev.ObjectID, ev.Object)
	case models.EventPriceDeleted:
		return webhookHandled, uc.store.DeactivateCatalogObject(ctx, models.CatalogPrices, ev.ObjectID)
	case models.EventCheckoutCompleted:
		return uc.checkoutCompleted(ctx, ev.Session)
	case models.EventSubscriptionCreated, models.EventSubscriptionUpdated, models.EventSubscriptionDeleted:
		return uc.subscriptionChanged(ctx, ev.Type, ev.Subscription)
	default:
		return webhookIgnored, nil
	}
}

// uidForCustomer returns "" when the customer carries no uid.
func (uc *BillingUseCase) uidForCustomer(ctx context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", nil
	}
	c, err := uc.gateway.GetCustomer(ctx, customerID)
	if err != nil {
		return "", err
	}
	return c.FirebaseUID, nil
}

func (uc *BillingUseCase) checkoutCompleted(ctx context.Context, s *models.CheckoutSession) (string, error) {
	if s == nil {
		return "", fmt.Errorf("%w: checkout event without session", models.ErrInvalidRequest)
	}
	uid, err := uc.uidForCustomer(ctx, s.CustomerID)
	if err != nil {
		return "", err
	}
	if uid == "" {
		return webhookNoUser, nil
	}

	items, err := uc.gateway.ListLineItems(ctx, s.ID)
	if err != nil {
		return "", err
	}

	switch s.Mode {
	case models.CheckoutModeSubscription:
		now := uc.now()
		rec := &models.SubscriptionRecord{
			ID:                 s.SubscriptionID,
			Status:             models.SubscriptionStatusActive,
			Quantity:           1,
			CreatedAt:          now,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   now.Add(provisionalPeriod),
			UpdatedAt:          now,
		}
		if len(items) > 0 {
			rec.PriceID = items[0].PriceID
			if items[0].Quantity > 0 {
				rec.Quantity = items[0].Quantity
			}
		}
		return webhookHandled, uc.store.SetSubscription(ctx, uid, rec)

	case models.CheckoutModePayment:
		if len(items) == 0 {
			return "", fmt.Errorf("checkout session %s has no line items", s.ID)
		}
		p, err := uc.price(ctx, items[0].PriceID)
		if err != nil {
			return "", err
		}
		credited, err := uc.store.CreditPurchase(ctx, uid, &models.PurchaseRecord{
			SessionID:       s.ID,
			Amount:          s.AmountTotal,
			Currency:        s.Currency,
			Pages:           pagesOf(p),
			CreatedAt:       uc.now(),
			Status:          models.PurchaseStatusCompleted,
			PaymentIntentID: s.PaymentIntentID,
			PriceID:         p.ID,
			ProductID:       p.ProductID,
		})
		if err != nil {
			return "", err
		}
		if !credited {
			return webhookDuplicate, nil
		}
		return webhookHandled, nil

	default:
		return webhookIgnored, nil
	}
}

// pagesOf reads the "pages" price metadata; missing or malformed means 0.
func pagesOf(p *models.Price) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(p.Metadata["pages"]), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (uc *BillingUseCase) subscriptionChanged(ctx context.Context, eventType string, sub *models.Subscription) (string, error) {
	if sub == nil {
		return "", fmt.Errorf("%w: subscription event without subscription", models.ErrInvalidRequest)
	}
	uid, err := uc.uidForCustomer(ctx, sub.CustomerID)
	if err != nil {
		return "", err
	}
	if uid == "" {
		return webhookNoUser, nil
	}

	if eventType == models.EventSubscriptionDeleted {
		return webhookHandled, uc.store.CancelSubscription(ctx, uid, sub.ID, uc.now())
	}
	return webhookHandled, uc.store.SetSubscription(ctx, uid, &models.SubscriptionRecord{
		ID:                 sub.ID,
		Status:             sub.Status,
		PriceID:            sub.PriceID,
		Quantity:           sub.Quantity,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		CanceledAt:         sub.CanceledAt,
		CreatedAt:          sub.CreatedAt,
		UpdatedAt:          uc.now(),
	})
}

var _ domsvc.BillingService = (*BillingUseCase)(nil)
