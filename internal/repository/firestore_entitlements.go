package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"RaptorExplorer/internal/domain/models"
)

const (
	collCustomers     = "customers"
	collSubscriptions = "subscriptions"
	collPurchases     = "purchases"
)

// FirestoreEntitlements keeps billing state in Firestore:
//
//	products/{id}, prices/{id}
//	customers/{uid}                      remainingPages
//	customers/{uid}/subscriptions/{id}
//	customers/{uid}/purchases/{sessionID}
type FirestoreEntitlements struct {
	client *firestore.Client
	now    func() time.Time
}

func NewFirestoreEntitlements(client *firestore.Client) *FirestoreEntitlements {
	return &FirestoreEntitlements{client: client, now: time.Now}
}

// ready fails every write while Firebase is not configured.
func (s *FirestoreEntitlements) ready() error {
	if s.client == nil {
		return fmt.Errorf("%w: firestore is not configured", models.ErrConfiguration)
	}
	return nil
}

func (s *FirestoreEntitlements) customer(uid string) *firestore.DocumentRef {
	return s.client.Collection(collCustomers).Doc(uid)
}

func (s *FirestoreEntitlements) UpsertCatalogObject(ctx context.Context, collection, id string, data map[string]interface{}) error {
	if err := s.ready(); err != nil {
		return err
	}
	doc := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		doc[k] = v
	}
	doc["updatedAt"] = s.now()

	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

// DeactivateCatalogObject merges instead of updating so a delete event that
// arrives before the create does not fail.
func (s *FirestoreEntitlements) DeactivateCatalogObject(ctx context.Context, collection, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	doc := map[string]interface{}{
		"active":    false,
		"deletedAt": s.now(),
	}
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("deactivate %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreEntitlements) SetSubscription(ctx context.Context, uid string, sub *models.SubscriptionRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if sub.UpdatedAt.IsZero() {
		sub.UpdatedAt = s.now()
	}
	ref := s.customer(uid).Collection(collSubscriptions).Doc(sub.ID)
	if _, err := ref.Set(ctx, subscriptionDoc(sub), firestore.MergeAll); err != nil {
		return fmt.Errorf("set subscription %s for %s: %w", sub.ID, uid, err)
	}
	return nil
}

func subscriptionDoc(sub *models.SubscriptionRecord) map[string]interface{} {
	doc := map[string]interface{}{
		"id":                sub.ID,
		"status":            sub.Status,
		"quantity":          sub.Quantity,
		"cancelAtPeriodEnd": sub.CancelAtPeriodEnd,
		"updatedAt":         sub.UpdatedAt,
	}
	if sub.PriceID != "" {
		doc["priceId"] = sub.PriceID
	}
	if !sub.CurrentPeriodStart.IsZero() {
		doc["currentPeriodStart"] = sub.CurrentPeriodStart
	}
	if !sub.CurrentPeriodEnd.IsZero() {
		doc["currentPeriodEnd"] = sub.CurrentPeriodEnd
	}
	if !sub.CreatedAt.IsZero() {
		doc["createdAt"] = sub.CreatedAt
	}
	if sub.CanceledAt != nil {
		doc["canceledAt"] = *sub.CanceledAt
	} else {
		doc["canceledAt"] = nil
	}
	return doc
}

func (s *FirestoreEntitlements) CancelSubscription(ctx context.Context, uid, subscriptionID string, at time.Time) error {
	if err := s.ready(); err != nil {
		return err
	}
	doc := map[string]interface{}{
		"status":     models.SubscriptionStatusCanceled,
		"canceledAt": at,
		"updatedAt":  s.now(),
	}
	ref := s.customer(uid).Collection(collSubscriptions).Doc(subscriptionID)
	if _, err := ref.Set(ctx, doc, firestore.MergeAll); err != nil {
		return fmt.Errorf("cancel subscription %s for %s: %w", subscriptionID, uid, err)
	}
	return nil
}

// CreditPurchase creates customers/{uid}/purchases/{sessionID} and increments
// remainingPages in the same transaction. An existing purchase document means
// the session was credited before, and nothing is written.
func (s *FirestoreEntitlements) CreditPurchase(ctx context.Context, uid string, p *models.PurchaseRecord) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	if p.SessionID == "" {
		return false, fmt.Errorf("%w: purchase without checkout session", models.ErrInvalidRequest)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}

	cust := s.customer(uid)
	ref := cust.Collection(collPurchases).Doc(p.SessionID)
	var credited bool
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		credited = false
		snaps, err := tx.GetAll([]*firestore.DocumentRef{ref})
		if err != nil {
			return err
		}
		if snaps[0].Exists() {
			return nil
		}
		if err := tx.Create(ref, purchaseDoc(p)); err != nil {
			return err
		}
		if err := tx.Set(cust, map[string]interface{}{"remainingPages": firestore.Increment(p.Pages)}, firestore.MergeAll); err != nil {
			return err
		}
		credited = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("credit purchase %s for %s: %w", p.SessionID, uid, err)
	}
	return credited, nil
}

func purchaseDoc(p *models.PurchaseRecord) map[string]interface{} {
	return map[string]interface{}{
		"sessionId":       p.SessionID,
		"amount":          p.Amount,
		"currency":        p.Currency,
		"pages":           p.Pages,
		"createdAt":       p.CreatedAt,
		"status":          p.Status,
		"paymentIntentId": p.PaymentIntentID,
		"priceId":         p.PriceID,
		"productId":       p.ProductID,
	}
}
