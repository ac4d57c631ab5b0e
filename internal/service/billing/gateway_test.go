package billing

import (
	"testing"
	"time"

	"RaptorExplorer/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84/webhook"
)

const testSecret = "whsec_test_secret"

func sign(t *testing.T, payload string) ([]byte, string) {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testSecret,
		Timestamp: time.Now(),
	})
	return signed.Payload, signed.Header
}

func TestParseSubscriptionEvent(t *testing.T) {
	payload, header := sign(t, `{
		"id": "evt_1",
		"object": "event",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_1",
			"object": "subscription",
			"customer": "cus_1",
			"status": "active",
			"cancel_at_period_end": true,
			"canceled_at": null,
			"created": 1700000000,
			"items": {"object": "list", "data": [{
				"id": "si_1",
				"object": "subscription_item",
				"quantity": 2,
				"current_period_start": 1700000000,
				"current_period_end": 1702592000,
				"price": {"id": "price_1", "object": "price"}
			}]}
		}}
	}`)

	ev, err := NewGateway("", testSecret).ParseWebhookEvent(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, models.EventSubscriptionUpdated, ev.Type)
	assert.Equal(t, "sub_1", ev.ObjectID)

	require.NotNil(t, ev.Subscription)
	sub := ev.Subscription
	assert.Equal(t, "cus_1", sub.CustomerID)
	assert.Equal(t, "active", sub.Status)
	assert.Equal(t, "price_1", sub.PriceID)
	assert.Equal(t, int64(2), sub.Quantity)
	assert.True(t, sub.CancelAtPeriodEnd)
	assert.Nil(t, sub.CanceledAt)
	assert.Equal(t, time.Unix(1702592000, 0).UTC(), sub.CurrentPeriodEnd)
}

func TestParseCheckoutEvent(t *testing.T) {
	payload, header := sign(t, `{
		"id": "evt_2",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"object": "checkout.session",
			"mode": "payment",
			"customer": "cus_9",
			"payment_intent": "pi_1",
			"amount_total": 1999,
			"currency": "usd"
		}}
	}`)

	ev, err := NewGateway("", testSecret).ParseWebhookEvent(payload, header)
	require.NoError(t, err)
	require.NotNil(t, ev.Session)
	assert.Equal(t, &models.CheckoutSession{
		ID:              "cs_1",
		Mode:            models.CheckoutModePayment,
		CustomerID:      "cus_9",
		PaymentIntentID: "pi_1",
		AmountTotal:     1999,
		Currency:        "usd",
	}, ev.Session)
}

func TestParseCatalogEvent(t *testing.T) {
	payload, header := sign(t, `{"id":"evt_3","object":"event","type":"product.updated","data":{"object":{"id":"prod_1","object":"product","name":"Pages","active":true}}}`)

	ev, err := NewGateway("", testSecret).ParseWebhookEvent(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "prod_1", ev.ObjectID)
	assert.Equal(t, "Pages", ev.Object["name"])
	assert.Nil(t, ev.Session)
	assert.Nil(t, ev.Subscription)
}

func TestParseRejectsBadSignature(t *testing.T) {
	payload, _ := sign(t, `{"id":"evt_4","object":"event","type":"product.created","data":{"object":{"id":"prod_1"}}}`)

	_, err := NewGateway("", testSecret).ParseWebhookEvent(payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, models.ErrInvalidSignature)
}

func TestParseWithoutSecret(t *testing.T) {
	_, err := NewGateway("", "").ParseWebhookEvent([]byte(`{}`), "")
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestCallsWithoutKeyAreMisconfigured(t *testing.T) {
	g := NewGateway("", testSecret)

	_, err := g.GetPrice(t.Context(), "price_1")
	assert.ErrorIs(t, err, models.ErrConfiguration)

	_, err = g.FindCustomerByUID(t.Context(), "uid")
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestUIDSearchQueryEscapesQuotes(t *testing.T) {
	assert.Equal(t, `metadata['firebaseUID']:'uid123'`, uidSearchQuery("uid123"))
	assert.Equal(t,
		`metadata['firebaseUID']:'x\' OR email:\'victim@example.com'`,
		uidSearchQuery(`x' OR email:'victim@example.com`),
	)
	assert.Equal(t, `metadata['firebaseUID']:'a\\\''`, uidSearchQuery(`a\'`))
}
