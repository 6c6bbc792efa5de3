package stripegw

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"talk-to-legends-be/pkg/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

const testSecret = "whsec_test"

func sign(payload string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", ts, payload)))
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newGateway(fetched *stripe.Subscription) (*Gateway, *[]string) {
	g := New("sk_test_123", testSecret)
	var calls []string
	g.fetch = func(_ context.Context, id string) (*stripe.Subscription, error) {
		calls = append(calls, id)
		if fetched == nil {
			return nil, errors.New("not found")
		}
		return fetched, nil
	}
	return g, &calls
}

func event(id, typ, object string) string {
	return fmt.Sprintf(`{"id":%q,"object":"event","api_version":%q,"type":%q,"data":{"object":%s}}`,
		id, stripe.APIVersion, typ, object)
}

func TestParseEventRejectsBadSignatures(t *testing.T) {
	g, _ := newGateway(nil)
	payload := event("evt_1", "customer.created", `{"id":"cus_1","object":"customer"}`)

	_, err := g.ParseEvent(context.Background(), []byte(payload), "")
	assert.ErrorIs(t, err, billing.ErrMissingSignature)

	_, err = g.ParseEvent(context.Background(), []byte(payload), "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, billing.ErrInvalidSignature)
	assert.True(t, billing.IsSignatureError(err))
}

func TestParseCheckoutCompleted(t *testing.T) {
	sub := &stripe.Subscription{
		ID:               "sub_1",
		Customer:         &stripe.Customer{ID: "cus_1"},
		CurrentPeriodEnd: 1767225600,
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_pro"}}},
		},
	}
	g, calls := newGateway(sub)

	payload := event("evt_2", "checkout.session.completed",
		`{"id":"cs_1","object":"checkout.session","mode":"subscription","customer":"cus_1","subscription":"sub_1","metadata":{"userId":"u-1","plan":"PRO"}}`)

	ev, err := g.ParseEvent(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)

	assert.Equal(t, billing.CheckoutCompleted, ev.Kind)
	assert.Equal(t, "evt_2", ev.Id)
	assert.True(t, ev.SubscriptionMode)
	assert.Equal(t, "u-1", ev.Metadata["userId"])
	assert.Equal(t, "PRO", ev.Metadata["plan"])
	assert.Equal(t, "cus_1", ev.CustomerId)
	assert.Equal(t, []string{"sub_1"}, *calls)
	require.NotNil(t, ev.Subscription)
	assert.Equal(t, "price_pro", ev.Subscription.PriceId)
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), ev.Subscription.CurrentPeriodEnd)
}

func TestParsePaymentModeCheckoutSkipsSubscription(t *testing.T) {
	g, calls := newGateway(nil)
	payload := event("evt_3", "checkout.session.completed",
		`{"id":"cs_2","object":"checkout.session","mode":"payment","metadata":{}}`)

	ev, err := g.ParseEvent(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.False(t, ev.SubscriptionMode)
	assert.Nil(t, ev.Subscription)
	assert.Empty(t, *calls)
}

func TestParseSubscriptionEvents(t *testing.T) {
	g, calls := newGateway(nil)
	object := `{"id":"sub_9","object":"subscription","customer":"cus_9","current_period_end":1767225600,"items":{"object":"list","data":[{"id":"si_1","object":"subscription_item","price":{"id":"price_premium","object":"price"}}]}}`

	for typ, kind := range map[string]billing.EventKind{
		"customer.subscription.updated": billing.SubscriptionUpdated,
		"customer.subscription.deleted": billing.SubscriptionDeleted,
	} {
		payload := event("evt_"+typ, typ, object)
		ev, err := g.ParseEvent(context.Background(), []byte(payload), sign(payload))
		require.NoError(t, err)
		assert.Equal(t, kind, ev.Kind)
		assert.Equal(t, "sub_9", ev.SubscriptionId)
		assert.Equal(t, "price_premium", ev.Subscription.PriceId)
	}
	assert.Empty(t, *calls)
}

func TestParseInvoiceEvents(t *testing.T) {
	sub := &stripe.Subscription{
		ID: "sub_5",
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_pro"}}},
		},
	}
	g, calls := newGateway(sub)
	object := `{"id":"in_1","object":"invoice","customer":"cus_5","subscription":"sub_5"}`

	paid := event("evt_paid", "invoice.payment_succeeded", object)
	ev, err := g.ParseEvent(context.Background(), []byte(paid), sign(paid))
	require.NoError(t, err)
	assert.Equal(t, billing.InvoicePaid, ev.Kind)
	assert.Equal(t, "price_pro", ev.Subscription.PriceId)

	failed := event("evt_failed", "invoice.payment_failed", object)
	ev, err = g.ParseEvent(context.Background(), []byte(failed), sign(failed))
	require.NoError(t, err)
	assert.Equal(t, billing.InvoicePaymentFailed, ev.Kind)
	assert.Equal(t, "cus_5", ev.CustomerId)
	assert.Equal(t, "sub_5", ev.SubscriptionId)

	assert.Equal(t, []string{"sub_5"}, *calls)
}

func TestParseOtherEvent(t *testing.T) {
	g, _ := newGateway(nil)
	payload := event("evt_x", "customer.created", `{"id":"cus_1","object":"customer"}`)

	ev, err := g.ParseEvent(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.Equal(t, billing.Other, ev.Kind)
	assert.Equal(t, "customer.created", ev.RawType)
}
