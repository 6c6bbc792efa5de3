package midtransgw

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"talk-to-legends-be/pkg/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serverKey = "SB-Mid-server-test"

func notify(t *testing.T, orderID, status string, signed bool) []byte {
	t.Helper()
	n := notification{
		TransactionId:     "tx-1",
		TransactionStatus: status,
		TransactionTime:   "2026-01-02 10:00:00",
		OrderId:           orderID,
		StatusCode:        "200",
		GrossAmount:       "99000.00",
	}
	if signed {
		n.SignatureKey = Signature(n.OrderId, n.StatusCode, n.GrossAmount, serverKey)
	} else {
		n.SignatureKey = "forged"
	}
	b, err := json.Marshal(n)
	require.NoError(t, err)
	return b
}

func TestOrderIDRoundTrip(t *testing.T) {
	id := OrderID("PRO", "0b6a3f7e-2d7c-4a53-9e0f-0a1c2b3d4e5f")
	plan, user, ok := ParseOrderID(id)
	require.True(t, ok)
	assert.Equal(t, "PRO", plan)
	assert.Equal(t, "0b6a3f7e-2d7c-4a53-9e0f-0a1c2b3d4e5f", user)

	_, _, ok = ParseOrderID("some-other-order")
	assert.False(t, ok)
}

func TestOrderIDFitsMidtransLimit(t *testing.T) {
	userID := "0b6a3f7e-2d7c-4a53-9e0f-0a1c2b3d4e5f"
	for _, plan := range []string{"PRO", "PREMIUM"} {
		id := OrderID(plan, userID)
		assert.LessOrEqual(t, len(id), maxOrderIDLength, id)

		gotPlan, gotUser, ok := ParseOrderID(id)
		require.True(t, ok)
		assert.Equal(t, plan, gotPlan)
		assert.Equal(t, userID, gotUser)
	}
}

func TestParseEventSignature(t *testing.T) {
	g := New(serverKey, false)
	orderID := OrderID("PRO", "user-1")

	_, err := g.ParseEvent(context.Background(), notify(t, orderID, "settlement", false), "")
	assert.ErrorIs(t, err, billing.ErrInvalidSignature)

	_, err = g.ParseEvent(context.Background(), []byte(`{"order_id":"x"}`), "")
	assert.ErrorIs(t, err, billing.ErrMissingSignature)
}

func TestParseSettlement(t *testing.T) {
	g := New(serverKey, false)
	orderID := OrderID("PREMIUM", "user-1")

	ev, err := g.ParseEvent(context.Background(), notify(t, orderID, "settlement", true), "")
	require.NoError(t, err)

	assert.Equal(t, billing.CheckoutCompleted, ev.Kind)
	assert.True(t, ev.SubscriptionMode)
	assert.Equal(t, "user-1", ev.Metadata["userId"])
	assert.Equal(t, "PREMIUM", ev.Metadata["plan"])
	require.NotNil(t, ev.Subscription)
	assert.Equal(t, orderID, ev.Subscription.Id)
	assert.Equal(t, "midtrans_premium", ev.Subscription.PriceId)
	assert.Equal(t, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), ev.Subscription.CurrentPeriodEnd)
	assert.Equal(t, "tx-1:settlement", ev.Id)
}

func TestParseFailureAndPending(t *testing.T) {
	g := New(serverKey, false)
	orderID := OrderID("PRO", "user-2")

	ev, err := g.ParseEvent(context.Background(), notify(t, orderID, "expire", true), "")
	require.NoError(t, err)
	assert.Equal(t, billing.InvoicePaymentFailed, ev.Kind)
	assert.Equal(t, "user-2", ev.Metadata["userId"])

	ev, err = g.ParseEvent(context.Background(), notify(t, orderID, "pending", true), "")
	require.NoError(t, err)
	assert.Equal(t, billing.Other, ev.Kind)
}
