package stripegw

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talk-to-legends-be/pkg/billing"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const ProviderName = "stripe"

type subscriptionFetcher func(ctx context.Context, id string) (*stripe.Subscription, error)

type Gateway struct {
	api           *client.API
	webhookSecret string
	fetch         subscriptionFetcher
}

var _ billing.Gateway = &Gateway{}

func New(secretKey, webhookSecret string) *Gateway {
	api := client.New(secretKey, nil)
	g := &Gateway{api: api, webhookSecret: webhookSecret}
	g.fetch = func(ctx context.Context, id string) (*stripe.Subscription, error) {
		return api.Subscriptions.Get(id, &stripe.SubscriptionParams{Params: stripe.Params{Context: ctx}})
	}
	return g
}

func (g *Gateway) Name() string { return ProviderName }

func (g *Gateway) EnsureCustomer(ctx context.Context, in billing.CustomerInput) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(in.Email),
		Name:  stripe.String(in.Name),
	}
	params.Context = ctx
	params.AddMetadata("userId", in.UserId)

	c, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe customer: %w", err)
	}
	return c.ID, nil
}

func (g *Gateway) CreateCheckout(ctx context.Context, in billing.CheckoutInput) (*billing.CheckoutSession, error) {
	metadata := map[string]string{"userId": in.UserId, "plan": in.Plan}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(in.CustomerId),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(in.PriceId), Quantity: stripe.Int64(1)},
		},
		SuccessURL:               stripe.String(in.SuccessURL),
		CancelURL:                stripe.String(in.CancelURL),
		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}
	return &billing.CheckoutSession{Id: s.ID, URL: s.URL}, nil
}

func (g *Gateway) ParseEvent(ctx context.Context, payload []byte, signature string) (*billing.Event, error) {
	if signature == "" {
		return nil, billing.ErrMissingSignature
	}

	raw, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrInvalidSignature, err)
	}

	ev := &billing.Event{
		Id:       raw.ID,
		Provider: ProviderName,
		RawType:  string(raw.Type),
		Kind:     billing.Other,
		Payload:  payload,
	}

	switch raw.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(raw.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		ev.Kind = billing.CheckoutCompleted
		ev.SubscriptionMode = session.Mode == stripe.CheckoutSessionModeSubscription
		ev.Metadata = session.Metadata
		if session.Customer != nil {
			ev.CustomerId = session.Customer.ID
		}
		if ev.SubscriptionMode && session.Subscription != nil {
			ev.SubscriptionId = session.Subscription.ID
			sub, err := g.fetch(ctx, session.Subscription.ID)
			if err != nil {
				return nil, fmt.Errorf("retrieve subscription %s: %w", session.Subscription.ID, err)
			}
			ev.Subscription = toSubscription(sub)
		}

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(raw.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		ev.Kind = billing.SubscriptionUpdated
		if raw.Type == "customer.subscription.deleted" {
			ev.Kind = billing.SubscriptionDeleted
		}
		ev.SubscriptionId = sub.ID
		ev.Subscription = toSubscription(&sub)
		if sub.Customer != nil {
			ev.CustomerId = sub.Customer.ID
		}

	case "invoice.payment_succeeded", "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(raw.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		if inv.Customer != nil {
			ev.CustomerId = inv.Customer.ID
		}
		if inv.Subscription != nil {
			ev.SubscriptionId = inv.Subscription.ID
		}

		if raw.Type == "invoice.payment_failed" {
			ev.Kind = billing.InvoicePaymentFailed
			break
		}
		ev.Kind = billing.InvoicePaid
		if ev.SubscriptionId != "" {
			sub, err := g.fetch(ctx, ev.SubscriptionId)
			if err != nil {
				return nil, fmt.Errorf("retrieve subscription %s: %w", ev.SubscriptionId, err)
			}
			ev.Subscription = toSubscription(sub)
		}
	}

	return ev, nil
}

func toSubscription(sub *stripe.Subscription) *billing.Subscription {
	if sub == nil {
		return nil
	}
	out := &billing.Subscription{Id: sub.ID}
	if sub.Customer != nil {
		out.CustomerId = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		out.PriceId = sub.Items.Data[0].Price.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		out.CurrentPeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}
	return out
}
