// Package billing defines a provider-neutral view of subscription payments.
package billing

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidSignature is returned when a webhook payload fails verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMissingSignature is returned when a webhook arrives unsigned.
	ErrMissingSignature = errors.New("missing webhook signature")
)

type EventKind string

const (
	CheckoutCompleted    EventKind = "checkout_completed"
	SubscriptionUpdated  EventKind = "subscription_updated"
	SubscriptionDeleted  EventKind = "subscription_deleted"
	InvoicePaid          EventKind = "invoice_paid"
	InvoicePaymentFailed EventKind = "invoice_payment_failed"
	Other                EventKind = "other"
)

// Subscription is the billing state mirrored onto a user.
type Subscription struct {
	Id               string
	CustomerId       string
	PriceId          string
	CurrentPeriodEnd time.Time
}

// Event is a verified webhook notification.
type Event struct {
	Id       string
	Provider string
	Kind     EventKind
	// RawType is the provider's own event name.
	RawType string

	// Checkout fields. Only set for CheckoutCompleted.
	SubscriptionMode bool
	Metadata         map[string]string

	CustomerId   string
	Subscription *Subscription
	// SubscriptionId is set even when the subscription itself was not resolved.
	SubscriptionId string

	Payload []byte
}

type CustomerInput struct {
	Email  string
	Name   string
	UserId string
}

type CheckoutInput struct {
	CustomerId string
	PriceId    string
	UserId     string
	Email      string
	Plan       string
	// Amount is used by providers that charge a fixed sum instead of a price id.
	Amount     int64
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	Id  string
	URL string
}

// Gateway is implemented once per payment provider.
type Gateway interface {
	Name() string
	EnsureCustomer(ctx context.Context, in CustomerInput) (string, error)
	CreateCheckout(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
	ParseEvent(ctx context.Context, payload []byte, signature string) (*Event, error)
}

// IsSignatureError reports whether err came from webhook verification.
func IsSignatureError(err error) bool {
	return errors.Is(err, ErrInvalidSignature) || errors.Is(err, ErrMissingSignature)
}
