package midtransgw

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"talk-to-legends-be/pkg/billing"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const (
	ProviderName = "midtrans"

	orderPrefix = "LGD"
	// Midtrans charges once, so a paid order buys one period.
	period = 30 * 24 * time.Hour
)

type Gateway struct {
	serverKey string
	snap      snap.Client
}

var _ billing.Gateway = &Gateway{}

func New(serverKey string, production bool) *Gateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &Gateway{serverKey: serverKey}
	g.snap.New(serverKey, env)
	return g
}

func (g *Gateway) Name() string { return ProviderName }

// EnsureCustomer derives a stable reference. Midtrans keeps no customer objects.
func (g *Gateway) EnsureCustomer(_ context.Context, in billing.CustomerInput) (string, error) {
	return "mt_" + in.UserId, nil
}

func (g *Gateway) CreateCheckout(_ context.Context, in billing.CheckoutInput) (*billing.CheckoutSession, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("midtrans checkout requires a positive amount for plan %s", in.Plan)
	}
	orderID := OrderID(in.Plan, in.UserId)

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: in.Amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: in.SuccessURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: in.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    in.PriceId,
				Price: in.Amount,
				Qty:   1,
				Name:  "Talk to Legends " + in.Plan,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	resp, midErr := g.snap.CreateTransaction(req)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}
	return &billing.CheckoutSession{Id: orderID, URL: resp.RedirectURL}, nil
}

// Midtrans caps order_id at 50 characters.
const maxOrderIDLength = 50

var planCodes = map[string]string{"PRO": "P", "PREMIUM": "M"}

// OrderID encodes plan and user so the notification can be mapped without a lookup table.
// UUIDs are written without dashes to stay under maxOrderIDLength.
func OrderID(plan, userID string) string {
	code, ok := planCodes[plan]
	if !ok {
		code = plan
	}
	if id, err := uuid.Parse(userID); err == nil {
		userID = strings.ReplaceAll(id.String(), "-", "")
	}
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strings.Join([]string{orderPrefix, code, userID, nonce}, ".")
}

// ParseOrderID is the inverse of OrderID.
func ParseOrderID(orderID string) (plan, userID string, ok bool) {
	parts := strings.Split(orderID, ".")
	if len(parts) != 4 || parts[0] != orderPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	plan = parts[1]
	for name, code := range planCodes {
		if code == plan {
			plan = name
			break
		}
	}
	userID = parts[2]
	if len(userID) == 32 {
		if id, err := uuid.Parse(userID); err == nil {
			userID = id.String()
		}
	}
	return plan, userID, true
}

type notification struct {
	TransactionId     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionTime   string `json:"transaction_time"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
}

// Signature computes SHA512(order_id + status_code + gross_amount + server_key).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// ParseEvent verifies the signature carried in the body. The header signature is unused.
func (g *Gateway) ParseEvent(_ context.Context, payload []byte, _ string) (*billing.Event, error) {
	var n notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("decode midtrans notification: %w", err)
	}
	if n.SignatureKey == "" {
		return nil, billing.ErrMissingSignature
	}
	expected := Signature(n.OrderId, n.StatusCode, n.GrossAmount, g.serverKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(n.SignatureKey))) != 1 {
		return nil, fmt.Errorf("%w: order %s", billing.ErrInvalidSignature, n.OrderId)
	}

	ev := &billing.Event{
		Id:       n.TransactionId + ":" + n.TransactionStatus,
		Provider: ProviderName,
		RawType:  n.TransactionStatus,
		Kind:     billing.Other,
		Payload:  payload,
	}

	plan, userID, ok := ParseOrderID(n.OrderId)
	if !ok {
		return ev, nil
	}
	ev.Metadata = map[string]string{"userId": userID, "plan": plan}
	ev.CustomerId = "mt_" + userID

	switch n.TransactionStatus {
	case "capture", "settlement":
		if n.FraudStatus != "" && n.FraudStatus != "accept" {
			return ev, nil
		}
		paidAt, err := time.ParseInLocation("2006-01-02 15:04:05", n.TransactionTime, time.UTC)
		if err != nil {
			paidAt = time.Now().UTC()
		}
		ev.Kind = billing.CheckoutCompleted
		ev.SubscriptionMode = true
		ev.SubscriptionId = n.OrderId
		ev.Subscription = &billing.Subscription{
			Id:               n.OrderId,
			CustomerId:       ev.CustomerId,
			PriceId:          PriceID(plan),
			CurrentPeriodEnd: paidAt.Add(period),
		}
	case "deny", "cancel", "expire", "failure":
		ev.Kind = billing.InvoicePaymentFailed
		ev.SubscriptionId = n.OrderId
	}

	return ev, nil
}

// PriceID is the synthetic price reference recorded for Midtrans purchases.
func PriceID(plan string) string {
	return "midtrans_" + strings.ToLower(plan)
}
