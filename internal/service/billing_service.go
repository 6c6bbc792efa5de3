package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/repository/specification"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/pkg/billing"
	"talk-to-legends-be/pkg/events"
	"talk-to-legends-be/pkg/plan"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Price is what a gateway charges for one plan period.
type Price struct {
	Id     string
	Amount int64
}

// PaymentFailedMessage travels on the in-process bus to the notification consumer.
type PaymentFailedMessage struct {
	UserId   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Provider string    `json:"provider"`
	EventId  string    `json:"eventId"`
}

type IBillingService interface {
	Provider() string
	CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type billingService struct {
	uowFactory    unitofwork.RepositoryFactory
	gateway       billing.Gateway
	prices        map[plan.Tier]Price
	clientURL     string
	publisher     events.Publisher
	failedPayment IPublisherService
	logger        logger.ILogger
}

func NewBillingService(
	uowFactory unitofwork.RepositoryFactory,
	gateway billing.Gateway,
	prices map[plan.Tier]Price,
	clientURL string,
	publisher events.Publisher,
	failedPayment IPublisherService,
	log logger.ILogger,
) IBillingService {
	return &billingService{
		uowFactory:    uowFactory,
		gateway:       gateway,
		prices:        prices,
		clientURL:     strings.TrimRight(clientURL, "/"),
		publisher:     publisher,
		failedPayment: failedPayment,
		logger:        log,
	}
}

func (s *billingService) Provider() string {
	return s.gateway.Name()
}

// PlanForPrice maps a price id back to its tier. Unknown prices are FREE.
func (s *billingService) PlanForPrice(priceId string) plan.Tier {
	if priceId == "" {
		return plan.Free
	}
	for tier, price := range s.prices {
		if price.Id == priceId {
			return tier
		}
	}
	return plan.Free
}

func (s *billingService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	tier := plan.Tier(strings.ToUpper(strings.TrimSpace(req.Plan)))
	if !tier.Paid() {
		return nil, apperror.Validation("Invalid plan selected")
	}
	price, ok := s.prices[tier]
	if !ok || price.Id == "" {
		return nil, apperror.Validation("Price ID not configured for this plan")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal server error", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	if user.Plan.Rank() >= tier.Rank() {
		return nil, apperror.Validation("You are already on this plan or a higher plan")
	}

	customerId := ""
	if user.BillingCustomerId != nil {
		customerId = *user.BillingCustomerId
	}
	if customerId == "" {
		customerId, err = s.gateway.EnsureCustomer(ctx, billing.CustomerInput{
			Email:  user.Email,
			Name:   user.Name(),
			UserId: user.Id.String(),
		})
		if err != nil {
			s.logger.Error("BILLING", "Failed to create customer", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
			return nil, apperror.Internal("Failed to create checkout session", err)
		}
		user.BillingCustomerId = &customerId
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, apperror.Internal("Failed to create checkout session", err)
		}
	}

	session, err := s.gateway.CreateCheckout(ctx, billing.CheckoutInput{
		CustomerId: customerId,
		PriceId:    price.Id,
		UserId:     user.Id.String(),
		Email:      user.Email,
		Plan:       string(tier),
		Amount:     price.Amount,
		SuccessURL: s.clientURL + "/pricing?success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.clientURL + "/pricing?canceled=true",
	})
	if err != nil {
		s.logger.Error("BILLING", "Checkout creation failed", map[string]interface{}{
			"user_id":  userId.String(),
			"provider": s.gateway.Name(),
			"error":    err.Error(),
		})
		return nil, apperror.Internal("Failed to create checkout session", err)
	}

	return &dto.CheckoutResponse{SessionId: session.Id, URL: session.URL}, nil
}

// planChange is collected while applying an event and announced after commit.
type planChange struct {
	userId uuid.UUID
	from   plan.Tier
	to     plan.Tier
}

// HandleWebhook verifies, records and applies one provider event.
// Redelivered events are acknowledged without being applied again.
func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := s.gateway.ParseEvent(ctx, payload, signature)
	if err != nil {
		if errors.Is(err, billing.ErrMissingSignature) {
			return apperror.Validation("No signature provided")
		}
		if billing.IsSignatureError(err) {
			s.logger.Warn("BILLING", "Webhook signature verification failed", map[string]interface{}{
				"provider": s.gateway.Name(),
				"error":    err.Error(),
			})
			return apperror.Validation("Invalid signature")
		}
		return apperror.Internal("Webhook handler failed", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal("Webhook handler failed", err)
	}
	defer uow.Rollback()

	record := &entity.BillingEvent{
		Id:              uuid.New(),
		Provider:        ev.Provider,
		ProviderEventId: ev.Id,
		Type:            ev.RawType,
		Payload:         rawJSON(ev.Payload),
	}
	if err := uow.BillingEventRepository().Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Info("BILLING", "Duplicate webhook ignored", map[string]interface{}{
				"provider": ev.Provider,
				"event_id": ev.Id,
			})
			return nil
		}
		return apperror.Internal("Webhook handler failed", err)
	}

	change, failed, err := s.apply(ctx, uow, ev)
	if err != nil {
		s.logger.Error("BILLING", "Webhook handling failed", map[string]interface{}{
			"provider": ev.Provider,
			"event_id": ev.Id,
			"type":     ev.RawType,
			"error":    err.Error(),
		})
		return apperror.Internal("Webhook handler failed", err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal("Webhook handler failed", err)
	}

	if change != nil && change.from != change.to {
		publishEvent(ctx, s.publisher, s.logger, events.PlanChanged, map[string]interface{}{
			"user_id":  change.userId.String(),
			"from":     string(change.from),
			"to":       string(change.to),
			"provider": ev.Provider,
		})
	}
	if failed != nil {
		s.notifyPaymentFailed(ctx, failed)
	}
	return nil
}

func (s *billingService) apply(ctx context.Context, uow unitofwork.UnitOfWork, ev *billing.Event) (*planChange, *PaymentFailedMessage, error) {
	switch ev.Kind {
	case billing.CheckoutCompleted:
		change, err := s.applyCheckout(ctx, uow, ev)
		return change, nil, err
	case billing.SubscriptionUpdated, billing.InvoicePaid:
		change, err := s.applySubscription(ctx, uow, ev)
		return change, nil, err
	case billing.SubscriptionDeleted:
		change, err := s.applyCancellation(ctx, uow, ev)
		return change, nil, err
	case billing.InvoicePaymentFailed:
		msg, err := s.paymentFailed(ctx, uow, ev)
		return nil, msg, err
	default:
		s.logger.Info("BILLING", "Unhandled event type", map[string]interface{}{
			"provider": ev.Provider,
			"type":     ev.RawType,
		})
		return nil, nil, nil
	}
}

func (s *billingService) applyCheckout(ctx context.Context, uow unitofwork.UnitOfWork, ev *billing.Event) (*planChange, error) {
	if !ev.SubscriptionMode {
		return nil, nil
	}
	userIdRaw, planRaw := ev.Metadata["userId"], ev.Metadata["plan"]
	if userIdRaw == "" || planRaw == "" {
		s.logger.Warn("BILLING", "Checkout completed without user metadata", map[string]interface{}{"event_id": ev.Id})
		return nil, nil
	}
	userId, err := uuid.Parse(userIdRaw)
	if err != nil {
		s.logger.Warn("BILLING", "Checkout completed with invalid user id", map[string]interface{}{
			"event_id": ev.Id,
			"user_id":  userIdRaw,
		})
		return nil, nil
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn("BILLING", "Checkout completed for unknown user", map[string]interface{}{"user_id": userIdRaw})
		return nil, nil
	}

	change := &planChange{userId: user.Id, from: user.Plan, to: plan.Parse(planRaw)}
	user.Plan = change.to
	if ev.CustomerId != "" && (user.BillingCustomerId == nil || *user.BillingCustomerId == "") {
		customerId := ev.CustomerId
		user.BillingCustomerId = &customerId
	}
	if ev.SubscriptionId != "" {
		subId := ev.SubscriptionId
		user.SubscriptionId = &subId
	}
	if sub := ev.Subscription; sub != nil {
		subId, priceId, periodEnd := sub.Id, sub.PriceId, sub.CurrentPeriodEnd
		user.SubscriptionId = &subId
		user.PriceId = &priceId
		user.CurrentPeriodEnd = &periodEnd
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("BILLING", "Subscription activated", map[string]interface{}{
		"user_id": user.Id.String(),
		"plan":    string(user.Plan),
	})
	return change, nil
}

func subscriptionIdOf(ev *billing.Event) string {
	if ev.SubscriptionId != "" {
		return ev.SubscriptionId
	}
	if ev.Subscription != nil {
		return ev.Subscription.Id
	}
	return ""
}

func (s *billingService) findBySubscription(ctx context.Context, uow unitofwork.UnitOfWork, ev *billing.Event) (*entity.User, error) {
	subId := subscriptionIdOf(ev)
	if subId == "" {
		return nil, nil
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.BySubscriptionID{SubscriptionID: subId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Warn("BILLING", "No user for subscription", map[string]interface{}{
			"subscription_id": subId,
			"type":            ev.RawType,
		})
	}
	return user, nil
}

func (s *billingService) applySubscription(ctx context.Context, uow unitofwork.UnitOfWork, ev *billing.Event) (*planChange, error) {
	user, err := s.findBySubscription(ctx, uow, ev)
	if err != nil || user == nil {
		return nil, err
	}
	if ev.Subscription == nil {
		return nil, nil
	}

	change := &planChange{userId: user.Id, from: user.Plan, to: s.PlanForPrice(ev.Subscription.PriceId)}
	priceId, periodEnd := ev.Subscription.PriceId, ev.Subscription.CurrentPeriodEnd
	user.Plan = change.to
	user.PriceId = &priceId
	user.CurrentPeriodEnd = &periodEnd

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return change, nil
}

func (s *billingService) applyCancellation(ctx context.Context, uow unitofwork.UnitOfWork, ev *billing.Event) (*planChange, error) {
	user, err := s.findBySubscription(ctx, uow, ev)
	if err != nil || user == nil {
		return nil, err
	}

	change := &planChange{userId: user.Id, from: user.Plan, to: plan.Free}
	user.Plan = plan.Free
	user.ClearBilling()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("BILLING", "Subscription cancelled", map[string]interface{}{"user_id": user.Id.String()})
	return change, nil
}

// paymentFailed resolves the user by metadata, then subscription, then customer.
func (s *billingService) paymentFailed(ctx context.Context, uow unitofwork.UnitOfWork, ev *billing.Event) (*PaymentFailedMessage, error) {
	var user *entity.User
	var err error

	if id, parseErr := uuid.Parse(ev.Metadata["userId"]); parseErr == nil {
		if user, err = uow.UserRepository().FindOne(ctx, specification.ByID{ID: id}); err != nil {
			return nil, err
		}
	}
	if user == nil {
		if subId := subscriptionIdOf(ev); subId != "" {
			if user, err = uow.UserRepository().FindOne(ctx, specification.BySubscriptionID{SubscriptionID: subId}); err != nil {
				return nil, err
			}
		}
	}
	if user == nil && ev.CustomerId != "" {
		if user, err = uow.UserRepository().FindOne(ctx, specification.ByBillingCustomerID{CustomerID: ev.CustomerId}); err != nil {
			return nil, err
		}
	}

	details := map[string]interface{}{
		"provider":        ev.Provider,
		"event_id":        ev.Id,
		"subscription_id": subscriptionIdOf(ev),
		"customer_id":     ev.CustomerId,
	}
	if user == nil {
		s.logger.Warn("BILLING", "Payment failed for unknown user", details)
		return nil, nil
	}
	details["user_id"] = user.Id.String()
	s.logger.Warn("BILLING", "Payment failed", details)

	return &PaymentFailedMessage{
		UserId:   user.Id,
		Email:    user.Email,
		Name:     user.Name(),
		Provider: ev.Provider,
		EventId:  ev.Id,
	}, nil
}

func (s *billingService) notifyPaymentFailed(ctx context.Context, msg *PaymentFailedMessage) {
	if s.failedPayment == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.failedPayment.Publish(ctx, payload); err != nil {
		s.logger.Error("BILLING", "Failed to queue payment failure notice", map[string]interface{}{
			"user_id": msg.UserId.String(),
			"error":   err.Error(),
		})
	}
}

// rawJSON keeps payloads that are valid JSON and wraps anything else as a string.
func rawJSON(payload []byte) []byte {
	if json.Valid(payload) {
		return payload
	}
	wrapped, _ := json.Marshal(string(payload))
	return wrapped
}
