package controller

import (
	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/serverutils"
	"talk-to-legends-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
	Checkout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type billingController struct {
	service service.IBillingService
	auth    fiber.Handler
}

func NewBillingController(service service.IBillingService, auth fiber.Handler) IBillingController {
	return &billingController{service: service, auth: auth}
}

// RegisterRoutes mounts the routes under the active provider name, e.g. /stripe/webhook.
func (c *billingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/" + c.service.Provider())
	h.Post("/create-checkout-session", c.auth, c.Checkout)
	h.Post("/webhook", c.Webhook)
}

func (c *billingController) Checkout(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateCheckout(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// Webhook needs the raw body for signature verification.
func (c *billingController) Webhook(ctx *fiber.Ctx) error {
	payload := append([]byte(nil), ctx.Body()...)
	if err := c.service.HandleWebhook(ctx.UserContext(), payload, ctx.Get("Stripe-Signature")); err != nil {
		return err
	}
	return ctx.JSON(dto.WebhookResponse{Received: true})
}
