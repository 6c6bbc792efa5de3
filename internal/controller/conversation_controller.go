package controller

import (
	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/serverutils"
	"talk-to-legends-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	AddMessage(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
	auth    fiber.Handler
}

func NewConversationController(service service.IConversationService, auth fiber.Handler) IConversationController {
	return &conversationController{service: service, auth: auth}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations", c.auth)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/messages", c.GetMessages)
	h.Post("/:id/messages", c.AddMessage)
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *conversationController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateConversationRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.ConversationEnvelope{Conversation: *res})
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), userId, ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(dto.SuccessResponse{Success: true})
}

func (c *conversationController) GetMessages(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetMessages(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *conversationController) AddMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AddMessage(ctx.UserContext(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(dto.MessageEnvelope{Message: *res})
}
