package controller

import (
	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/serverutils"
	"talk-to-legends-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILegendRequestController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Vote(ctx *fiber.Ctx) error
}

type legendRequestController struct {
	service service.ILegendRequestService
	auth    fiber.Handler
}

func NewLegendRequestController(service service.ILegendRequestService, auth fiber.Handler) ILegendRequestController {
	return &legendRequestController{service: service, auth: auth}
}

func (c *legendRequestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/legend-requests", c.auth)
	h.Post("/", c.Submit)
	h.Get("/", c.List)
	h.Post("/:id/vote", c.Vote)
}

func (c *legendRequestController) Submit(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateLegendRequestRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *legendRequestController) List(ctx *fiber.Ctx) error {
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

func (c *legendRequestController) Vote(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Vote(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
