package controller

import (
	"talk-to-legends-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	Legends(ctx *fiber.Ctx) error
	Plans(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	r.Get("/legends", c.Legends)
	r.Get("/plans", c.Plans)
}

func (c *catalogController) Legends(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Legends())
}

func (c *catalogController) Plans(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"plans": c.service.Plans()})
}
