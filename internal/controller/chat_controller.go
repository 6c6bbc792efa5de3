package controller

import (
	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/serverutils"
	"talk-to-legends-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Voice(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService  service.IChatService
	voiceService service.IVoiceService
	auth         fiber.Handler
	throttle     fiber.Handler
}

// NewChatController serves /chat and /voice. throttle runs after auth so bursts
// are counted per user.
func NewChatController(chatService service.IChatService, voiceService service.IVoiceService, auth, throttle fiber.Handler) IChatController {
	return &chatController{
		chatService:  chatService,
		voiceService: voiceService,
		auth:         auth,
		throttle:     throttle,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.chain(c.Chat)...)
	r.Post("/voice", c.chain(c.Voice)...)
}

// chain returns a fresh handler list: auth, optional throttle, then the route handler.
func (c *chatController) chain(handler fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, 3)
	handlers = append(handlers, c.auth)
	if c.throttle != nil {
		handlers = append(handlers, c.throttle)
	}
	return append(handlers, handler)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) Voice(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.VoiceRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	audio, err := c.voiceService.Synthesize(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	ctx.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return ctx.Send(audio)
}
