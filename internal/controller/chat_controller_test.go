package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatFallsBackWhenProvidersAreDown(t *testing.T) {
	a := newTestApp(t)
	_, token := a.user(t, "FREE")

	resp := a.do(t, call{method: http.MethodPost, path: "/api/chat", token: token, body: dto.ChatRequest{Legend: "gandhi", Message: "What is truth?"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[dto.ChatResponse](t, resp)
	assert.GreaterOrEqual(t, len(first.Response), 50)
	require.NotEmpty(t, first.ConversationId)

	resp = a.do(t, call{method: http.MethodPost, path: "/api/chat", token: token, body: dto.ChatRequest{Legend: "gandhi", Message: "And courage?"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first.ConversationId, decode[dto.ChatResponse](t, resp).ConversationId)

	resp = a.do(t, call{method: http.MethodGet, path: "/api/conversations/" + first.ConversationId + "/messages", token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	messages := decode[dto.MessagesResponse](t, resp).Messages
	require.Len(t, messages, 4)
	assert.Equal(t, []string{"USER", "LEGEND", "USER", "LEGEND"}, []string{
		messages[0].Sender, messages[1].Sender, messages[2].Sender, messages[3].Sender,
	})
}

func TestChatErrors(t *testing.T) {
	a := newTestApp(t)
	_, token := a.user(t, "FREE")

	tests := []struct {
		name string
		req  dto.ChatRequest
		want int
		msg  string
	}{
		{"missing message", dto.ChatRequest{Legend: "gandhi"}, http.StatusBadRequest, "Legend and message are required"},
		{"unknown legend", dto.ChatRequest{Legend: "napoleon", Message: "hi"}, http.StatusBadRequest, "Unknown legend"},
		{"foreign conversation", dto.ChatRequest{Legend: "gandhi", Message: "hi", ConversationId: uuid.NewString()}, http.StatusNotFound, "Conversation not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := a.do(t, call{method: http.MethodPost, path: "/api/chat", token: token, body: tt.req})
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, tt.msg, decode[errorBody](t, resp).Error)
		})
	}
}

func TestChatMessageCap(t *testing.T) {
	a := newTestApp(t)
	user, token := a.user(t, "FREE")
	ctx := context.Background()
	uow := a.factory.NewUnitOfWork(ctx)

	now := time.Now().UTC()
	conv := &entity.Conversation{Id: uuid.New(), UserId: user.Id, Legend: "einstein", Title: "seed", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, uow.ConversationRepository().Create(ctx, conv))
	for i := 0; i < 20; i++ {
		require.NoError(t, uow.MessageRepository().Create(ctx, &entity.Message{
			Id: uuid.New(), ConversationId: conv.Id, Content: "q", Sender: entity.SenderUser, CreatedAt: now,
		}))
	}

	resp := a.do(t, call{method: http.MethodPost, path: "/api/chat", token: token, body: dto.ChatRequest{Legend: "einstein", Message: "One more?"}})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.True(t, body.Upgrade)
	assert.Contains(t, body.Error, "daily limit of 20 messages")
}

func TestChatIsThrottled(t *testing.T) {
	a := newTestApp(t, withRateLimit(1, 1))
	_, token := a.user(t, "PRO")

	resp := a.do(t, call{method: http.MethodPost, path: "/api/chat", token: token, body: dto.ChatRequest{Legend: "gandhi", Message: "Hello"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.do(t, call{method: http.MethodPost, path: "/api/chat", token: token, body: dto.ChatRequest{Legend: "gandhi", Message: "Hello again"}})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.False(t, decode[errorBody](t, resp).Upgrade)
}

func TestVoice(t *testing.T) {
	a := newTestApp(t)
	_, free := a.user(t, "FREE")
	_, pro := a.user(t, "PRO")

	resp := a.do(t, call{method: http.MethodPost, path: "/api/voice", token: free, body: dto.VoiceRequest{Legend: "gandhi", Text: "Be the change."}})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.Equal(t, "Voice generation requires Pro plan", body.Error)
	assert.True(t, body.Upgrade)

	resp = a.do(t, call{method: http.MethodPost, path: "/api/voice", token: pro, body: dto.VoiceRequest{Legend: "napoleon", Text: "Hi"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for i := 0; i < 2; i++ {
		resp = a.do(t, call{method: http.MethodPost, path: "/api/voice", token: pro, body: dto.VoiceRequest{Legend: "gandhi", Text: "**Be** the change."}})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
		assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))
		audio, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "ID3-audio", string(audio))
	}
	assert.Equal(t, 1, a.synthesizer.calls)
}

func TestChatRouteChainsAreIndependent(t *testing.T) {
	pass := func(ctx *fiber.Ctx) error { return ctx.Next() }
	c := &chatController{auth: pass, throttle: pass}

	chatChain := c.chain(func(ctx *fiber.Ctx) error { return ctx.SendString("chat") })
	voiceChain := c.chain(func(ctx *fiber.Ctx) error { return ctx.SendString("voice") })
	require.Len(t, chatChain, 3)
	require.Len(t, voiceChain, 3)

	app := fiber.New()
	app.Post("/chat", chatChain...)
	app.Post("/voice", voiceChain...)

	for path, want := range map[string]string{"/chat": "chat", "/voice": "voice"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, path, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, want, string(body), path)
	}

	unthrottled := (&chatController{auth: pass}).chain(pass)
	assert.Len(t, unthrottled, 2)
}
