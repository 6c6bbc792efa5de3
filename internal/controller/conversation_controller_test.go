package controller

import (
	"net/http"
	"testing"

	"talk-to-legends-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationLifecycle(t *testing.T) {
	a := newTestApp(t)
	_, token := a.user(t, "FREE")

	resp := a.do(t, call{method: http.MethodPost, path: "/api/conversations", token: token, body: dto.CreateConversationRequest{LegendId: "einstein"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ConversationEnvelope](t, resp).Conversation
	assert.Equal(t, "einstein", created.LegendId)
	assert.Equal(t, "Conversation with Albert Einstein", created.Title)

	base := "/api/conversations/" + created.Id.String()
	resp = a.do(t, call{method: http.MethodPost, path: base + "/messages", token: token, body: dto.CreateMessageRequest{Content: "What is time?", Sender: "user"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "USER", decode[dto.MessageEnvelope](t, resp).Message.Sender)

	resp = a.do(t, call{method: http.MethodPost, path: base + "/messages", token: token, body: dto.CreateMessageRequest{Content: "x", Sender: "ROBOT"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Sender must be USER or LEGEND", decode[errorBody](t, resp).Error)

	resp = a.do(t, call{method: http.MethodGet, path: base + "/messages", token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.MessagesResponse](t, resp).Messages, 1)

	resp = a.do(t, call{method: http.MethodGet, path: "/api/conversations", token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ConversationsResponse](t, resp).Conversations
	require.Len(t, list, 1)
	require.Len(t, list[0].Messages, 1)
	assert.Equal(t, "What is time?", list[0].Messages[0].Content)

	resp = a.do(t, call{method: http.MethodDelete, path: base, token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.SuccessResponse](t, resp).Success)

	resp = a.do(t, call{method: http.MethodGet, path: base + "/messages", token: token})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConversationsAreScopedToOwner(t *testing.T) {
	a := newTestApp(t)
	_, owner := a.user(t, "FREE")
	_, intruder := a.user(t, "FREE")

	resp := a.do(t, call{method: http.MethodPost, path: "/api/conversations", token: owner, body: dto.CreateConversationRequest{LegendId: "gandhi"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[dto.ConversationEnvelope](t, resp).Conversation.Id.String()

	resp = a.do(t, call{method: http.MethodDelete, path: "/api/conversations/" + id, token: intruder})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = a.do(t, call{method: http.MethodGet, path: "/api/conversations/" + id + "/messages", token: intruder})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateConversationCap(t *testing.T) {
	a := newTestApp(t)
	_, token := a.user(t, "FREE")

	for _, legend := range []string{"gandhi", "einstein"} {
		resp := a.do(t, call{method: http.MethodPost, path: "/api/conversations", token: token, body: dto.CreateConversationRequest{LegendId: legend}})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := a.do(t, call{method: http.MethodPost, path: "/api/conversations", token: token, body: dto.CreateConversationRequest{LegendId: "cleopatra"}})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.True(t, body.Upgrade)
	assert.Contains(t, body.Error, "daily limit of 2 conversations")

	resp = a.do(t, call{method: http.MethodPost, path: "/api/conversations", token: token, body: dto.CreateConversationRequest{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
