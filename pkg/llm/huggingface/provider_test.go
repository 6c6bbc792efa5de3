package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"talk-to-legends-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body func(prompt string) string) (*httptest.Server, *generationRequest) {
	t.Helper()
	var captured generationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body(captured.Inputs)))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]llm.Message{
		{Role: llm.RoleSystem, Content: "You are Einstein."},
		{Role: llm.RoleUser, Content: "What is imagination?"},
	})
	assert.Equal(t, "You are Einstein.\n\nHuman: What is imagination?\n\nResponse:", prompt)
}

func TestGenerateListFormStripsPromptEcho(t *testing.T) {
	srv, captured := newServer(t, http.StatusOK, func(prompt string) string {
		b, _ := json.Marshal([]generation{{GeneratedText: prompt + " Imagination is more important than knowledge."}})
		return string(b)
	})

	p := NewHuggingFaceProvider("token", srv.URL, "test-model", llm.Options{MaxTokens: 500, Temperature: 0.7, TopP: 0.9})
	text, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "You are Einstein."},
		{Role: llm.RoleUser, Content: "What is imagination?"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Imagination is more important than knowledge.", text)
	assert.Equal(t, 500, captured.Parameters.MaxLength)
	assert.Equal(t, 0.7, captured.Parameters.Temperature)
	assert.True(t, captured.Parameters.DoSample)
}

func TestGenerateStringForm(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, func(string) string { return `"  plain answer  "` })

	p := NewHuggingFaceProvider("token", srv.URL, "test-model", llm.Options{})
	text, err := p.Generate(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "plain answer", text)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"slow down"}`, want: llm.ErrUpstreamRateLimited},
		{name: "server error", status: http.StatusServiceUnavailable, body: `{"error":"loading"}`, want: llm.ErrUpstreamUnavailable},
		{name: "empty list", status: http.StatusOK, body: `[]`, want: llm.ErrMalformedResponse},
		{name: "missing field", status: http.StatusOK, body: `[{"other":"x"}]`, want: llm.ErrMalformedResponse},
		{name: "wrong shape", status: http.StatusOK, body: `{"unexpected":true}`, want: llm.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, func(string) string { return tt.body })
			p := NewHuggingFaceProvider("token", srv.URL, "test-model", llm.Options{})

			_, err := p.Generate(context.Background(), "hello")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateOnlyEcho(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, func(prompt string) string {
		b, _ := json.Marshal([]generation{{GeneratedText: prompt}})
		return string(b)
	})
	p := NewHuggingFaceProvider("token", srv.URL, "test-model", llm.Options{})

	_, err := p.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, llm.ErrMalformedResponse)
}

func TestGenerateNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewHuggingFaceProvider("token", url, "test-model", llm.Options{})
	_, err := p.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, llm.ErrUpstreamUnavailable)
}
