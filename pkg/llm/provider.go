package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrUpstreamUnavailable covers network failures and non-2xx responses.
	ErrUpstreamUnavailable = errors.New("completion provider unavailable")
	// ErrUpstreamRateLimited is returned when the provider answers 429.
	ErrUpstreamRateLimited = errors.New("completion provider rate limited")
	// ErrMalformedResponse is returned when the generated text is missing or empty.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// Option overrides a provider's configured defaults for one call.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
	Model       string // Override default model
}

// Apply folds options over defaults.
func Apply(defaults Options, options ...Option) Options {
	for _, o := range options {
		o(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// StatusError classifies a non-2xx HTTP status into the provider error taxonomy.
func StatusError(provider string, status int, body []byte) error {
	if len(body) > 256 {
		body = body[:256]
	}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s status %d: %s", ErrUpstreamRateLimited, provider, status, string(body))
	}
	return fmt.Errorf("%w: %s status %d: %s", ErrUpstreamUnavailable, provider, status, string(body))
}
