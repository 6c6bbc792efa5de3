package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Unauthenticated("no"), http.StatusUnauthorized},
		{NotFound("missing"), http.StatusNotFound},
		{Validation("bad"), http.StatusBadRequest},
		{Forbidden("plan", true), http.StatusForbidden},
		{LimitExceeded("cap"), http.StatusTooManyRequests},
		{UpstreamUnavailable("tts", nil), http.StatusServiceUnavailable},
		{Internal("boom", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Status(), tt.err.Message)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	cause := errors.New("db down")
	err := fmt.Errorf("saving: %w", Internal("Failed to save", cause))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, KindInternal, appErr.Kind)
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, KindInternal))
	assert.False(t, Is(cause, KindInternal))
}

func TestFlags(t *testing.T) {
	assert.True(t, LimitExceeded("x").Upgrade)
	assert.False(t, TooManyRequests("x").Upgrade)
	assert.True(t, UpstreamUnavailable("x", nil).Fallback)
}
