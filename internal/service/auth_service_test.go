package service

import (
	"context"
	"testing"
	"time"

	"talk-to-legends-be/internal/dto"
	"talk-to-legends-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewAuthService(factory, testSecret, time.Hour, nopLogger)
	ctx := context.Background()

	res, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:     "  Ada@Example.com ",
		Password:  "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, "FREE", res.User.Plan)
	require.NotNil(t, res.User.Name)
	assert.Equal(t, "Ada Lovelace", *res.User.Name)

	token, err := jwt.Parse(res.Token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.Id.String(), claims["user_id"])

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "ada@example.com", Password: "another-pass"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "Email already registered", appErr.Message)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "ADA@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, res.User.Id, login.User.Id)
	assert.NotEmpty(t, login.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	factory, _ := newTestFactory(t)
	svc := NewAuthService(factory, testSecret, time.Hour, nopLogger)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "grace@example.com", Password: "cobol-rules"})
	require.NoError(t, err)

	for _, req := range []*dto.LoginRequest{
		{Email: "grace@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "cobol-rules"},
	} {
		_, err := svc.Login(ctx, req)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindUnauthenticated, appErr.Kind)
		assert.Equal(t, "Invalid email or password", appErr.Message)
	}
}
