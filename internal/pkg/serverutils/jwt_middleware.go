package serverutils

import (
	"fmt"
	"strings"
	"time"

	"talk-to-legends-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIdKey = "user_id"

// NewJwtMiddleware rejects requests without a valid HS256 bearer token
// and stores the user id claim in ctx.Locals("user_id").
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperror.Unauthenticated("Unauthorized")
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return apperror.Unauthenticated("Unauthorized")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperror.Unauthenticated("Unauthorized")
		}
		userId, ok := claims[userIdKey].(string)
		if !ok || userId == "" {
			return apperror.Unauthenticated("Unauthorized")
		}

		ctx.Locals(userIdKey, userId)
		return ctx.Next()
	}
}

// GenerateToken issues a signed token carrying the user id.
func GenerateToken(secret string, userId uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		userIdKey: userId.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// UserId reads the id stored by the JWT middleware.
func UserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals(userIdKey).(string)
	if !ok {
		return uuid.Nil, apperror.Unauthenticated("Unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Unauthenticated("Unauthorized")
	}
	return id, nil
}
