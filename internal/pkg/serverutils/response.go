package serverutils

import (
	"errors"

	"talk-to-legends-be/internal/pkg/apperror"
	"talk-to-legends-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type ErrorBody struct {
	Error    string `json:"error"`
	Upgrade  bool   `json:"upgrade,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}

// NewErrorHandler maps returned errors to JSON bodies. Internal failures are
// logged with their cause and reported with a generic message.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if appErr, ok := apperror.As(err); ok {
			if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindUpstreamUnavailable {
				log.Error("HTTP", appErr.Message, map[string]interface{}{
					"path":  ctx.Path(),
					"error": appErr.Error(),
				})
			}
			return ctx.Status(appErr.Status()).JSON(ErrorBody{
				Error:    appErr.Message,
				Upgrade:  appErr.Upgrade,
				Fallback: appErr.Fallback,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
