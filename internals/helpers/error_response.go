package helper

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kiezjagd_backend/internals/helpers/apperr"
)

// StatusOf maps an apperr kind onto the HTTP status it is reported with.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalid:
		return fiber.StatusBadRequest
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindGone:
		return fiber.StatusGone
	case apperr.KindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// JsonFromError turns a service error into the standard error envelope.
// *fiber.Error keeps its own status; anything untyped becomes a 500
// without leaking the cause to the client.
func JsonFromError(c *fiber.Ctx, err error) error {
	if e, ok := apperr.As(err); ok {
		status := StatusOf(e.Kind)
		if status >= 500 {
			zap.L().Error("request failed",
				zap.String("path", c.Path()),
				zap.String("code", e.Code),
				zap.Error(err),
			)
		}
		return JsonErrorCode(c, status, e.Code, e.Message)
	}
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	zap.L().Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return JsonErrorCode(c, fiber.StatusInternalServerError, apperr.CodeInternal, "internal server error")
}
