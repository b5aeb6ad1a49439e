package serverutils

import (
	"errors"

	"gym-membership-be/internal/pkg/apperror"
	"gym-membership-be/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindRateLimited:
		return fiber.StatusTooManyRequests
	case apperror.KindStorage:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware renders errors returned by later handlers in the
// response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			status := StatusFor(appErr.Kind)
			if appErr.Kind == apperror.KindValidation {
				return ctx.Status(status).JSON(ValidationErrorResponse(appErr.Message, appErr.Violations))
			}
			message := appErr.Message
			if appErr.Kind == apperror.KindStorage {
				message = "Service temporarily unavailable"
			}
			return ctx.Status(status).JSON(ErrorResponse(status, message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}

// ValidateRequest checks validate tags on req and returns every violation.
func ValidateRequest(req interface{}) error {
	return validation.Struct(req)
}

// ParseBody decodes the JSON body into req and validates it.
func ParseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation(apperror.Violation{Field: "body", Message: "request body is not valid JSON"})
	}
	return ValidateRequest(req)
}
