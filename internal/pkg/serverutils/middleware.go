package serverutils

import (
	"errors"

	"lesson-notes-be/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const genericErrorMessage = "Internal server error"

// ErrorHandlerMiddleware turns handler errors into `{"error": message}`
// responses. Only AppError and fiber.Error messages reach the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}
		return WriteError(c, log, err)
	}
}

// WriteError writes err using the same mapping as ErrorHandlerMiddleware.
func WriteError(c *fiber.Ctx, log logger.ILogger, err error) error {
	code, message := classify(err)

	details := map[string]interface{}{
		"method": c.Method(),
		"path":   c.Path(),
		"status": code,
		"error":  err.Error(),
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		details["request_id"] = rid
	}
	if code >= fiber.StatusInternalServerError {
		log.Error("HTTP", message, details)
	} else {
		log.Warn("HTTP", message, details)
	}

	return c.Status(code).JSON(ErrorResponse(message))
}

func classify(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest, "Invalid payload"
	}

	return fiber.StatusInternalServerError, genericErrorMessage
}
