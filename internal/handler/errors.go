package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/service"
	"go.uber.org/zap"
)

// writeError maps a service error to a status code and message. Errors
// without a dedicated mapping get fallbackStatus and fallbackMsg, so the
// caller decides what an unexpected failure looks like for its route.
func writeError(c *fiber.Ctx, err error, fallbackStatus int, fallbackMsg string) error {
	status, msg := fallbackStatus, fallbackMsg

	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		status, msg = fiber.StatusBadRequest, "Account already registered"
	case errors.Is(err, service.ErrUnauthenticated):
		status, msg = fiber.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, service.ErrWrongCredentials):
		status, msg = fiber.StatusUnauthorized, "Incorrect account or password"
	case errors.Is(err, service.ErrWrongPassword):
		status, msg = fiber.StatusUnauthorized, "Current password is incorrect"
	case errors.Is(err, service.ErrNotFound):
		status, msg = fiber.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrUploadDisabled):
		status, msg = fiber.StatusServiceUnavailable, "Picture uploads are not available"
	}

	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(models.ErrorResponse(msg))
}

// ErrorHandler renders errors that escape the handlers, including Fiber's
// own 404/405, with the common response envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			msg = "Internal server error"
		}
		return c.Status(code).JSON(models.ErrorResponse(msg))
	}
}
