package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// internalError logs the underlying cause and returns a generic 500 so
// store/blob details never reach clients.
func internalError(c *fiber.Ctx, message string, err error) error {
	slog.Error(message, "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
