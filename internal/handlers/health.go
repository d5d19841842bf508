package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health reports service liveness.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"message":   "admin API is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
