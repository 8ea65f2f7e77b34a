package presenters

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// SuccessResponse writes the payload as-is; the public API has no envelope.
func SuccessResponse(c *fiber.Ctx, data any, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse answers {"error": message} with a stable status. The
// underlying error is logged server-side only and never leaks to the caller.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil {
		log.Errorf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
