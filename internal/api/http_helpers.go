package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func formatDate(day time.Time) string {
	return day.Format("2006-01-02")
}

// nullableDate renders a date as its wire form or JSON null for the
// zero value.
func nullableDate(day time.Time) any {
	if day.IsZero() {
		return nil
	}
	return formatDate(day)
}

func parseDateField(raw string, location *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, location)
}
