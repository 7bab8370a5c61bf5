package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	GeoStatus string    `json:"geo_status"`
}

// HealthAction handles the health check endpoint
func (h *Handler) HealthAction(c *fiber.Ctx) error {
	geoStatus := "disabled"
	if h.resolver.Enabled() {
		geoStatus = "ok"
	}

	return c.JSON(HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		GeoStatus: geoStatus,
	})
}
