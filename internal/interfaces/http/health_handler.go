package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
)

// HealthHandler reporta el estado del servicio y su conexión a la base.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      503  {object}  dto.Response
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	database := "ok"
	status := fiber.StatusOK
	if err := h.db.Ping(c.Context()); err != nil {
		database = "error"
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(dto.Response{
		Success: status == fiber.StatusOK,
		Data: fiber.Map{
			"service":  "control-valo-api",
			"database": database,
		},
	})
}
