package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/pkg/logger"
)

const healthPingTimeout = 3 * time.Second

// Pinger lo implementa cualquier repositorio que pueda verificar su conexión.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde el liveness probe con el estado del store.
type HealthHandler struct {
	store Pinger
	log   *logger.Logger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(store Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, log: log}
}

// Check godoc
// @Summary      Estado del servicio y de la base de datos
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      500  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("health: ping a la base de datos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.HealthResponse{
			OK:      false,
			DB:      "error",
			Message: err.Error(),
		})
	}
	return c.JSON(dto.HealthResponse{OK: true, DB: "connected"})
}
