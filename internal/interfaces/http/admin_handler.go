package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// AdminHandler operaciones de mantenimiento (solo rol admin).
type AdminHandler struct {
	seeder *inventory.Seeder
	log    zerolog.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(seeder *inventory.Seeder, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{seeder: seeder, log: log}
}

// Reset godoc
// @Summary      Reiniciar datos
// @Description  Borra movimientos, items y usuarios y vuelve a cargar los datos iniciales.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reset [post]
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	if err := h.seeder.Reset(c.UserContext()); err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Warn().Str("user", GetUsername(c)).Msg("datos reiniciados")
	return c.JSON(dto.MessageResponse{Detail: "Datos reiniciados"})
}
