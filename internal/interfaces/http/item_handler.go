package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// ItemHandler maneja las peticiones HTTP de items.
type ItemHandler struct {
	items     *inventory.ItemUseCase
	movements *inventory.MovementUseCase
	log       zerolog.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(items *inventory.ItemUseCase, movements *inventory.MovementUseCase, log zerolog.Logger) *ItemHandler {
	return &ItemHandler{items: items, movements: movements, log: log}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List godoc
// @Summary      Listar items
// @Tags         items
// @Produce      json
// @Success      200  {array}   dto.ItemResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	list, err := h.items.ListItems(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToItemList(list))
}

// GetByID godoc
// @Summary      Obtener item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "ID del item"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	item, err := h.items.GetItem(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Create godoc
// @Summary      Crear item
// @Description  Crea el item y su movimiento de creación.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "sku, ean13, quantity"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.items.CreateItem(c.UserContext(), inventory.CreateItemInput{
		SKU:      in.SKU,
		EAN13:    in.EAN13,
		Quantity: in.Quantity,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(item))
}

// Update godoc
// @Summary      Fijar cantidad
// @Description  Fija la cantidad del item y registra un ajuste (cantidad = nueva - anterior).
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID del item"
// @Param        body  body      dto.UpdateItemRequest  true  "quantity"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Quantity == nil {
		return writeError(c, h.log, domain.ErrInvalidInput)
	}
	item, err := h.movements.SetQuantity(c.UserContext(), id, *in.Quantity, GetUsername(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Delete godoc
// @Summary      Eliminar item
// @Description  Elimina el item y todo su historial de movimientos.
// @Tags         items
// @Security     Bearer
// @Param        id   path  int  true  "ID del item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	if err := h.items.DeleteItem(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Historial de un item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "ID del item"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	list, err := h.movements.ListItemMovements(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementList(list))
}
