package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// MovementHandler maneja el historial de movimientos.
type MovementHandler struct {
	uc      *inventory.MovementUseCase
	reports *report.MovementReportUseCase
	log     zerolog.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, reports *report.MovementReportUseCase, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, reports: reports, log: log}
}

// List godoc
// @Summary      Listar movimientos
// @Description  Todo el historial, más reciente primero.
// @Tags         movements
// @Produce      json
// @Success      200  {array}   dto.MovementResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListMovements(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementList(list))
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Entrada (suma) o salida (resta) de stock. El autor es el usuario del token.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateMovementRequest  true  "item_id, type (entrada|salida), amount"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ItemID <= 0 || in.Amount == nil {
		return writeError(c, h.log, domain.ErrInvalidInput)
	}
	mov, err := h.uc.RecordMovement(c.UserContext(), inventory.RecordMovementInput{
		ItemID:   in.ItemID,
		Type:     in.Type,
		Amount:   *in.Amount,
		Username: GetUsername(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// Report godoc
// @Summary      Informe de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf,application/xml
// @Param        format   query  string  true   "pdf | xml"
// @Param        item_id  query  int     false  "limitar a un item"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/report [get]
func (h *MovementHandler) Report(c *fiber.Ctx) error {
	var itemID int64
	if raw := c.Query("item_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return badID(c)
		}
		itemID = id
	}
	rep, err := h.reports.Generate(c.UserContext(), c.Query("format", report.FormatPDF), itemID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, rep.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rep.Filename+`"`)
	return c.Send(rep.Content)
}
