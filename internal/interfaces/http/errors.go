package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrDuplicateSKU, fiber.StatusConflict, "DUPLICATE_SKU", "ya existe un item con ese SKU"},
	{domain.ErrDuplicateEAN13, fiber.StatusConflict, "DUPLICATE_EAN13", "ya existe un item con ese EAN13"},
	{domain.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT", "cantidad inválida"},
	{domain.ErrInvalidMovementType, fiber.StatusBadRequest, "INVALID_TYPE", "tipo de movimiento inválido: use entrada o salida"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrInvalidCredential, fiber.StatusBadRequest, "INVALID_CREDENTIAL", "contraseña actual incorrecta"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "usuario o contraseña incorrectos"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
}

// writeError traduce un error de dominio a su respuesta HTTP. Los errores no tipados
// (almacenamiento incluido) se registran y se responden con un 500 genérico.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	log.Error().Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
}
