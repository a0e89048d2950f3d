package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrDuplicateSKU        = errors.New("SKU ya existe")
	ErrDuplicateEAN13      = errors.New("EAN13 ya existe")
	ErrInvalidAmount       = errors.New("cantidad inválida")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidCredential   = errors.New("contraseña actual incorrecta")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrStorage             = errors.New("fallo de almacenamiento")
)

// IsDomainError indica si err ya es uno de los errores tipados del ledger.
// Los errores que no lo son se consideran fallos de almacenamiento.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrDuplicateSKU, ErrDuplicateEAN13, ErrInvalidAmount, ErrInvalidMovementType,
		ErrInsufficientStock, ErrInvalidCredential, ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrStorage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WrapStorage deja pasar los errores de dominio (y nil) y envuelve el resto como ErrStorage,
// conservando la causa para errors.Is.
func WrapStorage(err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
