package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

func TestWrapStorage(t *testing.T) {
	assert.Nil(t, domain.WrapStorage(nil))
	assert.Equal(t, domain.ErrNotFound, domain.WrapStorage(domain.ErrNotFound))

	wrapped := fmt.Errorf("crear item: %w", domain.ErrDuplicateSKU)
	assert.Equal(t, wrapped, domain.WrapStorage(wrapped), "un error de dominio envuelto no se vuelve a envolver")

	cause := errors.New("conexión rechazada")
	err := domain.WrapStorage(cause)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, err, domain.WrapStorage(err), "ya es ErrStorage")
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, domain.IsDomainError(domain.ErrInsufficientStock))
	assert.True(t, domain.IsDomainError(fmt.Errorf("x: %w", domain.ErrForbidden)))
	assert.False(t, domain.IsDomainError(errors.New("otro")))
}
