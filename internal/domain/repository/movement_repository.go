package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del historial de movimientos.
// No hay edición ni borrado individual: el log es append-only.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve todos los movimientos, más recientes primero.
	List(ctx context.Context) ([]*entity.Movement, error)
	ListByItem(ctx context.Context, itemID int64) ([]*entity.Movement, error)
	DeleteByItem(ctx context.Context, itemID int64) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
