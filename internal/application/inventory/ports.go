package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza que item y movimiento se aplican juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// SeedTxRunner como TxRunner pero incluyendo el almacén de credenciales (bootstrap y reset).
type SeedTxRunner interface {
	RunSeed(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		userRepo repository.UserRepository,
	) error) error
}
