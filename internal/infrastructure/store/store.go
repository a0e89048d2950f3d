// Package store elige la implementación de persistencia según DB_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

// TxRunner transacciones del ledger y del bootstrap sobre el mismo almacén.
type TxRunner interface {
	inventory.TxRunner
	inventory.SeedTxRunner
}

// Stores repositorios fuera de transacción + runner transaccional.
type Stores struct {
	Tx        TxRunner
	Items     repository.ItemRepository
	Movements repository.MovementRepository
	Users     repository.UserRepository
	close     func()
}

// Close libera las conexiones (no-op en memoria).
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre PostgreSQL (aplicando el esquema) o crea un almacén en memoria.
func Open(ctx context.Context, cfg config.DBConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return InMemory(), nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{
			Tx:        postgres.NewTxRunner(pool),
			Items:     postgres.NewItemRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
}

// InMemory almacén en memoria listo para usar.
func InMemory() *Stores {
	m := memory.New()
	return &Stores{Tx: m, Items: m.Items(), Movements: m.Movements(), Users: m.Users()}
}
