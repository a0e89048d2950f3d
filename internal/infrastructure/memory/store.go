// Package memory implementa los repositorios del ledger en memoria.
// Pensado para desarrollo y tests: los datos se pierden al reiniciar el proceso.
//
// Cada transacción copia el estado completo (incluido todo el historial de movimientos),
// así que el coste de una escritura crece con el tamaño del historial. En producción usar postgres.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ inventory.TxRunner     = (*Store)(nil)
	_ inventory.SeedTxRunner = (*Store)(nil)
)

// Store guarda items, movimientos y usuarios. Las transacciones se serializan con mu y
// trabajan sobre una copia del estado que solo se publica si fn no devuelve error.
type Store struct {
	mu    sync.RWMutex
	state *state
}

type state struct {
	items     map[int64]entity.Item
	movements []entity.Movement
	users     map[string]entity.User

	nextItemID     int64
	nextMovementID int64
	nextUserID     int64
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{state: &state{
		items: make(map[int64]entity.Item),
		users: make(map[string]entity.User),
	}}
}

func (st *state) clone() *state {
	c := *st
	c.items = make(map[int64]entity.Item, len(st.items))
	for k, v := range st.items {
		c.items[k] = v
	}
	c.movements = append([]entity.Movement(nil), st.movements...)
	c.users = make(map[string]entity.User, len(st.users))
	for k, v := range st.users {
		c.users[k] = v
	}
	return &c
}

// Run ejecuta fn con repos atados a una copia del estado; la copia se publica solo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	return s.inTx(ctx, func(tx *state) error {
		return fn(&ItemRepo{tx: tx}, &MovementRepo{tx: tx})
	})
}

// RunSeed como Run, incluyendo el repositorio de usuarios.
func (s *Store) RunSeed(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	userRepo repository.UserRepository,
) error) error {
	return s.inTx(ctx, func(tx *state) error {
		return fn(&ItemRepo{tx: tx}, &MovementRepo{tx: tx}, &UserRepo{tx: tx})
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// Items repositorio de items fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{store: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{store: s} }

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// access da acceso al estado: dentro de una tx directamente, fuera con el lock del store.
type access struct {
	store *Store
	tx    *state
}

func (a access) read(fn func(st *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.state)
}

func (a access) write(fn func(st *state) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.state)
}
