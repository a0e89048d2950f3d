package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo historial en memoria (append-only).
type MovementRepo access

func (r *MovementRepo) a() access { return access(*r) }

// Create exige que el item exista, como la FK movements.item_id.
func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.a().write(func(st *state) error {
		if _, ok := st.items[m.ItemID]; !ok {
			return fmt.Errorf("create movement: item %d no existe", m.ItemID)
		}
		st.nextMovementID++
		m.ID = st.nextMovementID
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	return r.collect(func(entity.Movement) bool { return true }), nil
}

func (r *MovementRepo) ListByItem(_ context.Context, itemID int64) ([]*entity.Movement, error) {
	return r.collect(func(m entity.Movement) bool { return m.ItemID == itemID }), nil
}

// collect devuelve copias ordenadas por timestamp descendente, ID descendente en empate.
func (r *MovementRepo) collect(match func(entity.Movement) bool) []*entity.Movement {
	var list []*entity.Movement
	_ = r.a().read(func(st *state) error {
		for _, m := range st.movements {
			if match(m) {
				cp := m
				list = append(list, &cp)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].Timestamp.After(list[j].Timestamp)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func (r *MovementRepo) DeleteByItem(_ context.Context, itemID int64) error {
	return r.a().write(func(st *state) error {
		st.movements = removeMovements(st.movements, func(m entity.Movement) bool { return m.ItemID == itemID })
		return nil
	})
}

func (r *MovementRepo) Count(_ context.Context) (int, error) {
	var n int
	_ = r.a().read(func(st *state) error {
		n = len(st.movements)
		return nil
	})
	return n, nil
}

func (r *MovementRepo) DeleteAll(_ context.Context) error {
	return r.a().write(func(st *state) error {
		st.movements = nil
		return nil
	})
}

func removeMovements(list []entity.Movement, drop func(entity.Movement) bool) []entity.Movement {
	out := list[:0:0]
	for _, m := range list {
		if !drop(m) {
			out = append(out, m)
		}
	}
	return out
}
