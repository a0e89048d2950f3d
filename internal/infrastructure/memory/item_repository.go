package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo items en memoria. SKU y EAN13 son únicos igual que en PostgreSQL.
type ItemRepo access

func (r *ItemRepo) a() access { return access(*r) }

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.a().write(func(st *state) error {
		for _, it := range st.items {
			if it.SKU == item.SKU {
				return domain.ErrDuplicateSKU
			}
			if it.EAN13 == item.EAN13 {
				return domain.ErrDuplicateEAN13
			}
		}
		st.nextItemID++
		item.ID = st.nextItemID
		st.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	return r.find(func(it entity.Item) bool { return it.ID == id })
}

// GetForUpdate no necesita bloqueo propio: la transacción ya es exclusiva.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	return r.find(func(it entity.Item) bool { return it.SKU == sku })
}

func (r *ItemRepo) GetByEAN13(_ context.Context, ean13 string) (*entity.Item, error) {
	return r.find(func(it entity.Item) bool { return it.EAN13 == ean13 })
}

func (r *ItemRepo) find(match func(entity.Item) bool) (*entity.Item, error) {
	var found *entity.Item
	_ = r.a().read(func(st *state) error {
		for _, it := range st.items {
			if match(it) {
				cp := it
				found = &cp
				return nil
			}
		}
		return nil
	})
	return found, nil
}

func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	var list []*entity.Item
	_ = r.a().read(func(st *state) error {
		for _, it := range st.items {
			cp := it
			list = append(list, &cp)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ItemRepo) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	return r.a().write(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return nil
		}
		it.Quantity = quantity
		st.items[id] = it
		return nil
	})
}

// Delete borra el item y, como el ON DELETE CASCADE de PostgreSQL, sus movimientos.
func (r *ItemRepo) Delete(_ context.Context, id int64) error {
	return r.a().write(func(st *state) error {
		delete(st.items, id)
		st.movements = removeMovements(st.movements, func(m entity.Movement) bool { return m.ItemID == id })
		return nil
	})
}

func (r *ItemRepo) Count(_ context.Context) (int, error) {
	var n int
	_ = r.a().read(func(st *state) error {
		n = len(st.items)
		return nil
	})
	return n, nil
}

func (r *ItemRepo) DeleteAll(_ context.Context) error {
	return r.a().write(func(st *state) error {
		st.items = make(map[int64]entity.Item)
		st.movements = nil
		return nil
	})
}
