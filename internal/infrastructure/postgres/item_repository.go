package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, sku, ean13, quantity`

// Create inserta el item y rellena su ID.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `INSERT INTO items (sku, ean13, quantity) VALUES ($1, $2, $3) RETURNING id`
	err := r.q.QueryRow(ctx, query, item.SKU, item.EAN13, item.Quantity).Scan(&item.ID)
	if err != nil {
		if derr := uniqueViolationError(err); derr != nil {
			return derr
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate obtiene el item y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene un item por SKU.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku)
}

// GetByEAN13 obtiene un item por EAN13.
func (r *ItemRepo) GetByEAN13(ctx context.Context, ean13 string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE ean13 = $1`, ean13)
}

func (r *ItemRepo) getOne(ctx context.Context, query string, arg any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, query, arg).Scan(&it.ID, &it.SKU, &it.EAN13, &it.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List devuelve todos los items ordenados por ID.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.SKU, &it.EAN13, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateQuantity fija la cantidad del item.
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	_, err := r.q.Exec(ctx, `UPDATE items SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// Delete elimina el item por ID.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Count número de items.
func (r *ItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// DeleteAll vacía la tabla (los movimientos caen por cascada).
func (r *ItemRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return nil
}
