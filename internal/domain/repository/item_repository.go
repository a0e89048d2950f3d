package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los Get* devuelven (nil, nil) cuando el item no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	GetByEAN13(ctx context.Context, ean13 string) (*entity.Item, error)
	List(ctx context.Context) ([]*entity.Item, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
