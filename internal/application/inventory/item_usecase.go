package inventory

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ItemUseCase registro de items: alta, baja y consulta.
// El alta y la baja se ejecutan en una única transacción junto con sus movimientos.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	clock    *Clock
	rules    MovementRules
}

// NewItemUseCase construye el caso de uso. rules se aplica a la cantidad inicial.
func NewItemUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, clock *Clock, rules MovementRules) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, clock: clock, rules: rules}
}

// CreateItemInput datos de alta de un item.
type CreateItemInput struct {
	SKU      string
	EAN13    string
	Quantity int
}

// ListItems devuelve todos los items.
func (uc *ItemUseCase) ListItems(ctx context.Context) ([]*entity.Item, error) {
	ctx, span := tracer.Start(ctx, "inventory.ListItems")
	defer span.End()

	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	return items, nil
}

// GetItem obtiene un item por ID o ErrNotFound.
func (uc *ItemUseCase) GetItem(ctx context.Context, id int64) (*entity.Item, error) {
	ctx, span := tracer.Start(ctx, "inventory.GetItem")
	defer span.End()

	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}
	if item == nil {
		return nil, fail(span, domain.ErrNotFound)
	}
	return item, nil
}

// CreateItem valida unicidad de SKU y EAN13, persiste el item y su movimiento de creación
// (antes 0, después la cantidad inicial, sin usuario) en la misma transacción.
func (uc *ItemUseCase) CreateItem(ctx context.Context, in CreateItemInput) (*entity.Item, error) {
	ctx, span := tracer.Start(ctx, "inventory.CreateItem")
	defer span.End()

	sku := strings.TrimSpace(in.SKU)
	ean13 := strings.TrimSpace(in.EAN13)
	if sku == "" || ean13 == "" {
		return nil, fail(span, domain.ErrInvalidInput)
	}
	if in.Quantity < 0 && !uc.rules.AllowNegativeStock {
		return nil, fail(span, domain.ErrInvalidAmount)
	}
	span.SetAttributes(attribute.String("item.sku", sku))

	var created *entity.Item
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		existing, err := itemRepo.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateSKU
		}
		existing, err = itemRepo.GetByEAN13(ctx, ean13)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateEAN13
		}

		item := &entity.Item{SKU: sku, EAN13: ean13, Quantity: in.Quantity}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		mov := &entity.Movement{
			ItemID:         item.ID,
			Type:           entity.MovementTypeCreation,
			Amount:         in.Quantity,
			Timestamp:      uc.clock.Now(),
			QuantityBefore: 0,
			QuantityAfter:  in.Quantity,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int64("item.id", created.ID))
	return created, nil
}

// DeleteItem bloquea el item, borra sus movimientos y luego el item. Todo o nada.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "inventory.DeleteItem")
	defer span.End()
	span.SetAttributes(attribute.Int64("item.id", id))

	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := movRepo.DeleteByItem(ctx, id); err != nil {
			return err
		}
		return itemRepo.Delete(ctx, id)
	})
	if err != nil {
		return fail(span, err)
	}
	return nil
}
