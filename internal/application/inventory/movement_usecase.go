package inventory

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// MovementRules reglas configurables del registro de movimientos.
type MovementRules struct {
	// AllowNegativeStock permite salidas o ajustes que dejen la cantidad por debajo de cero.
	AllowNegativeStock bool
}

// MovementUseCase es el único camino por el que cambia Item.Quantity.
// Cada cambio bloquea la fila del item (SELECT FOR UPDATE), actualiza la cantidad y
// registra el movimiento con antes/después en la misma transacción.
type MovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	clock    *Clock
	rules    MovementRules
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	clock *Clock,
	rules MovementRules,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		clock:    clock,
		rules:    rules,
	}
}

// RecordMovementInput entrada para registrar una entrada o salida.
type RecordMovementInput struct {
	ItemID   int64
	Type     string // entrada | salida (acepta alias, ver ParseMovementType)
	Amount   int    // magnitud, nunca negativa
	Username string // actor autenticado; vacío = NULL
}

// SetQuantity fija la cantidad de un item y registra un ajuste con delta = nueva - anterior.
func (uc *MovementUseCase) SetQuantity(ctx context.Context, itemID int64, newQuantity int, username string) (*entity.Item, error) {
	ctx, span := tracer.Start(ctx, "inventory.SetQuantity")
	defer span.End()
	span.SetAttributes(attribute.Int64("item.id", itemID), attribute.Int("item.quantity", newQuantity))

	if newQuantity < 0 && !uc.rules.AllowNegativeStock {
		return nil, fail(span, domain.ErrInvalidAmount)
	}

	var updated *entity.Item
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		before := item.Quantity
		if err := itemRepo.UpdateQuantity(ctx, itemID, newQuantity); err != nil {
			return err
		}
		mov := &entity.Movement{
			ItemID:         itemID,
			Type:           entity.MovementTypeAdjustment,
			Amount:         newQuantity - before,
			Timestamp:      uc.clock.Now(),
			Username:       username,
			QuantityBefore: before,
			QuantityAfter:  newQuantity,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		item.Quantity = newQuantity
		updated = item
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}
	return updated, nil
}

// RecordMovement registra una entrada (suma) o salida (resta) de Amount unidades.
// Por defecto no se valida que la salida deje stock >= 0 (ver MovementRules).
func (uc *MovementUseCase) RecordMovement(ctx context.Context, in RecordMovementInput) (*entity.Movement, error) {
	ctx, span := tracer.Start(ctx, "inventory.RecordMovement")
	defer span.End()
	span.SetAttributes(attribute.Int64("item.id", in.ItemID), attribute.Int("movement.amount", in.Amount))

	movType, err := ParseMovementType(in.Type)
	if err != nil {
		return nil, fail(span, err)
	}
	if movType != entity.MovementTypeInbound && movType != entity.MovementTypeOutbound {
		return nil, fail(span, domain.ErrInvalidMovementType)
	}
	if in.Amount < 0 {
		return nil, fail(span, domain.ErrInvalidAmount)
	}
	span.SetAttributes(attribute.String("movement.type", movType))

	var recorded *entity.Movement
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		before := item.Quantity
		after := before + in.Amount
		if movType == entity.MovementTypeOutbound {
			after = before - in.Amount
		}
		if after < 0 && !uc.rules.AllowNegativeStock {
			return domain.ErrInsufficientStock
		}
		if err := itemRepo.UpdateQuantity(ctx, item.ID, after); err != nil {
			return err
		}
		mov := &entity.Movement{
			ItemID:         item.ID,
			Type:           movType,
			Amount:         in.Amount,
			Timestamp:      uc.clock.Now(),
			Username:       in.Username,
			QuantityBefore: before,
			QuantityAfter:  after,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		recorded = mov
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}
	return recorded, nil
}

// ListMovements devuelve todo el historial, más reciente primero.
func (uc *MovementUseCase) ListMovements(ctx context.Context) ([]*entity.Movement, error) {
	ctx, span := tracer.Start(ctx, "inventory.ListMovements")
	defer span.End()

	list, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, fail(span, err)
	}
	return uc.localize(list), nil
}

// ListItemMovements historial de un item, más reciente primero. ErrNotFound si el item no existe.
func (uc *MovementUseCase) ListItemMovements(ctx context.Context, itemID int64) ([]*entity.Movement, error) {
	ctx, span := tracer.Start(ctx, "inventory.ListItemMovements")
	defer span.End()
	span.SetAttributes(attribute.Int64("item.id", itemID))

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fail(span, err)
	}
	if item == nil {
		return nil, fail(span, domain.ErrNotFound)
	}
	list, err := uc.movRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fail(span, err)
	}
	return uc.localize(list), nil
}

func (uc *MovementUseCase) localize(list []*entity.Movement) []*entity.Movement {
	for _, m := range list {
		m.Timestamp = uc.clock.In(m.Timestamp)
	}
	return list
}
