package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// SeedStatus resultado de SeedIfEmpty.
type SeedStatus string

const (
	SeedApplied SeedStatus = "applied" // almacén vacío: datos cargados
	SeedSkipped SeedStatus = "skipped" // ya había datos
	SeedPartial SeedStatus = "partial" // solo algunas tablas tienen datos: no se toca nada
)

// SeedActor autor de los movimientos de creación del seed.
const SeedActor = "sistema"

type seedItem struct {
	sku, ean13 string
	quantity   int
}

var (
	seedUsers = []struct{ username, role string }{
		{"admin", entity.RoleAdmin},
		{"guillem", entity.RoleOperador},
		{"divain", entity.RoleOperador},
	}
	seedItems = []seedItem{
		{"SKU123", "1234567890123", 15},
		{"SKU456", "9876543210987", 5},
		{"SKU789", "4567890123456", 0},
	}
)

// Seeder carga los datos iniciales (usuarios e items de ejemplo).
type Seeder struct {
	tx       SeedTxRunner
	clock    *Clock
	password string
}

// NewSeeder construye el seeder. password es la contraseña inicial de todos los usuarios.
func NewSeeder(tx SeedTxRunner, clock *Clock, password string) *Seeder {
	return &Seeder{tx: tx, clock: clock, password: password}
}

// SeedIfEmpty carga los datos iniciales si items, movimientos y usuarios están vacíos.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (SeedStatus, error) {
	ctx, span := tracer.Start(ctx, "inventory.SeedIfEmpty")
	defer span.End()

	status := SeedSkipped
	err := s.tx.RunSeed(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, userRepo repository.UserRepository) error {
		nItems, err := itemRepo.Count(ctx)
		if err != nil {
			return err
		}
		nMovs, err := movRepo.Count(ctx)
		if err != nil {
			return err
		}
		nUsers, err := userRepo.Count(ctx)
		if err != nil {
			return err
		}
		switch {
		case nItems == 0 && nMovs == 0 && nUsers == 0:
			status = SeedApplied
			return s.seed(ctx, itemRepo, movRepo, userRepo)
		case nItems > 0 && nMovs > 0 && nUsers > 0:
			status = SeedSkipped
		default:
			status = SeedPartial
		}
		return nil
	})
	if err != nil {
		return "", fail(span, err)
	}
	return status, nil
}

// Reset vacía movimientos, items y usuarios y vuelve a cargar el seed, en una transacción.
func (s *Seeder) Reset(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "inventory.Reset")
	defer span.End()

	err := s.tx.RunSeed(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, userRepo repository.UserRepository) error {
		if err := movRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := itemRepo.DeleteAll(ctx); err != nil {
			return err
		}
		if err := userRepo.DeleteAll(ctx); err != nil {
			return err
		}
		return s.seed(ctx, itemRepo, movRepo, userRepo)
	})
	if err != nil {
		return fail(span, err)
	}
	return nil
}

func (s *Seeder) seed(ctx context.Context, itemRepo repository.ItemRepository, movRepo repository.MovementRepository, userRepo repository.UserRepository) error {
	hash, err := auth.HashPassword(s.password)
	if err != nil {
		return err
	}
	for _, u := range seedUsers {
		if err := userRepo.Create(ctx, &entity.User{Username: u.username, PasswordHash: hash, Role: u.role}); err != nil {
			return err
		}
	}
	for _, si := range seedItems {
		item := &entity.Item{SKU: si.sku, EAN13: si.ean13, Quantity: si.quantity}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		mov := &entity.Movement{
			ItemID:         item.ID,
			Type:           entity.MovementTypeCreation,
			Amount:         si.quantity,
			Timestamp:      s.clock.Now(),
			Username:       SeedActor,
			QuantityBefore: 0,
			QuantityAfter:  si.quantity,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}
