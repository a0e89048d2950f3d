package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// UserRepository define el puerto del almacén de credenciales.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
