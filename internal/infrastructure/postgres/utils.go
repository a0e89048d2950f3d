package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// Querier es lo que comparten *pgxpool.Pool y pgx.Tx: los repos funcionan igual dentro o fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Nombres de constraints declarados en migrations.go.
const (
	constraintItemsSKU   = "items_sku_unique"
	constraintItemsEAN13 = "items_ean13_unique"
	constraintUsersName  = "users_username_unique"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// uniqueViolationError traduce la violación de unicidad al error de dominio según el constraint.
// Devuelve nil si err no es una violación conocida.
func uniqueViolationError(err error) error {
	if err == nil || !isUniqueViolation(err) {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.ConstraintName {
	case constraintItemsSKU:
		return domain.ErrDuplicateSKU
	case constraintItemsEAN13:
		return domain.ErrDuplicateEAN13
	case constraintUsersName:
		return domain.ErrInvalidInput
	}
	return nil
}

// nullableString convierte "" en NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
