package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert item: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
}

func TestUniqueViolationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"sku", &pgconn.PgError{Code: "23505", ConstraintName: constraintItemsSKU}, domain.ErrDuplicateSKU},
		{"ean13", &pgconn.PgError{Code: "23505", ConstraintName: constraintItemsEAN13}, domain.ErrDuplicateEAN13},
		{"username", &pgconn.PgError{Code: "23505", ConstraintName: constraintUsersName}, domain.ErrInvalidInput},
		{"otro constraint", &pgconn.PgError{Code: "23505", ConstraintName: "otro"}, nil},
		{"no es unique", &pgconn.PgError{Code: "23503", ConstraintName: constraintItemsSKU}, nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueViolationError(tt.err))
		})
	}
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(""))
	if got := nullableString("admin"); assert.NotNil(t, got) {
		assert.Equal(t, "admin", *got)
	}
}

func TestResolveIPv4_Literal(t *testing.T) {
	ip, err := resolveIPv4(context.Background(), "127.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ip)

	_, err = resolveIPv4(context.Background(), "::1")
	assert.Error(t, err)
}
