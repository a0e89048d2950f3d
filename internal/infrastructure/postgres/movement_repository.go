package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, type, amount, timestamp, username, quantity_before, quantity_after`

// Create persiste un movimiento y rellena su ID. Username vacío se guarda como NULL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (item_id, type, amount, timestamp, username, quantity_before, quantity_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ItemID, m.Type, m.Amount, m.Timestamp, nullableString(m.Username), m.QuantityBefore, m.QuantityAfter,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// List todos los movimientos, más recientes primero.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY timestamp DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return scanMovements(rows)
}

// ListByItem movimientos de un item, más recientes primero.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE item_id = $1 ORDER BY timestamp DESC, id DESC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var username *string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Amount, &m.Timestamp, &username, &m.QuantityBefore, &m.QuantityAfter); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if username != nil {
			m.Username = *username
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteByItem borra el historial de un item.
func (r *MovementRepo) DeleteByItem(ctx context.Context, itemID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movements WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("delete movements by item: %w", err)
	}
	return nil
}

// Count número de movimientos.
func (r *MovementRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// DeleteAll vacía el historial.
func (r *MovementRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movements`); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}
	return nil
}
