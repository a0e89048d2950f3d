package postgres

import (
	"context"
	"fmt"
)

// schema se aplica de forma idempotente al arrancar.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id       BIGSERIAL PRIMARY KEY,
		sku      TEXT NOT NULL,
		ean13    TEXT NOT NULL,
		quantity BIGINT NOT NULL DEFAULT 0,
		CONSTRAINT ` + constraintItemsSKU + ` UNIQUE (sku),
		CONSTRAINT ` + constraintItemsEAN13 + ` UNIQUE (ean13)
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id              BIGSERIAL PRIMARY KEY,
		item_id         BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		type            TEXT NOT NULL,
		amount          BIGINT NOT NULL,
		timestamp       TIMESTAMPTZ NOT NULL,
		username        TEXT,
		quantity_before BIGINT NOT NULL,
		quantity_after  BIGINT NOT NULL
	)`,
	// Bases creadas con columnas INTEGER: las cantidades son int de Go (64 bits).
	`ALTER TABLE items ALTER COLUMN quantity TYPE BIGINT`,
	`ALTER TABLE movements
		ALTER COLUMN amount TYPE BIGINT,
		ALTER COLUMN quantity_before TYPE BIGINT,
		ALTER COLUMN quantity_after TYPE BIGINT`,
	`CREATE INDEX IF NOT EXISTS movements_item_id_idx ON movements (item_id, timestamp DESC)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'operador',
		CONSTRAINT ` + constraintUsersName + ` UNIQUE (username)
	)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migración %d: %w", i, err)
		}
	}
	return nil
}
