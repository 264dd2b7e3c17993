package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are idempotent schema statements executed in order at
// startup. The schema is small enough that a migration tool would be
// overhead; every statement is safe to re-run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL DEFAULT '',
		user_type     TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id    TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		avatar_url TEXT NOT NULL DEFAULT '',
		location   TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		rating     DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS crops (
		id             TEXT PRIMARY KEY,
		farmer_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		quantity       DOUBLE PRECISION NOT NULL,
		unit           TEXT NOT NULL DEFAULT '',
		price_per_unit NUMERIC(12,2) NOT NULL,
		harvest_date   TEXT NOT NULL DEFAULT '',
		location       TEXT NOT NULL DEFAULT '',
		image_url      TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'available',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_crops_farmer ON crops(farmer_id)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            TEXT PRIMARY KEY,
		crop_id       TEXT NOT NULL REFERENCES crops(id) ON DELETE CASCADE,
		buyer_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		quantity      DOUBLE PRECISION NOT NULL,
		total_price   NUMERIC(14,2) NOT NULL,
		buyer_contact TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'pending',
		approved_by   TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_crop ON orders(crop_id)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id          TEXT PRIMARY KEY,
		sender_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content     TEXT NOT NULL,
		read        BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id)`,
	`CREATE TABLE IF NOT EXISTS agroplan_data (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		soil_type            TEXT NOT NULL,
		location             TEXT NOT NULL,
		previous_crops       TEXT NOT NULL DEFAULT '',
		recommendations      JSONB NOT NULL,
		sustainability_score INTEGER NOT NULL DEFAULT 0,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
