package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Statements are idempotent and run in order on every start.
//
// time_entries.worker_type_id deliberately carries no foreign key: deleting
// a worker type leaves its entries behind, and cost aggregation skips them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id           TEXT PRIMARY KEY,
	email        TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL DEFAULT '',
	vat_id       TEXT NOT NULL DEFAULT '',
	logo_path    TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS projects (
	id               BIGSERIAL PRIMARY KEY,
	public_id        TEXT NOT NULL UNIQUE,
	user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	customer_name    TEXT NOT NULL DEFAULT '',
	customer_email   TEXT NOT NULL DEFAULT '',
	customer_address TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'active', 'completed')),
	offer_terms      TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS projects_user_created_idx ON projects (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS worker_types (
	id          BIGSERIAL PRIMARY KEY,
	user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	hourly_rate DOUBLE PRECISION NOT NULL CHECK (hourly_rate >= 0),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS time_entries (
	id             BIGSERIAL PRIMARY KEY,
	project_id     BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	worker_type_id BIGINT NOT NULL,
	hours          DOUBLE PRECISION NOT NULL CHECK (hours >= 0),
	work_date      DATE NOT NULL DEFAULT CURRENT_DATE,
	description    TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS time_entries_project_idx ON time_entries (project_id, work_date, id)`,
	`CREATE TABLE IF NOT EXISTS materials (
	id          BIGSERIAL PRIMARY KEY,
	project_id  BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	quantity    DOUBLE PRECISION NOT NULL CHECK (quantity >= 0),
	unit        TEXT NOT NULL DEFAULT '',
	unit_price  DOUBLE PRECISION NOT NULL CHECK (unit_price >= 0),
	supplier    TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS materials_project_idx ON materials (project_id, id)`,
}

// Migrate applies the schema inside a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	slog.Info("database schema up to date", "statements", len(schema))
	return nil
}
