package postgres

import (
	"context"

	"github.com/pkg/errors"
)

var migrationStmts = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS "user" (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT,
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS role (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		permissions JSONB,
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS page (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		route TEXT NOT NULL,
		description TEXT,
		api_endpoints JSONB,
		created_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
	)`,
	`CREATE TABLE IF NOT EXISTS page_embedding (
		id SERIAL PRIMARY KEY,
		page_id INTEGER NOT NULL REFERENCES page(id) ON DELETE CASCADE,
		embedding VECTOR NOT NULL,
		model TEXT NOT NULL,
		updated_ts BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW()),
		UNIQUE (page_id, model)
	)`,
}

// Migrate creates the schema when absent. No versioned migrations; the
// schema is small and additive.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrationStmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to execute migration statement: %s", stmt)
		}
	}
	return nil
}
