package sqlite

import (
	"context"

	"github.com/pkg/errors"
)

var migrationStmts = []string{
	`CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT,
		created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
	)`,
	`CREATE TABLE IF NOT EXISTS role (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		permissions TEXT,
		created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
	)`,
	`CREATE TABLE IF NOT EXISTS page (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		route TEXT NOT NULL,
		description TEXT,
		api_endpoints TEXT,
		created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
	)`,
	`CREATE TABLE IF NOT EXISTS page_embedding (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_id INTEGER NOT NULL,
		embedding TEXT NOT NULL,
		model TEXT NOT NULL,
		updated_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
		UNIQUE (page_id, model)
	)`,
}

// Migrate creates the schema when absent.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrationStmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "failed to execute migration statement: %s", stmt)
		}
	}
	return nil
}
