package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The catalog schema is owned by an external migration process. These
// statements only create it when missing, for fresh local and test stores.

const postgresSchema = `
CREATE TABLE IF NOT EXISTS countries (
	id          VARCHAR(3) PRIMARY KEY,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS authors (
	id         UUID PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	country_id VARCHAR(3) NOT NULL REFERENCES countries(id)
);

CREATE INDEX IF NOT EXISTS idx_authors_name ON authors(last_name, first_name, id);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS countries (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS authors (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	country_id TEXT NOT NULL REFERENCES countries(id)
);

CREATE INDEX IF NOT EXISTS idx_authors_name ON authors(last_name, first_name, id);
`

// EnsurePostgresSchema creates the catalog tables if they do not exist.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create postgres schema: %w", err)
	}
	return nil
}

// EnsureSQLiteSchema creates the catalog tables if they do not exist.
func EnsureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create sqlite schema: %w", err)
	}
	return nil
}
