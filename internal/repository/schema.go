package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// "user" is reserved in PostgreSQL, so both table names stay quoted.
const createSchemaQuery = `
CREATE TABLE IF NOT EXISTS "user" (
	id BIGSERIAL PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS "task" (
	id BIGSERIAL PRIMARY KEY,
	author_id BIGINT NOT NULL REFERENCES "user" (id),
	created TIMESTAMPTZ NOT NULL DEFAULT now(),
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	priority TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_task_author_created ON "task" (author_id, created);
`

const dropSchemaQuery = `
DROP TABLE IF EXISTS "task";
DROP TABLE IF EXISTS "user";
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, createSchemaQuery); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ResetSchema drops all data and recreates the tables.
func ResetSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, dropSchemaQuery); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return EnsureSchema(ctx, db)
}
