package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the DDL for the person store. seq on person_changes is the feed
// position; a bigserial keeps it strictly increasing within the single shard.
const Schema = `
CREATE TABLE IF NOT EXISTS persons (
	id           TEXT PRIMARY KEY,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL DEFAULT '',
	phone_number TEXT NOT NULL,
	address      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS person_changes (
	seq         BIGSERIAL PRIMARY KEY,
	kind        TEXT NOT NULL,
	image       JSONB NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS relay_checkpoints (
	name TEXT PRIMARY KEY,
	seq  BIGINT NOT NULL
);
`

// EnsureSchema creates the store's tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure person schema: %w", err)
	}
	return nil
}
