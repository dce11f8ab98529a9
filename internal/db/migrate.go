package db

import (
	"context"
	"database/sql"
)

// One row per (browser, key): the server-side mirror of client storage.
const storageMigration = `
CREATE TABLE IF NOT EXISTS client_storage (
    client_id text NOT NULL,
    key text NOT NULL,
    value text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    PRIMARY KEY (client_id, key)
);

CREATE INDEX IF NOT EXISTS client_storage_updated_at_idx
ON client_storage (updated_at);
`

func RunStorageMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, storageMigration)
	return err
}
