package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tunr-web/internal/db"

	"github.com/lib/pq"
)

// PostgresBackend stores client storage in the client_storage table.
type PostgresBackend struct {
	db *db.DB
}

func NewPostgresBackend(db *db.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (p *PostgresBackend) Client(clientID string) Store {
	return &postgresStore{db: p.db, clientID: clientID}
}

type postgresStore struct {
	db       *db.DB
	clientID string
}

func (s *postgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM client_storage
		WHERE client_id = $1 AND key = $2
	`, s.clientID, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return value, true, nil
}

func (s *postgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_storage (client_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, s.clientID, key, value)

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM client_storage
		WHERE client_id = $1 AND key = ANY($2)
	`, s.clientID, pq.Array(keys))

	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
