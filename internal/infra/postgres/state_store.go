// Package postgres stores state blobs in a PostgreSQL JSONB column.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/mokykis/internal/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS user_state (
		key TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// StateStore is a BlobStore over the user_state table.
type StateStore struct {
	db DBTX
	tx *Transactor
}

// NewStateStore creates the table when missing.
func NewStateStore(ctx context.Context, pool *pgxpool.Pool) (*StateStore, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create user_state table: %w", err)
	}
	return &StateStore{db: pool, tx: NewTransactor(pool)}, nil
}

func (s *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data::text FROM user_state WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	return data, nil
}

// Put upserts the document. JSONB rejects payloads that are not valid JSON.
func (s *StateStore) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO user_state (key, data, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	return s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, key, string(data)); err != nil {
			return fmt.Errorf("upsert state: %w", err)
		}
		return nil
	})
}
