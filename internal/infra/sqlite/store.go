// Package sqlite stores blobs in a SQLite table through sqlx.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/aliskhannn/mokykis/internal/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS user_state (
		key TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)
`

// Store is a BlobStore backed by one SQLite table.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database at path and creates the table.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create user_state table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type row struct {
	Data string `db:"data"`
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var r row
	err := s.db.GetContext(ctx, &r, `SELECT data FROM user_state WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	return []byte(r.Data), nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO user_state (key, data, updated_at)
		VALUES (:key, :data, :updated_at)
		ON CONFLICT (key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`

	_, err := s.db.NamedExecContext(ctx, query, map[string]any{
		"key":        key,
		"data":       string(data),
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}
