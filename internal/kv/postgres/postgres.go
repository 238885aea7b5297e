// Package postgres stores kv documents in a PostgreSQL table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/kv"
)

// Store is a kv.Store backed by the documents table.
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open connects to dsn, pings the server and creates the documents table.
func Open(ctx context.Context, dsn string, log *zap.SugaredLogger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := New(db, log)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Infow("Document store connected and migrated", "backend", "postgres")
	return s, nil
}

// New wraps an open database handle.
func New(db *sql.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: log}
}

// Migrate creates the documents table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			version BIGINT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (kv.Document, error) {
	doc := kv.Document{Key: key}
	err := s.db.QueryRowContext(ctx, "SELECT value, version FROM documents WHERE key = $1", key).Scan(&doc.Value, &doc.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return kv.Document{Key: key}, nil
	}
	if err != nil {
		return kv.Document{}, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	return doc, nil
}

func (s *Store) Commit(ctx context.Context, writes ...kv.Write) error {
	if len(writes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, w := range writes {
		if err := apply(ctx, tx, w, now); err != nil {
			s.log.Warnw("Rolling back document commit", "key", w.Key, "err", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func apply(ctx context.Context, tx *sql.Tx, w kv.Write, now time.Time) error {
	var (
		res sql.Result
		err error
	)
	switch {
	case w.Value == nil && w.ExpectedVersion == 0:
		// Deleting a document that was never written.
		var exists bool
		err = tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM documents WHERE key = $1)", w.Key).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check document %s: %w", w.Key, err)
		}
		if exists {
			return fmt.Errorf("%w: %s was created concurrently", kv.ErrVersionConflict, w.Key)
		}
		return nil
	case w.Value == nil:
		res, err = tx.ExecContext(ctx, "DELETE FROM documents WHERE key = $1 AND version = $2", w.Key, w.ExpectedVersion)
	case w.ExpectedVersion == 0:
		res, err = tx.ExecContext(ctx,
			"INSERT INTO documents (key, value, version, updated_at) VALUES ($1, $2, 1, $3) ON CONFLICT (key) DO NOTHING",
			w.Key, w.Value, now,
		)
	default:
		res, err = tx.ExecContext(ctx,
			"UPDATE documents SET value = $2, version = version + 1, updated_at = $3 WHERE key = $1 AND version = $4",
			w.Key, w.Value, now, w.ExpectedVersion,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to write document %s: %w", w.Key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", w.Key, err)
	}
	if n != 1 {
		return fmt.Errorf("%w: %s expected version %d", kv.ErrVersionConflict, w.Key, w.ExpectedVersion)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
