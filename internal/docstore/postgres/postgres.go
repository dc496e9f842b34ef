// Package postgres implements docstore.Store on PostgreSQL, storing
// documents as JSONB rows keyed by path.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    path       TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    data       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
`

// serialization_failure, raised when serializable transactions conflict.
const pgSerializationFailure = "40001"

const maxTxAttempts = 5

// Store implements docstore.Store over a PostgreSQL database.
type Store struct {
	db *sql.DB
}

var _ docstore.Store = (*Store)(nil)

// Open connects using a pgx stdlib DSN and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure documents schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, path string) (docstore.Document, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = $1`, path).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %s: %w", path, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc(raw)
}

func (s *Store) Set(ctx context.Context, path string, doc docstore.Document, merge bool) error {
	if !docstore.ValidPath(path) {
		return fmt.Errorf("invalid document path %q: %w", path, model.ErrInvalidArgument)
	}
	return s.RunTransaction(ctx, func(tx docstore.Tx) error {
		return tx.Set(path, doc, merge)
	})
}

func (s *Store) Update(ctx context.Context, path string, fields docstore.Document) error {
	return s.RunTransaction(ctx, func(tx docstore.Tx) error {
		if _, err := tx.Get(path); err != nil {
			return err
		}
		return tx.Set(path, fields, true)
	})
}

func (s *Store) Delete(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = $1`, path)
	return err
}

func (s *Store) Query(ctx context.Context, collection string, filters ...docstore.Filter) ([]docstore.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, data FROM documents WHERE collection = $1 ORDER BY path`, collection)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []docstore.Snapshot
	for rows.Next() {
		var path string
		var raw []byte
		if err := rows.Scan(&path, &raw); err != nil {
			return nil, err
		}
		doc, err := decodeDoc(raw)
		if err != nil {
			return nil, err
		}
		if docstore.MatchesFilters(doc, filters) {
			out = append(out, docstore.Snapshot{Path: path, Data: doc})
		}
	}
	return out, rows.Err()
}

func (s *Store) DeleteAll(ctx context.Context, collection string, filters ...docstore.Filter) (int, error) {
	snaps, err := s.Query(ctx, collection, filters...)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, snap := range snaps {
		if err := s.Delete(ctx, snap.Path); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// RunTransaction executes fn inside a serializable transaction, retrying
// on serialization conflicts so concurrent read-modify-write cycles never
// lose an update.
func (s *Store) RunTransaction(ctx context.Context, fn func(tx docstore.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("transaction retries exhausted: %w", lastErr)
}

func (s *Store) runOnce(ctx context.Context, fn func(tx docstore.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	wrapped := &pgTx{ctx: ctx, tx: tx}
	if err := fn(wrapped); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) Close() error { return s.db.Close() }

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure
}

type pgTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *pgTx) Get(path string) (docstore.Document, error) {
	var raw []byte
	err := t.tx.QueryRowContext(t.ctx, `SELECT data FROM documents WHERE path = $1 FOR UPDATE`, path).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %s: %w", path, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc(raw)
}

func (t *pgTx) Set(path string, doc docstore.Document, merge bool) error {
	if !docstore.ValidPath(path) {
		return fmt.Errorf("invalid document path %q: %w", path, model.ErrInvalidArgument)
	}
	final := doc
	if merge {
		if existing, err := t.Get(path); err == nil {
			merged := make(docstore.Document, len(existing)+len(doc))
			for k, v := range existing {
				merged[k] = v
			}
			for k, v := range doc {
				merged[k] = v
			}
			final = merged
		}
	}
	raw, err := json.Marshal(final)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", path, err)
	}
	_, err = t.tx.ExecContext(t.ctx, `
        INSERT INTO documents (path, collection, data) VALUES ($1, $2, $3)
        ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data
    `, path, docstore.CollectionOf(path), raw)
	return err
}

func (t *pgTx) Delete(path string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM documents WHERE path = $1`, path)
	return err
}

func decodeDoc(raw []byte) (docstore.Document, error) {
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
