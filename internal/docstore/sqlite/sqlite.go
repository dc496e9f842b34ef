// Package sqlite implements docstore.Store on a local SQLite file. It is the
// default driver for the local build target.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    path       TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    data       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
`

// Store implements docstore.Store over a SQLite database.
type Store struct {
	db *sql.DB
}

var _ docstore.Store = (*Store)(nil)

// Open opens (or creates) the database at path, enables WAL mode, and
// ensures the schema exists. The connection pool is capped at one so writes
// serialize, which is what gives RunTransaction its isolation.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, path string) (docstore.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE path = ?`, path).Scan(&raw)
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
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path)
	return err
}

func (s *Store) Query(ctx context.Context, collection string, filters ...docstore.Filter) ([]docstore.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, data FROM documents WHERE collection = ? ORDER BY path`, collection)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []docstore.Snapshot
	for rows.Next() {
		var path, raw string
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

func (s *Store) RunTransaction(ctx context.Context, fn func(tx docstore.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	wrapped := &sqliteTx{ctx: ctx, tx: tx}
	if err := fn(wrapped); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) Close() error { return s.db.Close() }

type sqliteTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqliteTx) Get(path string) (docstore.Document, error) {
	var raw string
	err := t.tx.QueryRowContext(t.ctx, `SELECT data FROM documents WHERE path = ?`, path).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %s: %w", path, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc(raw)
}

func (t *sqliteTx) Set(path string, doc docstore.Document, merge bool) error {
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
        INSERT INTO documents (path, collection, data) VALUES (?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET data = excluded.data
    `, path, docstore.CollectionOf(path), string(raw))
	return err
}

func (t *sqliteTx) Delete(path string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM documents WHERE path = ?`, path)
	return err
}

func decodeDoc(raw string) (docstore.Document, error) {
	var doc docstore.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
