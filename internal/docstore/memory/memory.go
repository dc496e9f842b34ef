// Package memory provides an in-process docstore.Store used by tests and
// local development. Transactions take a store-wide lock, so they are fully
// serialized.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
)

// Store implements docstore.Store over a map.
type Store struct {
	mu   sync.Mutex
	docs map[string]docstore.Document
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{docs: make(map[string]docstore.Document)}
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, path string) (docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(path)
}

func (s *Store) getLocked(path string) (docstore.Document, error) {
	doc, ok := s.docs[path]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", path, model.ErrNotFound)
	}
	return cloneDoc(doc), nil
}

func (s *Store) Set(ctx context.Context, path string, doc docstore.Document, merge bool) error {
	if !docstore.ValidPath(path) {
		return fmt.Errorf("invalid document path %q: %w", path, model.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(path, doc, merge)
	return nil
}

func (s *Store) setLocked(path string, doc docstore.Document, merge bool) {
	if merge {
		if existing, ok := s.docs[path]; ok {
			merged := cloneDoc(existing)
			for k, v := range doc {
				merged[k] = v
			}
			s.docs[path] = merged
			return
		}
	}
	s.docs[path] = cloneDoc(doc)
}

func (s *Store) Update(ctx context.Context, path string, fields docstore.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[path]; !ok {
		return fmt.Errorf("document %s: %w", path, model.ErrNotFound)
	}
	s.setLocked(path, fields, true)
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path)
	return nil
}

func (s *Store) Query(ctx context.Context, collection string, filters ...docstore.Filter) ([]docstore.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []docstore.Snapshot
	for path, doc := range s.docs {
		if docstore.CollectionOf(path) != collection {
			continue
		}
		if !docstore.MatchesFilters(doc, filters) {
			continue
		}
		out = append(out, docstore.Snapshot{Path: path, Data: cloneDoc(doc)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *Store) DeleteAll(ctx context.Context, collection string, filters ...docstore.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for path, doc := range s.docs {
		if docstore.CollectionOf(path) != collection {
			continue
		}
		if !docstore.MatchesFilters(doc, filters) {
			continue
		}
		delete(s.docs, path)
		n++
	}
	return n, nil
}

func (s *Store) RunTransaction(ctx context.Context, fn func(tx docstore.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, writes: make(map[string]*docstore.Document)}
	if err := fn(tx); err != nil {
		return err
	}
	for path, doc := range tx.writes {
		if doc == nil {
			delete(s.docs, path)
			continue
		}
		s.docs[path] = cloneDoc(*doc)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// memTx buffers writes until the transaction function returns successfully.
// Reads observe the transaction's own pending writes.
type memTx struct {
	store  *Store
	writes map[string]*docstore.Document
}

func (t *memTx) Get(path string) (docstore.Document, error) {
	if pending, ok := t.writes[path]; ok {
		if pending == nil {
			return nil, fmt.Errorf("document %s: %w", path, model.ErrNotFound)
		}
		return cloneDoc(*pending), nil
	}
	return t.store.getLocked(path)
}

func (t *memTx) Set(path string, doc docstore.Document, merge bool) error {
	if !docstore.ValidPath(path) {
		return fmt.Errorf("invalid document path %q: %w", path, model.ErrInvalidArgument)
	}
	if merge {
		if existing, err := t.Get(path); err == nil {
			merged := cloneDoc(existing)
			for k, v := range doc {
				merged[k] = v
			}
			t.writes[path] = &merged
			return nil
		}
	}
	cloned := cloneDoc(doc)
	t.writes[path] = &cloned
	return nil
}

func (t *memTx) Delete(path string) error {
	t.writes[path] = nil
	return nil
}

func cloneDoc(doc docstore.Document) docstore.Document {
	out := make(docstore.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return cloneDoc(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
