// Package docstore abstracts the document database the services persist
// into. Implementations live under internal/docstore/<driver>/ (memory,
// sqlite, postgres) and must provide per-document atomicity and transaction
// isolation; cross-document locking is limited to what a transaction touches.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/crystal-grimoire/backend/internal/model"
)

// Document is the schemaless JSON payload of one stored document.
type Document = map[string]interface{}

// Snapshot pairs a document with its full path.
type Snapshot struct {
	Path string
	Data Document
}

// Filter is a field equality constraint applied by Query and DeleteAll.
type Filter struct {
	Field string
	Value interface{}
}

// Tx exposes the operations available inside RunTransaction. All reads and
// writes through a Tx happen atomically with respect to other transactions
// touching the same documents.
type Tx interface {
	Get(path string) (Document, error)
	Set(path string, doc Document, merge bool) error
	Delete(path string) error
}

// Store is the document store collaborator contract.
type Store interface {
	// Get returns the document at path or model.ErrNotFound.
	Get(ctx context.Context, path string) (Document, error)
	// Set writes the document at path. With merge, existing top-level
	// fields not present in doc are preserved.
	Set(ctx context.Context, path string, doc Document, merge bool) error
	// Update merges the given fields into an existing document and fails
	// with model.ErrNotFound when the document does not exist.
	Update(ctx context.Context, path string, fields Document) error
	// Delete removes the document at path. Deleting a missing document is
	// not an error.
	Delete(ctx context.Context, path string) error
	// Query returns all documents directly under collection matching every
	// filter, ordered by path for determinism.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error)
	// DeleteAll removes every document matching the query and reports how
	// many were deleted.
	DeleteAll(ctx context.Context, collection string, filters ...Filter) (int, error)
	// RunTransaction executes fn atomically. When fn returns an error the
	// transaction's writes are discarded and the error is returned as-is.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error
	// Close releases underlying resources.
	Close() error
}

// CollectionOf returns the collection portion of a document path, i.e. the
// path minus its final segment.
func CollectionOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// ValidPath reports whether path names a document: a non-empty path with an
// even number of non-empty segments (collection/doc pairs).
func ValidPath(path string) bool {
	if path == "" {
		return false
	}
	segs := strings.Split(path, "/")
	if len(segs)%2 != 0 {
		return false
	}
	for _, s := range segs {
		if s == "" {
			return false
		}
	}
	return true
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}

// MatchesFilters reports whether doc satisfies every filter. Filter fields
// may be dotted paths into nested maps ("profile.subscription.tier").
// Values compare by their string form, which is enough for the equality
// filters the stores support.
func MatchesFilters(doc Document, filters []Filter) bool {
	for _, f := range filters {
		v, ok := lookupField(doc, f.Field)
		if !ok || fmt.Sprintf("%v", v) != fmt.Sprintf("%v", f.Value) {
			return false
		}
	}
	return true
}

func lookupField(doc Document, field string) (interface{}, bool) {
	parts := strings.Split(field, ".")
	var cur interface{} = doc
	for _, p := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// ToDocument converts a typed value into a Document by JSON round-trip.
func ToDocument(v interface{}) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// FromDocument decodes a Document into the typed value pointed to by out.
func FromDocument(doc Document, out interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
