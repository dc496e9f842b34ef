// Package storetest provides a conformance suite that every docstore.Store
// implementation must pass. Driver packages wire it up from their own tests
// with a factory that returns a fresh, empty store.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
)

// Factory returns a fresh empty store for a single subtest. Cleanup is
// registered by the suite via Store.Close.
type Factory func(t *testing.T) docstore.Store

// Run executes the full conformance suite against stores built by factory.
func Run(t *testing.T, factory Factory) {
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, factory(t)) })
	t.Run("SetGetRoundTrip", func(t *testing.T) { testSetGet(t, factory(t)) })
	t.Run("MergePreservesFields", func(t *testing.T) { testMerge(t, factory(t)) })
	t.Run("OverwriteReplacesDocument", func(t *testing.T) { testOverwrite(t, factory(t)) })
	t.Run("UpdateRequiresExisting", func(t *testing.T) { testUpdateMissing(t, factory(t)) })
	t.Run("DeleteIdempotent", func(t *testing.T) { testDelete(t, factory(t)) })
	t.Run("QueryCollection", func(t *testing.T) { testQuery(t, factory(t)) })
	t.Run("QueryFilters", func(t *testing.T) { testQueryFilters(t, factory(t)) })
	t.Run("DeleteAll", func(t *testing.T) { testDeleteAll(t, factory(t)) })
	t.Run("InvalidPathRejected", func(t *testing.T) { testInvalidPath(t, factory(t)) })
	t.Run("TransactionRollback", func(t *testing.T) { testTxRollback(t, factory(t)) })
	t.Run("TransactionReadsOwnWrites", func(t *testing.T) { testTxReadOwnWrites(t, factory(t)) })
	t.Run("ConcurrentIncrements", func(t *testing.T) { testConcurrentIncrements(t, factory(t)) })
}

func closeStore(t *testing.T, s docstore.Store) {
	t.Helper()
	t.Cleanup(func() { _ = s.Close() })
}

func testGetMissing(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	_, err := s.Get(context.Background(), "users/absent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func testSetGet(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	doc := docstore.Document{"name": "Amethyst", "credits": float64(7)}
	require.NoError(t, s.Set(ctx, "users/u1", doc, false))

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "Amethyst", got["name"])
	assert.EqualValues(t, 7, got["credits"])
}

func testMerge(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u1", docstore.Document{"name": "Luna", "tier": "free"}, false))
	require.NoError(t, s.Set(ctx, "users/u1", docstore.Document{"tier": "premium"}, true))

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "Luna", got["name"], "merge must keep untouched fields")
	assert.Equal(t, "premium", got["tier"])
}

func testOverwrite(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u1", docstore.Document{"name": "Luna", "tier": "free"}, false))
	require.NoError(t, s.Set(ctx, "users/u1", docstore.Document{"tier": "premium"}, false))

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	_, hasName := got["name"]
	assert.False(t, hasName, "plain set must replace the whole document")
	assert.Equal(t, "premium", got["tier"])
}

func testUpdateMissing(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	err := s.Update(ctx, "users/absent", docstore.Document{"tier": "premium"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	require.NoError(t, s.Set(ctx, "users/u1", docstore.Document{"name": "Luna"}, false))
	require.NoError(t, s.Update(ctx, "users/u1", docstore.Document{"tier": "pro"}))
	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "Luna", got["name"])
	assert.Equal(t, "pro", got["tier"])
}

func testDelete(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u1", docstore.Document{"name": "Luna"}, false))
	require.NoError(t, s.Delete(ctx, "users/u1"))
	_, err := s.Get(ctx, "users/u1")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	// Deleting again is not an error.
	require.NoError(t, s.Delete(ctx, "users/u1"))
}

func testQuery(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u2", docstore.Document{"name": "b"}, false))
	require.NoError(t, s.Set(ctx, "users/u1", docstore.Document{"name": "a"}, false))
	require.NoError(t, s.Set(ctx, "tickets/t1", docstore.Document{"status": "open"}, false))

	snaps, err := s.Query(ctx, "users")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "users/u1", snaps[0].Path)
	assert.Equal(t, "users/u2", snaps[1].Path)
}

func testQueryFilters(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "tickets/t1", docstore.Document{"status": "open", "userId": "u1"}, false))
	require.NoError(t, s.Set(ctx, "tickets/t2", docstore.Document{"status": "closed", "userId": "u1"}, false))
	require.NoError(t, s.Set(ctx, "tickets/t3", docstore.Document{"status": "open", "userId": "u2"}, false))

	snaps, err := s.Query(ctx, "tickets",
		docstore.Filter{Field: "status", Value: "open"},
		docstore.Filter{Field: "userId", Value: "u1"})
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "tickets/t1", snaps[0].Path)
}

func testDeleteAll(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "journal/j1", docstore.Document{"userId": "u1"}, false))
	require.NoError(t, s.Set(ctx, "journal/j2", docstore.Document{"userId": "u1"}, false))
	require.NoError(t, s.Set(ctx, "journal/j3", docstore.Document{"userId": "u2"}, false))

	n, err := s.DeleteAll(ctx, "journal", docstore.Filter{Field: "userId", Value: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	snaps, err := s.Query(ctx, "journal")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "journal/j3", snaps[0].Path)
}

func testInvalidPath(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	for _, path := range []string{"", "users", "users/u1/usage", "users//u1"} {
		err := s.Set(ctx, path, docstore.Document{"x": 1}, false)
		assert.True(t, errors.Is(err, model.ErrInvalidArgument), "path %q", path)
	}
}

func testTxRollback(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "users/u1", docstore.Document{"credits": float64(5)}, false))

	boom := errors.New("boom")
	err := s.RunTransaction(ctx, func(tx docstore.Tx) error {
		if err := tx.Set("users/u1", docstore.Document{"credits": float64(99)}, false); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.EqualValues(t, 5, got["credits"], "failed transaction must leave no writes")
}

func testTxReadOwnWrites(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	err := s.RunTransaction(ctx, func(tx docstore.Tx) error {
		if err := tx.Set("users/u1", docstore.Document{"step": "one"}, false); err != nil {
			return err
		}
		doc, err := tx.Get("users/u1")
		if err != nil {
			return err
		}
		doc["step"] = "two"
		return tx.Set("users/u1", doc, false)
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, "two", got["step"])
}

// testConcurrentIncrements hammers a single counter document from many
// goroutines. Every transactional read-modify-write must land, so the final
// count equals the number of workers.
func testConcurrentIncrements(t *testing.T, s docstore.Store) {
	closeStore(t, s)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "counters/c1", docstore.Document{"n": float64(0)}, false))

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.RunTransaction(ctx, func(tx docstore.Tx) error {
				doc, err := tx.Get("counters/c1")
				if err != nil {
					return err
				}
				n, _ := doc["n"].(float64)
				doc["n"] = n + 1
				return tx.Set("counters/c1", doc, false)
			})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	got, err := s.Get(ctx, "counters/c1")
	require.NoError(t, err)
	assert.EqualValues(t, workers, got["n"])
}
