package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/docstore/memory"
	"github.com/crystal-grimoire/backend/internal/model"
)

func newService(t *testing.T) (*Service, docstore.Store) {
	t.Helper()
	store := memory.New()
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestEnsureCreatesWithDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	doc, err := svc.Ensure(ctx, "u1", docstore.Document{"email": "luna@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "luna@example.com", doc["email"])
	assert.Equal(t, "free", doc["tier"])
	assert.Equal(t, "2026-08-30T12:00:00Z", doc["createdAt"])
}

func TestEnsureExistingFieldsWin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Ensure(ctx, "u1", docstore.Document{
		"email":       "original@example.com",
		"displayName": "Luna",
	})
	require.NoError(t, err)

	// A second sign-in with different seed data must not clobber anything,
	// but may fill fields the document lacks.
	doc, err := svc.Ensure(ctx, "u1", docstore.Document{
		"email":      "imposter@example.com",
		"zodiacSign": "Pisces",
	})
	require.NoError(t, err)
	assert.Equal(t, "original@example.com", doc["email"])
	assert.Equal(t, "Luna", doc["displayName"])
	assert.Equal(t, "Pisces", doc["zodiacSign"])
}

func TestUpdateFiltersServerOwnedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Ensure(ctx, "u1", docstore.Document{"email": "luna@example.com"})
	require.NoError(t, err)

	doc, err := svc.Update(ctx, "u1", docstore.Document{
		"mood": "calm",
		"tier": "founders", // server-owned, must be dropped
	})
	require.NoError(t, err)
	assert.Equal(t, "calm", doc["mood"])
	assert.Equal(t, "free", doc["tier"])

	_, err = svc.Update(ctx, "u1", docstore.Document{"tier": "founders"})
	assert.True(t, errors.Is(err, model.ErrInvalidArgument), "update with nothing writable must fail")

	_, err = svc.Update(ctx, "ghost", docstore.Document{"mood": "calm"})
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestProfileDecoding(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Ensure(ctx, "u1", docstore.Document{
		"zodiacSign":        "Pisces",
		"focusChakra":       "Third Eye",
		"mood":              "calm",
		"ownedCrystalNames": []string{"Amethyst"},
	})
	require.NoError(t, err)

	p, err := svc.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Pisces", p.ZodiacSign)
	assert.Equal(t, "Third Eye", p.FocusChakra)
	assert.Equal(t, []string{"Amethyst"}, p.OwnedCrystalNames)

	// Unknown users behave like blank profiles.
	p, err = svc.Profile(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, model.UserProfile{}, p)
}

func TestDeleteAccountSweepsOwnedDocuments(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)
	_, err := svc.Ensure(ctx, "u1", docstore.Document{"email": "luna@example.com"})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "usage/u1", docstore.Document{"dailyCounts": map[string]interface{}{}}, false))
	require.NoError(t, store.Set(ctx, "identifications/i1", docstore.Document{"userId": "u1"}, false))
	require.NoError(t, store.Set(ctx, "identifications/i2", docstore.Document{"userId": "u2"}, false))
	require.NoError(t, store.Set(ctx, "journal/j1", docstore.Document{"userId": "u1"}, false))

	n, err := svc.DeleteAccount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = store.Get(ctx, "users/u1")
	assert.True(t, docstore.IsNotFound(err))
	_, err = store.Get(ctx, "identifications/i2")
	assert.NoError(t, err, "other users' documents must survive")
}
