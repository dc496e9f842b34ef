// Package profile manages user documents: creation with existing-wins
// merging, filtered updates, and full account erasure.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
)

// Fields a client may write through Update. Everything else in the user
// document (tier, counters, timestamps) is server-owned.
var updatableFields = map[string]bool{
	"displayName":        true,
	"email":              true,
	"birthDate":          true,
	"zodiacSign":         true,
	"focusChakra":        true,
	"element":            true,
	"mood":               true,
	"ownedCrystalNames":  true,
	"notificationsOptIn": true,
}

// Collections swept by DeleteAccount, each filtered by the userId field.
var userOwnedCollections = []string{"identifications", "guidance", "journal", "tickets"}

type Service struct {
	store docstore.Store
	now   func() time.Time
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

func userPath(userID string) string { return "users/" + userID }

// Ensure creates the user document if it does not exist and merges seed
// into it when it does. Existing values always win; seed only fills fields
// the document lacks. Both paths return the stored document.
func (s *Service) Ensure(ctx context.Context, userID string, seed docstore.Document) (docstore.Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}

	var result docstore.Document
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		existing, err := tx.Get(userPath(userID))
		if err != nil && !docstore.IsNotFound(err) {
			return err
		}

		doc := make(docstore.Document, len(seed)+len(existing)+2)
		for k, v := range seed {
			doc[k] = v
		}
		for k, v := range existing {
			// A field already on the document beats the incoming seed.
			doc[k] = v
		}
		if _, ok := doc["createdAt"]; !ok {
			doc["createdAt"] = s.now().UTC().Format(time.RFC3339)
		}
		if _, ok := doc["tier"]; !ok {
			doc["tier"] = "free"
		}
		result = doc
		return tx.Set(userPath(userID), doc, false)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update merges the allowed subset of fields into the user document.
// Server-owned fields in the input are dropped; an update that carries
// nothing writable is rejected.
func (s *Service) Update(ctx context.Context, userID string, fields docstore.Document) (docstore.Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	allowed := make(docstore.Document, len(fields))
	for k, v := range fields {
		if updatableFields[k] {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no updatable fields in request: %w", model.ErrInvalidArgument)
	}
	allowed["updatedAt"] = s.now().UTC().Format(time.RFC3339)

	if err := s.store.Update(ctx, userPath(userID), allowed); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, userPath(userID))
}

// SetTier writes the server-owned tier field. Only the plan upgrade flow
// and operator tooling call this.
func (s *Service) SetTier(ctx context.Context, userID, tier string) error {
	if userID == "" {
		return fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	return s.store.Update(ctx, userPath(userID), docstore.Document{
		"tier":      tier,
		"updatedAt": s.now().UTC().Format(time.RFC3339),
	})
}

// Get returns the raw user document.
func (s *Service) Get(ctx context.Context, userID string) (docstore.Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	return s.store.Get(ctx, userPath(userID))
}

// Profile decodes the recommendation-relevant slice of the user document.
// A missing document yields a zero profile, not an error.
func (s *Service) Profile(ctx context.Context, userID string) (model.UserProfile, error) {
	doc, err := s.Get(ctx, userID)
	if err != nil {
		if docstore.IsNotFound(err) {
			return model.UserProfile{}, nil
		}
		return model.UserProfile{}, err
	}
	var p model.UserProfile
	if err := docstore.FromDocument(doc, &p); err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

// DeleteAccount erases the user document, its usage and wallet documents,
// and every document the user owns in the swept collections. It reports how
// many documents were removed in total.
func (s *Service) DeleteAccount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user id required: %w", model.ErrInvalidArgument)
	}
	deleted := 0
	for _, path := range []string{userPath(userID), "usage/" + userID, "wallets/" + userID} {
		if _, err := s.store.Get(ctx, path); err != nil {
			if docstore.IsNotFound(err) {
				continue
			}
			return deleted, err
		}
		if err := s.store.Delete(ctx, path); err != nil {
			return deleted, err
		}
		deleted++
	}
	for _, coll := range userOwnedCollections {
		n, err := s.store.DeleteAll(ctx, coll, docstore.Filter{Field: "userId", Value: userID})
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}
