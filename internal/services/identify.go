// Package services orchestrates the domain packages behind the HTTP
// handlers: each service resolves the caller's plan, charges the usage
// ledger, runs the operation, and persists what needs persisting.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/plan"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/usage"
)

// Identifier is the AI collaborator behind crystal identification.
type Identifier interface {
	IdentifyImage(ctx context.Context, imageData []byte, mimeType, userContext string) (model.Identification, error)
}

// Advisor is the AI collaborator behind crystal guidance.
type Advisor interface {
	Guide(ctx context.Context, need string, ownedCrystals []string) (model.Guidance, error)
}

// IdentifyService runs the identification flow: plan gate, AI call,
// persistence, and the new-crystal credit reward.
type IdentifyService struct {
	store    docstore.Store
	ledger   *usage.Ledger
	wallet   *usage.Wallet
	profiles *profile.Service
	cat      *catalog.Catalog
	ai       Identifier
	now      func() time.Time
	newID    func() string
}

func NewIdentifyService(store docstore.Store, ledger *usage.Ledger, wallet *usage.Wallet, profiles *profile.Service, cat *catalog.Catalog, ai Identifier) *IdentifyService {
	return &IdentifyService{
		store:    store,
		ledger:   ledger,
		wallet:   wallet,
		profiles: profiles,
		cat:      cat,
		ai:       ai,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// IdentifyResult is what the identification endpoint returns.
type IdentifyResult struct {
	ID             string               `json:"id"`
	Identification model.Identification `json:"identification"`
	CatalogMatch   *model.CrystalRecord `json:"catalogMatch,omitempty"`
	WalletCredits  int                  `json:"walletCredits,omitempty"`
	RemainingToday int                  `json:"remainingToday"`
}

// Identify charges the user's daily identification allowance, runs the AI
// identification, stores the result, and pays the new-crystal reward when
// the specimen is confidently named.
func (s *IdentifyService) Identify(ctx context.Context, userID string, image []byte, mimeType, userContext string) (IdentifyResult, error) {
	if s.ai == nil {
		return IdentifyResult{}, fmt.Errorf("identification is not configured: %w", model.ErrFailedPrecondition)
	}
	details, err := s.planFor(ctx, userID)
	if err != nil {
		return IdentifyResult{}, err
	}
	snap, err := s.ledger.RecordAction(ctx, userID, plan.ActionIdentify, details, 0)
	if err != nil {
		return IdentifyResult{}, err
	}

	ident, err := s.ai.IdentifyImage(ctx, image, mimeType, userContext)
	if err != nil {
		return IdentifyResult{}, err
	}

	result := IdentifyResult{
		ID:             s.newID(),
		Identification: ident,
		CatalogMatch:   s.cat.FindByName(ident.Name),
	}
	if limit, ok := plan.DailyLimitFor(details, plan.ActionIdentify); ok {
		result.RemainingToday = limit - snap.DailyCounts[plan.ActionIdentify]
	}

	doc, err := docstore.ToDocument(struct {
		UserID string               `json:"userId"`
		Result model.Identification `json:"result"`
		When   string               `json:"createdAt"`
	}{UserID: userID, Result: ident, When: s.now().UTC().Format(time.RFC3339)})
	if err != nil {
		return IdentifyResult{}, err
	}
	if err := s.store.Set(ctx, "identifications/"+result.ID, doc, false); err != nil {
		return IdentifyResult{}, err
	}

	// The reward is best-effort: a capped-out wallet must not fail the
	// identification itself.
	if ident.Confidence >= 50 && ident.Name != "Unknown Specimen" {
		if wallet, err := s.wallet.Earn(ctx, userID, usage.EarnCrystalIdentifyNew); err == nil {
			result.WalletCredits = wallet.Credits
		}
	}
	return result, nil
}

// History lists the user's stored identifications.
func (s *IdentifyService) History(ctx context.Context, userID string) ([]docstore.Snapshot, error) {
	return s.store.Query(ctx, "identifications", docstore.Filter{Field: "userId", Value: userID})
}

func (s *IdentifyService) planFor(ctx context.Context, userID string) (model.PlanDetails, error) {
	return resolvePlan(ctx, s.profiles, userID)
}

// resolvePlan reads the user's tier off their document. Missing documents
// and unknown tiers both resolve to the free plan.
func resolvePlan(ctx context.Context, profiles *profile.Service, userID string) (model.PlanDetails, error) {
	doc, err := profiles.Get(ctx, userID)
	if err != nil {
		if docstore.IsNotFound(err) {
			return plan.Resolve(plan.TierFree), nil
		}
		return model.PlanDetails{}, err
	}
	tier, _ := doc["tier"].(string)
	return plan.Resolve(tier), nil
}
