package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crystal-grimoire/backend/internal/docstore"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/plan"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/usage"
)

// GuidanceService runs the guidance flow: plan gate, AI call, persistence.
type GuidanceService struct {
	store    docstore.Store
	ledger   *usage.Ledger
	profiles *profile.Service
	ai       Advisor
	now      func() time.Time
	newID    func() string
}

func NewGuidanceService(store docstore.Store, ledger *usage.Ledger, profiles *profile.Service, ai Advisor) *GuidanceService {
	return &GuidanceService{
		store:    store,
		ledger:   ledger,
		profiles: profiles,
		ai:       ai,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// GuidanceResult is what the guidance endpoint returns.
type GuidanceResult struct {
	ID             string         `json:"id"`
	Guidance       model.Guidance `json:"guidance"`
	RemainingToday int            `json:"remainingToday"`
}

// Guide charges the daily guidance allowance, asks the advisor, and stores
// the exchange. The user's collection biases the advice toward crystals
// they already own.
func (s *GuidanceService) Guide(ctx context.Context, userID, need string) (GuidanceResult, error) {
	if s.ai == nil {
		return GuidanceResult{}, fmt.Errorf("guidance is not configured: %w", model.ErrFailedPrecondition)
	}
	details, err := resolvePlan(ctx, s.profiles, userID)
	if err != nil {
		return GuidanceResult{}, err
	}
	snap, err := s.ledger.RecordAction(ctx, userID, plan.ActionGuidance, details, 0)
	if err != nil {
		return GuidanceResult{}, err
	}

	p, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return GuidanceResult{}, err
	}
	guidance, err := s.ai.Guide(ctx, need, p.OwnedCrystalNames)
	if err != nil {
		return GuidanceResult{}, err
	}

	result := GuidanceResult{ID: s.newID(), Guidance: guidance}
	if limit, ok := plan.DailyLimitFor(details, plan.ActionGuidance); ok {
		result.RemainingToday = limit - snap.DailyCounts[plan.ActionGuidance]
	}

	doc, err := docstore.ToDocument(struct {
		UserID string         `json:"userId"`
		Need   string         `json:"need"`
		Result model.Guidance `json:"result"`
		When   string         `json:"createdAt"`
	}{UserID: userID, Need: need, Result: guidance, When: s.now().UTC().Format(time.RFC3339)})
	if err != nil {
		return GuidanceResult{}, err
	}
	if err := s.store.Set(ctx, "guidance/"+result.ID, doc, false); err != nil {
		return GuidanceResult{}, err
	}
	return result, nil
}
