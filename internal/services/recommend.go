package services

import (
	"context"

	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/intent"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/plan"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/recommend"
	"github.com/crystal-grimoire/backend/internal/usage"
)

// RecommendService resolves free-text needs into scored catalog picks.
type RecommendService struct {
	ledger   *usage.Ledger
	profiles *profile.Service
	scorer   *recommend.Scorer
}

func NewRecommendService(ledger *usage.Ledger, profiles *profile.Service, cat *catalog.Catalog) *RecommendService {
	return &RecommendService{
		ledger:   ledger,
		profiles: profiles,
		scorer:   recommend.New(cat),
	}
}

// RecommendRequest is the decoded recommendation query.
type RecommendRequest struct {
	Intents []string `json:"intents"`
	Need    string   `json:"need"`
	Limit   int      `json:"limit"`
	Exclude []string `json:"exclude"`
}

// RecommendResult pairs the picks with the vocabulary they resolved to.
type RecommendResult struct {
	IntentKeys      []string               `json:"intentKeys"`
	Recommendations []model.Recommendation `json:"recommendations"`
	RemainingToday  int                    `json:"remainingToday"`
}

// Recommend charges the daily recommendation allowance and scores the
// catalog against the resolved intents and the user's stored profile.
func (s *RecommendService) Recommend(ctx context.Context, userID string, req RecommendRequest) (RecommendResult, error) {
	details, err := resolvePlan(ctx, s.profiles, userID)
	if err != nil {
		return RecommendResult{}, err
	}
	snap, err := s.ledger.RecordAction(ctx, userID, plan.ActionRecommendation, details, 0)
	if err != nil {
		return RecommendResult{}, err
	}

	p, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return RecommendResult{}, err
	}

	raw := append([]string(nil), req.Intents...)
	if req.Need != "" {
		raw = append(raw, req.Need)
	}
	keys := intent.ResolveIntentKeys(raw)

	recs := s.scorer.Recommend(recommend.Query{
		IntentKeys: keys,
		RawNeed:    req.Need,
		Profile:    p,
		Limit:      req.Limit,
		Exclude:    req.Exclude,
	})

	result := RecommendResult{IntentKeys: keys, Recommendations: recs}
	if limit, ok := plan.DailyLimitFor(details, plan.ActionRecommendation); ok {
		result.RemainingToday = limit - snap.DailyCounts[plan.ActionRecommendation]
	}
	return result, nil
}
