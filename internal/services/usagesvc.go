package services

import (
	"context"

	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/plan"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/usage"
)

// UsageService fronts the ledger and credit wallet for clients that track
// their own actions, such as meditation timers and journal entries.
type UsageService struct {
	ledger   *usage.Ledger
	wallet   *usage.Wallet
	profiles *profile.Service
}

func NewUsageService(ledger *usage.Ledger, wallet *usage.Wallet, profiles *profile.Service) *UsageService {
	return &UsageService{ledger: ledger, wallet: wallet, profiles: profiles}
}

// TrackResult reports the ledger state after a tracked action.
type TrackResult struct {
	Usage          model.UsageSnapshot `json:"usage"`
	RemainingToday int                 `json:"remainingToday"`
	Unlimited      bool                `json:"unlimited"`
}

// Track charges one use of the named action against the caller's plan.
func (s *UsageService) Track(ctx context.Context, userID, action string, increment int) (TrackResult, error) {
	details, err := resolvePlan(ctx, s.profiles, userID)
	if err != nil {
		return TrackResult{}, err
	}
	snap, err := s.ledger.RecordAction(ctx, userID, action, details, increment)
	if err != nil {
		return TrackResult{}, err
	}
	result := TrackResult{Usage: snap, Unlimited: true}
	if limit, ok := plan.DailyLimitFor(details, action); ok {
		result.Unlimited = false
		result.RemainingToday = limit - snap.DailyCounts[action]
	}
	return result, nil
}

// Snapshot returns the caller's current usage counters.
func (s *UsageService) Snapshot(ctx context.Context, userID string) (model.UsageSnapshot, error) {
	return s.ledger.Snapshot(ctx, userID)
}

// WalletBalance returns the caller's credit wallet.
func (s *UsageService) WalletBalance(ctx context.Context, userID string) (model.CreditWallet, error) {
	return s.wallet.Balance(ctx, userID)
}

// EarnCredits pays the reward for a named earn source, subject to its
// daily cap.
func (s *UsageService) EarnCredits(ctx context.Context, userID, source string) (model.CreditWallet, error) {
	return s.wallet.Earn(ctx, userID, source)
}

// SpendCredits deducts credits from the caller's wallet.
func (s *UsageService) SpendCredits(ctx context.Context, userID string, amount int) (model.CreditWallet, error) {
	return s.wallet.Spend(ctx, userID, amount)
}
