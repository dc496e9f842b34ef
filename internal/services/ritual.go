package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/plan"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/recommend"
	"github.com/crystal-grimoire/backend/internal/ritual"
	"github.com/crystal-grimoire/backend/internal/usage"
)

// RitualService serves moon rituals, healing layouts, and the daily
// featured crystal.
type RitualService struct {
	ledger   *usage.Ledger
	wallet   *usage.Wallet
	profiles *profile.Service
	cat      *catalog.Catalog
	scorer   *recommend.Scorer
	now      func() time.Time
}

func NewRitualService(ledger *usage.Ledger, wallet *usage.Wallet, profiles *profile.Service, cat *catalog.Catalog) *RitualService {
	return &RitualService{
		ledger:   ledger,
		wallet:   wallet,
		profiles: profiles,
		cat:      cat,
		scorer:   recommend.New(cat),
		now:      time.Now,
	}
}

// MoonRitualResult bundles the lunar snapshot, the phase's ritual script,
// and crystals scored for the script's intents.
type MoonRitualResult struct {
	Moon     model.MoonSnapshot     `json:"moon"`
	Template model.RitualTemplate   `json:"ritual"`
	Crystals []model.Recommendation `json:"crystals"`
}

// MoonRitual returns the ritual for the requested phase, or for the current
// phase when none is named. The call is charged against the moon ritual
// allowance.
func (s *RitualService) MoonRitual(ctx context.Context, userID, rawPhase string) (MoonRitualResult, error) {
	// Resolve the template before touching the ledger so a bad phase does
	// not consume an allowance unit.
	moon := ritual.MoonAt(s.now())
	phase := rawPhase
	if phase == "" {
		phase = moon.Phase
	}
	tpl, ok := ritual.TemplateFor(phase)
	if !ok {
		return MoonRitualResult{}, fmt.Errorf("unknown moon phase %q: %w", rawPhase, model.ErrInvalidArgument)
	}

	details, err := resolvePlan(ctx, s.profiles, userID)
	if err != nil {
		return MoonRitualResult{}, err
	}
	if _, err := s.ledger.RecordAction(ctx, userID, plan.ActionMoonRitual, details, 0); err != nil {
		return MoonRitualResult{}, err
	}

	p, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return MoonRitualResult{}, err
	}
	crystals := s.scorer.Recommend(recommend.Query{
		IntentKeys: tpl.RecommendedKeys,
		Profile:    p,
		Limit:      5,
	})

	return MoonRitualResult{Moon: moon, Template: tpl, Crystals: crystals}, nil
}

// CompleteRitual records a finished ritual and pays the completion reward
// if today's cap allows it.
func (s *RitualService) CompleteRitual(ctx context.Context, userID string) (model.CreditWallet, error) {
	return s.wallet.Earn(ctx, userID, usage.EarnRitualComplete)
}

// HealingLayout builds a layout for the requested chakras (all seven when
// none are named) from the user's collection and the catalog, charged
// against the layout allowance.
func (s *RitualService) HealingLayout(ctx context.Context, userID string, chakraKeys []string) ([]model.PlacementStep, error) {
	details, err := resolvePlan(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.RecordAction(ctx, userID, plan.ActionHealingLayout, details, 0); err != nil {
		return nil, err
	}
	p, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ritual.BuildLayout(s.cat, p, chakraKeys), nil
}

// Moon returns the current lunar snapshot. Unauthenticated and uncharged.
func (s *RitualService) Moon() model.MoonSnapshot {
	return ritual.MoonAt(s.now())
}

// DailyCrystal returns today's featured crystal, narrowed by the optional
// filter. Uncharged.
func (s *RitualService) DailyCrystal(filter ritual.DailyFilter) *model.CrystalRecord {
	return ritual.DailyCrystal(s.cat, s.now(), filter)
}
