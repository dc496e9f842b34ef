// Package plan resolves subscription tiers to frozen limit tables and
// feature flags. The tables are package-level constants in effect: resolvers
// always hand out defensive copies so callers can never mutate the source.
package plan

import (
	"strings"

	"github.com/crystal-grimoire/backend/internal/model"
)

// Canonical tiers.
const (
	TierFree     = "free"
	TierPremium  = "premium"
	TierPro      = "pro"
	TierFounders = "founders"
)

// Limit names shared with the usage ledger.
const (
	LimitIdentifyPerDay        = "identifyPerDay"
	LimitGuidancePerDay        = "guidancePerDay"
	LimitDreamAnalysesPerDay   = "dreamAnalysesPerDay"
	LimitRecommendationsPerDay = "recommendationsPerDay"
	LimitMoonRitualsPerDay     = "moonRitualsPerDay"
	LimitJournalMax            = "journalMax"
	LimitCollectionMax         = "collectionMax"
)

var planDetails = map[string]model.PlanDetails{
	TierFree: {
		Plan: TierFree,
		EffectiveLimits: map[string]int{
			LimitIdentifyPerDay:        3,
			LimitGuidancePerDay:        1,
			LimitDreamAnalysesPerDay:   1,
			LimitRecommendationsPerDay: 2,
			LimitMoonRitualsPerDay:     1,
			LimitJournalMax:            50,
			LimitCollectionMax:         50,
		},
		Flags:    []string{"free"},
		Lifetime: false,
	},
	TierPremium: {
		Plan: TierPremium,
		EffectiveLimits: map[string]int{
			LimitIdentifyPerDay:        15,
			LimitGuidancePerDay:        5,
			LimitDreamAnalysesPerDay:   5,
			LimitRecommendationsPerDay: 8,
			LimitMoonRitualsPerDay:     5,
			LimitJournalMax:            200,
			LimitCollectionMax:         250,
		},
		Flags:    []string{"priority_support", "stripe"},
		Lifetime: false,
	},
	TierPro: {
		Plan: TierPro,
		EffectiveLimits: map[string]int{
			LimitIdentifyPerDay:        40,
			LimitGuidancePerDay:        15,
			LimitDreamAnalysesPerDay:   20,
			LimitRecommendationsPerDay: 25,
			LimitMoonRitualsPerDay:     20,
			LimitJournalMax:            500,
			LimitCollectionMax:         1000,
		},
		Flags:    []string{"priority_support", "advanced_ai", "stripe"},
		Lifetime: false,
	},
	TierFounders: {
		Plan: TierFounders,
		EffectiveLimits: map[string]int{
			LimitIdentifyPerDay:        999,
			LimitGuidancePerDay:        200,
			LimitDreamAnalysesPerDay:   200,
			LimitRecommendationsPerDay: 300,
			LimitMoonRitualsPerDay:     200,
			LimitJournalMax:            2000,
			LimitCollectionMax:         2000,
		},
		Flags:    []string{"lifetime", "founder", "priority_support", "stripe"},
		Lifetime: true,
	},
}

// planAliases maps marketing tier names onto canonical tiers.
var planAliases = map[string]string{
	"explorer": TierFree,
	"emissary": TierPremium,
	"ascended": TierPro,
	"esper":    TierFounders,
}

// NormalizeTier maps any raw tier string onto a canonical tier. Unknown or
// empty input resolves to the free tier; garbage is not an error state.
func NormalizeTier(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := planDetails[v]; ok {
		return v
	}
	if canonical, ok := planAliases[v]; ok {
		return canonical
	}
	return TierFree
}

// Resolve returns the PlanDetails for a raw tier string. The result is a
// defensive copy: mutating it never affects the frozen table or later
// resolutions.
func Resolve(raw string) model.PlanDetails {
	tier := NormalizeTier(raw)
	src := planDetails[tier]

	limits := make(map[string]int, len(src.EffectiveLimits))
	for k, v := range src.EffectiveLimits {
		limits[k] = v
	}
	flags := make([]string, len(src.Flags))
	copy(flags, src.Flags)

	return model.PlanDetails{
		Plan:            src.Plan,
		Tier:            tier,
		EffectiveLimits: limits,
		Flags:           flags,
		Lifetime:        src.Lifetime,
	}
}

// Tiers returns the canonical tier names in display order.
func Tiers() []string {
	return []string{TierFree, TierPremium, TierPro, TierFounders}
}
