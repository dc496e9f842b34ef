package plan

import "github.com/crystal-grimoire/backend/internal/model"

// Action keys counted by the usage ledger.
const (
	ActionIdentify       = "crystal_identification"
	ActionGuidance       = "crystal_guidance"
	ActionRecommendation = "crystal_recommendations"
	ActionHealingLayout  = "healing_layout"
	ActionMoonRitual     = "moon_ritual"
	ActionDreamAnalysis  = "dream_analysis"
)

// ActionLimit binds an action to its daily limit name and the wording used in
// user-facing limit messages.
type ActionLimit struct {
	LimitKey    string
	UsageField  string
	Description string
}

var actionLimits = map[string]ActionLimit{
	ActionIdentify: {
		LimitKey:    LimitIdentifyPerDay,
		UsageField:  "crystalIdentification",
		Description: "crystal identifications",
	},
	ActionGuidance: {
		LimitKey:    LimitGuidancePerDay,
		UsageField:  "crystalGuidance",
		Description: "crystal guidance requests",
	},
	ActionRecommendation: {
		LimitKey:    LimitRecommendationsPerDay,
		UsageField:  "recommendations",
		Description: "recommendations",
	},
	ActionHealingLayout: {
		LimitKey:    LimitRecommendationsPerDay,
		UsageField:  "healingLayouts",
		Description: "healing layout requests",
	},
	ActionMoonRitual: {
		LimitKey:    LimitMoonRitualsPerDay,
		UsageField:  "moonRituals",
		Description: "moon ritual lookups",
	},
	ActionDreamAnalysis: {
		LimitKey:    LimitDreamAnalysesPerDay,
		UsageField:  "dreamAnalyses",
		Description: "dream analyses",
	},
}

// LookupAction returns the limit binding for an action key.
func LookupAction(action string) (ActionLimit, bool) {
	al, ok := actionLimits[action]
	return al, ok
}

// DailyLimitFor returns the daily cap for an action under the given plan, or
// ok=false when the action has no configured limit.
func DailyLimitFor(details model.PlanDetails, action string) (int, bool) {
	al, ok := actionLimits[action]
	if !ok {
		return 0, false
	}
	limit, ok := details.EffectiveLimits[al.LimitKey]
	return limit, ok
}
