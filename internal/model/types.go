package model

import "time"

// CrystalRecord is an immutable catalog entry. The catalog is loaded once at
// process start and never mutated afterwards, so records are safe to share
// across requests without copying.
type CrystalRecord struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Aliases           []string          `json:"aliases,omitempty"`
	ScientificName    string            `json:"scientificName,omitempty"`
	Intents           []string          `json:"intents"`
	Keywords          []string          `json:"keywords,omitempty"`
	Chakras           []string          `json:"chakras"`
	ZodiacSigns       []string          `json:"zodiacSigns"`
	Elements          []string          `json:"elements"`
	HealingProperties []string          `json:"healingProperties"`
	Description       string            `json:"description,omitempty"`
	CareInstructions  CareInstructions  `json:"careInstructions"`
	Highlight         bool              `json:"highlight"`
}

// CareInstructions groups handling guidance for a crystal.
type CareInstructions struct {
	Cleansing []string `json:"cleansing,omitempty"`
	Charging  []string `json:"charging,omitempty"`
	Storage   []string `json:"storage,omitempty"`
	Usage     []string `json:"usage,omitempty"`
}

// UserProfile carries the optional per-request personalisation fields. Absent
// fields contribute a neutral score, never an error.
type UserProfile struct {
	ZodiacSign        string   `json:"zodiacSign,omitempty"`
	FocusChakra       string   `json:"focusChakra,omitempty"`
	Element           string   `json:"element,omitempty"`
	Mood              string   `json:"mood,omitempty"`
	OwnedCrystalNames []string `json:"ownedCrystalNames,omitempty"`
}

// PlanDetails is a resolved, defensively copied view of a subscription tier.
type PlanDetails struct {
	Plan            string         `json:"plan"`
	Tier            string         `json:"tier"`
	EffectiveLimits map[string]int `json:"effectiveLimits"`
	Flags           []string       `json:"flags"`
	Lifetime        bool           `json:"lifetime"`
}

// UsageSnapshot is the per-user counter document. DailyCounts reset on UTC
// day rollover; LifetimeCounts never reset.
type UsageSnapshot struct {
	DailyCounts    map[string]int `json:"dailyCounts"`
	LifetimeCounts map[string]int `json:"lifetimeCounts"`
	LastResetDate  string         `json:"lastResetDate,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt,omitempty"`
}

// Recommendation is one scored catalog entry in a RecommendationResult.
type Recommendation struct {
	Crystal        *CrystalRecord `json:"crystal"`
	Score          int            `json:"score"`
	MatchedIntents []string       `json:"matchedIntents"`
	Owned          bool           `json:"owned,omitempty"`
}

// PlacementStep is one chakra/crystal pairing in a healing layout.
type PlacementStep struct {
	Chakra    string `json:"chakra"`
	CrystalID string `json:"crystalId"`
	Crystal   string `json:"crystal"`
	Position  int    `json:"position"`
	Guidance  string `json:"guidance,omitempty"`
}

// RitualTemplate is the fixed script for one canonical moon phase.
type RitualTemplate struct {
	Phase            string   `json:"phase"`
	Focus            string   `json:"focus"`
	RecommendedKeys  []string `json:"recommendedIntents"`
	Steps            []string `json:"steps"`
	Affirmation      string   `json:"affirmation"`
	JournalPrompts   []string `json:"journalPrompts"`
}

// MoonSnapshot describes the computed lunar state at a point in time.
type MoonSnapshot struct {
	Phase        string    `json:"phase"`
	Emoji        string    `json:"emoji"`
	Illumination float64   `json:"illumination"`
	Timestamp    time.Time `json:"timestamp"`
	NextFullMoon time.Time `json:"nextFullMoon"`
	NextNewMoon  time.Time `json:"nextNewMoon"`
}

// Identification is the normalized result of an AI crystal identification.
type Identification struct {
	Name             string           `json:"name"`
	Variety          string           `json:"variety,omitempty"`
	ScientificName   string           `json:"scientificName,omitempty"`
	AlternativeNames []string         `json:"alternativeNames,omitempty"`
	Confidence       int              `json:"confidence"`
	Description      string           `json:"description,omitempty"`
	Chakras          []string         `json:"chakras,omitempty"`
	ZodiacSigns      []string         `json:"zodiacSigns,omitempty"`
	Elements         []string         `json:"elements,omitempty"`
	Healing          []string         `json:"healingProperties,omitempty"`
	Care             CareInstructions `json:"careInstructions"`
	Colors           []string         `json:"colors,omitempty"`
	Report           string           `json:"report,omitempty"`
}

// GuidanceCrystal is one crystal suggestion within a guidance response.
type GuidanceCrystal struct {
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	HowToUse string `json:"howToUse,omitempty"`
}

// Guidance is the normalized result of an AI guidance query.
type Guidance struct {
	Crystals      []GuidanceCrystal `json:"recommendedCrystals"`
	Guidance      string            `json:"guidance"`
	Affirmation   string            `json:"affirmation,omitempty"`
	MeditationTip string            `json:"meditationTip,omitempty"`
}

// SupportTicket is a user-filed support request.
type SupportTicket struct {
	TicketID  string    `json:"ticketId"`
	UserID    string    `json:"userId"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreditWallet is the per-user Seer Credits document.
type CreditWallet struct {
	Credits        int            `json:"credits"`
	LifetimeEarned int            `json:"lifetimeEarned"`
	DailyEarnCount map[string]int `json:"dailyEarnCount"`
	LastResetDate  string         `json:"lastResetDate,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt,omitempty"`
}
