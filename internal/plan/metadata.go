package plan

import "github.com/crystal-grimoire/backend/internal/model"

// Metadata carries the marketing view of one tier for pricing pages.
type Metadata struct {
	PlanID       string   `json:"planId"`
	DisplayName  string   `json:"displayName"`
	Tagline      string   `json:"tagline"`
	DisplayPrice string   `json:"displayPrice"`
	// PriceCents is the charge amount in minor units; zero means the tier
	// is not purchasable through the payment flow.
	PriceCents   int64    `json:"priceCents"`
	BillingCycle string   `json:"billingCycle"`
	Recommended  bool     `json:"recommended"`
	Features     []string `json:"features"`
	SortOrder    int      `json:"sortOrder"`
}

var catalogMetadata = map[string]Metadata{
	TierFree: {
		PlanID:       TierFree,
		DisplayName:  "Explorer",
		Tagline:      "Track your crystals, journal dreams, and sample AI rituals.",
		DisplayPrice: "Free",
		BillingCycle: "freemium",
		Features: []string{
			"3 identifications each day",
			"Dream journal sync with verified email",
			"Starter rituals and moon reminders",
		},
		SortOrder: 0,
	},
	TierPremium: {
		PlanID:       TierPremium,
		DisplayName:  "Emissary",
		Tagline:      "Daily guidance, richer rituals, and expanded journal space.",
		DisplayPrice: "$8.99 / month",
		PriceCents:   899,
		BillingCycle: "monthly",
		Recommended:  true,
		Features: []string{
			"15 identifications every day",
			"Priority AI guidance responses",
			"Moon rituals synced across devices",
			"Curated healing layouts with intent presets",
		},
		SortOrder: 1,
	},
	TierPro: {
		PlanID:       TierPro,
		DisplayName:  "Ascended",
		Tagline:      "Advanced AI ceremonies and deep-dive guidance for collectors.",
		DisplayPrice: "$19.99 / month",
		PriceCents:   1999,
		BillingCycle: "monthly",
		Features: []string{
			"40 identifications per day",
			"Extended dream and ritual insights",
			"Crystal compatibility matrix and export tools",
			"Weekly moon and chakra ceremony scripts",
		},
		SortOrder: 2,
	},
	TierFounders: {
		PlanID:       TierFounders,
		DisplayName:  "Founders Circle",
		Tagline:      "Lifetime access to every ritual, ceremony, and beta release.",
		DisplayPrice: "$499 one-time",
		PriceCents:   49900,
		BillingCycle: "lifetime",
		Features: []string{
			"Unlimited identifications and rituals",
			"Founders badge and Discord role",
			"Priority feature voting and concierge support",
		},
		SortOrder: 3,
	},
}

// MetadataFor returns the display metadata for one canonical tier.
func MetadataFor(tier string) (Metadata, bool) {
	m, ok := catalogMetadata[tier]
	if !ok {
		return Metadata{}, false
	}
	features := make([]string, len(m.Features))
	copy(features, m.Features)
	m.Features = features
	return m, true
}

// CatalogMetadata returns a copy of the display metadata for every tier in
// sort order.
func CatalogMetadata() []Metadata {
	out := make([]Metadata, 0, len(catalogMetadata))
	for _, tier := range Tiers() {
		m := catalogMetadata[tier]
		features := make([]string, len(m.Features))
		copy(features, m.Features)
		m.Features = features
		out = append(out, m)
	}
	return out
}

// Status is the combined plan + usage view returned to clients.
type Status struct {
	Plan     string             `json:"plan"`
	Tier     string             `json:"tier"`
	Lifetime bool               `json:"lifetime"`
	Flags    []string           `json:"flags"`
	Limits   map[string]int     `json:"limits"`
	Usage    model.UsageSnapshot `json:"usage"`
}

// BuildStatus merges resolved plan details with a usage snapshot. Nil maps in
// the snapshot are normalized to empty so clients always see objects.
func BuildStatus(details model.PlanDetails, usage model.UsageSnapshot) Status {
	if usage.DailyCounts == nil {
		usage.DailyCounts = map[string]int{}
	}
	if usage.LifetimeCounts == nil {
		usage.LifetimeCounts = map[string]int{}
	}
	return Status{
		Plan:     details.Plan,
		Tier:     details.Tier,
		Lifetime: details.Lifetime,
		Flags:    details.Flags,
		Limits:   details.EffectiveLimits,
		Usage:    usage,
	}
}
