package plan

import (
	"testing"

	"github.com/crystal-grimoire/backend/internal/model"
)

func TestNormalizeTier(t *testing.T) {
	cases := map[string]string{
		"Premium":  TierPremium,
		"Emissary": TierPremium,
		"ASCENDED": TierPro,
		"esper":    TierFounders,
		"explorer": TierFree,
		"":         TierFree,
		"garbage":  TierFree,
		" pro ":    TierPro,
	}
	for in, want := range cases {
		if got := NormalizeTier(in); got != want {
			t.Errorf("NormalizeTier(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_AliasMatchesCanonical(t *testing.T) {
	for alias, canonical := range map[string]string{
		"explorer": TierFree,
		"emissary": TierPremium,
		"ascended": TierPro,
		"esper":    TierFounders,
	} {
		a := Resolve(alias)
		c := Resolve(canonical)
		if a.Plan != c.Plan || a.Lifetime != c.Lifetime {
			t.Fatalf("alias %s differs from canonical %s", alias, canonical)
		}
		for k, v := range c.EffectiveLimits {
			if a.EffectiveLimits[k] != v {
				t.Fatalf("alias %s limit %s = %d, want %d", alias, k, a.EffectiveLimits[k], v)
			}
		}
	}
}

func TestResolve_DefensiveCopy(t *testing.T) {
	first := Resolve(TierPremium)
	first.EffectiveLimits[LimitIdentifyPerDay] = 999
	first.Flags[0] = "mutated"

	fresh := Resolve(TierPremium)
	if fresh.EffectiveLimits[LimitIdentifyPerDay] != 15 {
		t.Fatalf("limit mutation leaked into frozen table: %d", fresh.EffectiveLimits[LimitIdentifyPerDay])
	}
	if fresh.Flags[0] != "priority_support" {
		t.Fatalf("flag mutation leaked into frozen table: %s", fresh.Flags[0])
	}
}

func TestDailyLimitFor(t *testing.T) {
	free := Resolve(TierFree)
	if limit, ok := DailyLimitFor(free, ActionIdentify); !ok || limit != 3 {
		t.Fatalf("free identify limit = %d/%v, want 3/true", limit, ok)
	}
	if _, ok := DailyLimitFor(free, "unknown_action"); ok {
		t.Fatal("unknown action should have no limit")
	}
	// healing_layout shares the recommendations daily limit
	if limit, _ := DailyLimitFor(free, ActionHealingLayout); limit != 2 {
		t.Fatalf("healing layout limit = %d, want 2", limit)
	}
}

func TestCatalogMetadata_SortedWithFeatures(t *testing.T) {
	meta := CatalogMetadata()
	if len(meta) != 4 {
		t.Fatalf("metadata entries = %d, want 4", len(meta))
	}
	for i, m := range meta {
		if m.SortOrder != i {
			t.Fatalf("entry %s out of order: sortOrder %d at index %d", m.PlanID, m.SortOrder, i)
		}
		if len(m.Features) < 3 {
			t.Fatalf("entry %s has %d feature bullets, want >= 3", m.PlanID, len(m.Features))
		}
	}
}

func TestBuildStatus_NormalizesNilMaps(t *testing.T) {
	st := BuildStatus(Resolve(TierPremium), model.UsageSnapshot{})
	if st.Usage.DailyCounts == nil || st.Usage.LifetimeCounts == nil {
		t.Fatal("nil usage maps not normalized")
	}
	if st.Limits[LimitIdentifyPerDay] != 15 {
		t.Fatalf("limits not carried: %d", st.Limits[LimitIdentifyPerDay])
	}
}
