package catalog

import (
	"testing"

	"github.com/crystal-grimoire/backend/internal/model"
)

func TestFindByName_CaseInsensitiveAndAliases(t *testing.T) {
	c := Default()

	if r := c.FindByName("Amethyst"); r == nil || r.ID != "amethyst" {
		t.Fatalf("primary name lookup failed: %+v", r)
	}
	if r := c.FindByName("  purple quartz "); r == nil || r.ID != "amethyst" {
		t.Fatalf("alias lookup failed: %+v", r)
	}
	if r := c.FindByName("ROCK CRYSTAL"); r == nil || r.ID != "clear-quartz" {
		t.Fatalf("uppercase alias lookup failed: %+v", r)
	}
	if r := c.FindByName("kryptonite"); r != nil {
		t.Fatalf("unknown name should return nil, got %+v", r)
	}
}

func TestAll_StableOrderAndUniqueIDs(t *testing.T) {
	c := Default()

	first := c.All()
	second := c.All()
	if len(first) != len(second) {
		t.Fatalf("All returned different lengths: %d vs %d", len(first), len(second))
	}
	seen := make(map[string]bool, len(first))
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("All order not stable at index %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if seen[first[i].ID] {
			t.Fatalf("duplicate catalog id %s", first[i].ID)
		}
		seen[first[i].ID] = true
	}
}

func TestHighlighted_SubsetOrWholeCatalog(t *testing.T) {
	c := Default()

	pool := c.Highlighted()
	if len(pool) == 0 {
		t.Fatal("highlight pool is empty")
	}
	for _, r := range pool {
		if !r.Highlight {
			t.Fatalf("non-highlighted record %s in pool", r.ID)
		}
	}

	// A catalog without highlight flags falls back to everything.
	plain := New([]*model.CrystalRecord{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	})
	if got := len(plain.Highlighted()); got != 2 {
		t.Fatalf("fallback pool size = %d, want 2", got)
	}
}
