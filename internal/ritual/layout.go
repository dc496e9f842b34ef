package ritual

import (
	"strings"

	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/intent"
	"github.com/crystal-grimoire/backend/internal/model"
	"github.com/crystal-grimoire/backend/internal/recommend"
)

var chakraDisplay = map[string]string{
	intent.ChakraRoot:        "Root",
	intent.ChakraSacral:      "Sacral",
	intent.ChakraSolarPlexus: "Solar Plexus",
	intent.ChakraHeart:       "Heart",
	intent.ChakraThroat:      "Throat",
	intent.ChakraThirdEye:    "Third Eye",
	intent.ChakraCrown:       "Crown",
}

var chakraPlacement = map[string]string{
	intent.ChakraRoot:        "at the base of the spine",
	intent.ChakraSacral:      "just below the navel",
	intent.ChakraSolarPlexus: "above the navel",
	intent.ChakraHeart:       "at the center of the chest",
	intent.ChakraThroat:      "at the base of the throat",
	intent.ChakraThirdEye:    "between the eyebrows",
	intent.ChakraCrown:       "just above the top of the head",
}

// BuildLayout assembles a chakra layout covering the requested chakras in
// the order given, one distinct crystal per chakra. An empty request means
// the full root-to-crown sequence. Crystals the user owns are preferred;
// gaps are filled from the catalog, first by affinity scoring, then by the
// first unused record. No crystal ever appears twice in one layout.
func BuildLayout(cat *catalog.Catalog, profile model.UserProfile, chakraKeys []string) []model.PlacementStep {
	chakras := resolveChakras(chakraKeys)
	owned := ownedRecords(cat, profile.OwnedCrystalNames)
	scorer := recommend.New(cat)
	used := make(map[string]bool)

	steps := make([]model.PlacementStep, 0, len(chakras))
	for i, chakra := range chakras {
		rec := pickForChakra(cat, scorer, owned, used, chakra)
		step := model.PlacementStep{
			Chakra:   chakraDisplay[chakra],
			Position: i + 1,
		}
		if rec != nil {
			used[rec.ID] = true
			step.CrystalID = rec.ID
			step.Crystal = rec.Name
			step.Guidance = "Place " + rec.Name + " " + chakraPlacement[chakra] + "."
		}
		steps = append(steps, step)
	}
	return steps
}

// resolveChakras normalizes the requested keys and drops duplicates while
// preserving request order. No keys means every chakra, root to crown.
func resolveChakras(chakraKeys []string) []string {
	if len(chakraKeys) == 0 {
		return intent.ChakraOrder
	}
	seen := make(map[string]bool, len(chakraKeys))
	out := make([]string, 0, len(chakraKeys))
	for _, raw := range chakraKeys {
		chakra := intent.NormalizeChakra(raw)
		if seen[chakra] {
			continue
		}
		seen[chakra] = true
		out = append(out, chakra)
	}
	return out
}

func pickForChakra(cat *catalog.Catalog, scorer *recommend.Scorer, owned []*model.CrystalRecord, used map[string]bool, chakra string) *model.CrystalRecord {
	// Owned crystal covering the chakra wins.
	for _, rec := range owned {
		if used[rec.ID] {
			continue
		}
		if coversChakra(rec, chakra) {
			return rec
		}
	}

	// Otherwise score the catalog on the chakra's backing intent.
	exclude := make([]string, 0, len(used))
	for id := range used {
		exclude = append(exclude, id)
	}
	recs := scorer.Recommend(recommend.Query{
		IntentKeys: []string{intent.ChakraIntent(chakra)},
		Exclude:    exclude,
		Limit:      recommend.MaxLimit,
	})
	for _, r := range recs {
		if r.Score > 0 && coversChakra(r.Crystal, chakra) {
			return r.Crystal
		}
	}
	for _, r := range recs {
		if r.Score > 0 {
			return r.Crystal
		}
	}

	// Last resort: the first unused catalog entry.
	for _, rec := range cat.All() {
		if !used[rec.ID] {
			return rec
		}
	}
	return nil
}

func ownedRecords(cat *catalog.Catalog, names []string) []*model.CrystalRecord {
	var out []*model.CrystalRecord
	for _, name := range names {
		if rec := cat.FindByName(name); rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

func coversChakra(rec *model.CrystalRecord, chakra string) bool {
	for _, c := range rec.Chakras {
		if intent.NormalizeChakra(strings.TrimSpace(c)) == chakra {
			return true
		}
	}
	return false
}
