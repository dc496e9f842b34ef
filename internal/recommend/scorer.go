// Package recommend ranks the crystal catalog against resolved intent keys
// and an optional user profile. Scoring is additive and deterministic; ties
// break by ascending name so results are reproducible.
package recommend

import (
	"sort"
	"strings"

	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/intent"
	"github.com/crystal-grimoire/backend/internal/model"
)

// Score weights. Each rule is independent and summed.
const (
	weightIntentMatch  = 4
	weightChakraMatch  = 3
	weightZodiacMatch  = 2
	weightMoodMatch    = 2
	weightVerbatimName = 5
)

// DefaultLimit and MaxLimit bound the size of a recommendation response.
const (
	DefaultLimit = 10
	MaxLimit     = 25
)

// Query carries the scoring inputs for one recommendation request.
type Query struct {
	// IntentKeys must already be canonical (see intent.ResolveIntentKeys).
	IntentKeys []string
	// RawNeed is the user's free-text need, used only for the verbatim
	// crystal-name override.
	RawNeed string
	Profile model.UserProfile
	Limit   int
	// Exclude lists record ids to drop from the result (e.g. already
	// owned entries on endpoints that want only new suggestions).
	Exclude []string
}

// Scorer ranks catalog entries.
type Scorer struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Scorer { return &Scorer{cat: cat} }

// Score computes the additive score for one record. It never errors: absent
// profile fields simply contribute nothing.
func (s *Scorer) Score(rec *model.CrystalRecord, keys []string, q Query) (int, []string) {
	score := 0
	var matched []string

	for _, key := range keys {
		if recordHasTerm(rec, key) {
			score += weightIntentMatch
			matched = append(matched, key)
		}
	}

	if q.Profile.FocusChakra != "" {
		focus := intent.NormalizeChakra(q.Profile.FocusChakra)
		for _, ch := range rec.Chakras {
			if intent.NormalizeChakra(ch) == focus {
				score += weightChakraMatch
				break
			}
		}
	}

	if q.Profile.ZodiacSign != "" {
		sign := strings.ToLower(strings.TrimSpace(q.Profile.ZodiacSign))
		for _, z := range rec.ZodiacSigns {
			if strings.ToLower(z) == sign {
				score += weightZodiacMatch
				break
			}
		}
	}

	if mood := strings.ToLower(strings.TrimSpace(q.Profile.Mood)); mood != "" {
		if termsContain(rec.HealingProperties, mood) || termsContain(rec.Keywords, mood) {
			score += weightMoodMatch
		}
	}

	// Naming a crystal directly always surfaces it top-of-list.
	if q.RawNeed != "" {
		need := strings.ToLower(q.RawNeed)
		if strings.Contains(need, strings.ToLower(rec.Name)) {
			score += weightVerbatimName
		}
	}

	return score, matched
}

// Recommend scores every catalog entry, sorts descending by score with
// ascending-name tie-break, and returns min(limit, catalogSize) entries.
// Entries scoring zero backfill the tail when fewer positive matches exist
// than requested.
func (s *Scorer) Recommend(q Query) []model.Recommendation {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	excluded := make(map[string]bool, len(q.Exclude))
	for _, id := range q.Exclude {
		excluded[id] = true
	}
	owned := make(map[string]bool, len(q.Profile.OwnedCrystalNames))
	for _, name := range q.Profile.OwnedCrystalNames {
		owned[strings.ToLower(strings.TrimSpace(name))] = true
	}

	keys := q.IntentKeys
	if len(keys) == 0 {
		keys = []string{intent.KeyBalance}
	}

	var results []model.Recommendation
	for _, rec := range s.cat.All() {
		if excluded[rec.ID] {
			continue
		}
		score, matched := s.Score(rec, keys, q)
		if matched == nil {
			matched = []string{}
		}
		results = append(results, model.Recommendation{
			Crystal:        rec,
			Score:          score,
			MatchedIntents: matched,
			Owned:          owned[strings.ToLower(rec.Name)],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Crystal.Name < results[j].Crystal.Name
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// recordHasTerm reports whether key appears in the record's intents,
// keywords, or healing properties (case-insensitive set membership).
func recordHasTerm(rec *model.CrystalRecord, key string) bool {
	k := strings.ToLower(key)
	for _, set := range [][]string{rec.Intents, rec.Keywords, rec.HealingProperties} {
		for _, term := range set {
			if strings.ToLower(term) == k {
				return true
			}
		}
	}
	return false
}

// termsContain reports whether any term equals or contains the needle.
func termsContain(terms []string, needle string) bool {
	for _, term := range terms {
		t := strings.ToLower(term)
		if t == needle || strings.Contains(t, needle) {
			return true
		}
	}
	return false
}
