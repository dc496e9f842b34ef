package ritual

import (
	"strings"
	"time"

	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/intent"
	"github.com/crystal-grimoire/backend/internal/model"
)

// DailyFilter narrows the highlight pool before the daily index is applied.
// Zero-value fields do not filter.
type DailyFilter struct {
	Intent string
	Chakra string
	Mood   string
}

func (f DailyFilter) empty() bool {
	return f.Intent == "" && f.Chakra == "" && f.Mood == ""
}

func (f DailyFilter) matches(rec *model.CrystalRecord) bool {
	if f.Intent != "" {
		keys := intent.ResolveIntentKeys([]string{f.Intent})
		hit := false
		for _, key := range keys {
			for _, have := range rec.Intents {
				if have == key {
					hit = true
					break
				}
			}
		}
		if !hit {
			return false
		}
	}
	if f.Chakra != "" && !coversChakra(rec, intent.NormalizeChakra(f.Chakra)) {
		return false
	}
	if mood := strings.ToLower(strings.TrimSpace(f.Mood)); mood != "" {
		hit := false
		for _, term := range append(rec.HealingProperties, rec.Keywords...) {
			if strings.Contains(strings.ToLower(term), mood) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// DailyCrystal returns the featured crystal for the UTC day containing t.
// The pick rotates deterministically through the highlight pool, narrowed
// by the filter when one is given, so every caller asking the same question
// sees the same crystal on the same day. A filter that matches nothing
// falls back to the full pool.
func DailyCrystal(cat *catalog.Catalog, t time.Time, filter DailyFilter) *model.CrystalRecord {
	pool := cat.Highlighted()
	if len(pool) == 0 {
		return nil
	}
	if !filter.empty() {
		narrowed := make([]*model.CrystalRecord, 0, len(pool))
		for _, rec := range pool {
			if filter.matches(rec) {
				narrowed = append(narrowed, rec)
			}
		}
		if len(narrowed) > 0 {
			pool = narrowed
		}
	}
	return pool[t.UTC().YearDay()%len(pool)]
}
