// Package catalog holds the immutable crystal reference table. The table is
// built once at init and is safe for unsynchronized concurrent reads.
package catalog

import (
	"strings"

	"github.com/crystal-grimoire/backend/internal/model"
)

// Catalog indexes crystal records by primary name and alias.
type Catalog struct {
	records []*model.CrystalRecord
	byName  map[string]*model.CrystalRecord
}

// New builds a catalog from the given records. Declaration order is preserved
// by All, which the daily-pick rotation depends on.
func New(records []*model.CrystalRecord) *Catalog {
	c := &Catalog{
		records: records,
		byName:  make(map[string]*model.CrystalRecord, len(records)*2),
	}
	for _, r := range records {
		c.byName[normalizeName(r.Name)] = r
		for _, alias := range r.Aliases {
			key := normalizeName(alias)
			if _, exists := c.byName[key]; !exists {
				c.byName[key] = r
			}
		}
	}
	return c
}

// Default returns the built-in library shipped with the service.
func Default() *Catalog { return defaultCatalog }

var defaultCatalog = New(library)

// FindByName resolves a crystal by primary name or alias. Lookup is
// case-insensitive; unknown names return nil, never an error.
func (c *Catalog) FindByName(name string) *model.CrystalRecord {
	return c.byName[normalizeName(name)]
}

// All returns every record in declaration order. Callers must not mutate the
// returned records.
func (c *Catalog) All() []*model.CrystalRecord {
	out := make([]*model.CrystalRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Highlighted returns the daily-pick pool: records flagged highlight, or the
// whole catalog when none are flagged.
func (c *Catalog) Highlighted() []*model.CrystalRecord {
	var out []*model.CrystalRecord
	for _, r := range c.records {
		if r.Highlight {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return c.All()
	}
	return out
}

// Size returns the number of records in the catalog.
func (c *Catalog) Size() int { return len(c.records) }

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
