// Package intent normalizes free-text needs, chakra names, and moon phases
// into the closed vocabularies the scoring and ritual code operates on.
//
// Default policies (part of the tested contract, not incidental fallbacks):
//   - an input set that resolves to nothing becomes {KeyBalance}
//   - an unrecognized chakra name falls back to its whitespace-stripped
//     lowercase form, and ultimately to "root"
package intent

import "strings"

// Canonical intent keys. Produced only by ResolveIntentKeys; never taken
// from user input directly.
const (
	KeyGrounding      = "grounding"
	KeyLove           = "love"
	KeyProtection     = "protection"
	KeyCreativity     = "creativity"
	KeyAbundance      = "abundance"
	KeyClarity        = "clarity"
	KeySleep          = "sleep"
	KeyAnxiety        = "anxiety"
	KeyFocus          = "focus"
	KeyIntuition      = "intuition"
	KeyTransformation = "transformation"
	KeyBalance        = "balance"
)

// Vocabulary lists every canonical intent key in a fixed order.
var Vocabulary = []string{
	KeyGrounding, KeyLove, KeyProtection, KeyCreativity,
	KeyAbundance, KeyClarity, KeySleep, KeyAnxiety,
	KeyFocus, KeyIntuition, KeyTransformation, KeyBalance,
}

var vocabularySet = func() map[string]bool {
	m := make(map[string]bool, len(Vocabulary))
	for _, k := range Vocabulary {
		m[k] = true
	}
	return m
}()

// intentAliases maps common phrasings onto canonical keys.
var intentAliases = map[string]string{
	"stress":         KeyAnxiety,
	"worry":          KeyAnxiety,
	"calm":           KeyAnxiety,
	"calming":        KeyAnxiety,
	"anxious":        KeyAnxiety,
	"money":          KeyAbundance,
	"wealth":         KeyAbundance,
	"prosperity":     KeyAbundance,
	"success":        KeyAbundance,
	"insomnia":       KeySleep,
	"rest":           KeySleep,
	"dreams":         KeySleep,
	"romance":        KeyLove,
	"relationship":   KeyLove,
	"self-love":      KeyLove,
	"compassion":     KeyLove,
	"safety":         KeyProtection,
	"shielding":      KeyProtection,
	"grounded":       KeyGrounding,
	"stability":      KeyGrounding,
	"psychic":        KeyIntuition,
	"insight":        KeyClarity,
	"wisdom":         KeyClarity,
	"truth":          KeyClarity,
	"concentration":  KeyFocus,
	"study":          KeyFocus,
	"inspiration":    KeyCreativity,
	"art":            KeyCreativity,
	"change":         KeyTransformation,
	"new beginnings": KeyTransformation,
	"harmony":        KeyBalance,
	"peace":          KeyBalance,
}

// ResolveIntentKeys maps raw inputs to canonical intent keys. Unmatched
// values are dropped silently; an empty result becomes {KeyBalance} so
// downstream scoring never sees an empty set. Result order follows first
// appearance in the inputs.
func ResolveIntentKeys(raw []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	for _, in := range raw {
		v := strings.ToLower(strings.TrimSpace(in))
		if v == "" {
			continue
		}
		if vocabularySet[v] {
			add(v)
			continue
		}
		if key, ok := intentAliases[v]; ok {
			add(key)
			continue
		}
		// Fuzzy fallback: first vocabulary key containing the input.
		for _, key := range Vocabulary {
			if strings.Contains(key, v) {
				add(key)
				break
			}
		}
	}
	if len(out) == 0 {
		out = append(out, KeyBalance)
	}
	return out
}
