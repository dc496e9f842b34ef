package intent

import "strings"

// Canonical chakra keys. Spelled without separators so the strip-whitespace
// fallback in NormalizeChakra lands on the canonical form for the common
// long-form names.
const (
	ChakraRoot        = "root"
	ChakraSacral      = "sacral"
	ChakraSolarPlexus = "solarplexus"
	ChakraHeart       = "heart"
	ChakraThroat      = "throat"
	ChakraThirdEye    = "thirdeye"
	ChakraCrown       = "crown"
)

// ChakraOrder is the default root-to-crown sequence used when a healing
// layout request names no chakras.
var ChakraOrder = []string{
	ChakraRoot, ChakraSacral, ChakraSolarPlexus, ChakraHeart,
	ChakraThroat, ChakraThirdEye, ChakraCrown,
}

var chakraAliases = map[string]string{
	"base":         ChakraRoot,
	"muladhara":    ChakraRoot,
	"svadhisthana": ChakraSacral,
	"navel":        ChakraSacral,
	"manipura":     ChakraSolarPlexus,
	"solar":        ChakraSolarPlexus,
	"anahata":      ChakraHeart,
	"vishuddha":    ChakraThroat,
	"ajna":         ChakraThirdEye,
	"brow":         ChakraThirdEye,
	"sahasrara":    ChakraCrown,
}

var chakraSet = func() map[string]bool {
	m := make(map[string]bool, len(ChakraOrder))
	for _, c := range ChakraOrder {
		m[c] = true
	}
	return m
}()

// chakraIntents maps each chakra to the intent used when the layout has to
// fall back to the recommendation scorer.
var chakraIntents = map[string]string{
	ChakraRoot:        KeyGrounding,
	ChakraSacral:      KeyCreativity,
	ChakraSolarPlexus: KeyAbundance,
	ChakraHeart:       KeyLove,
	ChakraThroat:      KeyClarity,
	ChakraThirdEye:    KeyIntuition,
	ChakraCrown:       KeyBalance,
}

// NormalizeChakra maps long-form or Sanskrit chakra names onto canonical
// keys. Unrecognized names fall back to the whitespace-stripped lowercase of
// the input when that is canonical, and to "root" otherwise.
func NormalizeChakra(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return ChakraRoot
	}
	stripped := strings.ReplaceAll(strings.ReplaceAll(v, " ", ""), "_", "")
	if chakraSet[stripped] {
		return stripped
	}
	if key, ok := chakraAliases[stripped]; ok {
		return key
	}
	return ChakraRoot
}

// ChakraIntent returns the intent key backing a canonical chakra. Unknown
// keys map to KeyBalance.
func ChakraIntent(chakra string) string {
	if key, ok := chakraIntents[chakra]; ok {
		return key
	}
	return KeyBalance
}
