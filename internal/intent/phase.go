package intent

import "strings"

// Canonical moon phase buckets, following the eight-phase cycle.
const (
	PhaseNewMoon        = "new_moon"
	PhaseWaxingCrescent = "waxing_crescent"
	PhaseFirstQuarter   = "first_quarter"
	PhaseWaxingGibbous  = "waxing_gibbous"
	PhaseFullMoon       = "full_moon"
	PhaseWaningGibbous  = "waning_gibbous"
	PhaseLastQuarter    = "last_quarter"
	PhaseWaningCrescent = "waning_crescent"
)

// PhaseOrder lists the canonical phases in cycle order.
var PhaseOrder = []string{
	PhaseNewMoon, PhaseWaxingCrescent, PhaseFirstQuarter, PhaseWaxingGibbous,
	PhaseFullMoon, PhaseWaningGibbous, PhaseLastQuarter, PhaseWaningCrescent,
}

var phaseAliases = map[string]string{
	"new":           PhaseNewMoon,
	"dark_moon":     PhaseNewMoon,
	"full":          PhaseFullMoon,
	"third_quarter": PhaseLastQuarter,
	"half_waxing":   PhaseFirstQuarter,
	"half_waning":   PhaseLastQuarter,
}

var phaseSet = func() map[string]bool {
	m := make(map[string]bool, len(PhaseOrder))
	for _, p := range PhaseOrder {
		m[p] = true
	}
	return m
}()

// NormalizePhase maps a raw phase string ("Full Moon", "waxing gibbous")
// onto a canonical bucket. Unrecognized input returns the empty string.
func NormalizePhase(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, " ", "_")
	v = strings.ReplaceAll(v, "-", "_")
	if phaseSet[v] {
		return v
	}
	if key, ok := phaseAliases[v]; ok {
		return key
	}
	return ""
}
