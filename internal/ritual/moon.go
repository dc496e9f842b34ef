// Package ritual computes lunar state and turns it into ritual scripts,
// chakra layouts, and the daily featured crystal.
package ritual

import (
	"math"
	"time"

	"github.com/crystal-grimoire/backend/internal/intent"
	"github.com/crystal-grimoire/backend/internal/model"
)

// Reference new moon used as the epoch for phase arithmetic.
var referenceNewMoon = time.Date(2024, time.January, 11, 11, 57, 0, 0, time.UTC)

// Mean synodic month in days.
const synodicDays = 29.530589

var phaseEmoji = map[string]string{
	intent.PhaseNewMoon:        "\U0001F311",
	intent.PhaseWaxingCrescent: "\U0001F312",
	intent.PhaseFirstQuarter:   "\U0001F313",
	intent.PhaseWaxingGibbous:  "\U0001F314",
	intent.PhaseFullMoon:       "\U0001F315",
	intent.PhaseWaningGibbous:  "\U0001F316",
	intent.PhaseLastQuarter:    "\U0001F317",
	intent.PhaseWaningCrescent: "\U0001F318",
}

var phaseIllumination = map[string]float64{
	intent.PhaseNewMoon:        0,
	intent.PhaseWaxingCrescent: 0.25,
	intent.PhaseFirstQuarter:   0.5,
	intent.PhaseWaxingGibbous:  0.75,
	intent.PhaseFullMoon:       1,
	intent.PhaseWaningGibbous:  0.75,
	intent.PhaseLastQuarter:    0.5,
	intent.PhaseWaningCrescent: 0.25,
}

// CurrentPhase buckets the moment t into one of the eight canonical phases
// by its position within the mean synodic cycle.
func CurrentPhase(t time.Time) string {
	frac := cycleFraction(t)
	switch {
	case frac < 0.0625:
		return intent.PhaseNewMoon
	case frac < 0.1875:
		return intent.PhaseWaxingCrescent
	case frac < 0.3125:
		return intent.PhaseFirstQuarter
	case frac < 0.4375:
		return intent.PhaseWaxingGibbous
	case frac < 0.5625:
		return intent.PhaseFullMoon
	case frac < 0.6875:
		return intent.PhaseWaningGibbous
	case frac < 0.8125:
		return intent.PhaseLastQuarter
	default:
		return intent.PhaseWaningCrescent
	}
}

// MoonAt returns the full lunar snapshot for the moment t.
func MoonAt(t time.Time) model.MoonSnapshot {
	phase := CurrentPhase(t)
	return model.MoonSnapshot{
		Phase:        phase,
		Emoji:        phaseEmoji[phase],
		Illumination: phaseIllumination[phase],
		Timestamp:    t.UTC(),
		NextFullMoon: nextAtFraction(t, 0.5),
		NextNewMoon:  nextAtFraction(t, 1.0),
	}
}

func cycleFraction(t time.Time) float64 {
	days := t.Sub(referenceNewMoon).Hours() / 24
	frac := math.Mod(days/synodicDays, 1)
	if frac < 0 {
		frac += 1
	}
	return frac
}

// nextAtFraction projects the next time the cycle reaches the given
// fraction (0.5 for full moon, 1.0 for the next new moon).
func nextAtFraction(t time.Time, target float64) time.Time {
	days := t.Sub(referenceNewMoon).Hours() / 24
	cycles := math.Floor(days / synodicDays)
	candidate := cycles + target
	if candidate*synodicDays <= days {
		candidate += 1
	}
	offset := time.Duration(candidate * synodicDays * 24 * float64(time.Hour))
	return referenceNewMoon.Add(offset)
}
