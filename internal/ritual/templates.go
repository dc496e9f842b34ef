package ritual

import (
	"github.com/crystal-grimoire/backend/internal/intent"
	"github.com/crystal-grimoire/backend/internal/model"
)

var ritualTemplates = map[string]model.RitualTemplate{
	intent.PhaseNewMoon: {
		Phase:           intent.PhaseNewMoon,
		Focus:           "Setting intentions and planting seeds for the cycle ahead",
		RecommendedKeys: []string{intent.KeyTransformation, intent.KeyClarity, intent.KeyIntuition},
		Steps: []string{
			"Cleanse your space and your crystals before you begin.",
			"Write down up to three intentions for the coming cycle.",
			"Hold your crystal and speak each intention aloud.",
			"Place the crystal on top of your written intentions overnight.",
		},
		Affirmation: "I plant the seeds of my becoming in fertile darkness.",
		JournalPrompts: []string{
			"What am I ready to begin?",
			"What would I attempt if I trusted myself completely?",
		},
	},
	intent.PhaseWaxingCrescent: {
		Phase:           intent.PhaseWaxingCrescent,
		Focus:           "Taking the first small steps toward your intentions",
		RecommendedKeys: []string{intent.KeyCreativity, intent.KeyAbundance, intent.KeyFocus},
		Steps: []string{
			"Revisit the intentions you set at the new moon.",
			"Choose one concrete action you can take this week.",
			"Carry your crystal with you as a reminder of that commitment.",
		},
		Affirmation: "Each small step I take gathers light.",
		JournalPrompts: []string{
			"What is the smallest next step I can take today?",
			"Where do I already see early signs of growth?",
		},
	},
	intent.PhaseFirstQuarter: {
		Phase:           intent.PhaseFirstQuarter,
		Focus:           "Meeting resistance with resolve",
		RecommendedKeys: []string{intent.KeyFocus, intent.KeyGrounding, intent.KeyProtection},
		Steps: []string{
			"Name one obstacle standing between you and your intention.",
			"Hold your crystal and visualize moving through that obstacle.",
			"Decide on one adjustment to your plan and write it down.",
		},
		Affirmation: "I meet challenge with steady strength.",
		JournalPrompts: []string{
			"What resistance am I feeling, and what is it teaching me?",
			"What needs to be adjusted, not abandoned?",
		},
	},
	intent.PhaseWaxingGibbous: {
		Phase:           intent.PhaseWaxingGibbous,
		Focus:           "Refining and trusting the process",
		RecommendedKeys: []string{intent.KeyClarity, intent.KeyBalance, intent.KeyAbundance},
		Steps: []string{
			"Review your progress without judgment.",
			"Meditate with your crystal for five minutes on patience.",
			"Refine one habit that supports your intention.",
		},
		Affirmation: "What I nurture is already ripening.",
		JournalPrompts: []string{
			"What is almost ready in my life?",
			"Where is patience asking to be practiced?",
		},
	},
	intent.PhaseFullMoon: {
		Phase:           intent.PhaseFullMoon,
		Focus:           "Celebration, gratitude, and release under full light",
		RecommendedKeys: []string{intent.KeyIntuition, intent.KeyLove, intent.KeyBalance},
		Steps: []string{
			"Place your crystals in moonlight to charge overnight.",
			"List three things that have come to fruition this cycle.",
			"Name one thing you are ready to release, and let it go with a breath.",
		},
		Affirmation: "I stand in my fullness and release what is complete.",
		JournalPrompts: []string{
			"What am I celebrating right now?",
			"What has served its purpose and can be released?",
		},
	},
	intent.PhaseWaningGibbous: {
		Phase:           intent.PhaseWaningGibbous,
		Focus:           "Gratitude and sharing what you have learned",
		RecommendedKeys: []string{intent.KeyLove, intent.KeyAbundance, intent.KeyClarity},
		Steps: []string{
			"Write a short gratitude list with your crystal nearby.",
			"Share one insight from this cycle with someone you trust.",
			"Offer yourself the same generosity you offer others.",
		},
		Affirmation: "I give thanks, and in giving I receive.",
		JournalPrompts: []string{
			"What wisdom did this cycle bring me?",
			"Who could benefit from what I have learned?",
		},
	},
	intent.PhaseLastQuarter: {
		Phase:           intent.PhaseLastQuarter,
		Focus:           "Forgiveness and clearing what no longer serves",
		RecommendedKeys: []string{intent.KeyProtection, intent.KeyAnxiety, intent.KeyGrounding},
		Steps: []string{
			"Cleanse your crystals and your space.",
			"Write down one grudge or worry and safely discard the paper.",
			"Sit quietly with your crystal and practice forgiving yourself first.",
		},
		Affirmation: "I release the weight I was never meant to carry.",
		JournalPrompts: []string{
			"What am I still holding that I could set down?",
			"What does forgiveness look like for me this week?",
		},
	},
	intent.PhaseWaningCrescent: {
		Phase:           intent.PhaseWaningCrescent,
		Focus:           "Rest, surrender, and preparing for the next cycle",
		RecommendedKeys: []string{intent.KeySleep, intent.KeyBalance, intent.KeyIntuition},
		Steps: []string{
			"Slow down: light a candle and dim the room.",
			"Hold your crystal and take ten unhurried breaths.",
			"Go to bed early with your crystal on the nightstand.",
		},
		Affirmation: "In stillness I am restored.",
		JournalPrompts: []string{
			"What does my body need before the next cycle begins?",
			"What am I ready to dream into being?",
		},
	},
}

// TemplateFor returns the ritual script for a phase. Raw input is
// normalized first, so "Full Moon" and "full" both resolve. The returned
// template is a copy; callers may modify it freely.
func TemplateFor(rawPhase string) (model.RitualTemplate, bool) {
	key := intent.NormalizePhase(rawPhase)
	tpl, ok := ritualTemplates[key]
	if !ok {
		return model.RitualTemplate{}, false
	}
	return copyTemplate(tpl), true
}

// Templates returns all ritual scripts in cycle order.
func Templates() []model.RitualTemplate {
	out := make([]model.RitualTemplate, 0, len(intent.PhaseOrder))
	for _, phase := range intent.PhaseOrder {
		out = append(out, copyTemplate(ritualTemplates[phase]))
	}
	return out
}

func copyTemplate(tpl model.RitualTemplate) model.RitualTemplate {
	cp := tpl
	cp.RecommendedKeys = append([]string(nil), tpl.RecommendedKeys...)
	cp.Steps = append([]string(nil), tpl.Steps...)
	cp.JournalPrompts = append([]string(nil), tpl.JournalPrompts...)
	return cp
}
