package gemini

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/crystal-grimoire/backend/internal/model"
)

// StripFences removes a surrounding markdown code fence, with or without a
// language tag, and trims whitespace. Text without fences passes through.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		first := strings.TrimSpace(s[:i])
		if len(first) <= 8 && !strings.ContainsAny(first, "{}") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// rawIdentification tolerates the numeric looseness of model output before
// it is normalized into a model.Identification.
type rawIdentification struct {
	Name             string                 `json:"name"`
	Variety          string                 `json:"variety"`
	ScientificName   string                 `json:"scientificName"`
	AlternativeNames []string               `json:"alternativeNames"`
	Confidence       float64                `json:"confidence"`
	Description      string                 `json:"description"`
	Chakras          []string               `json:"chakras"`
	ZodiacSigns      []string               `json:"zodiacSigns"`
	Elements         []string               `json:"elements"`
	Healing          []string               `json:"healingProperties"`
	Care             model.CareInstructions `json:"careInstructions"`
	Colors           []string               `json:"colors"`
}

// NormalizeConfidence maps model-reported confidence onto an integer
// percentage. Values at or below one are treated as fractions; everything
// is clamped to [0, 100].
func NormalizeConfidence(raw float64) int {
	if raw <= 1 {
		raw *= 100
	}
	c := int(math.Round(raw))
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// ParseIdentification turns raw model output into an Identification.
// Unparseable but non-empty output degrades to an unknown-specimen result
// carrying the text, so one malformed response does not fail the request.
func ParseIdentification(raw string) (model.Identification, error) {
	text := StripFences(raw)
	if text == "" {
		return model.Identification{}, fmt.Errorf("empty identification response: %w", model.ErrInternal)
	}

	var parsed rawIdentification
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return model.Identification{
			Name:        "Unknown Specimen",
			Confidence:  0,
			Description: text,
		}, nil
	}

	name := strings.TrimSpace(parsed.Name)
	if name == "" {
		name = "Unknown Specimen"
	}
	return model.Identification{
		Name:             name,
		Variety:          strings.TrimSpace(parsed.Variety),
		ScientificName:   strings.TrimSpace(parsed.ScientificName),
		AlternativeNames: cleanList(parsed.AlternativeNames),
		Confidence:       NormalizeConfidence(parsed.Confidence),
		Description:      strings.TrimSpace(parsed.Description),
		Chakras:          cleanList(parsed.Chakras),
		ZodiacSigns:      cleanList(parsed.ZodiacSigns),
		Elements:         cleanList(parsed.Elements),
		Healing:          cleanList(parsed.Healing),
		Care:             parsed.Care,
		Colors:           cleanList(parsed.Colors),
	}, nil
}

// ParseGuidance turns raw model output into a Guidance. Unlike
// identification, guidance with no parseable crystals is an error: there is
// nothing useful to show the user.
func ParseGuidance(raw string) (model.Guidance, error) {
	text := StripFences(raw)
	if text == "" {
		return model.Guidance{}, fmt.Errorf("empty guidance response: %w", model.ErrInternal)
	}

	var parsed model.Guidance
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return model.Guidance{}, fmt.Errorf("malformed guidance response: %w", model.ErrInternal)
	}

	crystals := parsed.Crystals[:0]
	for _, c := range parsed.Crystals {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name != "" {
			crystals = append(crystals, c)
		}
	}
	parsed.Crystals = crystals
	if len(parsed.Crystals) == 0 && strings.TrimSpace(parsed.Guidance) == "" {
		return model.Guidance{}, fmt.Errorf("guidance response had no content: %w", model.ErrInternal)
	}
	return parsed, nil
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if v := strings.TrimSpace(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
