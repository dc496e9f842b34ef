package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"name":"Amethyst"}`, `{"name":"Amethyst"}`},
		{"json fence", "```json\n{\"name\":\"Amethyst\"}\n```", `{"name":"Amethyst"}`},
		{"plain fence", "```\n{\"name\":\"Amethyst\"}\n```", `{"name":"Amethyst"}`},
		{"uppercase tag", "```JSON\n{}\n```", `{}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n  ", `{}`},
		{"fence on one line", "```{\"a\":1}```", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripFences(tc.in))
		})
	}
}

func TestNormalizeConfidence(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{85, 85},
		{0.85, 85}, // fractions scale up
		{1, 100},   // one is a fraction, not a percent
		{0, 0},
		{150, 100}, // clamped
		{-5, 0},
		{72.6, 73},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeConfidence(tc.in), "input %v", tc.in)
	}
}

func TestParseIdentification(t *testing.T) {
	raw := "```json\n" + `{
        "name": " Amethyst ",
        "variety": "Chevron",
        "scientificName": "SiO2",
        "confidence": 0.92,
        "description": "A purple quartz.",
        "chakras": ["Third Eye", "", "Crown"],
        "healingProperties": ["calming"],
        "careInstructions": {"cleansing": ["running water"]},
        "colors": ["purple"]
    }` + "\n```"

	id, err := ParseIdentification(raw)
	require.NoError(t, err)
	assert.Equal(t, "Amethyst", id.Name)
	assert.Equal(t, 92, id.Confidence)
	assert.Equal(t, []string{"Third Eye", "Crown"}, id.Chakras, "blank entries dropped")
	assert.Equal(t, []string{"running water"}, id.Care.Cleansing)
}

func TestParseIdentificationDegradesGracefully(t *testing.T) {
	id, err := ParseIdentification("I think this might be some kind of quartz?")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Specimen", id.Name)
	assert.Equal(t, 0, id.Confidence)
	assert.Contains(t, id.Description, "quartz")

	_, err = ParseIdentification("   ")
	assert.Error(t, err, "empty output is an upstream failure, not a specimen")
}

func TestParseGuidance(t *testing.T) {
	raw := "```json\n" + `{
        "recommendedCrystals": [
            {"name": "Rose Quartz", "reason": "opens the heart", "howToUse": "wear it"},
            {"name": "  ", "reason": "dropped"}
        ],
        "guidance": "Be gentle with yourself.",
        "affirmation": "I am open to love."
    }` + "\n```"

	g, err := ParseGuidance(raw)
	require.NoError(t, err)
	require.Len(t, g.Crystals, 1)
	assert.Equal(t, "Rose Quartz", g.Crystals[0].Name)
	assert.Equal(t, "Be gentle with yourself.", g.Guidance)
}

func TestParseGuidanceRejectsEmpty(t *testing.T) {
	_, err := ParseGuidance("not json at all")
	assert.Error(t, err)

	_, err = ParseGuidance(`{"recommendedCrystals": [], "guidance": ""}`)
	assert.Error(t, err)
}
