package catalog

import "github.com/crystal-grimoire/backend/internal/model"

// library is the built-in crystal table. Intents use the canonical intent
// vocabulary (see internal/intent); chakras and zodiac signs use display
// names and are normalized at comparison time.
var library = []*model.CrystalRecord{
	{
		ID:             "clear-quartz",
		Name:           "Clear Quartz",
		Aliases:        []string{"Rock Crystal", "Master Healer"},
		ScientificName: "Silicon Dioxide (SiO2)",
		Intents:        []string{"clarity", "balance", "focus"},
		Keywords:       []string{"amplification", "healing", "manifestation", "purification"},
		Chakras:        []string{"Crown", "All Chakras"},
		ZodiacSigns:    []string{"Aries", "Leo"},
		Elements:       []string{"Spirit"},
		HealingProperties: []string{
			"Amplifies energy", "Enhances clarity", "Supports all healing",
		},
		Description: "The master healer crystal that amplifies energy and intentions and works harmoniously with all other crystals.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Running water", "Moonlight", "Sage smoke"},
			Charging:  []string{"Sunlight", "Full moon", "Crystal clusters"},
			Storage:   []string{"Keep away from prolonged direct heat"},
			Usage:     []string{"Meditation", "Energy work", "Manifestation"},
		},
		Highlight: true,
	},
	{
		ID:             "amethyst",
		Name:           "Amethyst",
		Aliases:        []string{"Purple Quartz", "Stone of Sobriety"},
		ScientificName: "Silicon Dioxide (SiO2)",
		Intents:        []string{"intuition", "anxiety", "sleep", "protection"},
		Keywords:       []string{"meditation", "calming", "spiritual growth"},
		Chakras:        []string{"Crown", "Third Eye"},
		ZodiacSigns:    []string{"Pisces", "Virgo", "Aquarius", "Capricorn"},
		Elements:       []string{"Air", "Water"},
		HealingProperties: []string{
			"Calms the mind", "Enhances intuition", "Promotes spiritual growth",
		},
		Description: "A powerful crystal for spiritual growth, protection, and clarity that promotes peaceful energy.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Moonlight", "Sage smoke", "Sound cleansing"},
			Charging:  []string{"Full moon", "Amethyst clusters"},
			Storage:   []string{"Avoid prolonged sunlight - may fade"},
			Usage:     []string{"Meditation", "Dream work", "Psychic protection"},
		},
		Highlight: true,
	},
	{
		ID:             "rose-quartz",
		Name:           "Rose Quartz",
		Aliases:        []string{"Love Stone", "Heart Stone"},
		ScientificName: "Silicon Dioxide (SiO2)",
		Intents:        []string{"love", "balance"},
		Keywords:       []string{"compassion", "self-love", "forgiveness"},
		Chakras:        []string{"Heart"},
		ZodiacSigns:    []string{"Taurus", "Libra"},
		Elements:       []string{"Earth", "Water"},
		HealingProperties: []string{
			"Opens heart chakra", "Promotes self-love", "Heals emotional wounds",
		},
		Description: "The stone of unconditional love and infinite peace, the most important crystal for healing the heart.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Running water", "Moonlight", "Rose petals"},
			Charging:  []string{"Dawn sunlight", "Full moon"},
			Storage:   []string{"May fade in direct sunlight"},
			Usage:     []string{"Heart healing", "Relationship work", "Self-acceptance"},
		},
		Highlight: true,
	},
	{
		ID:             "black-tourmaline",
		Name:           "Black Tourmaline",
		Aliases:        []string{"Schorl", "Protection Stone"},
		ScientificName: "Sodium Iron Aluminum Borosilicate",
		Intents:        []string{"protection", "grounding"},
		Keywords:       []string{"cleansing", "stability", "shielding"},
		Chakras:        []string{"Root"},
		ZodiacSigns:    []string{"Capricorn", "Scorpio"},
		Elements:       []string{"Earth"},
		HealingProperties: []string{
			"Absorbs negative energy", "Provides grounding", "Relieves anxiety",
		},
		Description: "A powerful grounding stone that provides protection from negative energies and creates a shield around the aura.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Running water", "Earth burial", "Sage smoke"},
			Charging:  []string{"Earth connection", "Root chakra meditation"},
			Storage:   []string{"Cleanse regularly - absorbs negative energy"},
			Usage:     []string{"Protection rituals", "Grounding meditation", "Space clearing"},
		},
		Highlight: true,
	},
	{
		ID:             "citrine",
		Name:           "Citrine",
		Aliases:        []string{"Success Stone", "Merchant Stone"},
		ScientificName: "Silicon Dioxide (SiO2)",
		Intents:        []string{"abundance", "creativity", "focus"},
		Keywords:       []string{"success", "confidence", "manifestation", "joy"},
		Chakras:        []string{"Solar Plexus", "Sacral"},
		ZodiacSigns:    []string{"Gemini", "Aries", "Leo", "Libra"},
		Elements:       []string{"Fire"},
		HealingProperties: []string{
			"Boosts confidence", "Attracts abundance", "Enhances creativity",
		},
		Description: "Known as the merchant's stone, Citrine attracts wealth and success while promoting joy and creativity.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Sunlight", "Running water"},
			Charging:  []string{"Sunlight", "Citrine clusters"},
			Storage:   []string{"Generally safe in any storage"},
			Usage:     []string{"Manifestation work", "Abundance rituals"},
		},
		Highlight: true,
	},
	{
		ID:             "moonstone",
		Name:           "Moonstone",
		Aliases:        []string{"Moon Stone", "Feminine Stone"},
		ScientificName: "Potassium Aluminum Silicate",
		Intents:        []string{"intuition", "transformation", "balance"},
		Keywords:       []string{"cycles", "new beginnings", "feminine energy"},
		Chakras:        []string{"Crown", "Third Eye", "Sacral"},
		ZodiacSigns:    []string{"Cancer", "Libra", "Scorpio"},
		Elements:       []string{"Water"},
		HealingProperties: []string{
			"Enhances intuition", "Balances emotions", "Supports new beginnings",
		},
		Description: "A stone of new beginnings strongly connected to the moon and intuition.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Moonlight", "Sage smoke", "Spring water"},
			Charging:  []string{"Full moon", "Lunar rituals"},
			Storage:   []string{"Softer stone - store separately"},
			Usage:     []string{"Moon rituals", "Intuitive work"},
		},
	},
	{
		ID:             "selenite",
		Name:           "Selenite",
		Aliases:        []string{"Satin Spar", "Liquid Light"},
		ScientificName: "Calcium Sulfate Dihydrate",
		Intents:        []string{"clarity", "balance", "protection"},
		Keywords:       []string{"cleansing", "charging", "peace"},
		Chakras:        []string{"Crown", "Third Eye"},
		ZodiacSigns:    []string{"Taurus", "Cancer"},
		Elements:       []string{"Air"},
		HealingProperties: []string{
			"Cleanses energy", "Enhances spiritual connection", "Promotes mental clarity",
		},
		Description: "A high-vibrational crystal that cleanses and charges other crystals and promotes mental clarity.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Sound vibrations", "Moonlight"},
			Charging:  []string{"Self-charging"},
			Storage:   []string{"Never submerge in water - dissolves"},
			Usage:     []string{"Charging plates", "Space clearing"},
		},
		Highlight: true,
	},
	{
		ID:             "lapis-lazuli",
		Name:           "Lapis Lazuli",
		Aliases:        []string{"Lapis", "Stone of Wisdom"},
		ScientificName: "Lazurite with Calcite and Pyrite",
		Intents:        []string{"clarity", "intuition", "focus"},
		Keywords:       []string{"truth", "communication", "wisdom"},
		Chakras:        []string{"Throat", "Third Eye"},
		ZodiacSigns:    []string{"Sagittarius", "Libra"},
		Elements:       []string{"Water", "Air"},
		HealingProperties: []string{
			"Encourages honest expression", "Sharpens the mind", "Opens the throat chakra",
		},
		Description: "A royal blue stone of wisdom and truth that strengthens communication and insight.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Dry salt", "Sage smoke"},
			Charging:  []string{"Moonlight"},
			Storage:   []string{"Avoid water - porous with pyrite inclusions"},
			Usage:     []string{"Journaling", "Public speaking preparation"},
		},
	},
	{
		ID:             "green-aventurine",
		Name:           "Green Aventurine",
		Aliases:        []string{"Stone of Opportunity"},
		ScientificName: "Silicon Dioxide with Fuchsite",
		Intents:        []string{"abundance", "love", "transformation"},
		Keywords:       []string{"luck", "opportunity", "optimism"},
		Chakras:        []string{"Heart"},
		ZodiacSigns:    []string{"Aries", "Leo"},
		Elements:       []string{"Earth"},
		HealingProperties: []string{
			"Attracts opportunity", "Soothes the heart", "Encourages optimism",
		},
		Description: "The stone of opportunity, thought to be the luckiest of all crystals for manifesting prosperity.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Running water", "Sage smoke"},
			Charging:  []string{"Morning sunlight", "Plant contact"},
			Storage:   []string{"Generally safe in any storage"},
			Usage:     []string{"Abundance work", "New ventures"},
		},
	},
	{
		ID:             "carnelian",
		Name:           "Carnelian",
		Aliases:        []string{"Artist Stone"},
		ScientificName: "Silicon Dioxide (Chalcedony)",
		Intents:        []string{"creativity", "focus", "transformation"},
		Keywords:       []string{"courage", "vitality", "motivation"},
		Chakras:        []string{"Sacral", "Solar Plexus"},
		ZodiacSigns:    []string{"Virgo", "Taurus", "Cancer", "Leo"},
		Elements:       []string{"Fire"},
		HealingProperties: []string{
			"Stimulates creativity", "Restores vitality", "Builds courage",
		},
		Description: "A stabilizing stone that restores vitality and stimulates creativity and courage.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Running water", "Moonlight"},
			Charging:  []string{"Sunlight"},
			Storage:   []string{"Generally safe in any storage"},
			Usage:     []string{"Creative projects", "Morning rituals"},
		},
	},
	{
		ID:             "hematite",
		Name:           "Hematite",
		Aliases:        []string{"Iron Rose", "Blood Stone"},
		ScientificName: "Iron Oxide (Fe2O3)",
		Intents:        []string{"grounding", "focus", "protection"},
		Keywords:       []string{"stability", "concentration", "strength"},
		Chakras:        []string{"Root"},
		ZodiacSigns:    []string{"Aries", "Aquarius"},
		Elements:       []string{"Earth"},
		HealingProperties: []string{
			"Grounds scattered energy", "Aids concentration", "Strengthens willpower",
		},
		Description: "A strongly grounding stone that anchors scattered energy and supports concentration.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Dry salt", "Sound vibrations"},
			Charging:  []string{"Earth burial", "Hematite clusters"},
			Storage:   []string{"Keep dry - may rust"},
			Usage:     []string{"Grounding meditation", "Study sessions"},
		},
	},
	{
		ID:             "lepidolite",
		Name:           "Lepidolite",
		Aliases:        []string{"Stone of Transition", "Lavenderine"},
		ScientificName: "Lithium Aluminum Silicate",
		Intents:        []string{"anxiety", "sleep", "balance", "transformation"},
		Keywords:       []string{"calming", "serenity", "rest"},
		Chakras:        []string{"Heart", "Third Eye"},
		ZodiacSigns:    []string{"Libra", "Pisces"},
		Elements:       []string{"Water"},
		HealingProperties: []string{
			"Eases anxiety", "Promotes restful sleep", "Softens transitions",
		},
		Description: "A lithium-bearing stone of transition that eases anxiety and supports restful sleep.",
		CareInstructions: model.CareInstructions{
			Cleansing: []string{"Sage smoke", "Sound vibrations"},
			Charging:  []string{"Moonlight"},
			Storage:   []string{"Soft stone - avoid water and abrasion"},
			Usage:     []string{"Bedside placement", "Evening meditation"},
		},
	},
}
