package productline

import "strings"

// Line identifies one raw-material-to-derived-food conversion process.
// The processing stations all follow the same daily ledger pattern; only
// these configuration records differ between them.
type Line string

const (
	SoyCurd          Line = "soy-curd"
	BeanSprouts      Line = "bean-sprouts"
	PickledVegetable Line = "pickled-vegetable"
	PoultryMeat      Line = "poultry-meat"
	Sausage          Line = "sausage"
	FishCake         Line = "fish-cake"
)

// Config is the immutable per-line configuration: names, default conversion
// rate (derived output per unit of raw input) and default unit prices used
// when a ledger upsert omits them.
type Config struct {
	Line        Line
	RawName     string
	DerivedName string

	// ConversionRate: derived kg per raw kg.
	ConversionRate float64

	RawPrice       float64 // default per kg of raw input
	DerivedPrice   float64 // default per kg of derived product
	ByproductPrice float64 // default per kg of byproduct (dregs, offal)
	ByproductName  string

	// MatchTerms: lower-case substrings used to recognize the derived
	// product in menu ingredient lines that lack an ingredient link.
	MatchTerms []string
	// IngredientIDs: linked ingredient ids; an exact id match wins over
	// any substring fallback.
	IngredientIDs []uint
}

var registry = map[Line]Config{
	SoyCurd: {
		Line:           SoyCurd,
		RawName:        "soybeans",
		DerivedName:    "soy curd",
		ConversionRate: 2.2,
		RawPrice:       25000,
		DerivedPrice:   20000,
		ByproductPrice: 3000,
		ByproductName:  "soy dregs",
		MatchTerms:     []string{"soy curd", "tofu"},
	},
	BeanSprouts: {
		Line:           BeanSprouts,
		RawName:        "mung beans",
		DerivedName:    "bean sprouts",
		ConversionRate: 7.0,
		RawPrice:       40000,
		DerivedPrice:   12000,
		ByproductPrice: 0,
		MatchTerms:     []string{"bean sprout", "sprouts"},
	},
	PickledVegetable: {
		Line:           PickledVegetable,
		RawName:        "fresh vegetables",
		DerivedName:    "pickled vegetables",
		ConversionRate: 0.8,
		RawPrice:       8000,
		DerivedPrice:   15000,
		ByproductPrice: 0,
		MatchTerms:     []string{"pickled", "salted vegetable"},
	},
	PoultryMeat: {
		Line:           PoultryMeat,
		RawName:        "live poultry",
		DerivedName:    "poultry meat",
		ConversionRate: 0.75,
		RawPrice:       60000,
		DerivedPrice:   90000,
		ByproductPrice: 10000,
		ByproductName:  "offal",
		MatchTerms:     []string{"chicken", "duck", "poultry"},
	},
	Sausage: {
		Line:           Sausage,
		RawName:        "pork",
		DerivedName:    "sausage",
		ConversionRate: 0.9,
		RawPrice:       110000,
		DerivedPrice:   140000,
		ByproductPrice: 0,
		MatchTerms:     []string{"sausage"},
	},
	FishCake: {
		Line:           FishCake,
		RawName:        "fresh fish",
		DerivedName:    "fish cake",
		ConversionRate: 0.65,
		RawPrice:       45000,
		DerivedPrice:   85000,
		ByproductPrice: 5000,
		ByproductName:  "fish scraps",
		MatchTerms:     []string{"fish cake", "fish paste"},
	},
}

// Get resolves a line slug (as used in URLs) to its configuration.
func Get(s string) (Config, bool) {
	cfg, ok := registry[Line(strings.ToLower(strings.TrimSpace(s)))]
	return cfg, ok
}

// All returns every configured line, ordered for stable listing.
func All() []Config {
	order := []Line{SoyCurd, BeanSprouts, PickledVegetable, PoultryMeat, Sausage, FishCake}
	out := make([]Config, 0, len(order))
	for _, l := range order {
		out = append(out, registry[l])
	}
	return out
}

// MatchesIngredient reports whether an ingredient line belongs to this
// product line. A linked ingredient id match is authoritative; the
// substring fallback only covers legacy rows without a link.
func (c Config) MatchesIngredient(ingredientID *uint, name string) bool {
	if ingredientID != nil {
		for _, id := range c.IngredientIDs {
			if id == *ingredientID {
				return true
			}
		}
	}
	lower := strings.ToLower(name)
	for _, term := range c.MatchTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
