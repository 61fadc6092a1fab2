package requirement

import (
	"time"

	"quartermaster-backend/internal/models"
	"quartermaster-backend/internal/productline"
)

// UnitRequirement: one unit's share of the requirement, summed over its
// meals in scope.
type UnitRequirement struct {
	UnitID    uint               `json:"unit_id"`
	UnitName  string             `json:"unit_name"`
	Personnel int                `json:"personnel"` // person-days in scope
	ByMeal    map[string]float64 `json:"by_meal"`
	Required  float64            `json:"required"`
}

// Result: quantity of a product line's derived ingredient needed to cook
// the menus in scope for the given personnel.
type Result struct {
	Line       string `json:"line"`
	Ingredient string `json:"ingredient"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	MenuDays   int    `json:"menu_days"` // daily menus actually present

	DishCount      int                `json:"dish_count"` // distinct dishes using the ingredient
	ByMeal         map[string]float64 `json:"by_meal"`
	Units          []UnitRequirement  `json:"units"`
	TotalPersonnel int                `json:"total_personnel"`
	TotalRequired  float64            `json:"total_required"`

	AveragePerPerson    float64 `json:"average_per_person"`
	RecommendedRawInput float64 `json:"recommended_raw_input"` // required / conversion rate
}

// Compute derives the requirement for one product line from the daily
// menus in scope and the live per-unit headcounts. Missing daily menus
// simply contribute nothing; an entirely empty scope yields a zeroed
// result, not an error.
func Compute(cfg productline.Config, dailyMenus []models.DailyMenu,
	units []models.Unit, overrides []models.PersonnelOverride, unitFilter []uint) *Result {

	res := &Result{
		Line:       string(cfg.Line),
		Ingredient: cfg.DerivedName,
		ByMeal:     map[string]float64{},
		Units:      make([]UnitRequirement, 0),
		MenuDays:   len(dailyMenus),
	}

	inScope := filterUnits(units, unitFilter)
	overrideIdx := indexOverrides(overrides)

	perUnit := make(map[uint]*UnitRequirement, len(inScope))
	for _, u := range inScope {
		perUnit[u.ID] = &UnitRequirement{UnitID: u.ID, UnitName: u.Name, ByMeal: map[string]float64{}}
	}

	dishesSeen := map[uint]bool{}
	for _, day := range dailyMenus {
		for _, u := range inScope {
			personnel := resolvePersonnel(u, day.Date, overrideIdx)
			perUnit[u.ID].Personnel += personnel
			res.TotalPersonnel += personnel
		}

		for _, meal := range day.Meals {
			for _, dish := range meal.Dishes {
				// A dish counts once per meal even when several of its
				// ingredient lines match the same product line.
				perServing, ok := matchedPerServing(cfg, dish)
				if !ok {
					continue
				}
				dishesSeen[dish.ID] = true

				for _, u := range inScope {
					personnel := resolvePersonnel(u, day.Date, overrideIdx)
					required := perServing * float64(personnel)
					ur := perUnit[u.ID]
					ur.ByMeal[meal.Type] += required
					ur.Required += required
					res.ByMeal[meal.Type] += required
					res.TotalRequired += required
				}
			}
		}
	}

	for _, u := range inScope {
		res.Units = append(res.Units, *perUnit[u.ID])
	}
	res.DishCount = len(dishesSeen)
	if res.TotalPersonnel > 0 {
		res.AveragePerPerson = res.TotalRequired / float64(res.TotalPersonnel)
	}
	if cfg.ConversionRate > 0 {
		res.RecommendedRawInput = res.TotalRequired / cfg.ConversionRate
	}
	return res
}

// matchedPerServing returns the per-portion quantity of the first
// ingredient line of the dish matching the product line.
func matchedPerServing(cfg productline.Config, dish models.Dish) (float64, bool) {
	for _, ing := range dish.Ingredients {
		if !cfg.MatchesIngredient(ing.IngredientID, ing.IngredientName) {
			continue
		}
		servings := dish.Servings
		if servings <= 0 {
			servings = 1
		}
		return ing.Quantity / float64(servings), true
	}
	return 0, false
}

func resolvePersonnel(u models.Unit, date time.Time, overrides map[uint]map[string]int) int {
	if byDate, ok := overrides[u.ID]; ok {
		if p, ok := byDate[date.Format("2006-01-02")]; ok {
			return p
		}
	}
	return u.DefaultPersonnel
}

func filterUnits(units []models.Unit, filter []uint) []models.Unit {
	if len(filter) == 0 {
		return units
	}
	want := make(map[uint]bool, len(filter))
	for _, id := range filter {
		want[id] = true
	}
	out := make([]models.Unit, 0, len(filter))
	for _, u := range units {
		if want[u.ID] {
			out = append(out, u)
		}
	}
	return out
}

func indexOverrides(overrides []models.PersonnelOverride) map[uint]map[string]int {
	idx := make(map[uint]map[string]int)
	for _, o := range overrides {
		if idx[o.UnitID] == nil {
			idx[o.UnitID] = map[string]int{}
		}
		idx[o.UnitID][o.Date.Format("2006-01-02")] = o.Personnel
	}
	return idx
}
