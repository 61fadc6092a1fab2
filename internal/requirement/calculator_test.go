package requirement

import (
	"testing"
	"time"

	"quartermaster-backend/internal/models"
	"quartermaster-backend/internal/productline"
)

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func approx(a, b float64) bool {
	diff := a - b
	return diff < 1e-9 && diff > -1e-9
}

func beanSprouts(t *testing.T) productline.Config {
	t.Helper()
	cfg, ok := productline.Get("bean-sprouts")
	if !ok {
		t.Fatal("bean-sprouts line not registered")
	}
	return cfg
}

func sproutDish(id uint, servings int, quantity float64) models.Dish {
	return models.Dish{
		ID:       id,
		Name:     "stir-fried bean sprouts",
		Servings: servings,
		Ingredients: []models.DishIngredient{
			{IngredientName: "bean sprouts", Quantity: quantity, Unit: "kg"},
		},
	}
}

func oneMealDay(d time.Time, mealType string, dishes ...models.Dish) models.DailyMenu {
	return models.DailyMenu{
		Date:  d,
		Meals: []models.Meal{{Type: mealType, Dishes: dishes}},
	}
}

func TestCompute_ScalesByServingsAndPersonnel(t *testing.T) {
	// 1 kg per 2 servings -> 0.5 kg per person; 100 people -> 50 kg.
	day := oneMealDay(date(2024, 1, 10), models.MealNoon, sproutDish(1, 2, 1))
	units := []models.Unit{{ID: 1, Name: "1st company", DefaultPersonnel: 100}}

	res := Compute(beanSprouts(t), []models.DailyMenu{day}, units, nil, nil)

	if res.TotalRequired != 50 {
		t.Errorf("total required = %v, want 50", res.TotalRequired)
	}
	if res.TotalPersonnel != 100 {
		t.Errorf("total personnel = %v, want 100", res.TotalPersonnel)
	}
	if res.DishCount != 1 {
		t.Errorf("dish count = %v, want 1", res.DishCount)
	}
	if got := res.ByMeal[models.MealNoon]; got != 50 {
		t.Errorf("noon requirement = %v, want 50", got)
	}
}

func TestCompute_LinearInPersonnel(t *testing.T) {
	day := oneMealDay(date(2024, 1, 10), models.MealNoon, sproutDish(1, 2, 1))
	cfg := beanSprouts(t)

	base := Compute(cfg, []models.DailyMenu{day},
		[]models.Unit{{ID: 1, DefaultPersonnel: 100}}, nil, nil)
	doubled := Compute(cfg, []models.DailyMenu{day},
		[]models.Unit{{ID: 1, DefaultPersonnel: 200}}, nil, nil)

	if doubled.TotalRequired != 2*base.TotalRequired {
		t.Errorf("doubling personnel: required %v -> %v, want exact doubling",
			base.TotalRequired, doubled.TotalRequired)
	}
}

func TestCompute_DishCountedOncePerMeal(t *testing.T) {
	// Two matching ingredient lines on the same dish must not double-count.
	dish := models.Dish{
		ID:       1,
		Servings: 1,
		Ingredients: []models.DishIngredient{
			{IngredientName: "bean sprouts", Quantity: 0.3, Unit: "kg"},
			{IngredientName: "fresh bean sprouts", Quantity: 0.2, Unit: "kg"},
		},
	}
	day := oneMealDay(date(2024, 1, 10), models.MealMorning, dish)
	units := []models.Unit{{ID: 1, DefaultPersonnel: 10}}

	res := Compute(beanSprouts(t), []models.DailyMenu{day}, units, nil, nil)

	// Only the first matching line counts: 0.3 * 10.
	if res.TotalRequired != 3 {
		t.Errorf("total required = %v, want 3", res.TotalRequired)
	}
}

func TestCompute_OverrideBeatsDefaultPersonnel(t *testing.T) {
	d := date(2024, 1, 10)
	day := oneMealDay(d, models.MealNoon, sproutDish(1, 1, 1))
	units := []models.Unit{{ID: 1, DefaultPersonnel: 100}}
	overrides := []models.PersonnelOverride{{UnitID: 1, Date: d, Personnel: 60}}

	res := Compute(beanSprouts(t), []models.DailyMenu{day}, units, overrides, nil)

	if res.TotalRequired != 60 {
		t.Errorf("total required = %v, want 60 (override applied)", res.TotalRequired)
	}
	// Override on another date must not leak.
	otherDay := []models.PersonnelOverride{{UnitID: 1, Date: d.AddDate(0, 0, 1), Personnel: 60}}
	res = Compute(beanSprouts(t), []models.DailyMenu{day}, units, otherDay, nil)
	if res.TotalRequired != 100 {
		t.Errorf("total required = %v, want 100 (override on other date ignored)", res.TotalRequired)
	}
}

func TestCompute_UnitFilter(t *testing.T) {
	day := oneMealDay(date(2024, 1, 10), models.MealNoon, sproutDish(1, 1, 1))
	units := []models.Unit{
		{ID: 1, Name: "1st company", DefaultPersonnel: 100},
		{ID: 2, Name: "2nd company", DefaultPersonnel: 80},
	}

	all := Compute(beanSprouts(t), []models.DailyMenu{day}, units, nil, nil)
	if all.TotalRequired != 180 {
		t.Errorf("unfiltered required = %v, want 180", all.TotalRequired)
	}

	only2 := Compute(beanSprouts(t), []models.DailyMenu{day}, units, nil, []uint{2})
	if only2.TotalRequired != 80 {
		t.Errorf("filtered required = %v, want 80", only2.TotalRequired)
	}
	if len(only2.Units) != 1 || only2.Units[0].UnitID != 2 {
		t.Errorf("filtered units = %+v, want only unit 2", only2.Units)
	}
}

func TestCompute_EmptyScopeIsZeroedNotError(t *testing.T) {
	res := Compute(beanSprouts(t), nil,
		[]models.Unit{{ID: 1, DefaultPersonnel: 100}}, nil, nil)

	if res.TotalRequired != 0 || res.TotalPersonnel != 0 || res.MenuDays != 0 {
		t.Errorf("empty scope should be zeroed: %+v", res)
	}
	if res.AveragePerPerson != 0 {
		t.Errorf("average per person = %v, want 0 without personnel", res.AveragePerPerson)
	}
}

func TestCompute_ZeroServingsTreatedAsOne(t *testing.T) {
	day := oneMealDay(date(2024, 1, 10), models.MealNoon, sproutDish(1, 0, 2))
	units := []models.Unit{{ID: 1, DefaultPersonnel: 5}}

	res := Compute(beanSprouts(t), []models.DailyMenu{day}, units, nil, nil)

	if res.TotalRequired != 10 {
		t.Errorf("total required = %v, want 10 (servings defaulted to 1)", res.TotalRequired)
	}
}

func TestCompute_ConversionRoundTrip(t *testing.T) {
	cfg := beanSprouts(t)
	day := oneMealDay(date(2024, 1, 10), models.MealEvening, sproutDish(1, 3, 2))
	units := []models.Unit{{ID: 1, DefaultPersonnel: 120}}

	res := Compute(cfg, []models.DailyMenu{day}, units, nil, nil)

	if !approx(res.RecommendedRawInput*cfg.ConversionRate, res.TotalRequired) {
		t.Errorf("raw input %v * rate %v = %v, want %v",
			res.RecommendedRawInput, cfg.ConversionRate,
			res.RecommendedRawInput*cfg.ConversionRate, res.TotalRequired)
	}
}

func TestCompute_WeekAggregatesAcrossDays(t *testing.T) {
	cfg := beanSprouts(t)
	units := []models.Unit{{ID: 1, DefaultPersonnel: 50}}

	days := []models.DailyMenu{
		oneMealDay(date(2024, 1, 8), models.MealNoon, sproutDish(1, 1, 1)),
		oneMealDay(date(2024, 1, 9), models.MealEvening, sproutDish(2, 1, 1)),
	}

	res := Compute(cfg, days, units, nil, nil)
	if res.TotalRequired != 100 {
		t.Errorf("total required = %v, want 100", res.TotalRequired)
	}
	if res.TotalPersonnel != 100 { // 50 per day, two days in scope
		t.Errorf("total personnel = %v, want 100 person-days", res.TotalPersonnel)
	}
	if res.DishCount != 2 {
		t.Errorf("dish count = %v, want 2", res.DishCount)
	}
	if res.AveragePerPerson != 1 {
		t.Errorf("average per person = %v, want 1", res.AveragePerPerson)
	}
	if len(res.Units) != 1 || res.Units[0].Required != 100 {
		t.Errorf("unit breakdown wrong: %+v", res.Units)
	}
}
