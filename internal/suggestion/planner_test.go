package suggestion

import (
	"testing"

	"quartermaster-backend/internal/finance"
	"quartermaster-backend/internal/models"
)

func suggestion(id uint, priority string, cost float64) DishSuggestion {
	return DishSuggestion{DishID: id, DishName: "dish", Priority: priority, EstimatedCost: cost}
}

func TestBuildDailyPlan_FillsFixedSlots(t *testing.T) {
	suggestions := []DishSuggestion{
		suggestion(1, PriorityHigh, 10000),
		suggestion(2, PriorityHigh, 10000),
		suggestion(3, PriorityHigh, 10000),
		suggestion(4, PriorityHigh, 10000),
		suggestion(5, PriorityMedium, 8000),
		suggestion(6, PriorityMedium, 8000),
		suggestion(7, PriorityMedium, 8000),
	}

	plan := BuildDailyPlan(suggestions, 100, 65000)

	if len(plan.Meals) != 3 {
		t.Fatalf("got %d meals, want 3", len(plan.Meals))
	}
	wantCounts := map[string]int{
		models.MealMorning: 2, // 2 high
		models.MealNoon:    3, // 1 high + 2 medium
		models.MealEvening: 2, // 1 high + 1 medium
	}
	used := map[uint]bool{}
	for _, meal := range plan.Meals {
		if len(meal.Dishes) != wantCounts[meal.Meal] {
			t.Errorf("%s has %d dishes, want %d", meal.Meal, len(meal.Dishes), wantCounts[meal.Meal])
		}
		for _, d := range meal.Dishes {
			if used[d.DishID] {
				t.Errorf("dish %d planned twice", d.DishID)
			}
			used[d.DishID] = true
		}
	}
}

func TestBuildDailyPlan_ShortSupplyLeavesSlotsEmpty(t *testing.T) {
	suggestions := []DishSuggestion{
		suggestion(1, PriorityHigh, 10000),
		suggestion(2, PriorityMedium, 8000),
	}

	plan := BuildDailyPlan(suggestions, 50, 65000)

	total := 0
	for _, meal := range plan.Meals {
		total += len(meal.Dishes)
	}
	if total != 2 {
		t.Errorf("planned %d dishes, want 2 (no backfilling)", total)
	}
}

func TestBuildDailyPlan_BudgetClassification(t *testing.T) {
	mk := func(cost float64) []DishSuggestion {
		return []DishSuggestion{suggestion(1, PriorityHigh, cost)}
	}

	// Budget per person 10000 over 10 people = 100000 total.
	under := BuildDailyPlan(mk(5000), 10, 10000)
	if under.BudgetStatus != finance.BudgetUnder {
		t.Errorf("5000/person on a 10000 budget = %s, want under", under.BudgetStatus)
	}

	within := BuildDailyPlan(mk(9000), 10, 10000)
	if within.BudgetStatus != finance.BudgetWithin {
		t.Errorf("9000/person on a 10000 budget = %s, want within", within.BudgetStatus)
	}

	over := BuildDailyPlan(mk(11000), 10, 10000)
	if over.BudgetStatus != finance.BudgetOver {
		t.Errorf("11000/person on a 10000 budget = %s, want over", over.BudgetStatus)
	}
}

func TestBuildDailyPlan_TotalsScaleWithPersonnel(t *testing.T) {
	suggestions := []DishSuggestion{suggestion(1, PriorityHigh, 12000)}

	plan := BuildDailyPlan(suggestions, 100, 65000)
	if plan.TotalCost != 1200000 {
		t.Errorf("total cost = %v, want 1200000", plan.TotalCost)
	}
	if plan.TotalBudget != 6500000 {
		t.Errorf("total budget = %v, want 6500000", plan.TotalBudget)
	}
}

func TestBuildDailyPlan_ZeroPersonnel(t *testing.T) {
	plan := BuildDailyPlan([]DishSuggestion{suggestion(1, PriorityHigh, 12000)}, 0, 65000)
	if plan.TotalCost != 0 || plan.TotalBudget != 0 {
		t.Errorf("zero personnel should zero totals: cost=%v budget=%v", plan.TotalCost, plan.TotalBudget)
	}
}
