package suggestion

import (
	"github.com/shopspring/decimal"

	"quartermaster-backend/internal/finance"
	"quartermaster-backend/internal/models"
)

// mealSlots: fixed per-meal dish quotas for an assembled day.
var mealSlots = []struct {
	meal   string
	high   int
	medium int
}{
	{models.MealMorning, 2, 0},
	{models.MealNoon, 1, 2},
	{models.MealEvening, 1, 1},
}

type PlannedMeal struct {
	Meal   string           `json:"meal"`
	Dishes []DishSuggestion `json:"dishes"`
	Cost   float64          `json:"cost"` // per person
}

type DailyPlan struct {
	Date            string        `json:"date"`
	TotalPersonnel  int           `json:"total_personnel"`
	BudgetPerPerson float64       `json:"budget_per_person"`
	TotalBudget     float64       `json:"total_budget"`
	TotalCost       float64       `json:"total_cost"`
	BudgetStatus    string        `json:"budget_status"` // under / within / over
	Meals           []PlannedMeal `json:"meals"`
}

// BuildDailyPlan assembles a bounded day of meals from ranked suggestions.
// Each dish is used at most once; slots left unfilled stay empty rather
// than being backfilled from a lower priority. The day is classified
// against budget_per_person x personnel: under below 80%, over past 100%.
func BuildDailyPlan(suggestions []DishSuggestion, totalPersonnel int, budgetPerPerson float64) *DailyPlan {
	used := make(map[uint]bool, len(suggestions))
	personnel := decimal.NewFromInt(int64(totalPersonnel))
	totalCost := decimal.Zero

	plan := &DailyPlan{
		TotalPersonnel:  totalPersonnel,
		BudgetPerPerson: budgetPerPerson,
		Meals:           make([]PlannedMeal, 0, len(mealSlots)),
	}

	for _, slot := range mealSlots {
		meal := PlannedMeal{Meal: slot.meal, Dishes: make([]DishSuggestion, 0, slot.high+slot.medium)}
		mealCost := decimal.Zero

		take := func(priority string, n int) {
			for _, s := range suggestions {
				if n == 0 {
					return
				}
				if used[s.DishID] || s.Priority != priority {
					continue
				}
				used[s.DishID] = true
				meal.Dishes = append(meal.Dishes, s)
				mealCost = mealCost.Add(decimal.NewFromFloat(s.EstimatedCost))
				n--
			}
		}
		take(PriorityHigh, slot.high)
		take(PriorityMedium, slot.medium)

		meal.Cost = mealCost.InexactFloat64()
		totalCost = totalCost.Add(mealCost.Mul(personnel))
		plan.Meals = append(plan.Meals, meal)
	}

	budget := decimal.NewFromFloat(budgetPerPerson).Mul(personnel)
	plan.TotalBudget = budget.InexactFloat64()
	plan.TotalCost = totalCost.InexactFloat64()
	plan.BudgetStatus = finance.ClassifyBudget(totalCost, budget)
	return plan
}
