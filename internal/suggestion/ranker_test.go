package suggestion

import (
	"fmt"
	"testing"
	"time"

	"quartermaster-backend/internal/models"
)

var now = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func expiring(days int) *time.Time {
	d := now.Add(time.Duration(days) * 24 * time.Hour)
	return &d
}

func lot(name string, available, expired float64, expiryDays *int) models.InventoryLot {
	l := models.InventoryLot{
		ProductName:        name,
		Quantity:           available + expired,
		NonExpiredQuantity: available,
		ExpiredQuantity:    expired,
	}
	if expiryDays != nil {
		l.ExpiryDate = expiring(*expiryDays)
	}
	return l
}

func days(n int) *int { return &n }

func dish(id uint, name string, ingredients ...models.DishIngredient) models.Dish {
	return models.Dish{ID: id, Name: name, Servings: 1, Ingredients: ingredients}
}

func ing(name string, qty float64) models.DishIngredient {
	return models.DishIngredient{IngredientName: name, Quantity: qty, Unit: "kg"}
}

func TestRank_FeasibleDishIsMediumPriority(t *testing.T) {
	dishes := []models.Dish{dish(1, "tofu soup", ing("soy curd", 5))}
	lots := []models.InventoryLot{lot("soy curd", 20, 0, days(20))}

	got := Rank(dishes, lots, nil, now)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Priority != PriorityMedium {
		t.Errorf("priority = %s, want medium", got[0].Priority)
	}
	if got[0].Ingredients[0].Status != StatusSufficient {
		t.Errorf("ingredient status = %s, want sufficient", got[0].Ingredients[0].Status)
	}
}

func TestRank_ExpiringSoonLiftsPriority(t *testing.T) {
	dishes := []models.Dish{dish(1, "fish cake stew", ing("fish cake", 5))}
	lots := []models.InventoryLot{lot("fish cake", 20, 0, days(2))}

	got := Rank(dishes, lots, nil, now)
	if len(got) != 1 || got[0].Priority != PriorityHigh {
		t.Fatalf("got %+v, want one high-priority suggestion", got)
	}
	if got[0].Ingredients[0].Status != StatusExpiringSoon {
		t.Errorf("ingredient status = %s, want expiring_soon", got[0].Ingredients[0].Status)
	}
}

func TestRank_InsufficientStockExcludesDish(t *testing.T) {
	dishes := []models.Dish{dish(1, "sprout salad", ing("bean sprouts", 30))}
	lots := []models.InventoryLot{lot("bean sprouts", 10, 0, days(10))}

	if got := Rank(dishes, lots, nil, now); len(got) != 0 {
		t.Errorf("infeasible dish must be excluded, got %+v", got)
	}
}

func TestRank_ExpiredOnlyStockExcludesDish(t *testing.T) {
	dishes := []models.Dish{dish(1, "pickle plate", ing("pickled vegetables", 2))}
	lots := []models.InventoryLot{lot("pickled vegetables", 0, 8, days(-3))}

	if got := Rank(dishes, lots, nil, now); len(got) != 0 {
		t.Errorf("dish on expired-only stock must be excluded, got %+v", got)
	}
}

func TestRank_SkipsDishesWithoutIngredients(t *testing.T) {
	dishes := []models.Dish{{ID: 1, Name: "placeholder"}}
	if got := Rank(dishes, nil, nil, now); len(got) != 0 {
		t.Errorf("dish without ingredient lines must be skipped, got %+v", got)
	}
}

func TestRank_CostUsesPriceTableWithDefault(t *testing.T) {
	dishes := []models.Dish{dish(1, "mixed", ing("soy curd", 2), ing("mystery herb", 1))}
	lots := []models.InventoryLot{
		lot("soy curd", 50, 0, days(20)),
		lot("mystery herb", 50, 0, days(20)),
	}
	prices := []models.RationPrice{{IngredientName: "Soy Curd", UnitPrice: 20000}}

	got := Rank(dishes, lots, prices, now)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	want := 2*20000 + 1*DefaultUnitPrice
	if got[0].EstimatedCost != want {
		t.Errorf("estimated cost = %v, want %v", got[0].EstimatedCost, want)
	}
}

func TestRank_NoMatchingStockIsInsufficient(t *testing.T) {
	// No lot matches at all: available 0 with no expired stock reads as
	// insufficient, not expired.
	dishes := []models.Dish{dish(1, "unknown", ing("dragon fruit", 1))}
	got := Rank(dishes, nil, nil, now)
	if len(got) != 0 {
		t.Fatalf("dish without stock must be infeasible, got %+v", got)
	}
}

func TestRank_HighBeforeMediumAndCapped(t *testing.T) {
	dishes := make([]models.Dish, 0, 25)
	lots := []models.InventoryLot{
		lot("soy curd", 1000, 0, days(20)),
		lot("fresh fish", 1000, 0, days(2)),
	}
	for i := 0; i < 22; i++ {
		dishes = append(dishes, dish(uint(i+1), fmt.Sprintf("tofu dish %d", i), ing("soy curd", 1)))
	}
	// Ranked last in input, but expiring stock must surface it first.
	dishes = append(dishes, dish(99, "steamed fish", ing("fresh fish", 1)))

	got := Rank(dishes, lots, nil, now)
	if len(got) != 20 {
		t.Fatalf("got %d suggestions, want cap of 20", len(got))
	}
	if got[0].DishID != 99 || got[0].Priority != PriorityHigh {
		t.Errorf("first suggestion = %+v, want the high-priority fish dish", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i].Priority == PriorityHigh {
			t.Errorf("high-priority suggestion at position %d after medium ones", i)
		}
	}
}

func TestRank_FuzzyStockLookup(t *testing.T) {
	// Ingredient "tofu" should find the "fried tofu" lot by substring.
	dishes := []models.Dish{dish(1, "braised tofu", ing("tofu", 3))}
	lots := []models.InventoryLot{lot("fried tofu", 10, 0, days(15))}

	got := Rank(dishes, lots, nil, now)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1 via fuzzy lookup", len(got))
	}
	if got[0].Ingredients[0].Available != 10 {
		t.Errorf("available = %v, want 10", got[0].Ingredients[0].Available)
	}
}
