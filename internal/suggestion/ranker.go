package suggestion

import (
	"sort"
	"strings"
	"time"

	"quartermaster-backend/internal/alert"
	"quartermaster-backend/internal/models"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"

	StatusSufficient   = "sufficient"
	StatusInsufficient = "insufficient"
	StatusExpiringSoon = "expiring_soon"
	StatusExpired      = "expired"

	// DefaultUnitPrice: fallback when an ingredient has no ration price row.
	DefaultUnitPrice = 15000.0
	// defaultDaysUntilExpiry: assumed shelf life when no expiry is known.
	defaultDaysUntilExpiry = 30

	maxSuggestions = 20
)

type IngredientCheck struct {
	Name            string  `json:"name"`
	Required        float64 `json:"required"`
	Unit            string  `json:"unit"`
	Available       float64 `json:"available"`
	Expired         float64 `json:"expired"`
	DaysUntilExpiry int     `json:"days_until_expiry"`
	Status          string  `json:"status"`
}

type DishSuggestion struct {
	DishID        uint              `json:"dish_id"`
	DishName      string            `json:"dish_name"`
	Category      string            `json:"category,omitempty"`
	Priority      string            `json:"priority"`
	EstimatedCost float64           `json:"estimated_cost"`
	Ingredients   []IngredientCheck `json:"ingredients"`
}

// stockView: inventory aggregated per product for fuzzy ingredient lookup.
type stockView struct {
	available       float64
	expired         float64
	daysUntilExpiry int
	hasExpiry       bool
}

// Rank scores every dish with at least one ingredient line against current
// inventory. Only feasible dishes are returned: high priority when an
// ingredient is close to expiry (use it up first), medium otherwise.
// Output is capped at 20, stably ordered high before medium.
func Rank(dishes []models.Dish, lots []models.InventoryLot, prices []models.RationPrice, now time.Time) []DishSuggestion {
	stock := aggregateStock(lots, now)
	priceIdx := make(map[string]float64, len(prices))
	for _, p := range prices {
		priceIdx[strings.ToLower(p.IngredientName)] = p.UnitPrice
	}

	suggestions := make([]DishSuggestion, 0)
	for _, dish := range dishes {
		if len(dish.Ingredients) == 0 {
			continue
		}

		feasible := true
		expiringSoon := false
		cost := 0.0
		checks := make([]IngredientCheck, 0, len(dish.Ingredients))

		for _, ing := range dish.Ingredients {
			view := lookupStock(stock, ing.IngredientName)
			check := IngredientCheck{
				Name:            ing.IngredientName,
				Required:        ing.Quantity,
				Unit:            ing.Unit,
				Available:       view.available,
				Expired:         view.expired,
				DaysUntilExpiry: view.daysUntilExpiry,
			}

			switch {
			case view.available <= 0 && view.expired > 0:
				check.Status = StatusExpired
				feasible = false
			case view.available < ing.Quantity:
				check.Status = StatusInsufficient
				feasible = false
			case view.daysUntilExpiry <= 3:
				check.Status = StatusExpiringSoon
				expiringSoon = true
			default:
				check.Status = StatusSufficient
			}

			cost += ing.Quantity * lookupPrice(priceIdx, ing.IngredientName)
			checks = append(checks, check)
		}

		if !feasible {
			continue // low priority, never suggested
		}
		priority := PriorityMedium
		if expiringSoon {
			priority = PriorityHigh
		}
		suggestions = append(suggestions, DishSuggestion{
			DishID:        dish.ID,
			DishName:      dish.Name,
			Category:      dish.Category,
			Priority:      priority,
			EstimatedCost: cost,
			Ingredients:   checks,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority == PriorityHigh && suggestions[j].Priority != PriorityHigh
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func aggregateStock(lots []models.InventoryLot, now time.Time) map[string]*stockView {
	stock := make(map[string]*stockView)
	for _, lot := range lots {
		key := strings.ToLower(lot.ProductName)
		view, ok := stock[key]
		if !ok {
			view = &stockView{daysUntilExpiry: defaultDaysUntilExpiry}
			stock[key] = view
		}
		view.available += lot.NonExpiredQuantity
		view.expired += lot.ExpiredQuantity
		if lot.ExpiryDate != nil {
			days := alert.DaysUntilExpiry(*lot.ExpiryDate, now)
			if !view.hasExpiry || days < view.daysUntilExpiry {
				view.daysUntilExpiry = days
				view.hasExpiry = true
			}
		}
	}
	return stock
}

// lookupStock: exact product name first, then substring match either way
// for legacy names ("tofu" vs "fried tofu").
func lookupStock(stock map[string]*stockView, name string) stockView {
	key := strings.ToLower(name)
	if view, ok := stock[key]; ok {
		return *view
	}
	for product, view := range stock {
		if strings.Contains(product, key) || strings.Contains(key, product) {
			return *view
		}
	}
	return stockView{daysUntilExpiry: defaultDaysUntilExpiry}
}

func lookupPrice(prices map[string]float64, name string) float64 {
	key := strings.ToLower(name)
	if p, ok := prices[key]; ok {
		return p
	}
	for priced, p := range prices {
		if strings.Contains(priced, key) || strings.Contains(key, priced) {
			return p
		}
	}
	return DefaultUnitPrice
}
