package finance

import "github.com/shopspring/decimal"

// PNL is a period profit-and-loss for a production line. Sums are carried
// as decimals so daily rows aggregate without float drift; values convert
// to float64 only at the JSON edge.
type PNL struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
}

// Compute prices the day's production: revenue from the derived product and
// byproduct, cost from raw input plus other processing costs.
func Compute(rawInput, rawPrice, collected, derivedPrice, byproductQty, byproductPrice, otherCosts float64) PNL {
	revenue := decimal.NewFromFloat(collected).Mul(decimal.NewFromFloat(derivedPrice)).
		Add(decimal.NewFromFloat(byproductQty).Mul(decimal.NewFromFloat(byproductPrice)))
	cost := decimal.NewFromFloat(rawInput).Mul(decimal.NewFromFloat(rawPrice)).
		Add(decimal.NewFromFloat(otherCosts))
	return PNL{Revenue: revenue, Cost: cost}
}

func (p PNL) Net() decimal.Decimal {
	return p.Revenue.Sub(p.Cost)
}

func (p PNL) Add(o PNL) PNL {
	return PNL{Revenue: p.Revenue.Add(o.Revenue), Cost: p.Cost.Add(o.Cost)}
}

// Budget classification bounds: under 80% of budget is "under", anything
// past the budget itself is "over".
const (
	BudgetUnder  = "under"
	BudgetWithin = "within"
	BudgetOver   = "over"
)

var underRatio = decimal.NewFromFloat(0.8)

// ClassifyBudget compares a total cost against a total budget.
// A zero budget is always "over" for any nonzero cost.
func ClassifyBudget(total, budget decimal.Decimal) string {
	if total.GreaterThan(budget) {
		return BudgetOver
	}
	if total.LessThan(budget.Mul(underRatio)) {
		return BudgetUnder
	}
	return BudgetWithin
}
