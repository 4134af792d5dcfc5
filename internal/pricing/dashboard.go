package pricing

import (
	"sort"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

// AverageFoodCost is the mean food-cost percentage across recipes, each
// costed with live override quantities. Recipes whose percentage is not
// finite are left out; ok is false when none remain.
func AverageFoodCost(recipes []domain.Recipe, prices domain.PriceTable, overrides domain.OverrideReader) (avg float64, ok bool) {
	return weightedFoodCost(recipes, prices, overrides, func(domain.Recipe) float64 { return 1 })
}

// GeneralFoodCost weights each recipe's live food-cost percentage by the
// units sold under its name. With no sales at all it equals AverageFoodCost.
func GeneralFoodCost(recipes []domain.Recipe, prices domain.PriceTable, overrides domain.OverrideReader, sales []domain.Sale) (float64, bool) {
	sold := make(map[string]float64)
	var hasSales bool
	for _, s := range sales {
		sold[s.Recipe] += s.QuantitySold
		if s.QuantitySold > 0 {
			hasSales = true
		}
	}
	if !hasSales {
		return AverageFoodCost(recipes, prices, overrides)
	}
	return weightedFoodCost(recipes, prices, overrides, func(r domain.Recipe) float64 { return sold[r.Name] })
}

func weightedFoodCost(recipes []domain.Recipe, prices domain.PriceTable, overrides domain.OverrideReader, weight func(domain.Recipe) float64) (float64, bool) {
	var sum, total float64
	for _, r := range recipes {
		cost := Cost(r, prices, LiveQuantities(r, overrides))
		pct := FoodCostPercentage(cost, r.SalePrice)
		if !Defined(pct) {
			continue
		}
		w := weight(r)
		if w <= 0 {
			continue
		}
		sum += pct * w
		total += w
	}
	if total == 0 {
		return 0, false
	}
	return sum / total, true
}

// Suggestion reasons.
const (
	ReasonLowStock = "Low stock"
	ReasonNoCount  = "No inventory count"
)

// SuggestOrders projects ingredient usage from sales (units sold times the
// committed quantity in the sold recipe) and subtracts the most recent
// stock count. Only positive shortfalls are returned, sorted by name.
func SuggestOrders(recipes []domain.Recipe, sales []domain.Sale, inventory []domain.InventoryCount) []domain.SuggestedOrder {
	byName := make(map[string]domain.Recipe, len(recipes))
	for _, r := range recipes {
		if _, seen := byName[r.Name]; !seen {
			byName[r.Name] = r
		}
	}

	usage := make(map[string]float64)
	for _, s := range sales {
		r, ok := byName[s.Recipe]
		if !ok {
			continue
		}
		for _, ing := range r.Ingredients {
			usage[ing.Name] += s.QuantitySold * ing.Quantity
		}
	}

	// Latest count per ingredient; ISO dates compare lexically.
	latest := make(map[string]domain.InventoryCount)
	for _, c := range inventory {
		if prev, ok := latest[c.Ingredient]; !ok || c.Date >= prev.Date {
			latest[c.Ingredient] = c
		}
	}

	var out []domain.SuggestedOrder
	for name, used := range usage {
		count, counted := latest[name]
		short := used - count.StockRemaining
		if short <= 0 {
			continue
		}
		reason := ReasonNoCount
		if counted {
			reason = ReasonLowStock
		}
		out = append(out, domain.SuggestedOrder{
			Ingredient:        name,
			SuggestedQuantity: short,
			Reason:            reason,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ingredient < out[j].Ingredient })
	return out
}
