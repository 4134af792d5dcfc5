// Package pricing computes recipe cost, profit and food-cost percentage.
//
// Every function here is pure: inputs are never mutated and nothing is
// validated. Ingredient names join into the price table, ingredient ids
// join into the quantity snapshot.
package pricing

import (
	"math"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

// Tier thresholds, inclusive upper bounds.
const (
	GoodThreshold    = 30.0
	WarningThreshold = 35.0
)

// Cost sums quantity * unit price over the recipe's ingredients. A missing
// quantity falls back to the committed one; a missing price is 0.
func Cost(recipe domain.Recipe, prices domain.PriceTable, quantities domain.Quantities) float64 {
	total := 0.0
	for _, ing := range recipe.Ingredients {
		total += QuantityFor(ing, quantities) * prices[ing.Name]
	}
	return total
}

// QuantityFor returns the snapshot quantity for ing, or its committed
// quantity when the snapshot has no entry.
func QuantityFor(ing domain.Ingredient, quantities domain.Quantities) float64 {
	if q, ok := quantities[ing.ID]; ok {
		return q
	}
	return ing.Quantity
}

// Profit is salePrice - cost. It may be negative and must not be clamped.
func Profit(recipe domain.Recipe, cost float64) float64 {
	return recipe.SalePrice - cost
}

// FoodCostPercentage is cost / salePrice * 100. A zero sale price yields
// a non-finite result; callers decide how to present it.
//
// Scaling before dividing keeps tier boundaries exact: 3/10*100 rounds to
// 30.000000000000004, 3*100/10 is 30.
func FoodCostPercentage(cost, salePrice float64) float64 {
	return cost * 100 / salePrice
}

// Classify maps a percentage to its display tier. Non-finite values fall
// through to TierBad.
func Classify(percentage float64) domain.FoodCostTier {
	switch {
	case percentage <= GoodThreshold:
		return domain.TierGood
	case percentage <= WarningThreshold:
		return domain.TierWarning
	default:
		return domain.TierBad
	}
}

// Defined reports whether a percentage is a finite number worth rendering.
func Defined(percentage float64) bool {
	return !math.IsNaN(percentage) && !math.IsInf(percentage, 0)
}

// Evaluate runs the whole engine for one recipe and snapshot.
func Evaluate(recipe domain.Recipe, prices domain.PriceTable, quantities domain.Quantities) domain.Metrics {
	cost := Cost(recipe, prices, quantities)
	pct := FoodCostPercentage(cost, recipe.SalePrice)
	return domain.Metrics{
		Cost:               cost,
		SalePrice:          recipe.SalePrice,
		Profit:             Profit(recipe, cost),
		FoodCostPercentage: pct,
		Tier:               Classify(pct),
	}
}

// SaleTotal is quantitySold * pricePerUnit.
func SaleTotal(quantitySold, pricePerUnit float64) float64 {
	return quantitySold * pricePerUnit
}

// OrderTotal is quantityOrdered * pricePerUnit.
func OrderTotal(quantityOrdered, pricePerUnit float64) float64 {
	return quantityOrdered * pricePerUnit
}

// RecipePriceByName returns the sale price of the first recipe with the
// given name, or 0.
func RecipePriceByName(name string, recipes []domain.Recipe) float64 {
	for _, r := range recipes {
		if r.Name == name {
			return r.SalePrice
		}
	}
	return 0
}
