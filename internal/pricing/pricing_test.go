package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

func burger() domain.Recipe {
	return domain.Recipe{
		ID:        "burger",
		Name:      "Burger",
		SalePrice: 10,
		Ingredients: []domain.Ingredient{
			{ID: "a", Name: "bun", Quantity: 1, Unit: "bun"},
			{ID: "b", Name: "patty", Quantity: 2, Unit: "pc"},
		},
	}
}

type fakeOverrides map[string]domain.QuantityRange

func (f fakeOverrides) Range(id string) (domain.QuantityRange, bool) {
	r, ok := f[id]
	return r, ok
}

func TestCost(t *testing.T) {
	r := burger()
	prices := domain.PriceTable{"bun": 2, "patty": 1.5}

	tests := []struct {
		name       string
		prices     domain.PriceTable
		quantities domain.Quantities
		want       float64
	}{
		{"committed fallback", prices, nil, 1*2 + 2*1.5},
		{"snapshot by id", prices, domain.Quantities{"a": 3}, 3*2 + 2*1.5},
		{"missing price is zero", domain.PriceTable{"bun": 2}, nil, 2},
		{"empty table", nil, domain.Quantities{"a": 5, "b": 5}, 0},
		{"zero override is honored", prices, domain.Quantities{"b": 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cost(r, tt.prices, tt.quantities), 1e-9)
		})
	}
}

func TestCostIgnoresUnrelatedPrice(t *testing.T) {
	r := burger()
	before := Cost(r, domain.PriceTable{"bun": 2, "patty": 1}, nil)
	after := Cost(r, domain.PriceTable{"bun": 2, "patty": 1, "cheese": 99}, nil)
	assert.Equal(t, before, after)
}

func TestCostDoesNotMutateInputs(t *testing.T) {
	r := burger()
	q := domain.Quantities{"a": 4}
	prices := domain.PriceTable{"bun": 1}
	Cost(r, prices, q)
	assert.Equal(t, domain.Quantities{"a": 4}, q)
	assert.Equal(t, domain.PriceTable{"bun": 1}, prices)
	assert.Equal(t, 1.0, r.Ingredients[0].Quantity)
}

func TestProfit(t *testing.T) {
	r := burger()
	assert.Equal(t, 4.0, Profit(r, 6))
	assert.Equal(t, -2.5, Profit(r, 12.5), "negative profit must not be clamped")
}

func TestFoodCostPercentageAndTier(t *testing.T) {
	tests := []struct {
		cost float64
		want float64
		tier domain.FoodCostTier
	}{
		{3, 30, domain.TierGood},
		{3.5, 35, domain.TierWarning},
		{3.6, 36, domain.TierBad},
		{0, 0, domain.TierGood},
	}
	for _, tt := range tests {
		pct := FoodCostPercentage(tt.cost, 10)
		assert.Equal(t, tt.want, pct)
		assert.Equal(t, tt.tier, Classify(pct), "tier for %.1f", tt.want)
	}
}

func TestFoodCostPercentageZeroSalePrice(t *testing.T) {
	pct := FoodCostPercentage(3, 0)
	assert.True(t, math.IsInf(pct, 1))
	assert.False(t, Defined(pct))

	nan := FoodCostPercentage(0, 0)
	assert.True(t, math.IsNaN(nan))
	assert.False(t, Defined(nan))
	assert.Equal(t, domain.TierBad, Classify(nan))
}

func TestEvaluate(t *testing.T) {
	m := Evaluate(burger(), domain.PriceTable{"bun": 2}, domain.Quantities{"a": 3})
	assert.InDelta(t, 6, m.Cost, 1e-9)
	assert.InDelta(t, 4, m.Profit, 1e-9)
	assert.InDelta(t, 60, m.FoodCostPercentage, 1e-9)
	assert.Equal(t, domain.TierBad, m.Tier)
	assert.Equal(t, 10.0, m.SalePrice)
}

func TestSnapshots(t *testing.T) {
	r := burger()
	overrides := fakeOverrides{"a": {Min: 0.8, Max: 1.2, Current: 1.1}}

	assert.Equal(t, domain.Quantities{"a": 1, "b": 2}, CommittedQuantities(r))
	assert.Equal(t, domain.Quantities{"a": 1.1, "b": 2}, LiveQuantities(r, overrides))
	assert.Equal(t, domain.Quantities{"a": 1, "b": 2}, LiveQuantities(r, nil))

	preview := PreviewQuantities(r, map[string]float64{"b": 7}, overrides)
	assert.Equal(t, domain.Quantities{"a": 1.1, "b": 7}, preview)
}

func TestTotalsAndLookup(t *testing.T) {
	assert.Equal(t, 15.0, SaleTotal(3, 5))
	assert.Equal(t, 4.5, OrderTotal(3, 1.5))

	recipes := []domain.Recipe{burger(), {Name: "Fries", SalePrice: 4}}
	assert.Equal(t, 4.0, RecipePriceByName("Fries", recipes))
	assert.Equal(t, 0.0, RecipePriceByName("Soup", recipes))
}

func TestAverageAndGeneralFoodCost(t *testing.T) {
	fries := domain.Recipe{
		ID: "fries", Name: "Fries", SalePrice: 5,
		Ingredients: []domain.Ingredient{{ID: "p", Name: "potato", Quantity: 1}},
	}
	free := domain.Recipe{ID: "free", Name: "Water", SalePrice: 0}
	recipes := []domain.Recipe{burger(), fries, free}
	prices := domain.PriceTable{"bun": 2, "patty": 0.5, "potato": 2}
	// Burger: 3/10 = 30%. Fries: 2/5 = 40%. Water: undefined, skipped.

	avg, ok := AverageFoodCost(recipes, prices, nil)
	require.True(t, ok)
	assert.InDelta(t, 35, avg, 1e-9)

	general, ok := GeneralFoodCost(recipes, prices, nil, nil)
	require.True(t, ok)
	assert.InDelta(t, avg, general, 1e-9)

	sales := []domain.Sale{
		{Recipe: "Burger", QuantitySold: 3},
		{Recipe: "Fries", QuantitySold: 1},
	}
	general, ok = GeneralFoodCost(recipes, prices, nil, sales)
	require.True(t, ok)
	assert.InDelta(t, (30*3+40*1)/4.0, general, 1e-9)

	_, ok = AverageFoodCost([]domain.Recipe{free}, prices, nil)
	assert.False(t, ok)
}

func TestSuggestOrders(t *testing.T) {
	recipes := []domain.Recipe{burger()}
	sales := []domain.Sale{
		{Date: "2024-03-01", Recipe: "Burger", QuantitySold: 10},
		{Date: "2024-03-02", Recipe: "Unknown", QuantitySold: 99},
	}
	inventory := []domain.InventoryCount{
		{Date: "2024-02-01", Ingredient: "bun", StockRemaining: 100},
		{Date: "2024-03-01", Ingredient: "bun", StockRemaining: 4},
	}

	got := SuggestOrders(recipes, sales, inventory)
	require.Len(t, got, 2)

	assert.Equal(t, "bun", got[0].Ingredient)
	assert.InDelta(t, 6, got[0].SuggestedQuantity, 1e-9)
	assert.Equal(t, ReasonLowStock, got[0].Reason)

	assert.Equal(t, "patty", got[1].Ingredient)
	assert.InDelta(t, 20, got[1].SuggestedQuantity, 1e-9)
	assert.Equal(t, ReasonNoCount, got[1].Reason)
}

func TestSuggestOrdersSkipsCoveredStock(t *testing.T) {
	recipes := []domain.Recipe{burger()}
	sales := []domain.Sale{{Recipe: "Burger", QuantitySold: 1}}
	inventory := []domain.InventoryCount{
		{Date: "2024-03-01", Ingredient: "bun", StockRemaining: 5},
		{Date: "2024-03-01", Ingredient: "patty", StockRemaining: 5},
	}
	assert.Empty(t, SuggestOrders(recipes, sales, inventory))
}
