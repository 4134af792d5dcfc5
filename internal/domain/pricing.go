package domain

// PriceTable maps ingredient name to unit price. Absent names price at 0.
type PriceTable map[string]float64

// Quantities maps ingredient id to the quantity to cost with. Absent ids
// fall back to the ingredient's committed quantity.
type Quantities map[string]float64

// QuantityRange is the live {min, max, current} override for one
// ingredient. 0 <= Min <= Current <= Max always holds.
type QuantityRange struct {
	Min     float64
	Max     float64
	Current float64
}

// FoodCostTier classifies a food-cost percentage for display.
type FoodCostTier int

const (
	TierGood FoodCostTier = iota
	TierWarning
	TierBad
)

// String returns a human-readable tier.
func (t FoodCostTier) String() string {
	switch t {
	case TierGood:
		return "good"
	case TierWarning:
		return "warning"
	case TierBad:
		return "bad"
	default:
		return "unknown"
	}
}

// Metrics is the cost, profit and food-cost percentage of one recipe
// evaluated against one quantity snapshot. Values are full precision.
type Metrics struct {
	Cost               float64
	SalePrice          float64
	Profit             float64
	FoodCostPercentage float64
	Tier               FoodCostTier
}
