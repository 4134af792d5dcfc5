package pricing

import "github.com/hammamikhairi/ottocost/internal/domain"

// CommittedQuantities snapshots the recipe's own quantities.
func CommittedQuantities(recipe domain.Recipe) domain.Quantities {
	out := make(domain.Quantities, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		out[ing.ID] = ing.Quantity
	}
	return out
}

// LiveQuantities snapshots the live override current value for every
// ingredient that has one, and the committed quantity otherwise.
func LiveQuantities(recipe domain.Recipe, overrides domain.OverrideReader) domain.Quantities {
	out := make(domain.Quantities, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if overrides == nil {
			out[ing.ID] = ing.Quantity
			continue
		}
		if r, ok := overrides.Range(ing.ID); ok {
			out[ing.ID] = r.Current
			continue
		}
		out[ing.ID] = ing.Quantity
	}
	return out
}

// PreviewQuantities resolves each ingredient through three levels: a
// pending edit, else the live override, else the committed quantity.
func PreviewQuantities(recipe domain.Recipe, pending map[string]float64, overrides domain.OverrideReader) domain.Quantities {
	out := LiveQuantities(recipe, overrides)
	for _, ing := range recipe.Ingredients {
		if q, ok := pending[ing.ID]; ok {
			out[ing.ID] = q
		}
	}
	return out
}
