package recipe

import (
	"context"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

// Seed adds the built-in sample recipes and returns the unit prices that go
// with them. Used by the -sample flag to get a session with something in it.
func (s *MemoryStore) Seed(ctx context.Context) (domain.PriceTable, error) {
	recipes := []domain.Recipe{
		chickenAlfredo(),
		vegetableStirFry(),
	}
	for _, r := range recipes {
		if _, err := s.Add(ctx, r); err != nil {
			return nil, err
		}
	}
	s.log.Debug("seeded %d recipes", len(recipes))
	return samplePrices(), nil
}

func chickenAlfredo() domain.Recipe {
	return domain.Recipe{
		ID:        "chicken-alfredo",
		Name:      "Chicken Alfredo",
		SalePrice: 16.5,
		Ingredients: []domain.Ingredient{
			{ID: "ca-spaghetti", Name: "spaghetti", Quantity: 0.125, Unit: "kg"},
			{ID: "ca-chicken", Name: "chicken breast", Quantity: 1, Unit: "piece", IsVariable: true, MinQuantity: domain.Float(1), MaxQuantity: domain.Float(1.5)},
			{ID: "ca-creme", Name: "creme fraiche", Quantity: 0.5, Unit: "cup"},
			{ID: "ca-gruyere", Name: "gruyere cheese", Quantity: 0.5, Unit: "cup", IsVariable: true},
			{ID: "ca-margarine", Name: "margarine", Quantity: 1.5, Unit: "tbsp"},
			{ID: "ca-garlic", Name: "garlic", Quantity: 2, Unit: "clove"},
		},
	}
}

func vegetableStirFry() domain.Recipe {
	return domain.Recipe{
		ID:        "vegetable-stir-fry",
		Name:      "Vegetable Stir Fry",
		SalePrice: 11,
		Ingredients: []domain.Ingredient{
			{ID: "vs-tofu", Name: "firm tofu", Quantity: 0.2, Unit: "kg", IsVariable: true},
			{ID: "vs-broccoli", Name: "broccoli", Quantity: 1, Unit: "cup"},
			{ID: "vs-pepper", Name: "bell pepper", Quantity: 1, Unit: "piece"},
			{ID: "vs-soy", Name: "soy sauce", Quantity: 2, Unit: "tbsp"},
			{ID: "vs-garlic", Name: "garlic", Quantity: 2, Unit: "clove"},
			{ID: "vs-rice", Name: "rice", Quantity: 0.1, Unit: "kg", IsVariable: true},
		},
	}
}

func samplePrices() domain.PriceTable {
	return domain.PriceTable{
		"spaghetti":      3.2,
		"chicken breast": 2.4,
		"creme fraiche":  1.6,
		"gruyere cheese": 2.9,
		"margarine":      0.1,
		"garlic":         0.15,
		"firm tofu":      8,
		"broccoli":       0.9,
		"bell pepper":    0.8,
		"soy sauce":      0.05,
		"rice":           2.5,
	}
}
