// Package domain defines the core types and interfaces for the costing tracker.
// All other packages depend on domain; domain depends on nothing.
package domain

// Recipe is a sellable item: a named list of ingredients with a sale price.
type Recipe struct {
	ID          string
	Name        string
	SalePrice   float64
	Ingredients []Ingredient
}

// Ingredient is a quantified component of exactly one recipe.
//
// ID is the key into the quantity override store and must be unique across
// all recipes. Name is the key into the price table. The two are separate
// key spaces and are never interchanged.
type Ingredient struct {
	ID          string
	Name        string
	Quantity    float64
	Unit        string
	IsVariable  bool
	MinQuantity *float64 // only meaningful when IsVariable
	MaxQuantity *float64 // only meaningful when IsVariable
}

// Clone returns a deep copy of the recipe. Stores hand out clones so
// callers never alias stored ingredient slices.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = make([]Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		out.Ingredients[i] = ing.Clone()
	}
	return out
}

// Ingredient returns the ingredient with the given id.
func (r Recipe) Ingredient(id string) (Ingredient, bool) {
	for _, ing := range r.Ingredients {
		if ing.ID == id {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// IngredientByName returns the first ingredient with the given name.
func (r Recipe) IngredientByName(name string) (Ingredient, bool) {
	for _, ing := range r.Ingredients {
		if ing.Name == name {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// Clone returns a copy with its own min/max pointers.
func (i Ingredient) Clone() Ingredient {
	out := i
	if i.MinQuantity != nil {
		v := *i.MinQuantity
		out.MinQuantity = &v
	}
	if i.MaxQuantity != nil {
		v := *i.MaxQuantity
		out.MaxQuantity = &v
	}
	return out
}

// Float returns a pointer to v, for the optional min/max fields.
func Float(v float64) *float64 { return &v }

// AllIngredients flattens the ingredient lists of every recipe, in order.
func AllIngredients(recipes []Recipe) []Ingredient {
	var out []Ingredient
	for _, r := range recipes {
		out = append(out, r.Ingredients...)
	}
	return out
}
