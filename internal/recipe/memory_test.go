package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

func newStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(logger.New(logger.LevelOff, nil))
}

func TestMemoryStoreSeed(t *testing.T) {
	src := newStore(t)
	ctx := context.Background()

	prices, err := src.Seed(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	recipes, err := src.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) < 2 {
		t.Fatalf("expected at least 2 recipes, got %d", len(recipes))
	}
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			if _, ok := prices[ing.Name]; !ok {
				t.Fatalf("sample price missing for %s", ing.Name)
			}
		}
	}
}

func TestMemoryStoreGet(t *testing.T) {
	src := newStore(t)
	ctx := context.Background()
	if _, err := src.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		id      string
		wantErr error
	}{
		{"chicken-alfredo", nil},
		{"vegetable-stir-fry", nil},
		{"nonexistent", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			r, err := src.Get(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.ID != tt.id {
				t.Fatalf("expected ID %s, got %s", tt.id, r.ID)
			}
			if len(r.Ingredients) == 0 {
				t.Fatal("recipe has no ingredients")
			}
		})
	}
}

func TestMemoryStoreSearch(t *testing.T) {
	src := newStore(t)
	ctx := context.Background()
	if _, err := src.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		query string
		count int
	}{
		{"chicken", 1},
		{"garlic", 2},
		{"STIR", 1},
		{"nonexistent-query-xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := src.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(results) != tt.count {
				t.Fatalf("query=%q: expected %d results, got %d", tt.query, tt.count, len(results))
			}
		})
	}
}

func TestMemoryStoreAddAssignsIDs(t *testing.T) {
	src := newStore(t)
	ctx := context.Background()

	r, err := src.Add(ctx, domain.Recipe{
		Name:        "Soup",
		Ingredients: []domain.Ingredient{{Name: "water", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if r.ID == "" || r.Ingredients[0].ID == "" {
		t.Fatalf("expected ids to be assigned, got %+v", r)
	}

	if _, err := src.Add(ctx, r); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMemoryStoreRejectsSharedIngredientIDs(t *testing.T) {
	src := newStore(t)
	ctx := context.Background()

	if _, err := src.Add(ctx, domain.Recipe{ID: "a", Ingredients: []domain.Ingredient{{ID: "x"}}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := src.Add(ctx, domain.Recipe{ID: "b", Ingredients: []domain.Ingredient{{ID: "x"}}})
	if !errors.Is(err, domain.ErrDuplicateIngredient) {
		t.Fatalf("expected ErrDuplicateIngredient, got %v", err)
	}
	_, err = src.Add(ctx, domain.Recipe{ID: "c", Ingredients: []domain.Ingredient{{ID: "y"}, {ID: "y"}}})
	if !errors.Is(err, domain.ErrDuplicateIngredient) {
		t.Fatalf("expected ErrDuplicateIngredient for repeat within recipe, got %v", err)
	}
}

func TestMemoryStoreReplaceAndRemove(t *testing.T) {
	src := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := src.Add(ctx, domain.Recipe{ID: id, Name: id}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	if err := src.Replace(ctx, domain.Recipe{ID: "b", Name: "B2", SalePrice: 4}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := src.Replace(ctx, domain.Recipe{ID: "zz"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := src.Remove(ctx, "a"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	list, _ := src.List(ctx)
	if len(list) != 2 || list[0].Name != "B2" || list[1].ID != "c" {
		t.Fatalf("unexpected order after replace/remove: %+v", list)
	}

	got, err := src.FindByName(ctx, "b2")
	if err != nil || got.ID != "b" {
		t.Fatalf("find by name: got %+v, %v", got, err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	src := newStore(t)
	ctx := context.Background()

	in := domain.Recipe{ID: "a", Ingredients: []domain.Ingredient{{ID: "x", Quantity: 1}}}
	if _, err := src.Add(ctx, in); err != nil {
		t.Fatalf("add: %v", err)
	}
	in.Ingredients[0].Quantity = 99

	got, _ := src.Get(ctx, "a")
	if got.Ingredients[0].Quantity != 1 {
		t.Fatalf("store aliased caller slice: got %g", got.Ingredients[0].Quantity)
	}
	got.Ingredients[0].Quantity = 50
	again, _ := src.Get(ctx, "a")
	if again.Ingredients[0].Quantity != 1 {
		t.Fatalf("caller mutated stored recipe: got %g", again.Ingredients[0].Quantity)
	}
}

func TestMemoryStoreAddAllIsAtomic(t *testing.T) {
	src := newStore(t)
	ctx := context.Background()
	if _, err := src.Add(ctx, domain.Recipe{ID: "keep"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	bad := []domain.Recipe{
		{ID: "n1", Ingredients: []domain.Ingredient{{ID: "x"}}},
		{ID: "n2", Ingredients: []domain.Ingredient{{ID: "x"}}},
	}
	if _, err := src.AddAll(ctx, bad); !errors.Is(err, domain.ErrDuplicateIngredient) {
		t.Fatalf("expected ErrDuplicateIngredient, got %v", err)
	}
	list, _ := src.List(ctx)
	if len(list) != 1 || list[0].ID != "keep" {
		t.Fatalf("failed import must leave store untouched, got %+v", list)
	}

	added, err := src.AddAll(ctx, []domain.Recipe{{Name: "new"}, {Name: "newer"}})
	if err != nil {
		t.Fatalf("add all: %v", err)
	}
	if len(added) != 2 || added[0].ID == "" {
		t.Fatalf("unexpected import result: %+v", added)
	}
	list, _ = src.List(ctx)
	if len(list) != 3 || list[0].ID != "keep" || list[2].Name != "newer" {
		t.Fatalf("import must append, got %+v", list)
	}
}
