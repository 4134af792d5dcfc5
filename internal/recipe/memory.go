// Package recipe provides the recipe collection owner.
package recipe

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*MemoryStore)(nil)

// MemoryStore holds recipes in memory, in insertion order. Recipes are
// copied in and out so callers never share ingredient slices with it.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	recipes map[string]domain.Recipe
	log     *logger.Logger
}

// NewMemoryStore creates an empty recipe store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		recipes: make(map[string]domain.Recipe),
		log:     log,
	}
}

// List returns every recipe in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.order))

	out := make([]domain.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.recipes[id].Clone())
	}
	return out, nil
}

// Get returns a recipe by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return domain.Recipe{}, domain.ErrNotFound
	}
	return r.Clone(), nil
}

// FindByName returns the first recipe whose name matches, ignoring case.
func (s *MemoryStore) FindByName(ctx context.Context, name string) (domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if strings.EqualFold(s.recipes[id].Name, name) {
			return s.recipes[id].Clone(), nil
		}
	}
	return domain.Recipe{}, domain.ErrNotFound
}

// Search returns recipes whose name or ingredient names contain query.
func (s *MemoryStore) Search(ctx context.Context, query string) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	s.log.Debug("searching recipes for: %s", q)

	var out []domain.Recipe
	for _, id := range s.order {
		if r := s.recipes[id]; matches(r, q) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func matches(r domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), query) {
			return true
		}
	}
	return false
}

// Add stores a new recipe. Empty recipe and ingredient ids are filled with
// fresh UUIDs; the stored copy is returned.
func (s *MemoryStore) Add(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := recipe.Clone()
	assignIDs(&r)

	if _, ok := s.recipes[r.ID]; ok {
		return domain.Recipe{}, fmt.Errorf("recipe %s: %w", r.ID, domain.ErrAlreadyExists)
	}
	if err := s.checkIngredients(r); err != nil {
		return domain.Recipe{}, err
	}

	s.recipes[r.ID] = r
	s.order = append(s.order, r.ID)
	s.log.Info("recipe added: %s (%d ingredients)", r.Name, len(r.Ingredients))
	return r.Clone(), nil
}

// Replace swaps the stored recipe with the same ID.
func (s *MemoryStore) Replace(ctx context.Context, recipe domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipe.ID]; !ok {
		return fmt.Errorf("replace %s: %w", recipe.ID, domain.ErrNotFound)
	}
	r := recipe.Clone()
	assignIDs(&r)
	if err := s.checkIngredients(r); err != nil {
		return err
	}
	s.recipes[r.ID] = r
	s.log.Info("recipe updated: %s", r.Name)
	return nil
}

// Remove deletes a recipe by ID.
func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return fmt.Errorf("remove %s: %w", id, domain.ErrNotFound)
	}
	delete(s.recipes, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Info("recipe removed: %s", id)
	return nil
}

// AddAll appends every recipe, as an import does. Either all of them are
// stored or none are.
func (s *MemoryStore) AddAll(ctx context.Context, recipes []domain.Recipe) ([]domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]domain.Recipe, 0, len(recipes))
	for _, in := range recipes {
		r := in.Clone()
		assignIDs(&r)
		if _, ok := s.recipes[r.ID]; ok {
			return nil, fmt.Errorf("recipe %s: %w", r.ID, domain.ErrAlreadyExists)
		}
		if err := s.checkIngredients(r); err != nil {
			return nil, err
		}
		if err := checkBatch(staged, r); err != nil {
			return nil, err
		}
		staged = append(staged, r)
	}

	out := make([]domain.Recipe, 0, len(staged))
	for _, r := range staged {
		s.recipes[r.ID] = r
		s.order = append(s.order, r.ID)
		out = append(out, r.Clone())
	}
	s.log.Info("recipes imported, count=%d", len(out))
	return out, nil
}

// checkBatch rejects r if it collides with a recipe staged earlier in the
// same import.
func checkBatch(staged []domain.Recipe, r domain.Recipe) error {
	for _, other := range staged {
		if other.ID == r.ID {
			return fmt.Errorf("recipe %s: %w", r.ID, domain.ErrAlreadyExists)
		}
		for _, ing := range other.Ingredients {
			if _, clash := r.Ingredient(ing.ID); clash {
				return fmt.Errorf("ingredient %s (used by %s): %w", ing.ID, other.Name, domain.ErrDuplicateIngredient)
			}
		}
	}
	return nil
}

// checkIngredients rejects ingredient ids that repeat within the recipe or
// belong to another recipe. Caller holds the lock.
func (s *MemoryStore) checkIngredients(r domain.Recipe) error {
	seen := make(map[string]bool, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if seen[ing.ID] {
			return fmt.Errorf("ingredient %s in %s: %w", ing.ID, r.Name, domain.ErrDuplicateIngredient)
		}
		seen[ing.ID] = true
	}
	for id, other := range s.recipes {
		if id == r.ID {
			continue
		}
		for _, ing := range other.Ingredients {
			if seen[ing.ID] {
				return fmt.Errorf("ingredient %s (used by %s): %w", ing.ID, other.Name, domain.ErrDuplicateIngredient)
			}
		}
	}
	return nil
}

func assignIDs(r *domain.Recipe) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	for i := range r.Ingredients {
		if r.Ingredients[i].ID == "" {
			r.Ingredients[i].ID = uuid.NewString()
		}
	}
}
