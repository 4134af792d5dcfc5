// Package card implements preview-before-commit editing for one recipe.
//
// A Card holds a pending change set (ingredient id -> proposed quantity)
// that is separate from the shared override store. Baseline metrics always
// come from the committed recipe; preview metrics resolve each ingredient
// through pending, then override, then committed quantity. Nothing touches
// the recipe until Commit.
package card

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/format"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/pricing"
)

// ── State machine ────────────────────────────────────────────────

// State is the card's editing state.
type State int

const (
	// Idle means the pending set is empty.
	Idle State = iota
	// Editing means at least one pending change exists.
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Event is something that happened to the pending set.
type Event int

const (
	EventEdit Event = iota
	EventDiscard
	EventCommit
)

func (e Event) String() string {
	switch e {
	case EventEdit:
		return "edit"
	case EventDiscard:
		return "discard"
	case EventCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// Transition returns the state after ev, given how many pending changes
// remain once the event has been applied.
func Transition(from State, ev Event, remaining int) State {
	switch ev {
	case EventEdit:
		return Editing
	case EventDiscard:
		if remaining > 0 {
			return Editing
		}
		return Idle
	case EventCommit:
		return Idle
	default:
		return from
	}
}

// ── Card ─────────────────────────────────────────────────────────

// Card is the pending change set for one recipe.
type Card struct {
	mu       sync.Mutex
	recipeID string
	pending  map[string]float64
	state    State
	log      *logger.Logger
}

// New creates an idle card for the given recipe id.
func New(recipeID string, log *logger.Logger) *Card {
	return &Card{
		recipeID: recipeID,
		pending:  make(map[string]float64),
		state:    Idle,
		log:      log,
	}
}

// RecipeID returns the recipe this card edits.
func (c *Card) RecipeID() string { return c.recipeID }

// State returns the current editing state.
func (c *Card) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns a copy of the pending change set.
func (c *Card) Pending() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]float64, len(c.pending))
	for k, v := range c.pending {
		out[k] = v
	}
	return out
}

// PendingCount returns the number of pending changes.
func (c *Card) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Edit proposes a new quantity for one of the recipe's ingredients. The
// value is not clamped against any override range.
func (c *Card) Edit(recipe domain.Recipe, ingredientID string, value float64) error {
	if _, ok := recipe.Ingredient(ingredientID); !ok {
		return fmt.Errorf("edit %s in %s: %w", ingredientID, recipe.Name, domain.ErrNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[ingredientID] = value
	c.state = Transition(c.state, EventEdit, len(c.pending))
	c.log.Debug("card %s: pending %s=%g (%d pending)", c.recipeID, ingredientID, value, len(c.pending))
	return nil
}

// EditText is Edit for raw user input. Malformed or negative text becomes 0.
func (c *Card) EditText(recipe domain.Recipe, ingredientID, text string) error {
	return c.Edit(recipe, ingredientID, format.ParseQuantity(text))
}

// Discard drops one pending change. The committed recipe is untouched.
// It reports whether anything was removed.
func (c *Card) Discard(ingredientID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[ingredientID]; !ok {
		return false
	}
	delete(c.pending, ingredientID)
	c.state = Transition(c.state, EventDiscard, len(c.pending))
	c.log.Debug("card %s: discarded %s (%d pending)", c.recipeID, ingredientID, len(c.pending))
	return true
}

// Apply builds the recipe that Commit would emit: every ingredient with a
// pending value takes it, the rest are unchanged. recipe is not modified.
func (c *Card) Apply(recipe domain.Recipe) domain.Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()
	return apply(recipe, c.pending)
}

func apply(recipe domain.Recipe, pending map[string]float64) domain.Recipe {
	out := recipe.Clone()
	for i, ing := range out.Ingredients {
		if q, ok := pending[ing.ID]; ok {
			out.Ingredients[i].Quantity = q
		}
	}
	return out
}

// Commit writes every pending value into the recipe, hands the result to
// dst, and clears the pending set. If dst fails the pending set is kept.
func (c *Card) Commit(ctx context.Context, recipe domain.Recipe, dst domain.RecipeReplacer) (domain.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) == 0 {
		return recipe, domain.ErrNoPendingChanges
	}

	updated := apply(recipe, c.pending)
	if err := dst.Replace(ctx, updated); err != nil {
		return recipe, fmt.Errorf("commit %s: %w", recipe.Name, err)
	}

	n := len(c.pending)
	c.pending = make(map[string]float64)
	c.state = Transition(c.state, EventCommit, 0)
	c.log.Info("card %s: committed %d change(s)", c.recipeID, n)
	return updated, nil
}

// ── Metrics ──────────────────────────────────────────────────────

// Baseline evaluates the recipe at its committed quantities. Overrides and
// pending edits play no part.
func Baseline(recipe domain.Recipe, prices domain.PriceTable) domain.Metrics {
	return pricing.Evaluate(recipe, prices, pricing.CommittedQuantities(recipe))
}

// Preview evaluates the recipe with pending edits layered over the live
// overrides. overrides may be nil.
func (c *Card) Preview(recipe domain.Recipe, prices domain.PriceTable, overrides domain.OverrideReader) domain.Metrics {
	c.mu.Lock()
	q := pricing.PreviewQuantities(recipe, c.pending, overrides)
	c.mu.Unlock()
	return pricing.Evaluate(recipe, prices, q)
}
