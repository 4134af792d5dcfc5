// Package engine owns the tracker's state: recipes, prices, live quantity
// overrides, recipe cards and the ledger. Front ends talk only to it.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/ottocost/internal/card"
	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/export"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/prices"
	"github.com/hammamikhairi/ottocost/internal/pricing"
	"github.com/hammamikhairi/ottocost/internal/quantity"
)

// Option configures the engine.
type Option func(*Engine)

// WithMetrics attaches a recorder that mirrors committed costs.
func WithMetrics(m MetricsRecorder) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithSink sets where Export delivers files.
func WithSink(s export.Sink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithClock overrides the time source used for default dates and file names.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// MetricsRecorder receives costing figures. *metrics.Recorder satisfies it.
type MetricsRecorder interface {
	ObserveRecipe(name string, m domain.Metrics)
	ForgetRecipe(name string)
	Reset()
	Commit()
	Import(kind string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRecipe(string, domain.Metrics) {}
func (nopRecorder) ForgetRecipe(string)                  {}
func (nopRecorder) Reset()                               {}
func (nopRecorder) Commit()                              {}
func (nopRecorder) Import(string)                        {}

// RecipeImporter is an optional interface that RecipeStore implementations
// can satisfy to append a batch atomically.
type RecipeImporter interface {
	AddAll(ctx context.Context, recipes []domain.Recipe) ([]domain.Recipe, error)
}

// RecipeSearcher is an optional interface for fuzzy recipe lookup.
type RecipeSearcher interface {
	Search(ctx context.Context, query string) ([]domain.Recipe, error)
}

// Engine coordinates every costing operation. It depends on the domain
// ports and owns the override store and the card board itself.
type Engine struct {
	recipes   domain.RecipeStore
	prices    domain.PriceBook
	ledger    domain.Ledger
	overrides *quantity.Store
	board     *card.Board
	metrics   MetricsRecorder
	sink      export.Sink
	now       func() time.Time
	log       *logger.Logger
}

// New creates an engine with the given dependencies and options.
func New(recipes domain.RecipeStore, prices domain.PriceBook, ledger domain.Ledger, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		recipes:   recipes,
		prices:    prices,
		ledger:    ledger,
		overrides: quantity.NewStore(log),
		board:     card.NewBoard(log),
		metrics:   nopRecorder{},
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sync initializes overrides for every stored ingredient and publishes the
// committed metrics. Call it once after seeding the stores directly.
func (e *Engine) Sync(ctx context.Context) error {
	list, err := e.reshape(ctx)
	if err != nil {
		return err
	}
	e.refresh(list)
	return nil
}

// reshape makes sure every ingredient has an override entry. Called after
// anything that changes the set of ingredients.
func (e *Engine) reshape(ctx context.Context) ([]domain.Recipe, error) {
	list, err := e.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	e.overrides.EnsureInitialized(domain.AllIngredients(list))
	return list, nil
}

// refresh republishes committed metrics for every recipe.
func (e *Engine) refresh(list []domain.Recipe) {
	table := e.prices.Snapshot()
	e.metrics.Reset()
	for _, r := range list {
		e.metrics.ObserveRecipe(r.Name, card.Baseline(r, table))
	}
}

func (e *Engine) reshapeAndRefresh(ctx context.Context) error {
	list, err := e.reshape(ctx)
	if err != nil {
		return err
	}
	e.refresh(list)
	return nil
}

// ── Recipes ──────────────────────────────────────────────────────

// Recipes returns every recipe in insertion order.
func (e *Engine) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	return e.recipes.List(ctx)
}

// Recipe returns a recipe by id.
func (e *Engine) Recipe(ctx context.Context, id string) (domain.Recipe, error) {
	return e.recipes.Get(ctx, id)
}

// FindRecipe resolves ref as an id, then an exact name, then a unique
// search hit.
func (e *Engine) FindRecipe(ctx context.Context, ref string) (domain.Recipe, error) {
	if r, err := e.recipes.Get(ctx, ref); err == nil {
		return r, nil
	}
	if r, err := e.recipes.FindByName(ctx, ref); err == nil {
		return r, nil
	}
	searcher, ok := e.recipes.(RecipeSearcher)
	if !ok {
		return domain.Recipe{}, fmt.Errorf("recipe %q: %w", ref, domain.ErrNotFound)
	}
	hits, err := searcher.Search(ctx, ref)
	if err != nil {
		return domain.Recipe{}, err
	}
	if len(hits) != 1 {
		return domain.Recipe{}, fmt.Errorf("recipe %q matched %d recipes: %w", ref, len(hits), domain.ErrNotFound)
	}
	return hits[0], nil
}

// AddRecipe stores a new recipe and returns it with ids assigned.
func (e *Engine) AddRecipe(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	added, err := e.recipes.Add(ctx, recipe)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("adding recipe: %w", err)
	}
	if err := e.reshapeAndRefresh(ctx); err != nil {
		return domain.Recipe{}, err
	}
	e.log.Info("recipe %q added", added.Name)
	return added, nil
}

// EditRecipe replaces a stored recipe. Pending card edits are kept.
func (e *Engine) EditRecipe(ctx context.Context, recipe domain.Recipe) error {
	if err := e.recipes.Replace(ctx, recipe); err != nil {
		return fmt.Errorf("editing recipe: %w", err)
	}
	return e.reshapeAndRefresh(ctx)
}

// DeleteRecipe removes a recipe and its card. Overrides for its
// ingredients stay in place.
func (e *Engine) DeleteRecipe(ctx context.Context, id string) error {
	r, err := e.recipes.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	if err := e.recipes.Remove(ctx, id); err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	e.board.Drop(id)
	e.metrics.ForgetRecipe(r.Name)
	e.log.Info("recipe %q deleted", r.Name)
	return e.reshapeAndRefresh(ctx)
}

// ImportRecipes appends recipes to the collection. When the store supports
// batches the import is all-or-nothing.
func (e *Engine) ImportRecipes(ctx context.Context, recipes []domain.Recipe) ([]domain.Recipe, error) {
	var added []domain.Recipe
	if importer, ok := e.recipes.(RecipeImporter); ok {
		var err error
		added, err = importer.AddAll(ctx, recipes)
		if err != nil {
			return nil, fmt.Errorf("importing recipes: %w", err)
		}
	} else {
		for _, r := range recipes {
			a, err := e.recipes.Add(ctx, r)
			if err != nil {
				return added, fmt.Errorf("importing recipe %q: %w", r.Name, err)
			}
			added = append(added, a)
		}
	}
	if err := e.reshapeAndRefresh(ctx); err != nil {
		return nil, err
	}
	return added, nil
}

// AddIngredient appends an ingredient to a recipe and returns the recipe
// as stored.
func (e *Engine) AddIngredient(ctx context.Context, recipeID string, ing domain.Ingredient) (domain.Recipe, error) {
	r, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}
	r.Ingredients = append(r.Ingredients, ing)
	if err := e.EditRecipe(ctx, r); err != nil {
		return domain.Recipe{}, err
	}
	return e.recipes.Get(ctx, recipeID)
}

// RemoveIngredient drops an ingredient from a recipe along with any pending
// edit for it.
func (e *Engine) RemoveIngredient(ctx context.Context, recipeID, ingredientID string) error {
	r, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	kept := r.Ingredients[:0]
	found := false
	for _, ing := range r.Ingredients {
		if ing.ID == ingredientID {
			found = true
			continue
		}
		kept = append(kept, ing)
	}
	if !found {
		return fmt.Errorf("ingredient %s in %s: %w", ingredientID, r.Name, domain.ErrNotFound)
	}
	r.Ingredients = kept
	if err := e.EditRecipe(ctx, r); err != nil {
		return err
	}
	e.board.Card(recipeID).Discard(ingredientID)
	return nil
}

// SetIngredientVariable marks an ingredient variable, with bounds of its
// quantity and one and a half times it, or clears the flag and bounds.
func (e *Engine) SetIngredientVariable(ctx context.Context, recipeID, ingredientID string, variable bool) error {
	r, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	for i := range r.Ingredients {
		ing := &r.Ingredients[i]
		if ing.ID != ingredientID {
			continue
		}
		ing.IsVariable = variable
		if variable {
			ing.MinQuantity = domain.Float(ing.Quantity)
			ing.MaxQuantity = domain.Float(ing.Quantity * 1.5)
		} else {
			ing.MinQuantity = nil
			ing.MaxQuantity = nil
		}
		return e.EditRecipe(ctx, r)
	}
	return fmt.Errorf("ingredient %s in %s: %w", ingredientID, r.Name, domain.ErrNotFound)
}

// ── Prices ───────────────────────────────────────────────────────

// Prices returns a copy of the price table.
func (e *Engine) Prices() domain.PriceTable {
	return e.prices.Snapshot()
}

// UpdatePrices replaces the whole price table.
func (e *Engine) UpdatePrices(ctx context.Context, table domain.PriceTable) error {
	e.prices.Replace(table)
	list, err := e.recipes.List(ctx)
	if err != nil {
		return err
	}
	e.refresh(list)
	return nil
}

// SetPrice sets the unit price of one ingredient name.
func (e *Engine) SetPrice(ctx context.Context, name string, price float64) error {
	e.prices.Set(name, price)
	list, err := e.recipes.List(ctx)
	if err != nil {
		return err
	}
	e.refresh(list)
	return nil
}

// ── Overrides ────────────────────────────────────────────────────

// SetQuantity moves the live override of an ingredient, clamped to its range.
func (e *Engine) SetQuantity(ingredientID string, value float64) {
	e.overrides.SetCurrent(ingredientID, value)
}

// SetRange changes the override bounds of an ingredient.
func (e *Engine) SetRange(ingredientID string, min, max float64) {
	e.overrides.SetRange(ingredientID, min, max)
}

// SetFixed toggles the UI-only fixed flag of an ingredient.
func (e *Engine) SetFixed(ingredientID string, fixed bool) {
	e.overrides.SetFixed(ingredientID, fixed)
}

// Override returns the live override of an ingredient.
func (e *Engine) Override(ingredientID string) (domain.QuantityRange, bool) {
	return e.overrides.Range(ingredientID)
}

// ── Cards ────────────────────────────────────────────────────────

// EditPending stages a quantity for an ingredient on the recipe's card.
func (e *Engine) EditPending(ctx context.Context, recipeID, ingredientID string, value float64) error {
	r, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	return e.board.Card(recipeID).Edit(r, ingredientID, value)
}

// EditPendingText stages a typed quantity; unparsable text stages 0.
func (e *Engine) EditPendingText(ctx context.Context, recipeID, ingredientID, text string) error {
	r, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	return e.board.Card(recipeID).EditText(r, ingredientID, text)
}

// DiscardPending drops one staged edit. It reports whether one existed.
func (e *Engine) DiscardPending(recipeID, ingredientID string) bool {
	return e.board.Card(recipeID).Discard(ingredientID)
}

// Commit writes the card's staged edits into the recipe.
func (e *Engine) Commit(ctx context.Context, recipeID string) (domain.Recipe, error) {
	r, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}
	updated, err := e.board.Card(recipeID).Commit(ctx, r, e.recipes)
	if err != nil {
		return r, err
	}
	e.metrics.Commit()
	list, err := e.recipes.List(ctx)
	if err != nil {
		return updated, err
	}
	e.refresh(list)
	return updated, nil
}

// Editing lists the recipes whose cards hold staged edits.
func (e *Engine) Editing() []string {
	return e.board.Editing()
}

// IngredientLine is one ingredient as a card shows it.
type IngredientLine struct {
	Ingredient  domain.Ingredient
	Price       float64
	Override    domain.QuantityRange
	HasOverride bool
	Fixed       bool
	Pending     float64
	HasPending  bool
	Quantity    float64 // the quantity the preview costs with
	Cost        float64
}

// CardView is a recipe card: committed figures next to the preview.
type CardView struct {
	Recipe   domain.Recipe
	Proposed domain.Recipe // what Commit would write
	State    card.State
	Pending  int
	Baseline domain.Metrics
	Preview  domain.Metrics
	Lines    []IngredientLine
}

// CardView evaluates a recipe's card against the current prices,
// overrides and staged edits.
func (e *Engine) CardView(ctx context.Context, recipeID string) (CardView, error) {
	r, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return CardView{}, err
	}
	c := e.board.Card(recipeID)
	pending := c.Pending()
	table := e.prices.Snapshot()
	q := pricing.PreviewQuantities(r, pending, e.overrides)

	view := CardView{
		Recipe:   r,
		Proposed: c.Apply(r),
		State:    c.State(),
		Pending:  len(pending),
		Baseline: card.Baseline(r, table),
		Preview:  pricing.Evaluate(r, table, q),
		Lines:    make([]IngredientLine, 0, len(r.Ingredients)),
	}
	for _, ing := range r.Ingredients {
		line := IngredientLine{
			Ingredient: ing,
			Price:      table[ing.Name],
			Fixed:      e.overrides.IsFixed(ing),
			Quantity:   pricing.QuantityFor(ing, q),
		}
		line.Override, line.HasOverride = e.overrides.Range(ing.ID)
		line.Pending, line.HasPending = pending[ing.ID]
		line.Cost = line.Price * line.Quantity
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}

// ── Dashboard ────────────────────────────────────────────────────

// DashboardRow is one recipe at its live override quantities.
type DashboardRow struct {
	Recipe  domain.Recipe
	Live    domain.Metrics
	Pending int
}

// Dashboard summarizes every recipe.
type Dashboard struct {
	Rows            []DashboardRow
	AverageFoodCost float64
	HasAverage      bool
	GeneralFoodCost float64
	HasGeneral      bool
	MissingPrices   []string
}

// Dashboard evaluates every recipe with the live overrides and the
// collection-wide food-cost figures.
func (e *Engine) Dashboard(ctx context.Context) (Dashboard, error) {
	list, err := e.recipes.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	table := e.prices.Snapshot()

	d := Dashboard{Rows: make([]DashboardRow, 0, len(list))}
	for _, r := range list {
		d.Rows = append(d.Rows, DashboardRow{
			Recipe:  r,
			Live:    pricing.Evaluate(r, table, pricing.LiveQuantities(r, e.overrides)),
			Pending: e.board.Card(r.ID).PendingCount(),
		})
	}
	d.AverageFoodCost, d.HasAverage = pricing.AverageFoodCost(list, table, e.overrides)
	d.GeneralFoodCost, d.HasGeneral = pricing.GeneralFoodCost(list, table, e.overrides, e.ledger.Sales(ctx))
	d.MissingPrices = prices.Missing(list, table)
	return d, nil
}
