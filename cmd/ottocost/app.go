package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottocost/internal/conversation"
	"github.com/hammamikhairi/ottocost/internal/csvio"
	"github.com/hammamikhairi/ottocost/internal/display"
	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/engine"
	"github.com/hammamikhairi/ottocost/internal/format"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/prices"
)

type cliApp struct {
	engine   *engine.Engine
	parser   domain.IntentParser
	notifier domain.Notifier
	log      *logger.Logger
	ui       *display.UI
	selected string // recipe id, empty when nothing is selected
}

func (a *cliApp) run(ctx context.Context) {
	a.showRecipes(ctx)
	a.refreshStatus(ctx)

	uiCh := a.ui.InputChan()
	for {
		var input string
		select {
		case <-ctx.Done():
			return
		case v, ok := <-uiCh:
			if !ok {
				return
			}
			input = strings.TrimSpace(v)
		}
		if input == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.notifier.NotifyUrgent(ctx, err.Error())
			continue
		}

		a.log.Debug("intent: %s (args=%q)", intent.Type, intent.Args)
		if intent.Type == domain.IntentQuit {
			a.ui.PrintInfo("Bye.")
			return
		}
		if err := a.handleIntent(ctx, intent); err != nil {
			a.log.Warn("%s: %v", intent.Type, err)
			a.notifier.NotifyUrgent(ctx, err.Error())
		}
		a.refreshStatus(ctx)
	}
}

func (a *cliApp) handleIntent(ctx context.Context, in *domain.Intent) error {
	switch in.Type {
	case domain.IntentHelp:
		a.ui.PrintBlock(display.Help(conversation.Commands))
	case domain.IntentListRecipes:
		return a.showRecipes(ctx)
	case domain.IntentSelectRecipe:
		return a.selectRecipe(ctx, in.Arg(0))
	case domain.IntentShowRecipe:
		return a.showCard(ctx)
	case domain.IntentDashboard:
		d, err := a.engine.Dashboard(ctx)
		if err != nil {
			return err
		}
		a.ui.PrintBlock(display.Dashboard(d))
	case domain.IntentShowPrices:
		return a.showPrices(ctx)
	case domain.IntentSetPrice:
		if err := a.engine.SetPrice(ctx, in.Arg(0), format.ParseQuantity(in.Arg(1))); err != nil {
			return err
		}
		return a.notifier.Notify(ctx, fmt.Sprintf("%s now costs %s", in.Arg(0), format.Money(a.engine.Prices()[in.Arg(0)])))

	// ── Overrides ──
	case domain.IntentSetQuantity:
		_, ing, err := a.ingredient(ctx, in.Arg(0))
		if err != nil {
			return err
		}
		a.engine.SetQuantity(ing.ID, format.ParseQuantity(in.Arg(1)))
		return a.showCard(ctx)
	case domain.IntentSetRange:
		_, ing, err := a.ingredient(ctx, in.Arg(0))
		if err != nil {
			return err
		}
		a.engine.SetRange(ing.ID, format.ParseQuantity(in.Arg(1)), format.ParseQuantity(in.Arg(2)))
		return a.showCard(ctx)
	case domain.IntentFix, domain.IntentVary:
		_, ing, err := a.ingredient(ctx, in.Arg(0))
		if err != nil {
			return err
		}
		a.engine.SetFixed(ing.ID, in.Type == domain.IntentFix)
		return a.showCard(ctx)

	// ── Card ──
	case domain.IntentEditPending:
		r, ing, err := a.ingredient(ctx, in.Arg(0))
		if err != nil {
			return err
		}
		if err := a.engine.EditPendingText(ctx, r.ID, ing.ID, in.Arg(1)); err != nil {
			return err
		}
		return a.showCard(ctx)
	case domain.IntentDiscardPending:
		r, ing, err := a.ingredient(ctx, in.Arg(0))
		if err != nil {
			return err
		}
		if !a.engine.DiscardPending(r.ID, ing.ID) {
			a.ui.PrintHint("No pending change for " + ing.Name + ".")
			return nil
		}
		return a.showCard(ctx)
	case domain.IntentCommit:
		r, err := a.requireRecipe(ctx)
		if err != nil {
			return err
		}
		if _, err := a.engine.Commit(ctx, r.ID); err != nil {
			if errors.Is(err, domain.ErrNoPendingChanges) {
				a.ui.PrintHint("Nothing to commit.")
				return nil
			}
			return err
		}
		if err := a.notifier.Notify(ctx, "Committed changes to "+r.Name+"."); err != nil {
			return err
		}
		return a.showCard(ctx)

	// ── Recipe editing ──
	case domain.IntentAddRecipe:
		r, err := a.engine.AddRecipe(ctx, domain.Recipe{Name: in.Arg(0), SalePrice: format.ParseQuantity(in.Arg(1))})
		if err != nil {
			return err
		}
		a.selected = r.ID
		return a.notifier.Notify(ctx, fmt.Sprintf("Added %s. Now: add ingredient <name> <qty> <unit>", r.Name))
	case domain.IntentAddIngredient:
		r, err := a.requireRecipe(ctx)
		if err != nil {
			return err
		}
		_, err = a.engine.AddIngredient(ctx, r.ID, domain.Ingredient{
			Name:     in.Arg(0),
			Quantity: format.ParseQuantity(in.Arg(1)),
			Unit:     in.Arg(2),
		})
		if err != nil {
			return err
		}
		return a.showCard(ctx)
	case domain.IntentRemoveIngredient:
		r, ing, err := a.ingredient(ctx, in.Arg(0))
		if err != nil {
			return err
		}
		if err := a.engine.RemoveIngredient(ctx, r.ID, ing.ID); err != nil {
			return err
		}
		return a.showCard(ctx)
	case domain.IntentSetVariable:
		on, err := parseSwitch(in.Arg(1))
		if err != nil {
			return err
		}
		r, ing, err := a.ingredient(ctx, in.Arg(0))
		if err != nil {
			return err
		}
		if err := a.engine.SetIngredientVariable(ctx, r.ID, ing.ID, on); err != nil {
			return err
		}
		return a.showCard(ctx)
	case domain.IntentDeleteRecipe:
		r, err := a.requireRecipe(ctx)
		if err != nil {
			return err
		}
		if err := a.engine.DeleteRecipe(ctx, r.ID); err != nil {
			return err
		}
		a.selected = ""
		return a.notifier.Notify(ctx, "Deleted "+r.Name+".")

	// ── Ledger ──
	case domain.IntentListOrders:
		a.ui.PrintBlock(display.Orders(a.engine.Orders(ctx)))
	case domain.IntentAddOrder:
		o, err := a.engine.AddOrder(ctx, in.Arg(0), in.Arg(1), format.ParseQuantity(in.Arg(2)))
		if err != nil {
			return err
		}
		return a.notifier.Notify(ctx, fmt.Sprintf("Ordered %s %s on %s: %s", format.Quantity(o.QuantityOrdered), o.Ingredient, o.Date, format.Money(o.Total)))
	case domain.IntentListSales:
		a.ui.PrintBlock(display.Sales(a.engine.Sales(ctx)))
	case domain.IntentAddSale:
		s, err := a.engine.AddSale(ctx, in.Arg(0), in.Arg(1), format.ParseQuantity(in.Arg(2)))
		if err != nil {
			return err
		}
		if s.PricePerUnit == 0 {
			a.ui.PrintHint("No recipe named " + s.Recipe + "; the sale was recorded at 0.")
		}
		return a.notifier.Notify(ctx, fmt.Sprintf("Sold %s %s on %s: %s", format.Quantity(s.QuantitySold), s.Recipe, s.Date, format.Money(s.Total)))
	case domain.IntentListInventory:
		a.ui.PrintBlock(display.Inventory(a.engine.Inventory(ctx)))
	case domain.IntentAddCount:
		c, err := a.engine.CountStock(ctx, in.Arg(0), in.Arg(1), format.ParseQuantity(in.Arg(2)))
		if err != nil {
			return err
		}
		return a.notifier.Notify(ctx, fmt.Sprintf("Counted %s %s on %s", format.Quantity(c.StockRemaining), c.Ingredient, c.Date))
	case domain.IntentSuggest:
		list, err := a.engine.SuggestedOrders(ctx)
		if err != nil {
			return err
		}
		a.ui.PrintBlock(display.Suggestions(list))

	// ── Files ──
	case domain.IntentImport:
		kind, ok := csvio.ParseKind(in.Arg(0))
		if !ok {
			return fmt.Errorf("unknown file kind %q", in.Arg(0))
		}
		n, err := importFile(ctx, a.engine, kind, in.Arg(1))
		if err != nil {
			return err
		}
		return a.notifier.Notify(ctx, fmt.Sprintf("Imported %d %s record(s).", n, kind))
	case domain.IntentExport:
		kind, ok := csvio.ParseKind(in.Arg(0))
		if !ok {
			return fmt.Errorf("unknown file kind %q", in.Arg(0))
		}
		loc, err := a.engine.Export(ctx, kind)
		if err != nil {
			return err
		}
		return a.notifier.Notify(ctx, "Exported to "+loc)

	default:
		a.ui.PrintHint("I didn't get that. Type 'help' for commands.")
	}
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────

func (a *cliApp) showRecipes(ctx context.Context) error {
	list, err := a.engine.Recipes(ctx)
	if err != nil {
		return err
	}
	a.ui.PrintBlock(display.RecipeList(list, a.selected))
	return nil
}

func (a *cliApp) selectRecipe(ctx context.Context, ref string) error {
	var r domain.Recipe
	if n, err := strconv.Atoi(ref); err == nil {
		list, err := a.engine.Recipes(ctx)
		if err != nil {
			return err
		}
		if n < 1 || n > len(list) {
			return fmt.Errorf("pick a number between 1 and %d", len(list))
		}
		r = list[n-1]
	} else {
		r, err = a.engine.FindRecipe(ctx, ref)
		if err != nil {
			return err
		}
	}
	a.selected = r.ID
	return a.showCard(ctx)
}

func (a *cliApp) showCard(ctx context.Context) error {
	r, err := a.requireRecipe(ctx)
	if err != nil {
		return err
	}
	view, err := a.engine.CardView(ctx, r.ID)
	if err != nil {
		return err
	}
	a.ui.PrintBlock(display.Card(view))
	return nil
}

func (a *cliApp) showPrices(ctx context.Context) error {
	list, err := a.engine.Recipes(ctx)
	if err != nil {
		return err
	}
	table := a.engine.Prices()
	a.ui.PrintBlock(display.Prices(table, prices.Missing(list, table)))
	return nil
}

// requireRecipe returns the selected recipe. A selection whose recipe has
// since been deleted is cleared.
func (a *cliApp) requireRecipe(ctx context.Context) (domain.Recipe, error) {
	if a.selected == "" {
		return domain.Recipe{}, domain.ErrNoRecipeSelected
	}
	r, err := a.engine.Recipe(ctx, a.selected)
	if errors.Is(err, domain.ErrNotFound) {
		a.selected = ""
		return domain.Recipe{}, domain.ErrNoRecipeSelected
	}
	return r, err
}

// ingredient resolves a name within the selected recipe, exact match
// first, then ignoring case.
func (a *cliApp) ingredient(ctx context.Context, name string) (domain.Recipe, domain.Ingredient, error) {
	r, err := a.requireRecipe(ctx)
	if err != nil {
		return domain.Recipe{}, domain.Ingredient{}, err
	}
	if ing, ok := r.IngredientByName(name); ok {
		return r, ing, nil
	}
	for _, ing := range r.Ingredients {
		if strings.EqualFold(ing.Name, name) {
			return r, ing, nil
		}
	}
	return r, domain.Ingredient{}, fmt.Errorf("%s has no ingredient %q: %w", r.Name, name, domain.ErrNotFound)
}

// refreshStatus pushes the selected recipe's committed figures to the bar.
func (a *cliApp) refreshStatus(ctx context.Context) {
	status := display.Status{Editing: len(a.engine.Editing())}
	if r, err := a.requireRecipe(ctx); err == nil {
		if view, err := a.engine.CardView(ctx, r.ID); err == nil {
			status.Recipe = view.Recipe.Name
			status.Baseline = view.Baseline
			status.Pending = view.Pending
		}
	}
	a.ui.SetStatus(status)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}
