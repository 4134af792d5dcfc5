package main

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/ottocost/internal/conversation"
	"github.com/hammamikhairi/ottocost/internal/display"
	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/engine"
	"github.com/hammamikhairi/ottocost/internal/ledger"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/prices"
	"github.com/hammamikhairi/ottocost/internal/recipe"
)

var errTerminalGone = errors.New("terminal gone")

type failingNotifier struct {
	messages []string
}

func (n *failingNotifier) Notify(ctx context.Context, message string) error {
	n.messages = append(n.messages, message)
	return errTerminalGone
}

func (n *failingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	return errTerminalGone
}

func setupApp(t *testing.T, notifier domain.Notifier) (*cliApp, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	book := prices.NewBook(log)
	book.Replace(domain.PriceTable{"bun": 1, "patty": 3})
	eng := engine.New(recipe.NewMemoryStore(log), book, ledger.NewMemoryLedger(log), log)

	ctx := context.Background()
	if _, err := eng.AddRecipe(ctx, domain.Recipe{
		ID:        "burger",
		Name:      "Burger",
		SalePrice: 20,
		Ingredients: []domain.Ingredient{
			{ID: "b-bun", Name: "bun", Quantity: 1, Unit: "pc"},
			{ID: "b-patty", Name: "patty", Quantity: 1, Unit: "pc"},
		},
	}); err != nil {
		t.Fatalf("add recipe: %v", err)
	}

	return &cliApp{
		engine:   eng,
		parser:   conversation.NewKeywordParser(log),
		notifier: notifier,
		log:      log,
		ui:       display.NewUI(),
		selected: "burger",
	}, ctx
}

func (a *cliApp) do(t *testing.T, ctx context.Context, input string) error {
	t.Helper()
	intent, err := a.parser.Parse(ctx, input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return a.handleIntent(ctx, intent)
}

func TestCommitReportsNotifierFailure(t *testing.T) {
	notifier := &failingNotifier{}
	app, ctx := setupApp(t, notifier)

	if err := app.do(t, ctx, "edit patty 2"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	err := app.do(t, ctx, "commit")
	if !errors.Is(err, errTerminalGone) {
		t.Fatalf("expected notifier error, got %v", err)
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != "Committed changes to Burger." {
		t.Fatalf("expected one commit notice, got %q", notifier.messages)
	}

	// The commit itself went through.
	r, err := app.engine.Recipe(ctx, "burger")
	if err != nil {
		t.Fatalf("recipe: %v", err)
	}
	if r.Ingredients[1].Quantity != 2 {
		t.Fatalf("expected committed patty quantity 2, got %g", r.Ingredients[1].Quantity)
	}
}

func TestCommitWithoutPendingIsHint(t *testing.T) {
	notifier := &failingNotifier{}
	app, ctx := setupApp(t, notifier)

	if err := app.do(t, ctx, "commit"); err != nil {
		t.Fatalf("expected no error for an empty commit, got %v", err)
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("expected no notice, got %q", notifier.messages)
	}
}
