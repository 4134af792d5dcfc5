package conversation

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input    string
		wantType domain.IntentType
		wantArgs []string
	}{
		// Plain keywords
		{"list", domain.IntentListRecipes, nil},
		{"LS", domain.IntentListRecipes, nil},
		{"show", domain.IntentShowRecipe, nil},
		{"dashboard", domain.IntentDashboard, nil},
		{"prices", domain.IntentShowPrices, nil},
		{"commit", domain.IntentCommit, nil},
		{"delete", domain.IntentDeleteRecipe, nil},
		{"orders", domain.IntentListOrders, nil},
		{"sales", domain.IntentListSales, nil},
		{"inventory", domain.IntentListInventory, nil},
		{"suggest", domain.IntentSuggest, nil},
		{"?", domain.IntentHelp, nil},
		{"q", domain.IntentQuit, nil},

		// Selection
		{"1", domain.IntentSelectRecipe, []string{"1"}},
		{"12", domain.IntentSelectRecipe, []string{"12"}},
		{"select chicken alfredo", domain.IntentSelectRecipe, []string{"chicken alfredo"}},

		// Multi-word names without quotes
		{"price chicken breast 2.4", domain.IntentSetPrice, []string{"chicken breast", "2.4"}},
		{"set patty 1.1", domain.IntentSetQuantity, []string{"patty", "1.1"}},
		{"range patty 1 3", domain.IntentSetRange, []string{"patty", "1", "3"}},
		{"fix gruyere cheese", domain.IntentFix, []string{"gruyere cheese"}},
		{"vary bun", domain.IntentVary, []string{"bun"}},
		{"edit patty 2", domain.IntentEditPending, []string{"patty", "2"}},
		{"discard patty", domain.IntentDiscardPending, []string{"patty"}},
		{"variable patty on", domain.IntentSetVariable, []string{"patty", "on"}},
		{"remove bun", domain.IntentRemoveIngredient, []string{"bun"}},

		// Two-word verbs
		{"add recipe Fish Tacos 12.5", domain.IntentAddRecipe, []string{"Fish Tacos", "12.5"}},
		{"Add Ingredient corn tortilla 3 pc", domain.IntentAddIngredient, []string{"corn tortilla", "3", "pc"}},

		// Head arguments
		{"order 2026-03-14 bell pepper 5", domain.IntentAddOrder, []string{"2026-03-14", "bell pepper", "5"}},
		{"sale today \"Chicken Alfredo\" 3", domain.IntentAddSale, []string{"today", "Chicken Alfredo", "3"}},
		{"count 2026-03-14 rice 1.5", domain.IntentAddCount, []string{"2026-03-14", "rice", "1.5"}},
		{"import recipes 'my files/recipes.csv'", domain.IntentImport, []string{"recipes", "my files/recipes.csv"}},
		{"export report", domain.IntentExport, []string{"report"}},

		// Unknown
		{"make me a sandwich", domain.IntentUnknown, nil},
		{"", domain.IntentUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Fatalf("input=%q: expected %s, got %s", tt.input, tt.wantType, intent.Type)
			}
			if !reflect.DeepEqual(intent.Args, tt.wantArgs) {
				t.Fatalf("input=%q: expected args %q, got %q", tt.input, tt.wantArgs, intent.Args)
			}
		})
	}
}

func TestKeywordParserUsage(t *testing.T) {
	parser := NewKeywordParser(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	for _, input := range []string{"price 2.4", "range patty 1", "order 2026-03-14", "add recipe", "select"} {
		t.Run(input, func(t *testing.T) {
			_, err := parser.Parse(ctx, input)
			if err == nil {
				t.Fatalf("input=%q: expected usage error", input)
			}
			if !strings.HasPrefix(err.Error(), "usage: ") {
				t.Fatalf("input=%q: expected usage message, got %q", input, err)
			}
		})
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a b  c", []string{"a", "b", "c"}},
		{`"a b" c`, []string{"a b", "c"}},
		{`it's`, []string{"its"}},
		{`x "unterminated quote`, []string{"x", "unterminated quote"}},
		{`""`, []string{""}},
		{"   ", nil},
	}
	for _, tt := range tests {
		got := SplitArgs(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("input=%q: expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestIntentArg(t *testing.T) {
	in := &domain.Intent{Args: []string{"a"}}
	if in.Arg(0) != "a" || in.Arg(1) != "" || in.Arg(-1) != "" {
		t.Fatalf("unexpected Arg results for %v", in.Args)
	}
}
