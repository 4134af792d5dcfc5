package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/ledger"
	"github.com/hammamikhairi/ottocost/internal/prices"
	"github.com/hammamikhairi/ottocost/internal/pricing"
)

// Date normalizes a record date. Empty and "today" mean the current day;
// anything else must be YYYY-MM-DD.
func (e *Engine) Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return e.now().Format(domain.DateLayout), nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return "", fmt.Errorf("%q: %w", s, domain.ErrInvalidDate)
	}
	return s, nil
}

// ── Orders ───────────────────────────────────────────────────────

// Orders returns every order.
func (e *Engine) Orders(ctx context.Context) []domain.Order {
	return e.ledger.Orders(ctx)
}

// AddOrder records a purchase priced from the current price table.
func (e *Engine) AddOrder(ctx context.Context, date, ingredient string, quantity float64) (domain.Order, error) {
	day, err := e.Date(date)
	if err != nil {
		return domain.Order{}, err
	}
	return e.ledger.AddOrder(ctx, domain.Order{
		Date:            day,
		Ingredient:      ingredient,
		QuantityOrdered: quantity,
		PricePerUnit:    e.prices.Price(ingredient),
	}), nil
}

// EditOrder replaces an order by id; its total is recomputed.
func (e *Engine) EditOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	day, err := e.Date(o.Date)
	if err != nil {
		return domain.Order{}, err
	}
	o.Date = day
	return e.ledger.EditOrder(ctx, o)
}

// DeleteOrder removes an order by id.
func (e *Engine) DeleteOrder(ctx context.Context, id string) error {
	return e.ledger.DeleteOrder(ctx, id)
}

// ── Sales ────────────────────────────────────────────────────────

// Sales returns every sale.
func (e *Engine) Sales(ctx context.Context) []domain.Sale {
	return e.ledger.Sales(ctx)
}

// AddSale records units of a recipe sold, priced at the recipe's sale
// price. Unknown recipe names sell at 0.
func (e *Engine) AddSale(ctx context.Context, date, recipe string, quantity float64) (domain.Sale, error) {
	day, err := e.Date(date)
	if err != nil {
		return domain.Sale{}, err
	}
	list, err := e.recipes.List(ctx)
	if err != nil {
		return domain.Sale{}, err
	}
	return e.ledger.AddSale(ctx, domain.Sale{
		Date:         day,
		Recipe:       recipe,
		QuantitySold: quantity,
		PricePerUnit: pricing.RecipePriceByName(recipe, list),
	}), nil
}

// EditSale replaces a sale by id; its total is recomputed.
func (e *Engine) EditSale(ctx context.Context, s domain.Sale) (domain.Sale, error) {
	day, err := e.Date(s.Date)
	if err != nil {
		return domain.Sale{}, err
	}
	s.Date = day
	return e.ledger.EditSale(ctx, s)
}

// DeleteSale removes a sale by id.
func (e *Engine) DeleteSale(ctx context.Context, id string) error {
	return e.ledger.DeleteSale(ctx, id)
}

// ── Inventory ────────────────────────────────────────────────────

// Inventory returns every stock count.
func (e *Engine) Inventory(ctx context.Context) []domain.InventoryCount {
	return e.ledger.Inventory(ctx)
}

// CountStock records the stock remaining of one ingredient.
func (e *Engine) CountStock(ctx context.Context, date, ingredient string, stock float64) (domain.InventoryCount, error) {
	day, err := e.Date(date)
	if err != nil {
		return domain.InventoryCount{}, err
	}
	saved := e.ledger.SaveInventory(ctx, []domain.InventoryCount{{
		Date:           day,
		Ingredient:     ingredient,
		StockRemaining: stock,
	}})
	return saved[0], nil
}

// SaveCountSheet records a full count: one entry for every ingredient name
// in use, 0 where stock has no figure.
func (e *Engine) SaveCountSheet(ctx context.Context, date string, stock map[string]float64) ([]domain.InventoryCount, error) {
	day, err := e.Date(date)
	if err != nil {
		return nil, err
	}
	list, err := e.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	sheet := ledger.CountSheet(day, prices.UniqueIngredients(list), stock)
	return e.ledger.SaveInventory(ctx, sheet), nil
}

// SuggestedOrders proposes purchases from recorded sales and the latest
// stock counts.
func (e *Engine) SuggestedOrders(ctx context.Context) ([]domain.SuggestedOrder, error) {
	list, err := e.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.SuggestOrders(list, e.ledger.Sales(ctx), e.ledger.Inventory(ctx)), nil
}
