// Package ledger keeps the session's orders, sales and inventory counts.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
	"github.com/hammamikhairi/ottocost/internal/pricing"
)

// Compile-time interface check.
var _ domain.Ledger = (*MemoryLedger)(nil)

// MemoryLedger is an in-memory record book. Safe for concurrent access.
// Totals are recomputed on every write; callers cannot set them.
type MemoryLedger struct {
	mu        sync.RWMutex
	orders    []domain.Order
	sales     []domain.Sale
	inventory []domain.InventoryCount
	log       *logger.Logger
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger(log *logger.Logger) *MemoryLedger {
	return &MemoryLedger{log: log}
}

// ── Orders ───────────────────────────────────────────────────────

// Orders returns a copy of every order in insertion order.
func (l *MemoryLedger) Orders(ctx context.Context) []domain.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Order(nil), l.orders...)
}

// AddOrder stores an order under a fresh id.
func (l *MemoryLedger) AddOrder(ctx context.Context, o domain.Order) domain.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	o.ID = uuid.NewString()
	o.Total = pricing.OrderTotal(o.QuantityOrdered, o.PricePerUnit)
	l.orders = append(l.orders, o)
	l.log.Debug("order added: %s %s x%g", o.Date, o.Ingredient, o.QuantityOrdered)
	return o
}

// EditOrder replaces the order with the same id.
func (l *MemoryLedger) EditOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.orders {
		if l.orders[i].ID == o.ID {
			o.Total = pricing.OrderTotal(o.QuantityOrdered, o.PricePerUnit)
			l.orders[i] = o
			l.log.Debug("order edited: %s", o.ID)
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", o.ID, domain.ErrNotFound)
}

// DeleteOrder removes an order by id.
func (l *MemoryLedger) DeleteOrder(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.orders {
		if l.orders[i].ID == id {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			l.log.Debug("order deleted: %s", id)
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

// ImportOrders replaces every order with the imported ones.
func (l *MemoryLedger) ImportOrders(ctx context.Context, orders []domain.Order) []domain.Order {
	next := make([]domain.Order, len(orders))
	for i, o := range orders {
		o.ID = uuid.NewString()
		o.Total = pricing.OrderTotal(o.QuantityOrdered, o.PricePerUnit)
		next[i] = o
	}

	l.mu.Lock()
	l.orders = next
	l.mu.Unlock()
	l.log.Info("orders imported, count=%d", len(next))
	return append([]domain.Order(nil), next...)
}

// ── Sales ────────────────────────────────────────────────────────

// Sales returns a copy of every sale in insertion order.
func (l *MemoryLedger) Sales(ctx context.Context) []domain.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Sale(nil), l.sales...)
}

// AddSale stores a sale under a fresh id.
func (l *MemoryLedger) AddSale(ctx context.Context, s domain.Sale) domain.Sale {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.ID = uuid.NewString()
	s.Total = pricing.SaleTotal(s.QuantitySold, s.PricePerUnit)
	l.sales = append(l.sales, s)
	l.log.Debug("sale added: %s %s x%g", s.Date, s.Recipe, s.QuantitySold)
	return s
}

// EditSale replaces the sale with the same id.
func (l *MemoryLedger) EditSale(ctx context.Context, s domain.Sale) (domain.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.sales {
		if l.sales[i].ID == s.ID {
			s.Total = pricing.SaleTotal(s.QuantitySold, s.PricePerUnit)
			l.sales[i] = s
			l.log.Debug("sale edited: %s", s.ID)
			return s, nil
		}
	}
	return domain.Sale{}, fmt.Errorf("sale %s: %w", s.ID, domain.ErrNotFound)
}

// DeleteSale removes a sale by id.
func (l *MemoryLedger) DeleteSale(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.sales {
		if l.sales[i].ID == id {
			l.sales = append(l.sales[:i], l.sales[i+1:]...)
			l.log.Debug("sale deleted: %s", id)
			return nil
		}
	}
	return fmt.Errorf("sale %s: %w", id, domain.ErrNotFound)
}

// ImportSales replaces every sale with the imported ones.
func (l *MemoryLedger) ImportSales(ctx context.Context, sales []domain.Sale) []domain.Sale {
	next := make([]domain.Sale, len(sales))
	for i, s := range sales {
		s.ID = uuid.NewString()
		s.Total = pricing.SaleTotal(s.QuantitySold, s.PricePerUnit)
		next[i] = s
	}

	l.mu.Lock()
	l.sales = next
	l.mu.Unlock()
	l.log.Info("sales imported, count=%d", len(next))
	return append([]domain.Sale(nil), next...)
}

// ── Inventory ────────────────────────────────────────────────────

// Inventory returns a copy of every stock count in insertion order.
func (l *MemoryLedger) Inventory(ctx context.Context) []domain.InventoryCount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.InventoryCount(nil), l.inventory...)
}

// SaveInventory appends counts. Earlier counts for the same day are kept;
// the latest one wins wherever a single figure is needed.
func (l *MemoryLedger) SaveInventory(ctx context.Context, counts []domain.InventoryCount) []domain.InventoryCount {
	saved := make([]domain.InventoryCount, len(counts))
	for i, c := range counts {
		c.ID = uuid.NewString()
		saved[i] = c
	}

	l.mu.Lock()
	l.inventory = append(l.inventory, saved...)
	l.mu.Unlock()
	l.log.Debug("inventory saved, count=%d", len(saved))
	return saved
}

// InventoryOn returns the counts recorded for date.
func (l *MemoryLedger) InventoryOn(ctx context.Context, date string) []domain.InventoryCount {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.InventoryCount
	for _, c := range l.inventory {
		if c.Date == date {
			out = append(out, c)
		}
	}
	return out
}

// CountSheet builds one count per ingredient name for date. Names missing
// from stock are counted as 0.
func CountSheet(date string, names []string, stock map[string]float64) []domain.InventoryCount {
	out := make([]domain.InventoryCount, 0, len(names))
	for _, name := range names {
		out = append(out, domain.InventoryCount{
			Date:           date,
			Ingredient:     name,
			StockRemaining: stock[name],
		})
	}
	return out
}
