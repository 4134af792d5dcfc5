// Package prices owns the ingredient unit price table.
package prices

import (
	"math"
	"sort"
	"sync"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Compile-time interface check.
var _ domain.PriceBook = (*Book)(nil)

// Book maps ingredient names to unit prices. A name with no entry costs 0.
type Book struct {
	mu     sync.RWMutex
	prices domain.PriceTable
	log    *logger.Logger
}

// NewBook creates an empty price book.
func NewBook(log *logger.Logger) *Book {
	return &Book{
		prices: make(domain.PriceTable),
		log:    log,
	}
}

// Price returns the unit price for name, or 0.
func (b *Book) Price(name string) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.prices[name]
}

// Snapshot returns a copy of the whole table.
func (b *Book) Snapshot() domain.PriceTable {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(domain.PriceTable, len(b.prices))
	for k, v := range b.prices {
		out[k] = v
	}
	return out
}

// Replace swaps the whole table. Negative or non-finite prices become 0.
func (b *Book) Replace(table domain.PriceTable) {
	next := make(domain.PriceTable, len(table))
	for name, p := range table {
		next[name] = sanitize(p)
	}

	b.mu.Lock()
	b.prices = next
	b.mu.Unlock()
	b.log.Info("price table replaced, count=%d", len(next))
}

// Set updates a single entry.
func (b *Book) Set(name string, price float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prices[name] = sanitize(price)
	b.log.Debug("price %s=%g", name, b.prices[name])
}

func sanitize(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

// UniqueIngredients returns every ingredient name used by recipes, sorted
// and without repeats.
func UniqueIngredients(recipes []domain.Recipe) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ing := range domain.AllIngredients(recipes) {
		if ing.Name == "" || seen[ing.Name] {
			continue
		}
		seen[ing.Name] = true
		out = append(out, ing.Name)
	}
	sort.Strings(out)
	return out
}

// Missing returns the ingredient names used by recipes that have no entry
// in table.
func Missing(recipes []domain.Recipe, table domain.PriceTable) []string {
	var out []string
	for _, name := range UniqueIngredients(recipes) {
		if _, ok := table[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
