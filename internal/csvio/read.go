// Package csvio reads and writes the comma-separated files the tracker
// exchanges with the outside world. Every file has a header row; columns
// are matched by name, case-insensitively, in any order.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/format"
)

// Kind names a file type for import and export.
type Kind string

const (
	KindRecipes     Kind = "recipes"
	KindPrices      Kind = "prices"
	KindOrders      Kind = "orders"
	KindSales       Kind = "sales"
	KindInventory   Kind = "inventory"
	KindSuggestions Kind = "suggested-orders"
	KindReport      Kind = "costing-report"
)

// Importable lists the kinds that can be read.
var Importable = []Kind{KindRecipes, KindPrices, KindOrders, KindSales, KindInventory}

// Exportable lists the kinds that can be written.
var Exportable = []Kind{KindRecipes, KindPrices, KindOrders, KindSales, KindInventory, KindSuggestions, KindReport}

// ParseKind accepts a kind name or a few short aliases.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recipes", "recipe":
		return KindRecipes, true
	case "prices", "price":
		return KindPrices, true
	case "orders", "order":
		return KindOrders, true
	case "sales", "sale":
		return KindSales, true
	case "inventory", "counts":
		return KindInventory, true
	case "suggested-orders", "suggestions", "suggest":
		return KindSuggestions, true
	case "costing-report", "report":
		return KindReport, true
	default:
		return "", false
	}
}

// table is a parsed file: a header index and the data rows.
type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyImport
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &table{cols: make(map[string]int, len(header))}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := t.cols[key]; !dup {
			t.cols[key] = i
		}
	}
	for _, name := range required {
		if _, ok := t.cols[strings.ToLower(name)]; !ok {
			return nil, fmt.Errorf("column %q: %w", name, domain.ErrMissingColumn)
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// get returns the trimmed cell for column name, or "" when the column or
// cell is missing.
func (t *table) get(row []string, name string) string {
	i, ok := t.cols[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) num(row []string, name string) float64 {
	return format.ParseNumber(t.get(row, name))
}

func (t *table) qty(row []string, name string) float64 {
	return format.ParseQuantity(t.get(row, name))
}

// optional returns a pointer for a present, non-empty cell.
func (t *table) optional(row []string, name string) *float64 {
	s := t.get(row, name)
	if s == "" {
		return nil
	}
	return domain.Float(format.ParseQuantity(s))
}

// ── Readers ──────────────────────────────────────────────────────

// ReadRecipes parses a recipe file. A row with a recipeName starts a new
// recipe; a row with an ingredientName adds to the current one. Recipes
// without ingredients are dropped. Ids are left empty for the store to
// assign.
func ReadRecipes(r io.Reader) ([]domain.Recipe, error) {
	t, err := readTable(r, "recipeName", "ingredientName")
	if err != nil {
		return nil, err
	}

	var (
		out     []domain.Recipe
		current *domain.Recipe
	)
	flush := func() {
		if current != nil && current.Name != "" && len(current.Ingredients) > 0 {
			out = append(out, *current)
		}
	}

	for _, row := range t.rows {
		if name := t.get(row, "recipeName"); name != "" {
			flush()
			current = &domain.Recipe{
				Name:      name,
				SalePrice: t.qty(row, "salePrice"),
			}
		}
		ingName := t.get(row, "ingredientName")
		if current == nil || ingName == "" {
			continue
		}
		ing := domain.Ingredient{
			Name:       ingName,
			Quantity:   t.qty(row, "quantity"),
			Unit:       t.get(row, "unit"),
			IsVariable: strings.EqualFold(t.get(row, "isVariable"), "true"),
		}
		if ing.IsVariable {
			ing.MinQuantity = t.optional(row, "minQuantity")
			ing.MaxQuantity = t.optional(row, "maxQuantity")
		}
		current.Ingredients = append(current.Ingredients, ing)
	}
	flush()

	if len(out) == 0 {
		return nil, fmt.Errorf("recipes: %w", domain.ErrEmptyImport)
	}
	return out, nil
}

// ReadPrices parses an ingredient,price file. Later rows win.
func ReadPrices(r io.Reader) (domain.PriceTable, error) {
	t, err := readTable(r, "ingredient", "price")
	if err != nil {
		return nil, err
	}
	out := make(domain.PriceTable, len(t.rows))
	for _, row := range t.rows {
		name := t.get(row, "ingredient")
		if name == "" {
			continue
		}
		out[name] = t.qty(row, "price")
	}
	return out, nil
}

// ReadOrders parses a purchase order file.
func ReadOrders(r io.Reader) ([]domain.Order, error) {
	t, err := readTable(r, "date", "ingredient", "quantityOrdered", "pricePerUnit")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, domain.Order{
			Date:            t.get(row, "date"),
			Ingredient:      t.get(row, "ingredient"),
			QuantityOrdered: t.num(row, "quantityOrdered"),
			PricePerUnit:    t.num(row, "pricePerUnit"),
		})
	}
	return out, nil
}

// ReadSales parses a sales file.
func ReadSales(r io.Reader) ([]domain.Sale, error) {
	t, err := readTable(r, "date", "recipe", "quantitySold", "pricePerUnit")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sale, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, domain.Sale{
			Date:         t.get(row, "date"),
			Recipe:       t.get(row, "recipe"),
			QuantitySold: t.num(row, "quantitySold"),
			PricePerUnit: t.num(row, "pricePerUnit"),
		})
	}
	return out, nil
}

// ReadInventory parses a stock count file.
func ReadInventory(r io.Reader) ([]domain.InventoryCount, error) {
	t, err := readTable(r, "date", "ingredient", "stockRemaining")
	if err != nil {
		return nil, err
	}
	out := make([]domain.InventoryCount, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, domain.InventoryCount{
			Date:           t.get(row, "date"),
			Ingredient:     t.get(row, "ingredient"),
			StockRemaining: t.num(row, "stockRemaining"),
		})
	}
	return out, nil
}
