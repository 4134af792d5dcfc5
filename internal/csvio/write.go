package csvio

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/format"
	"github.com/hammamikhairi/ottocost/internal/pricing"
)

// ReportLine is one recipe's row in a costing report.
type ReportLine struct {
	Recipe  string
	Metrics domain.Metrics
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return format.Raw(*v)
}

// WriteRecipes writes recipes in the layout ReadRecipes accepts: the first
// ingredient row of each recipe carries its name and sale price.
func WriteRecipes(w io.Writer, recipes []domain.Recipe) error {
	header := []string{"recipeName", "salePrice", "ingredientName", "quantity", "unit", "isVariable", "minQuantity", "maxQuantity"}
	var rows [][]string
	for _, r := range recipes {
		for i, ing := range r.Ingredients {
			name, price := "", ""
			if i == 0 {
				name, price = r.Name, format.Raw(r.SalePrice)
			}
			rows = append(rows, []string{
				name, price,
				ing.Name, format.Raw(ing.Quantity), ing.Unit,
				strconv.FormatBool(ing.IsVariable),
				optional(ing.MinQuantity), optional(ing.MaxQuantity),
			})
		}
	}
	return writeAll(w, header, rows)
}

// WritePrices writes the price table sorted by ingredient name.
func WritePrices(w io.Writer, table domain.PriceTable) error {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, format.Raw(table[name])})
	}
	return writeAll(w, []string{"ingredient", "price"}, rows)
}

// WriteOrders writes orders, totals included.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.Date, o.Ingredient,
			format.Raw(o.QuantityOrdered), format.Raw(o.PricePerUnit), format.Money(o.Total),
		})
	}
	return writeAll(w, []string{"date", "ingredient", "quantityOrdered", "pricePerUnit", "total"}, rows)
}

// WriteSales writes sales, totals included.
func WriteSales(w io.Writer, sales []domain.Sale) error {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.Date, s.Recipe,
			format.Raw(s.QuantitySold), format.Raw(s.PricePerUnit), format.Money(s.Total),
		})
	}
	return writeAll(w, []string{"date", "recipe", "quantitySold", "pricePerUnit", "total"}, rows)
}

// WriteInventory writes stock counts.
func WriteInventory(w io.Writer, counts []domain.InventoryCount) error {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Date, c.Ingredient, format.Raw(c.StockRemaining)})
	}
	return writeAll(w, []string{"date", "ingredient", "stockRemaining"}, rows)
}

// WriteSuggestions writes suggested orders.
func WriteSuggestions(w io.Writer, suggestions []domain.SuggestedOrder) error {
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		rows = append(rows, []string{s.Ingredient, format.Money(s.SuggestedQuantity), s.Reason})
	}
	return writeAll(w, []string{"Ingredient", "Suggested Quantity", "Reason"}, rows)
}

// WriteReport writes per-recipe metrics with two-decimal figures. An
// undefined food-cost percentage is written as n/a.
func WriteReport(w io.Writer, lines []ReportLine) error {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		m := l.Metrics
		tier := m.Tier.String()
		if !pricing.Defined(m.FoodCostPercentage) {
			tier = format.Undefined
		}
		rows = append(rows, []string{
			l.Recipe,
			format.Money(m.Cost),
			format.Money(m.SalePrice),
			format.Money(m.Profit),
			format.Money(m.FoodCostPercentage),
			tier,
		})
	}
	return writeAll(w, []string{"Recipe", "Cost", "Sale Price", "Profit", "Food Cost %", "Tier"}, rows)
}
