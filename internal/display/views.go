package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hammamikhairi/ottocost/internal/conversation"
	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/engine"
	"github.com/hammamikhairi/ottocost/internal/format"
	"github.com/hammamikhairi/ottocost/internal/ledger"
)

// Views render engine data as plain strings for PrintBlock. They never
// touch the UI so they can be tested directly.

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(sepStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return labelStyle.Bold(true).Padding(0, 1)
			}
			return primaryStyle.Padding(0, 1)
		})
}

// RecipeList renders the numbered recipe list. The selected recipe is
// marked.
func RecipeList(recipes []domain.Recipe, selectedID string) string {
	if len(recipes) == 0 {
		return secondaryStyle.Render("No recipes yet. Try: add recipe <name> <price>, or import recipes <path>.")
	}
	t := newTable("#", "Recipe", "Sale price", "Ingredients")
	for i, r := range recipes {
		name := r.Name
		if r.ID == selectedID {
			name = "▸ " + name
		}
		t.Row(fmt.Sprint(i+1), name, format.Money(r.SalePrice), fmt.Sprint(len(r.Ingredients)))
	}
	return t.Render()
}

// Card renders a recipe card: one row per ingredient and the committed
// figures next to the preview.
func Card(v engine.CardView) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(v.Recipe.Name))
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("  (%s, sells at %s)", v.State, format.Money(v.Recipe.SalePrice))))
	b.WriteByte('\n')

	t := newTable("Ingredient", "Price", "Committed", "Override", "Pending", "Cost")
	for _, l := range v.Lines {
		ing := l.Ingredient
		name := ing.Name
		if ing.IsVariable {
			name += " ~"
		}
		if l.Fixed {
			name += " (fixed)"
		}
		override := "-"
		if l.HasOverride {
			override = fmt.Sprintf("%s [%s..%s]",
				format.Quantity(l.Override.Current), format.Quantity(l.Override.Min), format.Quantity(l.Override.Max))
		}
		pending := ""
		if l.HasPending {
			pending = pendingStyle.Render(format.Quantity(l.Pending))
		}
		t.Row(
			name,
			format.Money(l.Price),
			format.Quantity(ing.Quantity)+" "+ing.Unit,
			override,
			pending,
			format.Money(l.Cost),
		)
	}
	b.WriteString(t.Render())
	b.WriteByte('\n')

	b.WriteString(metricsLine("committed", v.Baseline))
	if v.Pending > 0 {
		b.WriteByte('\n')
		b.WriteString(metricsLine("preview  ", v.Preview))
	}
	return b.String()
}

func metricsLine(label string, m domain.Metrics) string {
	return labelStyle.Render(label+"  cost ") + valueStyle.Render(format.Money(m.Cost)) +
		labelStyle.Render("  profit ") + valueStyle.Render(format.Money(m.Profit)) +
		labelStyle.Render("  food cost ") + Percent(m)
}

// Dashboard renders every recipe at its live quantities and the
// collection-wide averages.
func Dashboard(d engine.Dashboard) string {
	if len(d.Rows) == 0 {
		return secondaryStyle.Render("No recipes yet.")
	}
	t := newTable("Recipe", "Cost", "Sale price", "Profit", "Food cost", "Pending")
	for _, r := range d.Rows {
		pending := ""
		if r.Pending > 0 {
			pending = pendingStyle.Render(fmt.Sprint(r.Pending))
		}
		t.Row(r.Recipe.Name, format.Money(r.Live.Cost), format.Money(r.Live.SalePrice),
			format.Money(r.Live.Profit), Percent(r.Live), pending)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("average food cost ") + averageValue(d.AverageFoodCost, d.HasAverage))
	b.WriteString(labelStyle.Render("   sales-weighted ") + averageValue(d.GeneralFoodCost, d.HasGeneral))
	if len(d.MissingPrices) > 0 {
		b.WriteByte('\n')
		b.WriteString(urgentOutputStyle.Render("no price for: " + strings.Join(d.MissingPrices, ", ")))
	}
	return b.String()
}

func averageValue(v float64, ok bool) string {
	if !ok {
		return secondaryStyle.Render(format.Undefined)
	}
	return valueStyle.Render(format.Percent(v))
}

// Prices renders the price table sorted by name. Names in missing are
// listed with no price.
func Prices(prices domain.PriceTable, missing []string) string {
	names := make([]string, 0, len(prices)+len(missing))
	for name := range prices {
		names = append(names, name)
	}
	names = append(names, missing...)
	if len(names) == 0 {
		return secondaryStyle.Render("No prices yet. Try: price <ingredient> <value>.")
	}
	sort.Strings(names)

	t := newTable("Ingredient", "Unit price")
	for _, name := range names {
		price, ok := prices[name]
		cell := format.Money(price)
		if !ok {
			cell = urgentOutputStyle.Render("missing")
		}
		t.Row(name, cell)
	}
	return t.Render()
}

// Orders renders orders grouped by date, newest first.
func Orders(orders []domain.Order) string {
	return groups(ledger.GroupByDate(orders), "No orders recorded.",
		[]string{"Ingredient", "Quantity", "Unit price", "Total"},
		func(o domain.Order) []string {
			return []string{o.Ingredient, format.Quantity(o.QuantityOrdered), format.Money(o.PricePerUnit), format.Money(o.Total)}
		})
}

// Sales renders sales grouped by date, newest first.
func Sales(sales []domain.Sale) string {
	return groups(ledger.GroupByDate(sales), "No sales recorded.",
		[]string{"Recipe", "Sold", "Unit price", "Total"},
		func(s domain.Sale) []string {
			return []string{s.Recipe, format.Quantity(s.QuantitySold), format.Money(s.PricePerUnit), format.Money(s.Total)}
		})
}

// Inventory renders stock counts grouped by date, newest first.
func Inventory(counts []domain.InventoryCount) string {
	return groups(ledger.GroupByDate(counts), "No stock counts recorded.",
		[]string{"Ingredient", "Stock remaining"},
		func(c domain.InventoryCount) []string {
			return []string{c.Ingredient, format.Quantity(c.StockRemaining)}
		})
}

func groups[T domain.Dated](gs []ledger.Group[T], empty string, headers []string, row func(T) []string) string {
	if len(gs) == 0 {
		return secondaryStyle.Render(empty)
	}
	var b strings.Builder
	for i, g := range gs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(headingStyle.Render(g.Date))
		b.WriteByte('\n')
		t := newTable(headers...)
		for _, r := range g.Records {
			t.Row(row(r)...)
		}
		b.WriteString(t.Render())
	}
	return b.String()
}

// Suggestions renders suggested orders.
func Suggestions(list []domain.SuggestedOrder) string {
	if len(list) == 0 {
		return secondaryStyle.Render("Nothing to reorder.")
	}
	t := newTable("Ingredient", "Suggested quantity", "Reason")
	for _, s := range list {
		t.Row(s.Ingredient, format.Quantity(s.SuggestedQuantity), s.Reason)
	}
	return t.Render()
}

// Help renders the command listing.
func Help(cmds []conversation.Command) string {
	width := 0
	for _, c := range cmds {
		if w := lipgloss.Width(c.Usage); w > width {
			width = w
		}
	}
	var b strings.Builder
	for i, c := range cmds {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(valueStyle.Render(c.Usage))
		b.WriteString(strings.Repeat(" ", width-lipgloss.Width(c.Usage)))
		b.WriteString("  ")
		b.WriteString(secondaryStyle.Render(c.Description))
	}
	return b.String()
}
