package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hammamikhairi/ottocost/internal/card"
	"github.com/hammamikhairi/ottocost/internal/csvio"
	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/export"
)

// Import reads a CSV file of the given kind and merges it in. Recipes and
// inventory counts are appended; prices, orders and sales replace what is
// there. It returns the number of records taken.
func (e *Engine) Import(ctx context.Context, kind csvio.Kind, r io.Reader) (int, error) {
	var n int
	switch kind {
	case csvio.KindRecipes:
		recipes, err := csvio.ReadRecipes(r)
		if err != nil {
			return 0, err
		}
		added, err := e.ImportRecipes(ctx, recipes)
		if err != nil {
			return 0, err
		}
		n = len(added)
	case csvio.KindPrices:
		table, err := csvio.ReadPrices(r)
		if err != nil {
			return 0, err
		}
		if err := e.UpdatePrices(ctx, table); err != nil {
			return 0, err
		}
		n = len(table)
	case csvio.KindOrders:
		orders, err := csvio.ReadOrders(r)
		if err != nil {
			return 0, err
		}
		n = len(e.ledger.ImportOrders(ctx, orders))
	case csvio.KindSales:
		sales, err := csvio.ReadSales(r)
		if err != nil {
			return 0, err
		}
		n = len(e.ledger.ImportSales(ctx, sales))
	case csvio.KindInventory:
		counts, err := csvio.ReadInventory(r)
		if err != nil {
			return 0, err
		}
		n = len(e.ledger.SaveInventory(ctx, counts))
	default:
		return 0, fmt.Errorf("%s files cannot be imported", kind)
	}

	e.metrics.Import(string(kind))
	e.log.Info("imported %d %s record(s)", n, kind)
	return n, nil
}

// Render writes the current data of the given kind as CSV.
func (e *Engine) Render(ctx context.Context, kind csvio.Kind, w io.Writer) error {
	switch kind {
	case csvio.KindRecipes:
		list, err := e.recipes.List(ctx)
		if err != nil {
			return err
		}
		return csvio.WriteRecipes(w, list)
	case csvio.KindPrices:
		return csvio.WritePrices(w, e.prices.Snapshot())
	case csvio.KindOrders:
		return csvio.WriteOrders(w, e.ledger.Orders(ctx))
	case csvio.KindSales:
		return csvio.WriteSales(w, e.ledger.Sales(ctx))
	case csvio.KindInventory:
		return csvio.WriteInventory(w, e.ledger.Inventory(ctx))
	case csvio.KindSuggestions:
		suggestions, err := e.SuggestedOrders(ctx)
		if err != nil {
			return err
		}
		return csvio.WriteSuggestions(w, suggestions)
	case csvio.KindReport:
		lines, err := e.report(ctx)
		if err != nil {
			return err
		}
		return csvio.WriteReport(w, lines)
	default:
		return fmt.Errorf("%s files cannot be exported", kind)
	}
}

// report costs every recipe at its committed quantities.
func (e *Engine) report(ctx context.Context) ([]csvio.ReportLine, error) {
	list, err := e.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	table := e.prices.Snapshot()
	lines := make([]csvio.ReportLine, 0, len(list))
	for _, r := range list {
		lines = append(lines, csvio.ReportLine{Recipe: r.Name, Metrics: card.Baseline(r, table)})
	}
	return lines, nil
}

// Export renders kind and hands it to the configured sink under a dated
// file name. It returns where the file went.
func (e *Engine) Export(ctx context.Context, kind csvio.Kind) (string, error) {
	if e.sink == nil {
		return "", domain.ErrNoExportTarget
	}
	var buf bytes.Buffer
	if err := e.Render(ctx, kind, &buf); err != nil {
		return "", fmt.Errorf("rendering %s: %w", kind, err)
	}
	loc, err := e.sink.Put(ctx, export.FileName(string(kind), e.now()), buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("exporting %s: %w", kind, err)
	}
	e.log.Info("exported %s to %s", kind, loc)
	return loc, nil
}
