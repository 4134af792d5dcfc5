package domain

// DateLayout is the calendar-day format used for every record date.
const DateLayout = "2006-01-02"

// Order is a purchase of one ingredient. Total is always recomputed as
// QuantityOrdered * PricePerUnit and never edited directly.
type Order struct {
	ID              string
	Date            string
	Ingredient      string
	QuantityOrdered float64
	PricePerUnit    float64
	Total           float64
}

// Sale records units of a recipe sold on a day. Total is always recomputed
// as QuantitySold * PricePerUnit.
type Sale struct {
	ID           string
	Date         string
	Recipe       string
	QuantitySold float64
	PricePerUnit float64
	Total        float64
}

// InventoryCount is the stock remaining of one ingredient on a day.
type InventoryCount struct {
	ID             string
	Date           string
	Ingredient     string
	StockRemaining float64
}

// Dated is implemented by every ledger record so they can share date grouping.
type Dated interface {
	RecordDate() string
}

func (o Order) RecordDate() string          { return o.Date }
func (s Sale) RecordDate() string           { return s.Date }
func (c InventoryCount) RecordDate() string { return c.Date }

// SuggestedOrder is a proposed purchase derived from sales and stock counts.
type SuggestedOrder struct {
	Ingredient        string
	SuggestedQuantity float64
	Reason            string
}
