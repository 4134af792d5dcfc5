package domain

import "context"

// RecipeStore owns the recipe collection. Implementations hand out copies;
// mutations only happen through Add, Replace and Remove.
type RecipeStore interface {
	List(ctx context.Context) ([]Recipe, error)
	Get(ctx context.Context, id string) (Recipe, error)
	FindByName(ctx context.Context, name string) (Recipe, error)
	Add(ctx context.Context, recipe Recipe) (Recipe, error)
	Replace(ctx context.Context, recipe Recipe) error
	Remove(ctx context.Context, id string) error
}

// RecipeReplacer accepts an updated recipe by id. A card emits its commit
// through this.
type RecipeReplacer interface {
	Replace(ctx context.Context, recipe Recipe) error
}

// PriceBook owns the ingredient price table.
type PriceBook interface {
	Price(name string) float64
	Snapshot() PriceTable
	Replace(table PriceTable)
	Set(name string, price float64)
}

// OverrideReader exposes the live override for an ingredient id.
type OverrideReader interface {
	Range(id string) (QuantityRange, bool)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// Ledger keeps orders, sales and inventory counts. Totals are derived on
// write; ids are assigned by the ledger.
type Ledger interface {
	Orders(ctx context.Context) []Order
	AddOrder(ctx context.Context, o Order) Order
	EditOrder(ctx context.Context, o Order) (Order, error)
	DeleteOrder(ctx context.Context, id string) error
	ImportOrders(ctx context.Context, orders []Order) []Order

	Sales(ctx context.Context) []Sale
	AddSale(ctx context.Context, s Sale) Sale
	EditSale(ctx context.Context, s Sale) (Sale, error)
	DeleteSale(ctx context.Context, id string) error
	ImportSales(ctx context.Context, sales []Sale) []Sale

	Inventory(ctx context.Context) []InventoryCount
	SaveInventory(ctx context.Context, counts []InventoryCount) []InventoryCount
	InventoryOn(ctx context.Context, date string) []InventoryCount
}
