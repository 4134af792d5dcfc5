package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListRecipes
	IntentSelectRecipe
	IntentShowRecipe
	IntentDashboard
	IntentShowPrices
	IntentSetPrice
	IntentSetQuantity // move the live override
	IntentSetRange
	IntentFix
	IntentVary
	IntentEditPending // stage a card edit
	IntentDiscardPending
	IntentCommit
	IntentAddRecipe
	IntentAddIngredient
	IntentRemoveIngredient
	IntentSetVariable
	IntentDeleteRecipe
	IntentListOrders
	IntentAddOrder
	IntentListSales
	IntentAddSale
	IntentListInventory
	IntentAddCount
	IntentSuggest
	IntentImport
	IntentExport
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	if name, ok := intentStrings[i]; ok {
		return name
	}
	return "unknown"
}

var intentStrings = map[IntentType]string{
	IntentListRecipes:      "list_recipes",
	IntentSelectRecipe:     "select_recipe",
	IntentShowRecipe:       "show_recipe",
	IntentDashboard:        "dashboard",
	IntentShowPrices:       "show_prices",
	IntentSetPrice:         "set_price",
	IntentSetQuantity:      "set_quantity",
	IntentSetRange:         "set_range",
	IntentFix:              "fix",
	IntentVary:             "vary",
	IntentEditPending:      "edit_pending",
	IntentDiscardPending:   "discard_pending",
	IntentCommit:           "commit",
	IntentAddRecipe:        "add_recipe",
	IntentAddIngredient:    "add_ingredient",
	IntentRemoveIngredient: "remove_ingredient",
	IntentSetVariable:      "set_variable",
	IntentDeleteRecipe:     "delete_recipe",
	IntentListOrders:       "list_orders",
	IntentAddOrder:         "add_order",
	IntentListSales:        "list_sales",
	IntentAddSale:          "add_sale",
	IntentListInventory:    "list_inventory",
	IntentAddCount:         "add_count",
	IntentSuggest:          "suggest",
	IntentImport:           "import",
	IntentExport:           "export",
	IntentHelp:             "help",
	IntentQuit:             "quit",
}

// Intent represents a parsed user action. Args holds the positional
// arguments the command carries, already split; names that contain spaces
// arrive as a single argument when quoted.
type Intent struct {
	Type    IntentType
	Payload string // raw input for unknown intents
	Args    []string
}

// Arg returns the i-th argument or "" when absent.
func (in *Intent) Arg(i int) string {
	if i < 0 || i >= len(in.Args) {
		return ""
	}
	return in.Args[i]
}
