// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/hammamikhairi/ottocost/internal/domain"
	"github.com/hammamikhairi/ottocost/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
	verbs    map[string]verbRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// verbRule describes a command with arguments. The argument list is
// head fixed words, then a free-form name, then tail fixed words. The name
// may span several words so "price chicken breast 2.4" needs no quotes.
type verbRule struct {
	intent domain.IntentType
	head   int
	tail   int
	usage  string
}

// Command is one line of the help listing.
type Command struct {
	Usage       string
	Description string
}

// Commands lists every command the parser understands, for help output.
var Commands = []Command{
	{"list", "list recipes"},
	{"<n> | select <n|name>", "select a recipe"},
	{"show", "show the selected recipe card"},
	{"dashboard", "cost summary for every recipe"},
	{"prices", "show the ingredient price table"},
	{"price <ingredient> <value>", "set an ingredient's unit price"},
	{"set <ingredient> <qty>", "move the live quantity override"},
	{"range <ingredient> <min> <max>", "change the override bounds"},
	{"fix <ingredient> | vary <ingredient>", "lock or unlock an ingredient"},
	{"edit <ingredient> <qty>", "stage a quantity change on the card"},
	{"discard <ingredient>", "drop a staged change"},
	{"commit", "write staged changes into the recipe"},
	{"add recipe <name> <price>", "create a recipe"},
	{"add ingredient <name> <qty> <unit>", "add an ingredient to the selected recipe"},
	{"remove <ingredient>", "remove an ingredient from the selected recipe"},
	{"variable <ingredient> on|off", "toggle quantity bounds"},
	{"delete", "delete the selected recipe"},
	{"orders | order <date> <ingredient> <qty>", "list or record purchases"},
	{"sales | sale <date> <recipe> <qty>", "list or record sales"},
	{"inventory | count <date> <ingredient> <stock>", "list or record stock counts"},
	{"suggest", "suggested orders from sales and stock"},
	{"import <kind> <path>", "load a CSV file"},
	{"export <kind>", "write a CSV file"},
	{"help", "this list"},
	{"quit", "leave"},
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(list|recipes|ls|browse)$`), domain.IntentListRecipes},
		{regexp.MustCompile(`(?i)^(show|card|info)$`), domain.IntentShowRecipe},
		{regexp.MustCompile(`(?i)^(dashboard|dash|summary|overview)$`), domain.IntentDashboard},
		{regexp.MustCompile(`(?i)^(prices|price list)$`), domain.IntentShowPrices},
		{regexp.MustCompile(`(?i)^(commit|save|apply)$`), domain.IntentCommit},
		{regexp.MustCompile(`(?i)^(delete|delete recipe)$`), domain.IntentDeleteRecipe},
		{regexp.MustCompile(`(?i)^orders$`), domain.IntentListOrders},
		{regexp.MustCompile(`(?i)^sales$`), domain.IntentListSales},
		{regexp.MustCompile(`(?i)^(inventory|counts|stock)$`), domain.IntentListInventory},
		{regexp.MustCompile(`(?i)^(suggest|suggestions|reorder)$`), domain.IntentSuggest},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit},
	}
	p.verbs = map[string]verbRule{
		"select":         {domain.IntentSelectRecipe, 0, 0, "select <n|name>"},
		"pick":           {domain.IntentSelectRecipe, 0, 0, "select <n|name>"},
		"price":          {domain.IntentSetPrice, 0, 1, "price <ingredient> <value>"},
		"set":            {domain.IntentSetQuantity, 0, 1, "set <ingredient> <qty>"},
		"range":          {domain.IntentSetRange, 0, 2, "range <ingredient> <min> <max>"},
		"fix":            {domain.IntentFix, 0, 0, "fix <ingredient>"},
		"vary":           {domain.IntentVary, 0, 0, "vary <ingredient>"},
		"unfix":          {domain.IntentVary, 0, 0, "vary <ingredient>"},
		"edit":           {domain.IntentEditPending, 0, 1, "edit <ingredient> <qty>"},
		"discard":        {domain.IntentDiscardPending, 0, 0, "discard <ingredient>"},
		"add recipe":     {domain.IntentAddRecipe, 0, 1, "add recipe <name> <price>"},
		"add ingredient": {domain.IntentAddIngredient, 0, 2, "add ingredient <name> <qty> <unit>"},
		"remove":         {domain.IntentRemoveIngredient, 0, 0, "remove <ingredient>"},
		"variable":       {domain.IntentSetVariable, 0, 1, "variable <ingredient> on|off"},
		"order":          {domain.IntentAddOrder, 1, 1, "order <date> <ingredient> <qty>"},
		"sale":           {domain.IntentAddSale, 1, 1, "sale <date> <recipe> <qty>"},
		"count":          {domain.IntentAddCount, 1, 1, "count <date> <ingredient> <stock>"},
		"import":         {domain.IntentImport, 1, 0, "import <kind> <path>"},
		"export":         {domain.IntentExport, 0, 0, "export <kind>"},
	}
	return p
}

// Parse converts user input into an intent. A known command with the
// wrong number of arguments returns an error carrying its usage.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// Recipe selection by number (e.g., "1", "2", "12").
	if len(trimmed) <= 3 && isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentSelectRecipe, Payload: trimmed, Args: []string{trimmed}}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent, Payload: trimmed}, nil
		}
	}

	words := SplitArgs(trimmed)
	rule, args, ok := p.lookup(words)
	if !ok {
		p.log.Debug("no match, returning unknown intent")
		return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
	}

	shaped, ok := shape(args, rule.head, rule.tail)
	if !ok {
		return nil, fmt.Errorf("usage: %s", rule.usage)
	}
	p.log.Debug("matched intent: %s args=%q", rule.intent, shaped)
	return &domain.Intent{Type: rule.intent, Payload: trimmed, Args: shaped}, nil
}

// lookup finds the verb rule for words, trying two-word verbs first.
func (p *KeywordParser) lookup(words []string) (verbRule, []string, bool) {
	if len(words) >= 2 {
		key := strings.ToLower(words[0] + " " + words[1])
		if rule, ok := p.verbs[key]; ok {
			return rule, words[2:], true
		}
	}
	if len(words) >= 1 {
		if rule, ok := p.verbs[strings.ToLower(words[0])]; ok {
			return rule, words[1:], true
		}
	}
	return verbRule{}, nil, false
}

// shape folds the middle of args into a single name argument.
func shape(args []string, head, tail int) ([]string, bool) {
	if len(args) < head+tail+1 {
		return nil, false
	}
	name := strings.Join(args[head:len(args)-tail], " ")
	out := make([]string, 0, head+tail+1)
	out = append(out, args[:head]...)
	out = append(out, name)
	out = append(out, args[len(args)-tail:]...)
	return out, true
}

// SplitArgs splits s on whitespace. Single or double quotes group words;
// an unterminated quote runs to the end of the input.
func SplitArgs(s string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune
		inArg bool
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				out = append(out, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		out = append(out, cur.String())
	}
	return out
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
