// Package format converts between engine numbers and text. The engine
// works in full-precision floats; rounding for display happens here and
// nowhere else, and so does coercion of typed input.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Undefined is shown in place of a non-finite number.
const Undefined = "n/a"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Money renders v with two decimals, half away from zero.
func Money(v float64) string {
	if !finite(v) {
		return Undefined
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Percent renders v with one decimal and a % sign.
func Percent(v float64) string {
	if !finite(v) {
		return Undefined
	}
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// Quantity renders a quantity with as many digits as it needs, capped at
// three decimals.
func Quantity(v float64) string {
	if !finite(v) {
		return Undefined
	}
	return decimal.NewFromFloat(v).Round(3).String()
}

// Raw renders v so that parsing it back yields the same float.
func Raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber reads user-typed numeric text. Anything that is not a finite
// number becomes 0; typos are never reported.
func ParseNumber(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || !finite(v) {
		return 0
	}
	return v
}

// ParseQuantity is ParseNumber floored at 0.
func ParseQuantity(text string) float64 {
	return math.Max(0, ParseNumber(text))
}
