package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"money", Money(6), "6.00"},
		{"money rounds half up", Money(1.005), "1.01"},
		{"money negative", Money(-2.5), "-2.50"},
		{"money inf", Money(math.Inf(1)), Undefined},
		{"percent", Percent(30), "30.0%"},
		{"percent nan", Percent(math.NaN()), Undefined},
		{"money two decimals", Money(35.456), "35.46"},
		{"quantity trims", Quantity(1.5), "1.5"},
		{"quantity caps", Quantity(0.33333), "0.333"},
		{"raw", Raw(0.1), "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3", 3},
		{"  1.25", 1.25},
		{"", 0},
		{"1,5", 0},
		{"12abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-2", -2},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Fatalf("ParseNumber(%q): expected %g, got %g", tt.in, tt.want, got)
		}
	}
	assert.Equal(t, 0.0, ParseQuantity("-2"))
	assert.Equal(t, 4.0, ParseQuantity("4"))
}
