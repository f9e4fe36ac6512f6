package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain integer", "500", 500},
		{"comma decimals", "500,00", 500},
		{"european thousands and decimals", "1.250,50", 1250.5},
		{"european thousands and two decimals", "1.250,75", 1250.75},
		{"comma decimal only", "1250,5", 1250.5},
		{"dot decimal two digits", "1250.75", 1250.75},
		{"dot decimal one digit", "1250.5", 1250.5},
		{"dot thousands", "1.250", 1250},
		{"dot thousands twice", "1.250.000", 1250000},
		{"currency prefix", "kr. 450,00", 450},
		{"currency suffix", "450,00 kr", 450},
		{"DKK with spaces", " DKK 1.250,50 ", 1250.5},
		{"leading decimal point", ",5", 0.5},
		{"trailing decimal point", "12.", 12},
		{"blank", "", 0},
		{"spaces", "   ", 0},
		{"marker letter", "x", 0},
		{"text", "n/a", 0},
		{"dash", "-", 0},
		{"lone separator", ".", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.raw))
		})
	}
}

// Exactly three digits after a lone dot are always read as a thousands
// group. That is right for "1.250" but turns a real three-decimal value
// into a much larger number.
func TestParseAmount_ThreeDigitSuffixHeuristic(t *testing.T) {
	assert.Equal(t, 1250.0, ParseAmount("1.250"), "1.250 must not become 1.25")
	assert.Equal(t, 1250500.0, ParseAmount("1250.500"))
	assert.Equal(t, 2125.0, ParseAmount("2.125"))
	assert.Equal(t, 2.12, ParseAmount("2.12"))
}

func TestParseAmount_CanonicalValues(t *testing.T) {
	encodings := map[float64][]string{
		500:     {"500", "500,00", "500,0", "kr 500"},
		1250.5:  {"1250,5", "1.250,50", "1250,50", "1250.50"},
		1250.75: {"1250,75", "1.250,75", "1250.75"},
	}

	for want, raws := range encodings {
		for _, raw := range raws {
			assert.Equal(t, want, ParseAmount(raw), "encoding %q", raw)
		}
	}
}

// Unreadable prices silently count as zero; a typo in the sheet is not an error.
func TestParseAmount_NeverFails(t *testing.T) {
	for _, raw := range []string{"abc", "#REF!", "???", "NaN", "none"} {
		assert.Zero(t, ParseAmount(raw), raw)
	}
}
