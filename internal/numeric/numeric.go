// Package numeric holds the number parsing and formatting helpers used at the
// UI boundary. The geometry engine itself only sees already-validated numbers.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloatSafe parses s as a float64, returning fallback for empty input,
// malformed input, and non-finite values. A field that is momentarily empty
// while being typed into must not break the interaction loop.
func ParseFloatSafe(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	// Accept comma as decimal separator, as locale-configured keyboards produce it.
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// FormatNumber formats v with the given number of decimal places. Non-finite
// values format as "0" so broken state never reaches the UI.
func FormatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
