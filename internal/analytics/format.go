package analytics

import (
	"math"
	"strconv"
	"strings"
)

// formatDecimal renders v with at most three decimals and no trailing zeros.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// round1 rounds to one decimal, half to even.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
