package exporter

import (
	"math"
	"strconv"
)

// formatFloat formats a value with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatInt formats a count
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// share returns part as a percentage of total, 0 when total is 0
func share(part, total float64) float64 {
	if total == 0 || math.IsNaN(total) {
		return 0
	}
	return part / total * 100
}
