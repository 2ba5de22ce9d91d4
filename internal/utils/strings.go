package utils

import (
	"strconv"
	"strings"
)

// PadFloat formats a float64 with specified total width, preserving original decimals
func PadFloat(num float64, width int) string {
	// Convert float to string with full precision
	str := strconv.FormatFloat(num, 'f', -1, 64)

	// Split into integer and decimal parts
	parts := strings.Split(str, ".")
	intPart := parts[0]

	// Calculate required padding for integer part only
	padding := width - len(intPart)

	// Add padding if needed
	if padding > 0 {
		intPart = strings.Repeat("0", padding) + intPart
	}

	// Reconstruct number with original decimal part if it exists
	if len(parts) > 1 {
		return intPart + "." + parts[1]
	}
	return intPart
}
