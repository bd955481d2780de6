package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Package timefmt converts between real-valued seconds used internally and
// the zero-padded "MM:SS" labels used in annotation documents. Labels carry
// whole seconds only; fractional seconds are floored on format and cannot be
// recovered on parse.

// Format renders seconds as "MM:SS", or "HH:MM:SS" once an hour is reached.
// Negative values are clamped to zero.
func Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	total := int(math.Floor(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// Parse reads a "MM:SS" or "HH:MM:SS" label back into seconds.
func Parse(label string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(label), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time label: %q", label)
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time label: %q", label)
		}
		total = total*60 + n
	}

	return float64(total), nil
}
