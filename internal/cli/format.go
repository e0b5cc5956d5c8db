// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumber abbreviates large counts with one decimal.
// e.g., 999 -> "999", 1000 -> "1.0K", 1500000 -> "1.5M"
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatCount adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatHours renders an hour figure the way the dashboard shows it:
// 12 -> "12", 12.57 -> "12.6".
func FormatHours(h float64) string {
	if h == math.Trunc(h) {
		return strconv.FormatInt(int64(h), 10)
	}
	return strconv.FormatFloat(h, 'f', 1, 64)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
