package chart

import (
	"fmt"
	"math"
)

// FormatAmount renders a minor-unit amount as an abbreviated major-unit
// label: millions get one decimal and an "M" suffix, thousands a "K" suffix
// (no decimal when whole), everything else the rounded integer.
func FormatAmount(minor int64) string {
	major := float64(minor) / 100
	switch {
	case major >= 1_000_000:
		return fmt.Sprintf("%.1fM", major/1_000_000)
	case major >= 1_000:
		thousands := major / 1_000
		if thousands == math.Trunc(thousands) {
			return fmt.Sprintf("%.0fK", thousands)
		}
		return fmt.Sprintf("%.1fK", thousands)
	default:
		return fmt.Sprintf("%.0f", major)
	}
}

// FormatDelta renders a signed day-over-day change, with an explicit "±0"
// form when the change is exactly zero
func FormatDelta(delta int64) string {
	switch {
	case delta > 0:
		return "+" + FormatAmount(delta)
	case delta < 0:
		return "-" + FormatAmount(-delta)
	default:
		return "±0"
	}
}
