package utils

import (
	"math"
	"strings"
)

// ProgressBar renders a percentage in [0, 100] as a fixed-width bar.
func ProgressBar(percent float64, width int) string {
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// ScaledBar renders hours relative to peak; any nonzero value gets one cell.
func ScaledBar(hours, peak float64, width int) string {
	if hours <= 0 || peak <= 0 {
		return ""
	}
	n := max(1, int(math.Round(hours/peak*float64(width))))
	return strings.Repeat("█", n)
}
