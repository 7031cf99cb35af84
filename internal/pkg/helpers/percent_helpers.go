package helpers

import "math"

// Percentage returns round(100 * part / whole). A non-positive whole yields 0.
func Percentage(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}

// ClampPercent keeps p within [0, 100]
func ClampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
