package pricing

import "math"

// round2 rounds a dollar amount to whole cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round4 rounds a rate to four decimal places.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// toMinorUnits converts a dollar amount to integer cents.
func toMinorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}
