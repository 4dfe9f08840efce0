package scoring

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundHalfUp rounds a non-negative score to the given number of decimal
// places. Binary floats such as 3.35 are rounded on their shortest decimal
// representation, so 3.35 becomes 3.4 rather than 3.3.
func roundHalfUp(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// mean returns nil for an empty set instead of NaN
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

func ptr(v float64) *float64 {
	return &v
}
