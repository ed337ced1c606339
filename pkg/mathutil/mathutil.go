// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/launchessentials/finplan/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Sum returns the total of all values in the slice.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Average returns the mean of the slice, or 0 for an empty slice. The
// empty-slice behavior is relied upon by competitive pricing, which treats
// an empty competitor list as a zero price rather than an error.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// AverageGrowthRate returns the mean period-over-period growth rate of the
// series. Periods starting from a zero base are skipped since their growth
// is undefined. Returns 0 when fewer than two usable periods exist.
func AverageGrowthRate(values []float64) float64 {
	total := 0.0
	count := 0
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		total += (values[i] - values[i-1]) / values[i-1]
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
