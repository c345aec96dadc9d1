// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Int16Scale maps 16-bit integers onto [-1, 1). The same factor is used in both
// directions, so +32767 decodes to 32767/32768 rather than 1.0.
const Int16Scale = -float64(math.MinInt16)

// Int16ToFloat64 normalizes a 16-bit sample.
func Int16ToFloat64(v int16) float64 {
	return float64(v) / Int16Scale
}

// Float64ToInt16 rounds x*32768 to the nearest integer and clamps it to the
// int16 range. NaN maps to zero.
func Float64ToInt16(x float64) int16 {
	if math.IsNaN(x) {
		return 0
	}
	v := math.Round(x * Int16Scale)
	if v > math.MaxInt16 {
		return math.MaxInt16
	} else if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
