// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp clips x to [-1, 1] and widens it to float64 so that quantization
// happens at double precision. The second result is false when x is NaN,
// which has no position on the scale and must be encoded as zero bytes.
func Clamp(x float32) (float64, bool) {
	v := float64(x)
	if math.IsNaN(v) {
		return 0, false
	}

	if v > 1 {
		return 1, true
	} else if v < -1 {
		return -1, true
	}

	return v, true
}
