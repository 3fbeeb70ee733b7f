// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "cmp"

// Clamp limits val to [lo, hi]. lo wins if the range is empty.
func Clamp[K cmp.Ordered](lo, val, hi K) K {
	if val < lo {
		return lo
	}
	if val > hi {
		return max(hi, lo)
	}
	return val
}
