// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		lo, val, hi, want int
	}{
		{1, 0, 10, 1},
		{1, 100, 10, 10},
		{1, 5, 10, 5},
		{0, 17, 17, 17},
		{5, 3, 2, 5},
		{5, 7, 2, 5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.lo, tt.val, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.lo, tt.val, tt.hi, got, tt.want)
		}
	}
	if got := Clamp(0.0, 1.5, 1.0); got != 1 {
		t.Errorf("Clamp(0, 1.5, 1) = %v, want 1", got)
	}
}
