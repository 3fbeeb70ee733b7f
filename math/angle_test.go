// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestAngleMod(t *testing.T) {
	tests := []struct {
		a, want float64
	}{
		{180, 180},
		{90.5, 90.5},
		{-180, 180},
		{540, 180},
		{360, 0},
		{-720, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := AngleMod(tt.a); got != tt.want {
			t.Errorf("AngleMod(%v) = %v, want %v", tt.a, got, tt.want)
		}
	}
}
