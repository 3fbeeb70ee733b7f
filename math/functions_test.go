// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	gmath "math"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	for _, tc := range []struct {
		in, want float64
	}{
		{0.4, 0},
		{0.5, 1},
		{2.5, 3},
		{-2.5, -2},
		{-2.6, -3},
		{87.9999, 88},
	} {
		if got := RoundHalfUp(tc.in); got != tc.want {
			t.Errorf("RoundHalfUp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoundDecimals32(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want float64
	}{
		{0.249999953, 0.25},
		{0.25000018, 0.25},
		{1, 1},
		{0.12346, float64(float32(1235) / 10000)},
	} {
		if got := RoundDecimals32(tc.in, 4); got != tc.want {
			t.Errorf("RoundDecimals32(%v, 4) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) {
		t.Errorf("IsFinite(1) = false")
	}
	if IsFinite(gmath.NaN()) {
		t.Errorf("IsFinite(NaN) = true")
	}
	if IsFinite(gmath.Inf(-1)) {
		t.Errorf("IsFinite(-Inf) = true")
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); got != Pi {
		t.Errorf("Radians(180) = %v, want %v", got, Pi)
	}
}
