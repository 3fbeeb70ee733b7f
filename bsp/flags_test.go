// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import "testing"

func TestBrushFlagValues(t *testing.T) {
	for _, tc := range []struct {
		f    BrushFlag
		want uint32
	}{
		{ContentsSolid, 0x1},
		{ContentsAreaportal, 0x8000},
		{ContentsPlayerClip, 0x10000},
		{ContentsOrigin, 0x1000000},
		{ContentsDetail, 0x8000000},
		{ContentsLadder, 0x20000000},
	} {
		if uint32(tc.f) != tc.want {
			t.Errorf("%v = %#x, want %#x", tc.f, uint32(tc.f), tc.want)
		}
	}
}

func TestSurfaceFlagValues(t *testing.T) {
	for _, tc := range []struct {
		f    SurfaceFlag
		want uint32
	}{
		{SurfSky2D, 0x2},
		{SurfSky, 0x4},
		{SurfTrigger, 0x40},
		{SurfNodraw, 0x80},
		{SurfHint, 0x100},
		{SurfSkip, 0x200},
	} {
		if uint32(tc.f) != tc.want {
			t.Errorf("%v = %#x, want %#x", tc.f, uint32(tc.f), tc.want)
		}
	}
}

func TestFlagString(t *testing.T) {
	f := ContentsSolid | ContentsAreaportal
	if got, want := f.String(), "SOLID|AREAPORTAL"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := SurfaceFlag(0).String(); got != "0" {
		t.Errorf("String() = %q, want %q", got, "0")
	}
}

func TestParseFlags(t *testing.T) {
	f, ok := ParseBrushFlags("solid | PLAYERCLIP")
	if !ok || f != ContentsSolid|ContentsPlayerClip {
		t.Errorf("ParseBrushFlags = %v,%v", f, ok)
	}
	if _, ok := ParseSurfaceFlags("SKY|BOGUS"); ok {
		t.Errorf("ParseSurfaceFlags accepted an unknown name")
	}
	s, ok := ParseSurfaceFlags("")
	if !ok || s != 0 {
		t.Errorf("ParseSurfaceFlags(\"\") = %v,%v", s, ok)
	}
}
