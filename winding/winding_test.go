// SPDX-License-Identifier: GPL-2.0-or-later

package winding

import (
	"math"
	"testing"

	"bspdecomp/bsp"
	"bspdecomp/bsp/bsptest"
	"bspdecomp/math/vec"
)

func square(minX, minY, maxX, maxY, z float64) Winding {
	return FromPoints(
		vec.Vec3d{minX, minY, z},
		vec.Vec3d{maxX, minY, z},
		vec.Vec3d{maxX, maxY, z},
		vec.Vec3d{minX, maxY, z},
	)
}

func TestFromPlane(t *testing.T) {
	tests := []struct {
		normal vec.Vec3d
		dist   float64
	}{
		{vec.Vec3d{0, 0, 1}, 64},
		{vec.Vec3d{0, 0, -1}, 0},
		{vec.Vec3d{1, 0, 0}, -32},
		{vec.Vec3d{0, -1, 0}, 128},
		{vec.Vec3d{1, 1, 0}.Normalize(), 10},
		{vec.Vec3d{1, 2, 3}.Normalize(), -5},
	}
	for _, tc := range tests {
		w := FromPlane(tc.normal, tc.dist)
		if len(w) != 4 {
			t.Errorf("FromPlane(%v, %v) has %d points, want 4", tc.normal, tc.dist, len(w))
			continue
		}
		for _, p := range w {
			if d := vec.Dot(p, tc.normal) - tc.dist; math.Abs(d) > 1e-6 {
				t.Errorf("FromPlane(%v, %v) point %v off plane by %v", tc.normal, tc.dist, p, d)
			}
		}
		if n := w.Normal(); !vec.NearlyEqual(n, tc.normal, 1e-9) {
			t.Errorf("FromPlane(%v, %v).Normal() = %v, want %v", tc.normal, tc.dist, n, tc.normal)
		}
	}
	if w := FromPlane(vec.Null, 0); w != nil {
		t.Errorf("FromPlane(null) = %v, want nil", w)
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		w    Winding
		want float64
	}{
		{nil, 0},
		{FromPoints(vec.Vec3d{0, 0, 0}, vec.Vec3d{1, 0, 0}), 0},
		{square(0, 0, 64, 64, 0), 4096},
		{square(0, 0, 64, 32, 100), 2048},
		{FromPoints(vec.Vec3d{0, 0, 0}, vec.Vec3d{10, 0, 0}, vec.Vec3d{0, 10, 0}), 50},
		{FromPlane(vec.BaseZ, 0), 4 * MaxCoord * MaxCoord},
	}
	for _, tc := range tests {
		if got := tc.w.Area(); math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("Area(%v) = %v, want %v", tc.w, got, tc.want)
		}
	}
}

func TestClipPlane(t *testing.T) {
	sq := square(0, 0, 64, 64, 0)
	tests := []struct {
		name   string
		normal vec.Vec3d
		dist   float64
		area   float64
		points int
	}{
		{"inside", vec.BaseX, 100, 4096, 4},
		{"touching", vec.BaseX, 64, 4096, 4},
		{"half", vec.BaseX, 32, 2048, 4},
		{"negative half", vec.Vec3d{-1, 0, 0}, -32, 2048, 4},
		{"corner", vec.Vec3d{1, 1, 0}.Normalize(), 32 * math.Sqrt2, 2048, 3},
		{"outside", vec.BaseX, -10, 0, 0},
	}
	for _, tc := range tests {
		c := sq.ClipPlane(tc.normal, tc.dist)
		if len(c) != tc.points {
			t.Errorf("%s: ClipPlane has %d points, want %d", tc.name, len(c), tc.points)
		}
		if got := c.Area(); math.Abs(got-tc.area) > 1e-6 {
			t.Errorf("%s: ClipPlane area = %v, want %v", tc.name, got, tc.area)
		}
	}
}

func TestClipPlaneIdempotent(t *testing.T) {
	planes := []struct {
		normal vec.Vec3d
		dist   float64
	}{
		{vec.BaseX, 20},
		{vec.Vec3d{0, -1, 0}, -5},
		{vec.Vec3d{1, 1, 0}.Normalize(), 40},
		{vec.Vec3d{-3, 1, 0}.Normalize(), -8},
	}
	sq := square(0, 0, 64, 64, 0)
	for _, p := range planes {
		once := sq.ClipPlane(p.normal, p.dist)
		twice := once.ClipPlane(p.normal, p.dist)
		if !once.Equal(twice, 1e-9) {
			t.Errorf("ClipPlane(%v, %v) twice = %v, want %v", p.normal, p.dist, twice, once)
		}
		if once.Area() > sq.Area()+1e-9 {
			t.Errorf("ClipPlane(%v, %v) area %v grows above %v", p.normal, p.dist, once.Area(), sq.Area())
		}
	}
}

func TestClipPlaneKeepsOrder(t *testing.T) {
	sq := square(0, 0, 64, 64, 0)
	got := sq.ClipPlane(vec.BaseX, 32)
	want := FromPoints(
		vec.Vec3d{0, 0, 0},
		vec.Vec3d{32, 0, 0},
		vec.Vec3d{32, 64, 0},
		vec.Vec3d{0, 64, 0},
	)
	if !got.Equal(want, 1e-9) {
		t.Errorf("ClipPlane = %v, want %v", got, want)
	}
}

func TestClip(t *testing.T) {
	a := square(0, 0, 64, 64, 16)
	tests := []struct {
		name  string
		other Winding
		area  float64
	}{
		{"self", a, 4096},
		{"overlap", square(32, 32, 96, 96, 16), 1024},
		{"contained", square(16, 16, 48, 48, 16), 1024},
		{"container", square(-64, -64, 128, 128, 16), 4096},
		{"disjoint", square(100, 100, 200, 200, 16), 0},
		{"degenerate", FromPoints(vec.Vec3d{0, 0, 16}, vec.Vec3d{1, 1, 16}), 0},
	}
	for _, tc := range tests {
		got := a.Clip(tc.other, vec.BaseZ).Area()
		if math.Abs(got-tc.area) > 1e-6 {
			t.Errorf("%s: Clip area = %v, want %v", tc.name, got, tc.area)
		}
	}
}

func TestClipReversedOther(t *testing.T) {
	a := square(0, 0, 64, 64, 0)
	b := square(32, 0, 96, 64, 0)
	rev := make(Winding, len(b))
	for i, p := range b {
		rev[len(b)-1-i] = p
	}
	if got, want := a.Clip(rev, vec.BaseZ).Area(), a.Clip(b, vec.BaseZ).Area(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Clip(reversed) area = %v, want %v", got, want)
	}
}

func TestPlanePoints(t *testing.T) {
	w := FromPoints(
		vec.Vec3d{0, 0, 0},
		vec.Vec3d{1, 0, 0},
		vec.Vec3d{2, 0, 0},
		vec.Vec3d{2, 2, 0},
	)
	pts, ok := w.PlanePoints()
	if !ok {
		t.Fatalf("PlanePoints(%v) failed", w)
	}
	if pts[0] != w[1] {
		t.Errorf("PlanePoints(%v)[0] = %v, want %v", w, pts[0], w[1])
	}
	line := FromPoints(vec.Vec3d{0, 0, 0}, vec.Vec3d{1, 0, 0}, vec.Vec3d{2, 0, 0})
	if _, ok := line.PlanePoints(); ok {
		t.Errorf("PlanePoints(%v) succeeded on a line", line)
	}
}

func TestFromSide(t *testing.T) {
	b := bsptest.New()
	ib := b.Box(vec.Vec3f{0, 0, 0}, vec.Vec3f{64, 32, 16}, bsp.ContentsSolid, bsp.TexInfoNode)
	d := b.Data
	brush := &d.Brushes[ib]
	want := []float64{32 * 16, 32 * 16, 64 * 16, 64 * 16, 64 * 32, 64 * 32}
	for i, a := range want {
		iside := brush.FirstSide + i
		w := FromSide(d, brush, iside)
		if got := w.Area(); math.Abs(got-a) > 1e-6 {
			t.Errorf("FromSide(%d).Area() = %v, want %v", iside, got, a)
		}
		p := d.Planes[d.BrushSides[iside].Plane]
		if n := w.Normal(); !vec.NearlyEqual(n, p.Normal.Double(), 1e-9) {
			t.Errorf("FromSide(%d).Normal() = %v, want %v", iside, n, p.Normal)
		}
	}
}

func TestFromSideIgnoresBevels(t *testing.T) {
	b := bsptest.New()
	ib := b.Box(vec.Vec3f{0, 0, 0}, vec.Vec3f{64, 64, 64}, bsp.ContentsSolid, bsp.TexInfoNode)
	d := b.Data
	// a bevel cutting through the middle of the box
	d.BrushSides = append(d.BrushSides, bsp.BrushSide{
		Plane: b.Plane(vec.Vec3f{1, 0, 0}, 16),
		Bevel: true,
	})
	brush := &d.Brushes[ib]
	brush.NumSides++
	top := brush.FirstSide + 4
	if got := FromSide(d, brush, top).Area(); math.Abs(got-4096) > 1e-6 {
		t.Errorf("FromSide(top).Area() = %v, want 4096", got)
	}
}

func TestFromSideInvalid(t *testing.T) {
	b := bsptest.New()
	ib := b.Box(vec.Vec3f{0, 0, 0}, vec.Vec3f{64, 64, 64}, bsp.ContentsSolid, bsp.TexInfoNode)
	d := b.Data
	brush := &d.Brushes[ib]
	if w := FromSide(d, brush, len(d.BrushSides)); w != nil {
		t.Errorf("FromSide(out of range) = %v, want nil", w)
	}
	d.BrushSides[0].Plane = 1000
	if w := FromSide(d, brush, 0); w != nil {
		t.Errorf("FromSide(bad plane) = %v, want nil", w)
	}
}

func TestFromOccluder(t *testing.T) {
	b := bsptest.New()
	pl := b.Plane(vec.Vec3f{0, 0, 1}, 8)
	io := b.Occluder(pl, bsptest.Quad(0, 0, 16, 16, 8)...)
	d := b.Data
	poly := &d.OccluderPolys[d.Occluders[io].FirstPoly]
	w := FromOccluder(d, poly)
	if len(w) != 4 || math.Abs(w.Area()-256) > 1e-6 {
		t.Errorf("FromOccluder = %v, want 16x16 square", w)
	}

	poly.VertexCount = 2
	if w := FromOccluder(d, poly); w != nil {
		t.Errorf("FromOccluder(2 points) = %v, want nil", w)
	}
	poly.VertexCount = 4
	d.OccluderVertexIndices[1] = 99
	if w := FromOccluder(d, poly); len(w) != 3 {
		t.Errorf("FromOccluder(bad index) has %d points, want 3", len(w))
	}
}

func TestFromOccluderBadCounts(t *testing.T) {
	b := bsptest.New()
	pl := b.Plane(vec.Vec3f{0, 0, 1}, 8)
	io := b.Occluder(pl, bsptest.Quad(0, 0, 16, 16, 8)...)
	d := b.Data
	tests := []struct {
		first, count int
		want         int
	}{
		{0, -1, 0},
		{0, 0, 0},
		{0, 1 << 40, 4},
		{1, 1 << 40, 3},
		{-2, 4, 0},
		{4, 4, 0},
		{1 << 40, 4, 0},
	}
	for _, tc := range tests {
		poly := bsp.OccluderPoly{FirstVertexIndex: tc.first, VertexCount: tc.count, Plane: pl}
		if w := FromOccluder(d, &poly); len(w) != tc.want {
			t.Errorf("FromOccluder(first %d, count %d) has %d points, want %d", tc.first, tc.count, len(w), tc.want)
		}
	}
	if w := FromOccluder(d, &d.OccluderPolys[d.Occluders[io].FirstPoly]); len(w) != 4 {
		t.Errorf("FromOccluder = %v, want 4 points", w)
	}
}

func TestFromAreaportalBadCounts(t *testing.T) {
	b := bsptest.New()
	pl := b.Plane(vec.Vec3f{0, 0, 1}, 0)
	ip := b.Areaportal(pl, bsptest.Quad(0, 0, 32, 32, 0)...)
	d := b.Data
	for _, count := range []int{-1, 0, 1 << 40} {
		d.Areaportals[ip].ClipPortalVerts = count
		want := 0
		if count > 0 {
			want = 4
		}
		if w := FromAreaportal(d, &d.Areaportals[ip]); len(w) != want {
			t.Errorf("FromAreaportal(count %d) has %d points, want %d", count, len(w), want)
		}
	}
}

func TestFromAreaportal(t *testing.T) {
	b := bsptest.New()
	pl := b.Plane(vec.Vec3f{1, 0, 0}, 0)
	ip := b.Areaportal(pl,
		vec.Vec3f{0, 0, 0},
		vec.Vec3f{0, 32, 0},
		vec.Vec3f{0, 32, 64},
		vec.Vec3f{0, 0, 64},
	)
	d := b.Data
	w := FromAreaportal(d, &d.Areaportals[ip])
	if got := w.Area(); math.Abs(got-2048) > 1e-6 {
		t.Errorf("FromAreaportal area = %v, want 2048", got)
	}
	d.ClipPortalVerts[2] = vec.Vec3f{float32(math.NaN()), 0, 0}
	if w := FromAreaportal(d, &d.Areaportals[ip]); len(w) != 3 {
		t.Errorf("FromAreaportal(NaN point) has %d points, want 3", len(w))
	}
}

func TestCache(t *testing.T) {
	b := bsptest.New()
	ib := b.Box(vec.Vec3f{0, 0, 0}, vec.Vec3f{64, 64, 64}, bsp.ContentsSolid, bsp.TexInfoNode)
	c := NewCache(b.Data)
	w1 := c.Side(ib, 4)
	w2 := c.Side(ib, 4)
	if len(w1) == 0 || &w1[0] != &w2[0] {
		t.Errorf("Cache.Side returned different windings %v and %v", w1, w2)
	}
	if got := c.Built(); got != 1 {
		t.Errorf("Cache.Built() = %d, want 1", got)
	}
	tests := []struct{ brush, side int }{
		{ib, 6}, {ib, -1}, {1, 0}, {-1, 0},
	}
	for _, tc := range tests {
		if w := c.Side(tc.brush, tc.side); w != nil {
			t.Errorf("Cache.Side(%d, %d) = %v, want nil", tc.brush, tc.side, w)
		}
	}
}
