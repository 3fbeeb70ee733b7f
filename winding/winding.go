// SPDX-License-Identifier: GPL-2.0-or-later

// Package winding implements convex polygons in 3-space. A Winding is never
// modified after creation; clipping returns a new winding.
package winding

import (
	"bspdecomp/math/vec"
)

const (
	// MaxCoord is the half extent of the base winding of a plane
	MaxCoord = 32768

	// ClipEpsilon is the distance below which a point counts as on a plane
	ClipEpsilon = 0.01
)

const (
	sideFront = iota
	sideBack
	sideOn
)

// Winding is an ordered list of coplanar points describing a convex polygon.
// Consecutive points form an edge, the last point connects to the first.
// Windings with less than three points are degenerate.
type Winding []vec.Vec3d

// FromPoints copies pts into a new winding.
func FromPoints(pts ...vec.Vec3d) Winding {
	w := make(Winding, len(pts))
	copy(w, pts)
	return w
}

// IsEmpty reports whether the winding is degenerate.
func (w Winding) IsEmpty() bool {
	return len(w) < 3
}

// FromPlane returns a winding covering the whole plane up to MaxCoord. The
// points are ordered so that (p2-p0)x(p1-p0) points along normal.
func FromPlane(normal vec.Vec3d, dist float64) Winding {
	// find the major axis
	axis := -1
	maxv := 0.0
	for i, c := range normal {
		if c < 0 {
			c = -c
		}
		if c > maxv {
			axis = i
			maxv = c
		}
	}
	if axis == -1 {
		return nil
	}

	vup := vec.BaseZ
	if axis == 2 {
		vup = vec.BaseX
	}
	vup = vec.Sub(vup, normal.Scale(vec.Dot(vup, normal))).Normalize()

	org := normal.Scale(dist)
	vright := vec.Cross(vup, normal).Scale(MaxCoord)
	vup = vup.Scale(MaxCoord)

	return Winding{
		vec.Add(vec.Sub(org, vright), vup),
		vec.Add(vec.Add(org, vright), vup),
		vec.Sub(vec.Add(org, vright), vup),
		vec.Sub(vec.Sub(org, vright), vup),
	}
}

// ClipPlane keeps the part of the winding behind the plane, which is the
// inside of a brush whose side lies on that plane. Points within
// ClipEpsilon of the plane are kept, a new point is inserted wherever an
// edge crosses the plane. A winding entirely behind the plane is returned
// as is, one entirely in front yields nil.
func (w Winding) ClipPlane(normal vec.Vec3d, dist float64) Winding {
	if w.IsEmpty() {
		return nil
	}
	n := len(w)
	dists := make([]float64, n)
	sides := make([]int, n)
	var front, back int
	for i, p := range w {
		d := vec.Dot(p, normal) - dist
		dists[i] = d
		switch {
		case d > ClipEpsilon:
			sides[i] = sideFront
			front++
		case d < -ClipEpsilon:
			sides[i] = sideBack
			back++
		default:
			sides[i] = sideOn
		}
	}
	if front == 0 {
		return w
	}
	if back == 0 {
		return nil
	}

	out := make(Winding, 0, n+4)
	for i, p1 := range w {
		if sides[i] == sideOn {
			out = append(out, p1)
			continue
		}
		if sides[i] == sideBack {
			out = append(out, p1)
		}
		j := (i + 1) % n
		if sides[j] == sideOn || sides[j] == sides[i] {
			continue
		}

		// generate a split point
		p2 := w[j]
		frac := dists[i] / (dists[i] - dists[j])
		var mid vec.Vec3d
		for k := range mid {
			// avoid round off error when possible
			switch normal[k] {
			case 1:
				mid[k] = dist
			case -1:
				mid[k] = -dist
			default:
				mid[k] = p1[k] + frac*(p2[k]-p1[k])
			}
		}
		out = append(out, mid)
	}
	if out.IsEmpty() {
		return nil
	}
	return out
}

// Clip returns the part of w inside other. Both windings are expected to
// lie on the plane with the given normal; every edge of other together with
// normal spans a clip plane facing away from other's interior.
func (w Winding) Clip(other Winding, normal vec.Vec3d) Winding {
	if w.IsEmpty() || other.IsEmpty() {
		return nil
	}
	center := other.Center()
	out := w
	for i, p1 := range other {
		p2 := other[(i+1)%len(other)]
		en := vec.Cross(vec.Sub(p2, p1), normal).Normalize()
		if en == vec.Null {
			continue
		}
		d := vec.Dot(p1, en)
		if vec.Dot(center, en)-d > 0 {
			en = en.Scale(-1)
			d = -d
		}
		out = out.ClipPlane(en, d)
		if out.IsEmpty() {
			return nil
		}
	}
	return out
}

// Area returns the area of the polygon, 0 for degenerate windings.
func (w Winding) Area() float64 {
	if w.IsEmpty() {
		return 0
	}
	var total vec.Vec3d
	for i := 1; i+1 < len(w); i++ {
		e1 := vec.Sub(w[i], w[0])
		e2 := vec.Sub(w[i+1], w[0])
		total = vec.Add(total, vec.Cross(e1, e2))
	}
	return total.Length() / 2
}

// Center returns the average of all points.
func (w Winding) Center() vec.Vec3d {
	var c vec.Vec3d
	if len(w) == 0 {
		return c
	}
	for _, p := range w {
		c = vec.Add(c, p)
	}
	return c.Scale(1 / float64(len(w)))
}

// PlanePoints returns three consecutive points that are not colinear, in
// winding order.
func (w Winding) PlanePoints() ([3]vec.Vec3d, bool) {
	n := len(w)
	for i := 0; i < n && n >= 3; i++ {
		p0, p1, p2 := w[i], w[(i+1)%n], w[(i+2)%n]
		c := vec.Cross(vec.Sub(p2, p0), vec.Sub(p1, p0))
		if c.Length() > ClipEpsilon {
			return [3]vec.Vec3d{p0, p1, p2}, true
		}
	}
	return [3]vec.Vec3d{}, false
}

// Equal compares point by point with tolerance eps.
func (w Winding) Equal(o Winding, eps float64) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if !vec.NearlyEqual(w[i], o[i], eps) {
			return false
		}
	}
	return true
}
