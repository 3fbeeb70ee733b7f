// SPDX-License-Identifier: GPL-2.0-or-later

package winding

import (
	"bspdecomp/bsp"
	"bspdecomp/math/vec"
)

// FromSide builds the polygon of the brush side with the absolute index
// iside: the base winding of its plane cut by all other non bevel sides.
func FromSide(d *bsp.Data, b *bsp.Brush, iside int) Winding {
	if iside < 0 || iside >= len(d.BrushSides) {
		return nil
	}
	side := d.BrushSides[iside]
	p, ok := d.Plane(side.Plane)
	if !ok || !p.IsValid() {
		return nil
	}
	w := FromPlane(p.Double())
	for i := b.FirstSide; i < b.FirstSide+b.NumSides; i++ {
		if i == iside || i < 0 || i >= len(d.BrushSides) {
			continue
		}
		s := d.BrushSides[i]
		if s.Bevel || s.Plane == side.Plane {
			continue
		}
		cp, ok := d.Plane(s.Plane)
		if !ok || !cp.IsValid() {
			continue
		}
		w = w.ClipPlane(cp.Double())
		if w.IsEmpty() {
			return nil
		}
	}
	return w
}

// FromOccluder builds the polygon of an occluder poly from the occluder
// vertex index table. Invalid indices are skipped, counts reaching past the
// table are cut off.
func FromOccluder(d *bsp.Data, poly *bsp.OccluderPoly) Winding {
	first, n := span(poly.FirstVertexIndex, poly.VertexCount, len(d.OccluderVertexIndices))
	w := make(Winding, 0, n)
	for _, iv := range d.OccluderVertexIndices[first : first+n] {
		if iv < 0 || iv >= len(d.Vertexes) {
			continue
		}
		w = append(w, d.Vertexes[iv].Double())
	}
	return valid(w)
}

// FromAreaportal builds the polygon of an area portal from the clip portal
// vertexes.
func FromAreaportal(d *bsp.Data, portal *bsp.Areaportal) Winding {
	first, n := span(portal.FirstClipPortalVert, portal.ClipPortalVerts, len(d.ClipPortalVerts))
	return valid(FromPoints(vecs(d.ClipPortalVerts[first : first+n])...))
}

// span limits count records starting at first to a table of size l.
func span(first, count, l int) (int, int) {
	if first < 0 || first >= l || count <= 0 {
		return 0, 0
	}
	return first, min(count, l-first)
}

func vecs(vs []vec.Vec3f) []vec.Vec3d {
	out := make([]vec.Vec3d, len(vs))
	for i, v := range vs {
		out[i] = v.Double()
	}
	return out
}

func valid(w Winding) Winding {
	out := w[:0]
	for _, p := range w {
		if p.IsValid() {
			out = append(out, p)
		}
	}
	if out.IsEmpty() {
		return nil
	}
	return out
}

// Normal returns the unit normal of the plane spanned by the winding, using
// the same orientation as FromPlane.
func (w Winding) Normal() vec.Vec3d {
	pts, ok := w.PlanePoints()
	if !ok {
		return vec.Null
	}
	return vec.Cross(vec.Sub(pts[2], pts[0]), vec.Sub(pts[1], pts[0])).Normalize()
}
