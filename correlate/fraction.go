// SPDX-License-Identifier: GPL-2.0-or-later

package correlate

import (
	"math"

	"bspdecomp/bsp"
	"bspdecomp/winding"
)

// FractionTolerance is how far above 1 an overlap fraction may get through
// rounding before it is rejected.
const FractionTolerance = 1e-4

// Surface is an occluder poly or area portal polygon together with the
// plane it was compiled on.
type Surface struct {
	Plane   int
	Winding winding.Winding
}

func OccluderSurface(d *bsp.Data, poly *bsp.OccluderPoly) Surface {
	return Surface{Plane: poly.Plane, Winding: winding.FromOccluder(d, poly)}
}

func AreaportalSurface(d *bsp.Data, portal *bsp.Areaportal) Surface {
	return Surface{Plane: portal.Plane, Winding: winding.FromAreaportal(d, portal)}
}

// MatchingAreaFraction returns which part of s is covered by the side with
// offset side of brush. Surfaces on another plane than the side never match.
// The result is in [0,1], 0 meaning no match.
func MatchingAreaFraction(d *bsp.Data, wc *winding.Cache, s Surface, brush, side int) float64 {
	b, ok := d.Brush(brush)
	if !ok || side < 0 || side >= b.NumSides {
		return 0
	}
	iside := b.FirstSide + side
	if iside < 0 || iside >= len(d.BrushSides) {
		return 0
	}
	pnum := d.BrushSides[iside].Plane
	if s.Plane != pnum {
		return 0
	}
	p, ok := d.Plane(pnum)
	if !ok {
		return 0
	}
	sw := wc.Side(brush, side)
	clipped := s.Winding.Clip(sw, p.Normal.Double())
	return fraction(clipped.Area(), s.Winding.Area())
}

func fraction(part, total float64) float64 {
	f := part / total
	switch {
	case math.IsNaN(f), math.IsInf(f, 0), f <= 0, f > 1+FractionTolerance:
		return 0
	case f > 1:
		return 1
	}
	return f
}
