// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bspdecomp/math/vec"
)

// Distance returns the signed distance of pt to the plane in double precision.
func (p *Plane) Distance(pt vec.Vec3d) float64 {
	return vec.Dot(p.Normal.Double(), pt) - float64(p.Dist)
}

// Double returns normal and distance in double precision.
func (p *Plane) Double() (vec.Vec3d, float64) {
	return p.Normal.Double(), float64(p.Dist)
}

// IsValid reports whether the plane has a finite unit normal.
func (p *Plane) IsValid() bool {
	if !p.Normal.IsValid() {
		return false
	}
	l := p.Normal.Double().Length()
	return l > 0.99 && l < 1.01
}
