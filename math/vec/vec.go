// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	qmath "bspdecomp/math"
)

type Scalar interface {
	~float32 | ~float64
}

// Vec3 is a 3 component vector. Values are never modified in place, every
// operation returns a new vector.
type Vec3[T Scalar] [3]T

type (
	// Vec3f is the single precision vector stored in bsp lumps.
	Vec3f = Vec3[float32]
	// Vec3d is the double precision vector all geometry is computed in.
	Vec3d = Vec3[float64]
)

var (
	Null  = Vec3d{}
	BaseX = Vec3d{1, 0, 0}
	BaseY = Vec3d{0, 1, 0}
	BaseZ = Vec3d{0, 0, 1}
)

func sqrt[T Scalar](x T) T {
	switch f := any(x).(type) {
	case float32:
		return T(math32.Sqrt(f))
	}
	return T(math.Sqrt(float64(x)))
}

func (v Vec3[T]) X() T { return v[0] }
func (v Vec3[T]) Y() T { return v[1] }
func (v Vec3[T]) Z() T { return v[2] }

// Length returns the length of the vector
func (v Vec3[T]) Length() T {
	return sqrt(Dot(v, v))
}

// Scale returns the vector multiplied by the skalar s
func (v Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{v[0] * s, v[1] * s, v[2] * s}
}

// Normalize returns the normalized vector
func (v Vec3[T]) Normalize() Vec3[T] {
	l := v.Length()
	if l == 0 {
		return Vec3[T]{}
	}
	return v.Scale(1 / l)
}

// IsValid reports whether no component is NaN or infinite.
func (v Vec3[T]) IsValid() bool {
	for _, c := range v {
		if !qmath.IsFinite(float64(c)) {
			return false
		}
	}
	return true
}

func (v Vec3[T]) String() string {
	return fmt.Sprintf("(%v %v %v)", v[0], v[1], v[2])
}

// Double converts the vector to double precision.
func (v Vec3[T]) Double() Vec3d {
	return Vec3d{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Add returns a + b
func Add[T Scalar](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b
func Sub[T Scalar](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Dot returns a dot b
func Dot[T Scalar](a, b Vec3[T]) T {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns a cross b
func Cross[T Scalar](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// NearlyEqual compares component wise with an absolute tolerance.
func NearlyEqual[T Scalar](a, b Vec3[T], eps T) bool {
	for i := range a {
		d := a[i] - b[i]
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}

// Rotate rotates v by angles given in degrees around the x, y and z axis.
// The angles are clockwise, the combined matrix is Rz * Ry * Rx.
func Rotate(v, angles Vec3d) Vec3d {
	if qmath.AngleMod(angles[0]) == 0 && qmath.AngleMod(angles[1]) == 0 && qmath.AngleMod(angles[2]) == 0 {
		return v
	}
	sx, cx := math.Sincos(-qmath.Radians(angles[0]))
	sy, cy := math.Sincos(-qmath.Radians(angles[1]))
	sz, cz := math.Sincos(-qmath.Radians(angles[2]))

	return Vec3d{
		cz*cy*v[0] + (cz*sy*sx-sz*cx)*v[1] + (cz*sy*cx+sz*sx)*v[2],
		sz*cy*v[0] + (sz*sy*sx+cz*cx)*v[1] + (sz*sy*cx-cz*sx)*v[2],
		-sy*v[0] + cy*sx*v[1] + cy*cx*v[2],
	}
}

// Vec4 holds an axis and its offset as stored in texinfo lumps.
type Vec4[T Scalar] [4]T

// XYZ returns the first three components
func (v Vec4[T]) XYZ() Vec3[T] {
	return Vec3[T]{v[0], v[1], v[2]}
}

func (v Vec4[T]) W() T { return v[3] }
