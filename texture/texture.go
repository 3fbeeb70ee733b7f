// SPDX-License-Identifier: GPL-2.0-or-later

// Package texture rebuilds the material and texture projection of brush
// sides from the texinfo lumps.
package texture

import (
	"fmt"

	"bspdecomp/bsp"
	"bspdecomp/math/vec"
)

const (
	// DefaultScale is the editor default of texels per world unit
	DefaultScale = 0.25
	// DefaultLightmapScale is used when the lightmap vectors are unusable
	DefaultLightmapScale = 16
)

// Axis is one texture axis as stored in map files: direction, shift in
// texels and world units per texel.
type Axis struct {
	Axis  vec.Vec3d
	Shift int
	Scale float64
}

func NewAxis(v vec.Vec3d) Axis {
	return Axis{Axis: v, Scale: DefaultScale}
}

func (a Axis) IsSet() bool {
	return a.Axis != vec.Null
}

func (a Axis) String() string {
	return fmt.Sprintf("[%v %v %v %d] %v", a.Axis[0], a.Axis[1], a.Axis[2], a.Shift, a.Scale)
}

type Texture struct {
	Original string
	// Override replaces Original in the output if not empty
	Override      string
	UAxis         Axis
	VAxis         Axis
	LightmapScale int
	// Data is nil if the texinfo had no valid texdata
	Data *bsp.TexData
	// Realigned is set when the axes were derived from the face normal
	// instead of the stored texture vectors.
	Realigned bool
}

func newTexture() Texture {
	return Texture{
		Original:      Skip,
		LightmapScale: DefaultLightmapScale,
	}
}

// Name returns the material to write.
func (t *Texture) Name() string {
	if t.Override != "" {
		return t.Override
	}
	return t.Original
}

// Aligned reports whether both axes are set.
func (t *Texture) Aligned() bool {
	return t.UAxis.IsSet() && t.VAxis.IsSet()
}

// AlignToNormal sets the axes the way the editor aligns a new face with the
// given normal.
func (t *Texture) AlignToNormal(normal vec.Vec3d) {
	u, v := AxesFromNormal(normal)
	t.UAxis = NewAxis(u)
	t.VAxis = NewAxis(v)
	t.Realigned = true
}

// AxesFromNormal returns the face aligned texture axes for normal. The
// reference is the y axis for faces mostly facing up or down, z otherwise.
func AxesFromNormal(normal vec.Vec3d) (vec.Vec3d, vec.Vec3d) {
	dotX := abs(vec.Dot(vec.BaseX, normal))
	dotY := abs(vec.Dot(vec.BaseY, normal))
	dotZ := abs(vec.Dot(vec.BaseZ, normal))

	vdir := vec.BaseZ
	if dotZ > dotX && dotZ > dotY {
		vdir = vec.BaseY
	}
	tv1 := vec.Cross(normal, vdir).Normalize()
	tv2 := vec.Cross(normal, tv1).Normalize()
	return tv1, tv2
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
