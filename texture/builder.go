// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"math"

	"bspdecomp/bsp"
	"bspdecomp/conlog"
	"bspdecomp/correlate"
	qmath "bspdecomp/math"
	"bspdecomp/math/vec"
)

// EpsPerpendicular is the smallest |normal . (u x v)| accepted for stored
// texture axes.
const EpsPerpendicular = 0.02

// Params describes one face to build a texture for.
type Params struct {
	// Origin and Angles of the owning entity, nil if unset
	Origin *vec.Vec3d
	Angles *vec.Vec3d
	// Normal of the face, nil if unknown
	Normal *vec.Vec3d
	// Brush and absolute BrushSide index, -1 if the face has no brush
	Brush     int
	BrushSide int
	// TexInfo index or bsp.TexInfoNode
	TexInfo      int
	EnableFixing bool
}

// NewParams returns params for a face without brush and texinfo.
func NewParams() Params {
	return Params{
		Brush:     -1,
		BrushSide: -1,
		TexInfo:   bsp.TexInfoNode,
	}
}

// Builder turns texinfo records into textures. All fields are only read,
// Build may be called from many goroutines.
type Builder struct {
	Data    *bsp.Data
	Source  *Source
	Realloc *correlate.ReallocationData
}

func NewBuilder(d *bsp.Data, src *Source, realloc *correlate.ReallocationData) *Builder {
	if src == nil {
		src = DefaultSource()
	}
	if realloc == nil {
		realloc = correlate.Empty()
	}
	return &Builder{Data: d, Source: src, Realloc: realloc}
}

func (b *Builder) Build(p Params) Texture {
	t := newTexture()
	normal := validNormal(p.Normal)
	fixing := b.Source.FixToolTextures && p.EnableFixing

	if p.TexInfo == bsp.TexInfoNode {
		// some tool textures come without texinfo
		if !fixing {
			return t
		}
		if name, ok := b.fixToolTexture(&p, "", 0); ok {
			t.Override = name
			t.alignToNormal(normal)
		}
		return t
	}

	ti, ok := b.Data.TexInfo(p.TexInfo)
	if !ok {
		conlog.Warnf("Invalid texinfo index: %d", p.TexInfo)
		t.alignToNormal(normal)
		return t
	}
	td, ok := b.Data.TexData(ti.TexData)
	if !ok {
		conlog.Warnf("Invalid texdata index: %d", ti.TexData)
		t.alignToNormal(normal)
		return t
	}
	t.Data = td

	original, ok := b.Data.TexName(td.TexName)
	if !ok {
		conlog.Warnf("Invalid texname index: %d", td.TexName)
		original = Skip
	}
	override := b.Source.fixedName(td.TexName)

	fixed := false
	if fixing {
		current := override
		if current == "" {
			current = original
		}
		if name, ok := b.fixToolTexture(&p, current, ti.Flags); ok {
			override = name
			fixed = true
		}
	}
	t.Original = original
	t.Override = override

	t.LightmapScale = lightmapScale(ti)

	if fixed || ti.Flags.Has(bsp.SurfSky) || ti.Flags.Has(bsp.SurfSky2D) {
		t.alignToNormal(normal)
		return t
	}
	if !t.buildUV(ti, td, p.Origin, p.Angles) {
		t.alignToNormal(normal)
		return t
	}
	if b.Source.FixPerpendicular {
		t.fixPerpendicular(normal)
	}
	return t
}

// fixToolTexture returns the tool texture replacing name, if any.
func (b *Builder) fixToolTexture(p *Params, name string, surface bsp.SurfaceFlag) (string, bool) {
	if p.Brush == -1 || p.BrushSide == -1 {
		return "", false
	}
	brush, ok := b.Data.Brush(p.Brush)
	if !ok {
		conlog.Warnf("Invalid brush index: %d", p.Brush)
		return "", false
	}

	// occluder brushes have no content flag of their own
	if b.Realloc.IsOccluderBrush(p.Brush) {
		if b.Realloc.IsOccluderBrushSide(p.Brush, p.BrushSide-brush.FirstSide) {
			return Occluder, true
		}
		return Nodraw, true
	}

	contents := brush.Contents
	if b.Realloc.IsAreaportalBrush(p.Brush) {
		contents |= bsp.ContentsAreaportal
	}
	if b.Source.Matcher == nil {
		return "", false
	}
	return b.Source.Matcher.Match(name, contents, surface)
}

func (t *Texture) alignToNormal(normal *vec.Vec3d) {
	if normal == nil {
		return
	}
	t.AlignToNormal(*normal)
}

// fixPerpendicular realigns axes whose texture plane is perpendicular to
// the face.
func (t *Texture) fixPerpendicular(normal *vec.Vec3d) {
	if normal == nil {
		return
	}
	texNorm := vec.Cross(t.UAxis.Axis, t.VAxis.Axis)
	if abs(vec.Dot(*normal, texNorm)) >= EpsPerpendicular {
		return
	}
	t.AlignToNormal(*normal)
}

// storedAxis splits a texture vector into unit axis, shift and world units
// per texel. Unusable vectors are zeroed and reported as not ok.
func storedAxis(v vec.Vec4[float32]) (vec.Vec3d, float64, float64, bool) {
	axis := v.XYZ().Double()
	shift := float64(v.W())
	if !axis.IsValid() || !qmath.IsFinite(shift) {
		conlog.Warnf("Invalid texture vector %v", v)
		return vec.Null, 0, 0, false
	}
	l := axis.Length()
	if l == 0 {
		return vec.Null, 0, 0, false
	}
	tw := 1 / l
	return axis.Scale(tw), shift, tw, true
}

// buildUV converts the stored texture vectors into editor axes, undoing the
// entity origin and rotation.
func (t *Texture) buildUV(ti *bsp.TexInfo, td *bsp.TexData, origin, angles *vec.Vec3d) bool {
	uaxis, ushift, utw, uok := storedAxis(ti.TextureVecs[0])
	vaxis, vshift, vtw, vok := storedAxis(ti.TextureVecs[1])
	if !uok || !vok {
		return false
	}

	// translate to origin
	if origin != nil {
		ushift -= vec.Dot(*origin, uaxis) / utw
		vshift -= vec.Dot(*origin, vaxis) / vtw
	}

	if angles != nil {
		uaxis = vec.Rotate(uaxis, *angles)
		vaxis = vec.Rotate(vaxis, *angles)

		// shift in texture space caused by the rotation
		shift := vec.Null
		if origin != nil {
			shift = vec.Sub(shift, *origin)
		}
		shift = vec.Rotate(shift, *angles)
		if origin != nil {
			shift = vec.Add(shift, *origin)
		}
		ushift -= vec.Dot(shift, uaxis) / utw
		vshift -= vec.Dot(shift, vaxis) / vtw
	}

	if td.Width != 0 {
		ushift = math.Mod(ushift, float64(td.Width))
	}
	if td.Height != 0 {
		vshift = math.Mod(vshift, float64(td.Height))
	}

	t.UAxis = Axis{
		Axis:  uaxis,
		Shift: int(qmath.RoundHalfUp(ushift)),
		Scale: qmath.RoundDecimals32(utw, 4),
	}
	t.VAxis = Axis{
		Axis:  vaxis,
		Shift: int(qmath.RoundHalfUp(vshift)),
		Scale: qmath.RoundDecimals32(vtw, 4),
	}
	return true
}

// lightmapScale returns world units per luxel.
func lightmapScale(ti *bsp.TexInfo) int {
	ls := float64(ti.LuxelsPerUnit())
	if !qmath.IsFinite(ls) {
		conlog.Warnf("Invalid lightmap vectors %v %v", ti.LightmapVecs[0], ti.LightmapVecs[1])
		return DefaultLightmapScale
	}
	if ls > 0.001 {
		return int(qmath.RoundHalfUp(1 / ls))
	}
	return DefaultLightmapScale
}

func validNormal(n *vec.Vec3d) *vec.Vec3d {
	if n == nil {
		return nil
	}
	if !n.IsValid() {
		conlog.Warnf("Invalid face normal %v", *n)
		return nil
	}
	return n
}
