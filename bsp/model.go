// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bspdecomp/math/vec"
)

// TexInfoNode marks a brush side or face without texinfo.
const TexInfoNode = -1

type Plane struct {
	Normal vec.Vec3f
	Dist   float32
	Type   int32
}

type Brush struct {
	FirstSide int
	NumSides  int
	Contents  BrushFlag
}

type BrushSide struct {
	Plane    int
	TexInfo  int
	DispInfo int
	Bevel    bool
}

type TexInfo struct {
	TextureVecs  [2]vec.Vec4[float32]
	LightmapVecs [2]vec.Vec4[float32]
	Flags        SurfaceFlag
	TexData      int
}

// LuxelsPerUnit returns the average length of the two lightmap vectors.
func (t *TexInfo) LuxelsPerUnit() float32 {
	u := t.LightmapVecs[0].XYZ()
	v := t.LightmapVecs[1].XYZ()
	return (u.Length() + v.Length()) / 2
}

type TexData struct {
	Reflectivity vec.Vec3f
	TexName      int
	Width        int
	Height       int
	ViewWidth    int
	ViewHeight   int
}

type Occluder struct {
	Flags     int
	FirstPoly int
	PolyCount int
	Mins      vec.Vec3f
	Maxs      vec.Vec3f
	Area      int
}

type OccluderPoly struct {
	FirstVertexIndex int
	VertexCount      int
	Plane            int
}

type Areaportal struct {
	PortalKey           int
	OtherArea           int
	FirstClipPortalVert int
	ClipPortalVerts     int
	Plane               int
}

type LumpInfo struct {
	Type    LumpType
	Offset  int
	Length  int
	Version int
}

// Data holds the parsed lumps of one bsp file. It is not modified after
// loading and may be shared between goroutines.
type Data struct {
	Name        string
	Version     int
	MapRevision int
	Checksum    uint16
	Lumps       []LumpInfo

	Entities []*Entity

	Planes     []Plane
	Vertexes   []vec.Vec3f
	TexInfos   []TexInfo
	TexDatas   []TexData
	TexNames   []string
	Brushes    []Brush
	BrushSides []BrushSide

	Occluders             []Occluder
	OccluderPolys         []OccluderPoly
	OccluderVertexIndices []int

	Areaportals     []Areaportal
	ClipPortalVerts []vec.Vec3f
}

func (d *Data) Plane(i int) (*Plane, bool) {
	if i < 0 || i >= len(d.Planes) {
		return nil, false
	}
	return &d.Planes[i], true
}

func (d *Data) TexInfo(i int) (*TexInfo, bool) {
	if i < 0 || i >= len(d.TexInfos) {
		return nil, false
	}
	return &d.TexInfos[i], true
}

func (d *Data) TexData(i int) (*TexData, bool) {
	if i < 0 || i >= len(d.TexDatas) {
		return nil, false
	}
	return &d.TexDatas[i], true
}

func (d *Data) TexName(i int) (string, bool) {
	if i < 0 || i >= len(d.TexNames) {
		return "", false
	}
	return d.TexNames[i], true
}

func (d *Data) Brush(i int) (*Brush, bool) {
	if i < 0 || i >= len(d.Brushes) {
		return nil, false
	}
	return &d.Brushes[i], true
}

// Sides returns the brush sides of b, so that side i of the result has the
// absolute index b.FirstSide+i. Brushes reaching outside the brush side lump
// have no sides.
func (d *Data) Sides(b *Brush) []BrushSide {
	if b.FirstSide < 0 || b.NumSides <= 0 || b.FirstSide > len(d.BrushSides)-b.NumSides {
		return nil
	}
	return d.BrushSides[b.FirstSide : b.FirstSide+b.NumSides]
}

// Worldspawn returns the first entity, nil if there are none.
func (d *Data) Worldspawn() *Entity {
	if len(d.Entities) == 0 {
		return nil
	}
	return d.Entities[0]
}
