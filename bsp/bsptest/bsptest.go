// SPDX-License-Identifier: GPL-2.0-or-later

// Package bsptest builds small in-memory maps for tests.
package bsptest

import (
	"bspdecomp/bsp"
	"bspdecomp/math/vec"
)

type Builder struct {
	Data *bsp.Data
}

func New() *Builder {
	return &Builder{Data: &bsp.Data{Name: "test.bsp", Version: 20}}
}

// Plane returns the index of the plane, adding it if needed.
func (b *Builder) Plane(normal vec.Vec3f, dist float32) int {
	for i, p := range b.Data.Planes {
		if p.Normal == normal && p.Dist == dist {
			return i
		}
	}
	b.Data.Planes = append(b.Data.Planes, bsp.Plane{Normal: normal, Dist: dist, Type: 5})
	return len(b.Data.Planes) - 1
}

// Texture adds a texdata with a new texture name and returns its index.
func (b *Builder) Texture(name string, width, height int) int {
	b.Data.TexNames = append(b.Data.TexNames, name)
	b.Data.TexDatas = append(b.Data.TexDatas, bsp.TexData{
		TexName: len(b.Data.TexNames) - 1,
		Width:   width,
		Height:  height,
	})
	return len(b.Data.TexDatas) - 1
}

// TexInfo adds a texinfo and returns its index.
func (b *Builder) TexInfo(ti bsp.TexInfo) int {
	b.Data.TexInfos = append(b.Data.TexInfos, ti)
	return len(b.Data.TexInfos) - 1
}

// Box adds an axis aligned box brush. The sides are ordered +x, -x, +y, -y,
// +z, -z and all use texinfo. It returns the brush index.
func (b *Builder) Box(mins, maxs vec.Vec3f, contents bsp.BrushFlag, texinfo int) int {
	first := len(b.Data.BrushSides)
	for axis := 0; axis < 3; axis++ {
		var n vec.Vec3f
		n[axis] = 1
		b.side(n, maxs[axis], texinfo)
		n[axis] = -1
		b.side(n, -mins[axis], texinfo)
	}
	b.Data.Brushes = append(b.Data.Brushes, bsp.Brush{
		FirstSide: first,
		NumSides:  6,
		Contents:  contents,
	})
	return len(b.Data.Brushes) - 1
}

func (b *Builder) side(n vec.Vec3f, dist float32, texinfo int) {
	b.Data.BrushSides = append(b.Data.BrushSides, bsp.BrushSide{
		Plane:   b.Plane(n, dist),
		TexInfo: texinfo,
	})
}

// Occluder adds an occluder with a single poly on plane.
func (b *Builder) Occluder(plane int, pts ...vec.Vec3f) int {
	first := len(b.Data.OccluderVertexIndices)
	for _, p := range pts {
		b.Data.Vertexes = append(b.Data.Vertexes, p)
		b.Data.OccluderVertexIndices = append(b.Data.OccluderVertexIndices, len(b.Data.Vertexes)-1)
	}
	b.Data.OccluderPolys = append(b.Data.OccluderPolys, bsp.OccluderPoly{
		FirstVertexIndex: first,
		VertexCount:      len(pts),
		Plane:            plane,
	})
	b.Data.Occluders = append(b.Data.Occluders, bsp.Occluder{
		FirstPoly: len(b.Data.OccluderPolys) - 1,
		PolyCount: 1,
	})
	return len(b.Data.Occluders) - 1
}

// Areaportal adds an area portal on plane.
func (b *Builder) Areaportal(plane int, pts ...vec.Vec3f) int {
	b.Data.Areaportals = append(b.Data.Areaportals, bsp.Areaportal{
		PortalKey:           len(b.Data.Areaportals) + 1,
		FirstClipPortalVert: len(b.Data.ClipPortalVerts),
		ClipPortalVerts:     len(pts),
		Plane:               plane,
	})
	b.Data.ClipPortalVerts = append(b.Data.ClipPortalVerts, pts...)
	return len(b.Data.Areaportals) - 1
}

// Quad returns the four corners of the rectangle min-max on the plane
// z = height, counter clockwise seen from above.
func Quad(minX, minY, maxX, maxY, height float32) []vec.Vec3f {
	return []vec.Vec3f{
		{minX, minY, height},
		{maxX, minY, height},
		{maxX, maxY, height},
		{minX, maxY, height},
	}
}
