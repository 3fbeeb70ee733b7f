// SPDX-License-Identifier: GPL-2.0-or-later

package bsptest

import (
	"bytes"
	"encoding/binary"
	"strings"

	"bspdecomp/bsp"
)

type lump struct {
	t       bsp.LumpType
	version int32
	data    []byte
}

type encoder struct {
	lumps []lump
}

func le(v ...interface{}) []byte {
	var buf bytes.Buffer
	for _, e := range v {
		// only fixed size values are passed in
		_ = binary.Write(&buf, binary.LittleEndian, e)
	}
	return buf.Bytes()
}

func (e *encoder) add(t bsp.LumpType, version int32, data []byte) {
	if len(data) == 0 {
		return
	}
	e.lumps = append(e.lumps, lump{t, version, data})
}

// Encode returns d as a version 20 bsp file.
func Encode(d *bsp.Data) []byte {
	var e encoder

	var ents strings.Builder
	for _, ent := range d.Entities {
		ents.WriteString("{\n")
		for _, kv := range ent.KeyValues() {
			ents.WriteString(`"` + kv.Key + `" "` + kv.Value + "\"\n")
		}
		ents.WriteString("}\n")
	}
	if ents.Len() != 0 {
		ents.WriteByte(0)
	}
	e.add(bsp.LumpEntities, 0, []byte(ents.String()))

	var planes []byte
	for _, p := range d.Planes {
		planes = append(planes, le([3]float32(p.Normal), p.Dist, p.Type)...)
	}
	e.add(bsp.LumpPlanes, 0, planes)

	var verts []byte
	for _, v := range d.Vertexes {
		verts = append(verts, le([3]float32(v))...)
	}
	e.add(bsp.LumpVertexes, 0, verts)

	var texdata []byte
	for _, t := range d.TexDatas {
		texdata = append(texdata, le([3]float32(t.Reflectivity),
			int32(t.TexName), int32(t.Width), int32(t.Height),
			int32(t.ViewWidth), int32(t.ViewHeight))...)
	}
	e.add(bsp.LumpTexData, 0, texdata)

	var texinfo []byte
	for _, t := range d.TexInfos {
		texinfo = append(texinfo, le(
			[4]float32(t.TextureVecs[0]), [4]float32(t.TextureVecs[1]),
			[4]float32(t.LightmapVecs[0]), [4]float32(t.LightmapVecs[1]),
			int32(t.Flags), int32(t.TexData))...)
	}
	e.add(bsp.LumpTexInfo, 0, texinfo)

	var strData []byte
	var strTable []int32
	for _, n := range d.TexNames {
		strTable = append(strTable, int32(len(strData)))
		strData = append(strData, n...)
		strData = append(strData, 0)
	}
	e.add(bsp.LumpTexDataStringData, 0, strData)
	if len(strTable) != 0 {
		e.add(bsp.LumpTexDataStringTable, 0, le(strTable))
	}

	var brushes []byte
	for _, b := range d.Brushes {
		brushes = append(brushes, le(int32(b.FirstSide), int32(b.NumSides), int32(b.Contents))...)
	}
	e.add(bsp.LumpBrushes, 0, brushes)

	var sides []byte
	for _, s := range d.BrushSides {
		var bevel int16
		if s.Bevel {
			bevel = 1
		}
		sides = append(sides, le(uint16(s.Plane), int16(s.TexInfo), int16(s.DispInfo), bevel)...)
	}
	e.add(bsp.LumpBrushSides, 0, sides)

	var portals []byte
	for _, p := range d.Areaportals {
		portals = append(portals, le(uint16(p.PortalKey), uint16(p.OtherArea),
			uint16(p.FirstClipPortalVert), uint16(p.ClipPortalVerts), int32(p.Plane))...)
	}
	e.add(bsp.LumpAreaportals, 0, portals)

	var clipVerts []byte
	for _, v := range d.ClipPortalVerts {
		clipVerts = append(clipVerts, le([3]float32(v))...)
	}
	e.add(bsp.LumpClipPortalVerts, 0, clipVerts)

	if len(d.Occluders) != 0 {
		occ := le(int32(len(d.Occluders)))
		for _, o := range d.Occluders {
			occ = append(occ, le(int32(o.Flags), int32(o.FirstPoly), int32(o.PolyCount),
				[3]float32(o.Mins), [3]float32(o.Maxs), int32(o.Area))...)
		}
		occ = append(occ, le(int32(len(d.OccluderPolys)))...)
		for _, p := range d.OccluderPolys {
			occ = append(occ, le(int32(p.FirstVertexIndex), int32(p.VertexCount), int32(p.Plane))...)
		}
		occ = append(occ, le(int32(len(d.OccluderVertexIndices)))...)
		for _, i := range d.OccluderVertexIndices {
			occ = append(occ, le(int32(i))...)
		}
		e.add(bsp.LumpOcclusion, 2, occ)
	}

	return e.bytes(int32(d.MapRevision))
}

const (
	headerLumps = 64
	// ident, version, lump directory, map revision
	headerSize = 4 + 4 + headerLumps*16 + 4
)

func (e *encoder) bytes(revision int32) []byte {
	var dir [headerLumps][4]int32
	var body []byte
	for _, l := range e.lumps {
		dir[l.t] = [4]int32{int32(headerSize + len(body)), int32(len(l.data)), l.version, 0}
		body = append(body, l.data...)
		// lumps are 4 byte aligned
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
	}
	out := le([4]byte{'V', 'B', 'S', 'P'}, int32(20), dir, revision)
	return append(out, body...)
}
