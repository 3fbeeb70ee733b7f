// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

type testLump struct {
	t       LumpType
	version int32
	data    []byte
}

func encode(t *testing.T, v ...interface{}) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, e := range v {
		if err := binary.Write(&buf, binary.LittleEndian, e); err != nil {
			t.Fatalf("could not encode %T: %v", e, err)
		}
	}
	return buf.Bytes()
}

func buildBSP(t *testing.T, version int32, lumps ...testLump) []byte {
	t.Helper()
	h := header{Ident: ident, Version: version, MapRevision: 42}
	ofs := int32(binary.Size(h))
	var body []byte
	for _, l := range lumps {
		h.Lumps[l.t] = directory{
			Offset:  ofs + int32(len(body)),
			Length:  int32(len(l.data)),
			Version: l.version,
		}
		body = append(body, l.data...)
	}
	return append(encode(t, h), body...)
}

func TestRead(t *testing.T) {
	planes := []plane{
		{Normal: [3]float32{0, 0, 1}, Distance: 64, Type: 2},
		{Normal: [3]float32{0, 0, -1}, Distance: 0, Type: 2},
	}
	brushes := []brush{{FirstSide: 0, NumSides: 2, Contents: int32(ContentsSolid)}}
	sides := []brushSide{{PlaneNum: 0, TexInfo: 0}, {PlaneNum: 1, TexInfo: -1, Bevel: 1}}
	texinfos := []texInfo{{
		TextureVecs:  [2][4]float32{{0.25, 0, 0, 8}, {0, -0.25, 0, 16}},
		LightmapVecs: [2][4]float32{{0.0625, 0, 0, 0}, {0, -0.0625, 0, 0}},
		Flags:        int32(SurfSky),
		TexData:      0,
	}}
	texdatas := []texData{{NameStringTableID: 1, Width: 512, Height: 256}}
	strData := []byte("TOOLS/TOOLSNODRAW\x00BRICK/BRICKWALL001A\x00")
	strTable := []int32{0, 18}
	occlusion := encode(t,
		int32(1), occluderV1{FirstPoly: 0, PolyCount: 1, Area: 1},
		int32(1), occluderPoly{FirstVertexIndex: 0, VertexCount: 3, PlaneNum: 0},
		int32(3), []int32{0, 1, 2},
	)
	verts := []vertex{{0, 0, 64}, {64, 0, 64}, {64, 64, 64}}
	portals := []areaportal{{PortalKey: 1, OtherArea: 2, FirstClipPortalVert: 0, ClipPortalVerts: 3, PlaneNum: 0}}

	b := buildBSP(t, 20,
		testLump{t: LumpEntities, data: []byte(entityLump)},
		testLump{t: LumpPlanes, data: encode(t, planes)},
		testLump{t: LumpVertexes, data: encode(t, verts)},
		testLump{t: LumpTexData, data: encode(t, texdatas)},
		testLump{t: LumpTexInfo, data: encode(t, texinfos)},
		testLump{t: LumpBrushes, data: encode(t, brushes)},
		testLump{t: LumpBrushSides, data: encode(t, sides)},
		testLump{t: LumpOcclusion, version: 2, data: occlusion},
		testLump{t: LumpAreaportals, data: encode(t, portals)},
		testLump{t: LumpClipPortalVerts, data: encode(t, verts)},
		testLump{t: LumpTexDataStringData, data: strData},
		testLump{t: LumpTexDataStringTable, data: encode(t, strTable)},
	)
	d, err := Read(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if d.Version != 20 || d.MapRevision != 42 {
		t.Errorf("version %d revision %d, want 20 42", d.Version, d.MapRevision)
	}
	if len(d.Planes) != 2 || d.Planes[0].Dist != 64 || d.Planes[1].Normal.Z() != -1 {
		t.Errorf("planes = %v", d.Planes)
	}
	if len(d.Brushes) != 1 || !d.Brushes[0].Contents.Has(ContentsSolid) {
		t.Errorf("brushes = %v", d.Brushes)
	}
	if got := d.Sides(&d.Brushes[0]); len(got) != 2 || got[0].Bevel || !got[1].Bevel || got[1].TexInfo != TexInfoNode {
		t.Errorf("sides = %v", got)
	}
	if !d.TexInfos[0].Flags.Has(SurfSky) || d.TexInfos[0].TextureVecs[1].W() != 16 {
		t.Errorf("texinfo = %v", d.TexInfos[0])
	}
	if got := d.TexInfos[0].LuxelsPerUnit(); got != 0.0625 {
		t.Errorf("LuxelsPerUnit() = %v, want 0.0625", got)
	}
	if n, ok := d.TexName(d.TexDatas[0].TexName); !ok || n != "BRICK/BRICKWALL001A" {
		t.Errorf("texname = %q,%v", n, ok)
	}
	if len(d.Occluders) != 1 || d.Occluders[0].Area != 1 || len(d.OccluderPolys) != 1 || len(d.OccluderVertexIndices) != 3 {
		t.Errorf("occlusion = %v %v %v", d.Occluders, d.OccluderPolys, d.OccluderVertexIndices)
	}
	if len(d.Areaportals) != 1 || d.Areaportals[0].ClipPortalVerts != 3 || len(d.ClipPortalVerts) != 3 {
		t.Errorf("areaportals = %v %v", d.Areaportals, d.ClipPortalVerts)
	}
	if ws := d.Worldspawn(); ws == nil {
		t.Errorf("no worldspawn")
	}
}

func TestReadOcclusionV0(t *testing.T) {
	occlusion := encode(t,
		int32(1), occluderV0{FirstPoly: 0, PolyCount: 0},
		int32(0),
		int32(0),
	)
	d, err := Read(bytes.NewReader(buildBSP(t, 19, testLump{t: LumpOcclusion, data: occlusion})))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(d.Occluders) != 1 || d.Occluders[0].Area != -1 {
		t.Errorf("occluders = %v", d.Occluders)
	}
}

func TestReadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "ident",
			data: func() []byte { b := buildBSP(t, 20); copy(b, "IBSP"); return b }(),
			want: "not a VBSP",
		},
		{
			name: "version",
			data: buildBSP(t, 29),
			want: "unsupported bsp version",
		},
		{
			name: "funny size",
			data: buildBSP(t, 20, testLump{t: LumpPlanes, data: make([]byte, 21)}),
			want: "funny size",
		},
		{
			name: "short",
			data: []byte("VBSP"),
			want: "reading header",
		},
	} {
		_, err := Read(bytes.NewReader(tc.data))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: Read() error = %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestSidesOutOfRange(t *testing.T) {
	d := &Data{BrushSides: make([]BrushSide, 3)}
	tests := []struct {
		b    Brush
		want int
	}{
		{Brush{FirstSide: 0, NumSides: 3}, 3},
		{Brush{FirstSide: 1, NumSides: 2}, 2},
		{Brush{FirstSide: 2, NumSides: 5}, 0},
		{Brush{FirstSide: 7, NumSides: 1}, 0},
		{Brush{FirstSide: -1, NumSides: 3}, 0},
		{Brush{FirstSide: 1, NumSides: -1}, 0},
		{Brush{FirstSide: 1, NumSides: 1 << 62}, 0},
	}
	for _, tc := range tests {
		if got := d.Sides(&tc.b); len(got) != tc.want {
			t.Errorf("Sides(%+v) has len %d, want %d", tc.b, len(got), tc.want)
		}
	}
}

func TestPlaneDistance(t *testing.T) {
	p := Plane{Normal: [3]float32{0, 0, 1}, Dist: 64}
	if got := p.Distance([3]float64{5, 5, 70}); got != 6 {
		t.Errorf("Distance() = %v, want 6", got)
	}
	if !p.IsValid() {
		t.Errorf("plane %v is not valid", p)
	}
}
