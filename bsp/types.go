// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import "strconv"

// on-disk layout of a VBSP file, all values little endian

const (
	headerLumps = 64

	minVersion = 19
	maxVersion = 21
)

var ident = [4]byte{'V', 'B', 'S', 'P'}

// called lump_t in c
type directory struct {
	Offset  int32
	Length  int32
	Version int32
	FourCC  [4]byte // uncompressed size for lzma lumps, 0 otherwise
}

type header struct {
	Ident       [4]byte
	Version     int32
	Lumps       [headerLumps]directory
	MapRevision int32
}

type LumpType int

const (
	LumpEntities           LumpType = 0
	LumpPlanes             LumpType = 1
	LumpTexData            LumpType = 2
	LumpVertexes           LumpType = 3
	LumpTexInfo            LumpType = 6
	LumpOcclusion          LumpType = 9
	LumpBrushes            LumpType = 18
	LumpBrushSides         LumpType = 19
	LumpAreaportals        LumpType = 21
	LumpClipPortalVerts    LumpType = 41
	LumpTexDataStringData  LumpType = 43
	LumpTexDataStringTable LumpType = 44
)

var lumpNames = map[LumpType]string{
	LumpEntities:           "entities",
	LumpPlanes:             "planes",
	LumpTexData:            "texdata",
	LumpVertexes:           "vertexes",
	LumpTexInfo:            "texinfo",
	LumpOcclusion:          "occlusion",
	LumpBrushes:            "brushes",
	LumpBrushSides:         "brushsides",
	LumpAreaportals:        "areaportals",
	LumpClipPortalVerts:    "clipportalverts",
	LumpTexDataStringData:  "texdata_string_data",
	LumpTexDataStringTable: "texdata_string_table",
}

func (l LumpType) String() string {
	if n, ok := lumpNames[l]; ok {
		return n
	}
	return "lump" + strconv.Itoa(int(l))
}

type plane struct {
	Normal   [3]float32
	Distance float32
	Type     int32 // 0: axial plane in X, 1: axial plane in Y, 2 axial in Z, 3,4,5 similar but non axial
}

type vertex struct {
	X float32
	Y float32
	Z float32
}

type texData struct {
	Reflectivity      [3]float32
	NameStringTableID int32 // index into the texdata string table
	Width             int32
	Height            int32
	ViewWidth         int32
	ViewHeight        int32
}

type texInfo struct {
	TextureVecs  [2][4]float32 // [s/t][xyz offset] texels per world unit
	LightmapVecs [2][4]float32 // [s/t][xyz offset] luxels per world unit
	Flags        int32
	TexData      int32 // -1 for no texdata
}

type brush struct {
	FirstSide int32
	NumSides  int32
	Contents  int32
}

type brushSide struct {
	PlaneNum uint16
	TexInfo  int16
	DispInfo int16
	Bevel    int16 // nonzero for bevel planes added by the compiler
}

type areaportal struct {
	PortalKey           uint16
	OtherArea           uint16
	FirstClipPortalVert uint16
	ClipPortalVerts     uint16
	PlaneNum            int32
}

// occluder data before lump version 1
type occluderV0 struct {
	Flags     int32
	FirstPoly int32
	PolyCount int32
	Mins      [3]float32
	Maxs      [3]float32
}

type occluderV1 struct {
	Flags     int32
	FirstPoly int32
	PolyCount int32
	Mins      [3]float32
	Maxs      [3]float32
	Area      int32
}

type occluderPoly struct {
	FirstVertexIndex int32
	VertexCount      int32
	PlaneNum         int32
}
