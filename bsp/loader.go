// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"bspdecomp/crc"
	"bspdecomp/math/vec"
)

// Load reads and parses the bsp file name.
func Load(name string) (*Data, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "could not open bsp")
	}
	defer f.Close()
	sum := crc.New()
	b, err := io.ReadAll(io.TeeReader(f, sum))
	if err != nil {
		return nil, errors.Wrap(err, "could not read bsp")
	}
	d, err := Read(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	d.Name = name
	d.Checksum = sum.Sum16()
	return d, nil
}

// Read parses a bsp from r.
func Read(r io.ReaderAt) (*Data, error) {
	var h header
	if err := binary.Read(io.NewSectionReader(r, 0, int64(binary.Size(h))), binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	if h.Ident != ident {
		return nil, errors.Errorf("not a VBSP file, ident %q", h.Ident[:])
	}
	if h.Version < minVersion || h.Version > maxVersion {
		return nil, errors.Errorf("unsupported bsp version %d (should be %d-%d)", h.Version, minVersion, maxVersion)
	}
	l := &loader{r: r, h: &h}
	d := &Data{
		Version:     int(h.Version),
		MapRevision: int(h.MapRevision),
	}
	for i, dir := range h.Lumps {
		if dir.Length == 0 {
			continue
		}
		d.Lumps = append(d.Lumps, LumpInfo{
			Type:    LumpType(i),
			Offset:  int(dir.Offset),
			Length:  int(dir.Length),
			Version: int(dir.Version),
		})
	}

	for _, step := range []func(*Data) error{
		l.loadEntities,
		l.loadPlanes,
		l.loadVertexes,
		l.loadTexData,
		l.loadTexInfo,
		l.loadTexNames,
		l.loadBrushes,
		l.loadBrushSides,
		l.loadOcclusion,
		l.loadAreaportals,
		l.loadClipPortalVerts,
	} {
		if err := step(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

type loader struct {
	r io.ReaderAt
	h *header
}

func (l *loader) section(t LumpType) (*io.SectionReader, directory, error) {
	dir := l.h.Lumps[t]
	if dir.FourCC != [4]byte{} {
		return nil, dir, errors.Errorf("%v lump is compressed, decompress the map first", t)
	}
	if dir.Offset < 0 || dir.Length < 0 {
		return nil, dir, errors.Errorf("%v lump has a negative offset or length", t)
	}
	return io.NewSectionReader(l.r, int64(dir.Offset), int64(dir.Length)), dir, nil
}

// readLump reads all records of a lump of fixed size records.
func readLump[T any](l *loader, t LumpType) ([]T, error) {
	sr, dir, err := l.section(t)
	if err != nil {
		return nil, err
	}
	if dir.Length == 0 {
		return nil, nil
	}
	var zero T
	size := binary.Size(zero)
	if int(dir.Length)%size != 0 {
		return nil, errors.Errorf("%v lump has funny size %d", t, dir.Length)
	}
	out := make([]T, int(dir.Length)/size)
	if err := binary.Read(sr, binary.LittleEndian, out); err != nil {
		return nil, errors.Wrapf(err, "reading %v lump", t)
	}
	return out, nil
}

func (l *loader) loadEntities(d *Data) error {
	sr, dir, err := l.section(LumpEntities)
	if err != nil {
		return err
	}
	b := make([]byte, dir.Length)
	if _, err := io.ReadFull(sr, b); err != nil {
		return errors.Wrapf(err, "reading %v lump", LumpEntities)
	}
	d.Entities = ParseEntities(b)
	return nil
}

func (l *loader) loadPlanes(d *Data) error {
	ps, err := readLump[plane](l, LumpPlanes)
	if err != nil {
		return err
	}
	d.Planes = make([]Plane, len(ps))
	for i, p := range ps {
		d.Planes[i] = Plane{
			Normal: vec.Vec3f(p.Normal),
			Dist:   p.Distance,
			Type:   p.Type,
		}
	}
	return nil
}

func vertexes(vs []vertex) []vec.Vec3f {
	out := make([]vec.Vec3f, len(vs))
	for i, v := range vs {
		out[i] = vec.Vec3f{v.X, v.Y, v.Z}
	}
	return out
}

func (l *loader) loadVertexes(d *Data) error {
	vs, err := readLump[vertex](l, LumpVertexes)
	if err != nil {
		return err
	}
	d.Vertexes = vertexes(vs)
	return nil
}

func (l *loader) loadClipPortalVerts(d *Data) error {
	vs, err := readLump[vertex](l, LumpClipPortalVerts)
	if err != nil {
		return err
	}
	d.ClipPortalVerts = vertexes(vs)
	return nil
}

func (l *loader) loadTexData(d *Data) error {
	ts, err := readLump[texData](l, LumpTexData)
	if err != nil {
		return err
	}
	d.TexDatas = make([]TexData, len(ts))
	for i, t := range ts {
		d.TexDatas[i] = TexData{
			Reflectivity: vec.Vec3f(t.Reflectivity),
			TexName:      int(t.NameStringTableID),
			Width:        int(t.Width),
			Height:       int(t.Height),
			ViewWidth:    int(t.ViewWidth),
			ViewHeight:   int(t.ViewHeight),
		}
	}
	return nil
}

func (l *loader) loadTexInfo(d *Data) error {
	ts, err := readLump[texInfo](l, LumpTexInfo)
	if err != nil {
		return err
	}
	d.TexInfos = make([]TexInfo, len(ts))
	for i, t := range ts {
		d.TexInfos[i] = TexInfo{
			TextureVecs:  [2]vec.Vec4[float32]{t.TextureVecs[0], t.TextureVecs[1]},
			LightmapVecs: [2]vec.Vec4[float32]{t.LightmapVecs[0], t.LightmapVecs[1]},
			Flags:        SurfaceFlag(t.Flags),
			TexData:      int(t.TexData),
		}
	}
	return nil
}

func (l *loader) loadTexNames(d *Data) error {
	table, err := readLump[int32](l, LumpTexDataStringTable)
	if err != nil {
		return err
	}
	sr, dir, err := l.section(LumpTexDataStringData)
	if err != nil {
		return err
	}
	data := make([]byte, dir.Length)
	if _, err := io.ReadFull(sr, data); err != nil {
		return errors.Wrapf(err, "reading %v lump", LumpTexDataStringData)
	}
	d.TexNames = make([]string, len(table))
	for i, ofs := range table {
		if ofs < 0 || int(ofs) >= len(data) {
			return errors.Errorf("texture name %d points outside of the string data (%d)", i, ofs)
		}
		s := data[ofs:]
		if n := bytes.IndexByte(s, 0); n != -1 {
			s = s[:n]
		}
		d.TexNames[i] = string(s)
	}
	return nil
}

func (l *loader) loadBrushes(d *Data) error {
	bs, err := readLump[brush](l, LumpBrushes)
	if err != nil {
		return err
	}
	d.Brushes = make([]Brush, len(bs))
	for i, b := range bs {
		d.Brushes[i] = Brush{
			FirstSide: int(b.FirstSide),
			NumSides:  int(b.NumSides),
			Contents:  BrushFlag(b.Contents),
		}
	}
	return nil
}

func (l *loader) loadBrushSides(d *Data) error {
	bs, err := readLump[brushSide](l, LumpBrushSides)
	if err != nil {
		return err
	}
	d.BrushSides = make([]BrushSide, len(bs))
	for i, s := range bs {
		d.BrushSides[i] = BrushSide{
			Plane:    int(s.PlaneNum),
			TexInfo:  int(s.TexInfo),
			DispInfo: int(s.DispInfo),
			Bevel:    s.Bevel != 0,
		}
	}
	return nil
}

func (l *loader) loadAreaportals(d *Data) error {
	as, err := readLump[areaportal](l, LumpAreaportals)
	if err != nil {
		return err
	}
	d.Areaportals = make([]Areaportal, len(as))
	for i, a := range as {
		d.Areaportals[i] = Areaportal{
			PortalKey:           int(a.PortalKey),
			OtherArea:           int(a.OtherArea),
			FirstClipPortalVert: int(a.FirstClipPortalVert),
			ClipPortalVerts:     int(a.ClipPortalVerts),
			Plane:               int(a.PlaneNum),
		}
	}
	return nil
}

// The occlusion lump consists of three count prefixed arrays: occluder data,
// occluder polys and vertex indices.
func (l *loader) loadOcclusion(d *Data) error {
	sr, dir, err := l.section(LumpOcclusion)
	if err != nil {
		return err
	}
	if dir.Length == 0 {
		return nil
	}
	wrap := func(err error) error {
		return errors.Wrapf(err, "reading %v lump", LumpOcclusion)
	}
	count := func() (int, error) {
		var n int32
		if err := binary.Read(sr, binary.LittleEndian, &n); err != nil {
			return 0, wrap(err)
		}
		if n < 0 || int64(n) > int64(dir.Length) {
			return 0, errors.Errorf("%v lump has bad count %d", LumpOcclusion, n)
		}
		return int(n), nil
	}

	n, err := count()
	if err != nil {
		return err
	}
	d.Occluders = make([]Occluder, n)
	if dir.Version == 0 {
		occs := make([]occluderV0, n)
		if err := binary.Read(sr, binary.LittleEndian, occs); err != nil {
			return wrap(err)
		}
		for i, o := range occs {
			d.Occluders[i] = Occluder{
				Flags:     int(o.Flags),
				FirstPoly: int(o.FirstPoly),
				PolyCount: int(o.PolyCount),
				Mins:      vec.Vec3f(o.Mins),
				Maxs:      vec.Vec3f(o.Maxs),
				Area:      -1,
			}
		}
	} else {
		occs := make([]occluderV1, n)
		if err := binary.Read(sr, binary.LittleEndian, occs); err != nil {
			return wrap(err)
		}
		for i, o := range occs {
			d.Occluders[i] = Occluder{
				Flags:     int(o.Flags),
				FirstPoly: int(o.FirstPoly),
				PolyCount: int(o.PolyCount),
				Mins:      vec.Vec3f(o.Mins),
				Maxs:      vec.Vec3f(o.Maxs),
				Area:      int(o.Area),
			}
		}
	}

	if n, err = count(); err != nil {
		return err
	}
	ps := make([]occluderPoly, n)
	if err := binary.Read(sr, binary.LittleEndian, ps); err != nil {
		return wrap(err)
	}
	d.OccluderPolys = make([]OccluderPoly, n)
	for i, p := range ps {
		d.OccluderPolys[i] = OccluderPoly{
			FirstVertexIndex: int(p.FirstVertexIndex),
			VertexCount:      int(p.VertexCount),
			Plane:            int(p.PlaneNum),
		}
	}

	if n, err = count(); err != nil {
		return err
	}
	idx := make([]int32, n)
	if err := binary.Read(sr, binary.LittleEndian, idx); err != nil {
		return wrap(err)
	}
	d.OccluderVertexIndices = make([]int, n)
	for i, v := range idx {
		d.OccluderVertexIndices[i] = int(v)
	}
	return nil
}
