// SPDX-License-Identifier: GPL-2.0-or-later

package correlate

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"bspdecomp/bsp"
)

// ErrKeyMismatch is returned by LoadCache for a cache written for another
// bsp file.
var ErrKeyMismatch = errors.New("reallocation cache belongs to another file")

const cacheVersion = 2

// CacheKey identifies the bsp file a cache was resolved from.
type CacheKey struct {
	Checksum   uint16
	Brushes    int
	BrushSides int
}

func KeyOf(d *bsp.Data) CacheKey {
	return CacheKey{
		Checksum:   d.Checksum,
		Brushes:    len(d.Brushes),
		BrushSides: len(d.BrushSides),
	}
}

// cache message fields
const (
	fieldVersion     protowire.Number = 1
	fieldKey         protowire.Number = 2
	fieldOccluder    protowire.Number = 3
	fieldAreaportal  protowire.Number = 4
	fieldBrushes     protowire.Number = 5
	fieldBrushSides  protowire.Number = 6
	fieldMatchRecord protowire.Number = 1
	fieldMatchBrush  protowire.Number = 2
	fieldMatchSide   protowire.Number = 3
	fieldMatchFrac   protowire.Number = 4
)

// SaveCache writes r to w tagged with the key of the bsp file r was
// resolved from.
func SaveCache(w io.Writer, key CacheKey, r *ReallocationData) error {
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, cacheVersion)
	b = protowire.AppendTag(b, fieldKey, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(key.Checksum))
	b = protowire.AppendTag(b, fieldBrushes, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(key.Brushes))
	b = protowire.AppendTag(b, fieldBrushSides, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(key.BrushSides))
	for _, m := range r.occluders {
		b = protowire.AppendTag(b, fieldOccluder, protowire.BytesType)
		b = protowire.AppendBytes(b, appendMatch(nil, m))
	}
	for _, m := range r.areaportals {
		b = protowire.AppendTag(b, fieldAreaportal, protowire.BytesType)
		b = protowire.AppendBytes(b, appendMatch(nil, m))
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "failed to write reallocation cache")
	}
	return nil
}

func appendMatch(b []byte, m Match) []byte {
	b = protowire.AppendTag(b, fieldMatchRecord, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Record))
	b = protowire.AppendTag(b, fieldMatchBrush, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Brush))
	b = protowire.AppendTag(b, fieldMatchSide, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Side))
	b = protowire.AppendTag(b, fieldMatchFrac, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(m.Fraction))
	return b
}

// LoadCache reads a table written by SaveCache. It fails with
// ErrKeyMismatch if the cache was saved with another key.
func LoadCache(rd io.Reader, key CacheKey) (*ReallocationData, error) {
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read reallocation cache")
	}
	var (
		version     uint64
		saved       [3]uint64
		has         [3]bool
		occluders   []Match
		areaportals []Match
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "malformed reallocation cache")
		}
		b = b[n:]
		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			version, n = protowire.ConsumeVarint(b)
		case (num == fieldKey || num == fieldBrushes || num == fieldBrushSides) && typ == protowire.VarintType:
			i := keyIndex(num)
			saved[i], n = protowire.ConsumeVarint(b)
			has[i] = true
		case (num == fieldOccluder || num == fieldAreaportal) && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			if n < 0 {
				break
			}
			m, err := parseMatch(v)
			if err != nil {
				return nil, err
			}
			if num == fieldOccluder {
				occluders = append(occluders, m)
			} else {
				areaportals = append(areaportals, m)
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "malformed reallocation cache")
		}
		b = b[n:]
	}
	if version != cacheVersion {
		return nil, errors.Errorf("unsupported reallocation cache version %d", version)
	}
	want := [3]uint64{uint64(key.Checksum), uint64(key.Brushes), uint64(key.BrushSides)}
	if has != [3]bool{true, true, true} || saved != want {
		return nil, ErrKeyMismatch
	}
	return newReallocationData(occluders, areaportals), nil
}

func keyIndex(num protowire.Number) int {
	switch num {
	case fieldBrushes:
		return 1
	case fieldBrushSides:
		return 2
	}
	return 0
}

func parseMatch(b []byte) (Match, error) {
	var m Match
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return m, errors.Wrap(protowire.ParseError(n), "malformed reallocation cache entry")
		}
		b = b[n:]
		var v uint64
		switch typ {
		case protowire.VarintType:
			v, n = protowire.ConsumeVarint(b)
		case protowire.Fixed64Type:
			v, n = protowire.ConsumeFixed64(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return m, errors.Wrap(protowire.ParseError(n), "malformed reallocation cache entry")
		}
		b = b[n:]
		switch num {
		case fieldMatchRecord:
			m.Record = int(v)
		case fieldMatchBrush:
			m.Brush = int(v)
		case fieldMatchSide:
			m.Side = int(v)
		case fieldMatchFrac:
			m.Fraction = math.Float64frombits(v)
		}
	}
	return m, nil
}
