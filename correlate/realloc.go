// SPDX-License-Identifier: GPL-2.0-or-later

package correlate

// Class tells how a brush side was produced by the map compiler.
type Class uint8

const (
	NotSpecial Class = iota
	// OccluderBrush is any side of a brush that carried an occluder
	OccluderBrush
	// OccluderBrushSide is the side the occluder poly was made from
	OccluderBrushSide
	// Areaportal is any side of an area portal brush
	Areaportal
)

var classNames = [...]string{"none", "occluder brush", "occluder side", "areaportal"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

type sideKey struct {
	brush int
	side  int
}

// Match records the brush side chosen for one occluder poly or area portal.
type Match struct {
	Record   int
	Brush    int
	Side     int
	Fraction float64
}

// ReallocationData maps brushes and brush sides back to the occluders and
// area portals they were compiled into. It is never modified after it is
// built and may be read from many goroutines.
type ReallocationData struct {
	occluderBrushes   map[int]struct{}
	occluderSides     map[sideKey]struct{}
	areaportalBrushes map[int]struct{}

	occluders   []Match
	areaportals []Match
}

// Empty returns a table without any entries.
func Empty() *ReallocationData {
	return newReallocationData(nil, nil)
}

func newReallocationData(occluders, areaportals []Match) *ReallocationData {
	r := &ReallocationData{
		occluderBrushes:   make(map[int]struct{}),
		occluderSides:     make(map[sideKey]struct{}),
		areaportalBrushes: make(map[int]struct{}),
		occluders:         occluders,
		areaportals:       areaportals,
	}
	for _, m := range occluders {
		r.occluderBrushes[m.Brush] = struct{}{}
		r.occluderSides[sideKey{m.Brush, m.Side}] = struct{}{}
	}
	for _, m := range areaportals {
		r.areaportalBrushes[m.Brush] = struct{}{}
	}
	return r
}

func (r *ReallocationData) IsOccluderBrush(brush int) bool {
	_, ok := r.occluderBrushes[brush]
	return ok
}

// IsOccluderBrushSide takes the side offset inside the brush.
func (r *ReallocationData) IsOccluderBrushSide(brush, side int) bool {
	_, ok := r.occluderSides[sideKey{brush, side}]
	return ok
}

func (r *ReallocationData) IsAreaportalBrush(brush int) bool {
	_, ok := r.areaportalBrushes[brush]
	return ok
}

// Classify returns the class of a brush side. Occluders take precedence
// over area portals.
func (r *ReallocationData) Classify(brush, side int) Class {
	switch {
	case r.IsOccluderBrushSide(brush, side):
		return OccluderBrushSide
	case r.IsOccluderBrush(brush):
		return OccluderBrush
	case r.IsAreaportalBrush(brush):
		return Areaportal
	}
	return NotSpecial
}

// Len returns the number of matched records.
func (r *ReallocationData) Len() int {
	return len(r.occluders) + len(r.areaportals)
}

// OccluderMatches returns the matches of occluder polys in poly order.
func (r *ReallocationData) OccluderMatches() []Match {
	return r.occluders
}

// AreaportalMatches returns the matches of area portals in portal order.
func (r *ReallocationData) AreaportalMatches() []Match {
	return r.areaportals
}
