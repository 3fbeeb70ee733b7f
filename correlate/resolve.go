// SPDX-License-Identifier: GPL-2.0-or-later

// Package correlate finds the brush sides that occluders and area portals
// were compiled from.
package correlate

import (
	"context"

	"bspdecomp/bsp"
	"bspdecomp/conlog"
	"bspdecomp/winding"
	"bspdecomp/work"
)

type Options struct {
	// Workers bounds the number of goroutines, zero means one per cpu
	Workers     int
	Occluders   bool
	Areaportals bool
	// Windings of the brush sides, built by Resolve if nil
	Windings *winding.Cache
}

func DefaultOptions() Options {
	return Options{
		Occluders:   true,
		Areaportals: true,
	}
}

type candidate struct {
	brush int
	side  int
}

type resolver struct {
	data       *bsp.Data
	windings   *winding.Cache
	candidates map[int][]candidate
}

func newResolver(d *bsp.Data, wc *winding.Cache) *resolver {
	if wc == nil {
		wc = winding.NewCache(d)
	}
	r := &resolver{
		data:       d,
		windings:   wc,
		candidates: make(map[int][]candidate),
	}
	// ascending brush then side order, the first best match wins
	for ib := range d.Brushes {
		for is, s := range d.Sides(&d.Brushes[ib]) {
			if s.Bevel {
				continue
			}
			r.candidates[s.Plane] = append(r.candidates[s.Plane], candidate{ib, is})
		}
	}
	return r
}

// best returns the candidate covering most of s. ok is false if none
// overlaps s at all.
func (r *resolver) best(s Surface) (Match, bool) {
	var m Match
	if s.Winding.IsEmpty() {
		return m, false
	}
	for _, c := range r.candidates[s.Plane] {
		f := MatchingAreaFraction(r.data, r.windings, s, c.brush, c.side)
		if f > m.Fraction {
			m = Match{Brush: c.brush, Side: c.side, Fraction: f}
		}
	}
	return m, m.Fraction > 0
}

// Resolve matches every occluder poly and area portal of d against the brush
// sides on the same plane and returns the resulting table.
func Resolve(d *bsp.Data, opts Options) *ReallocationData {
	r := newResolver(d, opts.Windings)

	var occluders, areaportals []Match
	if opts.Occluders {
		occluders = r.run(len(d.OccluderPolys), opts.Workers, func(i int) Surface {
			return OccluderSurface(d, &d.OccluderPolys[i])
		})
		conlog.Debugf("matched %d of %d occluder polys", len(occluders), len(d.OccluderPolys))
	}
	if opts.Areaportals {
		areaportals = r.run(len(d.Areaportals), opts.Workers, func(i int) Surface {
			return AreaportalSurface(d, &d.Areaportals[i])
		})
		conlog.Debugf("matched %d of %d areaportals", len(areaportals), len(d.Areaportals))
	}
	return newReallocationData(occluders, areaportals)
}

// run evaluates n records concurrently, each writing only its own slot, and
// collects the matches in record order.
func (r *resolver) run(n, workers int, surface func(i int) Surface) []Match {
	type slot struct {
		m  Match
		ok bool
	}
	slots := make([]slot, n)
	// never canceled
	_ = work.Each(context.Background(), n, workers, func(i int) {
		m, ok := r.best(surface(i))
		m.Record = i
		slots[i] = slot{m, ok}
	})
	var out []Match
	for _, s := range slots {
		if s.ok {
			out = append(out, s.m)
		}
	}
	return out
}
