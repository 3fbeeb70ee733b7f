// SPDX-License-Identifier: GPL-2.0-or-later

// Package decompiler turns the brushes of a bsp file back into a vmf world.
package decompiler

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bspdecomp/bsp"
	"bspdecomp/config"
	"bspdecomp/conlog"
	"bspdecomp/correlate"
	"bspdecomp/math/vec"
	"bspdecomp/texture"
	"bspdecomp/vmf"
	"bspdecomp/winding"
	"bspdecomp/work"
)

const (
	// minSides is the smallest number of faces of a closed brush
	minSides = 4
	// planeMatch is the smallest cosine between a side winding and its plane
	planeMatch = 0.999
)

type Stats struct {
	Brushes           int
	Solids            int
	Sides             int
	SkippedSides      int
	SkippedBrushes    int
	OccluderMatches   int
	AreaportalMatches int
	// Realigned counts sides whose axes were derived from the normal
	Realigned int
}

// Session decompiles one bsp file.
type Session struct {
	ID     uuid.UUID
	Data   *bsp.Data
	Config *config.Config
	// CachePath names the reallocation cache file, empty for none
	CachePath string
	Stats     Stats

	log *slog.Logger
	// shared by correlation and brush building
	windings *winding.Cache
}

func New(d *bsp.Data, c *config.Config) *Session {
	id := uuid.Must(uuid.NewV7())
	return &Session{
		ID:       id,
		Data:     d,
		Config:   c,
		log:      conlog.Logger().With("session", id.String(), "map", d.Name),
		windings: winding.NewCache(d),
	}
}

type side struct {
	plane [3]vec.Vec3d
	tex   texture.Texture
}

type solid struct {
	sides []side
	// degenerate sides left out
	skipped int
}

// Reallocation returns the correlation table, read from the cache file if
// it matches the input and resolved otherwise.
func (s *Session) Reallocation() *correlate.ReallocationData {
	opts := s.Config.Correlate
	if !opts.Occluders && !opts.Areaportals {
		return correlate.Empty()
	}
	if s.CachePath != "" {
		r, err := s.loadCache()
		if err == nil {
			s.log.Debug("using reallocation cache", "path", s.CachePath)
			return r
		}
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("ignoring reallocation cache", "path", s.CachePath, "err", err)
		}
	}
	opts.Windings = s.windings
	r := correlate.Resolve(s.Data, opts)
	if s.CachePath != "" {
		if err := s.saveCache(r); err != nil {
			s.log.Warn("could not save reallocation cache", "path", s.CachePath, "err", err)
		}
	}
	return r
}

func (s *Session) loadCache() (*correlate.ReallocationData, error) {
	f, err := os.Open(s.CachePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return correlate.LoadCache(f, correlate.KeyOf(s.Data))
}

func (s *Session) saveCache(r *correlate.ReallocationData) error {
	f, err := os.Create(s.CachePath)
	if err != nil {
		return err
	}
	if err := correlate.SaveCache(f, correlate.KeyOf(s.Data), r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Run writes the world of the session's map to w.
func (s *Session) Run(ctx context.Context, w io.Writer) error {
	realloc := s.Reallocation()
	s.Stats = Stats{
		Brushes:           len(s.Data.Brushes),
		OccluderMatches:   len(realloc.OccluderMatches()),
		AreaportalMatches: len(realloc.AreaportalMatches()),
	}

	// the reallocation table is complete here and only read from now on
	solids, err := s.buildSolids(ctx, realloc)
	if err != nil {
		return err
	}

	vw := vmf.NewWriter(w, s.Config.Precision)
	if err := s.write(vw, solids); err != nil {
		return err
	}
	if err := vw.Close(); err != nil {
		return err
	}

	s.log.Info("decompiled",
		"brushes", s.Stats.Brushes,
		"solids", s.Stats.Solids,
		"sides", s.Stats.Sides,
		"skipped_brushes", s.Stats.SkippedBrushes,
		"skipped_sides", s.Stats.SkippedSides,
		"occluders", s.Stats.OccluderMatches,
		"areaportals", s.Stats.AreaportalMatches,
		"realigned", s.Stats.Realigned,
		"windings", s.windings.Built())
	return nil
}

func (s *Session) buildSolids(ctx context.Context, realloc *correlate.ReallocationData) ([]solid, error) {
	d := s.Data
	builder := texture.NewBuilder(d, s.Config.Source, realloc)
	solids := make([]solid, len(d.Brushes))
	err := work.Each(ctx, len(d.Brushes), s.Config.Workers, func(ib int) {
		solids[ib] = buildSolid(d, builder, s.windings, ib)
	})
	if err != nil {
		return nil, errors.Wrap(err, "building brushes")
	}
	return solids, nil
}

func buildSolid(d *bsp.Data, builder *texture.Builder, windings *winding.Cache, ib int) solid {
	b := &d.Brushes[ib]
	var out solid
	for is, bs := range d.Sides(b) {
		if bs.Bevel {
			continue
		}
		p, _ := d.Plane(bs.Plane)
		pts, ok := planePoints(windings.Side(ib, is), p)
		if !ok {
			conlog.Debugf("brush %d side %d is degenerate", ib, is)
			out.skipped++
			continue
		}
		normal := p.Normal.Double()

		params := texture.NewParams()
		params.Normal = &normal
		params.Brush = ib
		params.BrushSide = b.FirstSide + is
		params.TexInfo = bs.TexInfo
		params.EnableFixing = true
		tex := builder.Build(params)
		if !tex.Aligned() {
			tex.AlignToNormal(normal)
		}
		out.sides = append(out.sides, side{plane: pts, tex: tex})
	}
	return out
}

func (s *Session) write(w *vmf.Writer, solids []solid) error {
	w.Start("versioninfo")
	w.PutInt("editorversion", 400)
	w.PutInt("editorbuild", 0)
	w.PutInt("mapversion", s.Data.MapRevision)
	w.PutInt("formatversion", 100)
	w.PutBool("prefab", false)
	if err := w.End("versioninfo"); err != nil {
		return err
	}

	w.Start("world")
	w.PutInt("id", 1)
	w.PutInt("mapversion", s.Data.MapRevision)
	w.Put("classname", "worldspawn")
	if ws := s.Data.Worldspawn(); ws != nil {
		w.PutKeyValues(ws.KeyValues(), "classname", "mapversion")
	}

	solidID, sideID := 1, 1
	for ib, so := range solids {
		s.Stats.SkippedSides += so.skipped
		if len(so.sides) < minSides {
			conlog.Debugf("skipping brush %d with %d valid sides", ib, len(so.sides))
			s.Stats.SkippedBrushes++
			s.Stats.SkippedSides += len(so.sides)
			continue
		}
		solidID++
		w.Start("solid")
		w.PutInt("id", solidID)
		for _, sd := range so.sides {
			w.Start("side")
			w.PutInt("id", sideID)
			sideID++
			w.PutPlane("plane", sd.plane)
			w.PutTexture(&sd.tex)
			w.PutInt("smoothing_groups", 0)
			if err := w.End("side"); err != nil {
				return err
			}
			s.Stats.Sides++
			if sd.tex.Realigned {
				s.Stats.Realigned++
			}
		}
		if err := w.End("solid"); err != nil {
			return err
		}
		s.Stats.Solids++
	}
	return w.End("world")
}

// planePoints returns three points of w that describe p in editor order.
// Windings too thin to give back the plane are rejected.
func planePoints(w winding.Winding, p *bsp.Plane) ([3]vec.Vec3d, bool) {
	pts, ok := w.PlanePoints()
	if !ok || p == nil {
		return pts, false
	}
	if vec.Dot(w.Normal(), p.Normal.Double()) < planeMatch {
		return pts, false
	}
	for _, pt := range pts {
		if math.Abs(p.Distance(pt)) > winding.ClipEpsilon {
			return pts, false
		}
	}
	return pts, true
}
