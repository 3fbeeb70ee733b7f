// SPDX-License-Identifier: GPL-2.0-or-later

// Package vmf writes Valve map files, nested sections of quoted key value
// pairs.
package vmf

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"bspdecomp/bsp"
	"bspdecomp/conlog"
	qmath "bspdecomp/math"
	"bspdecomp/math/vec"
	"bspdecomp/texture"
)

const maxPrecision = 17

// Precision sets the number of decimal places of written floats. Zero
// writes the shortest representation.
type Precision struct {
	Float        int
	TextureAxis  int
	TextureScale int
}

func DefaultPrecision() Precision {
	return Precision{Float: 6, TextureAxis: 6, TextureScale: 4}
}

type Writer struct {
	w       *bufio.Writer
	prec    Precision
	section []string
	err     error
}

func NewWriter(w io.Writer, p Precision) *Writer {
	p.Float = qmath.Clamp(0, p.Float, maxPrecision)
	p.TextureAxis = qmath.Clamp(0, p.TextureAxis, maxPrecision)
	p.TextureScale = qmath.Clamp(0, p.TextureScale, maxPrecision)
	return &Writer{w: bufio.NewWriter(w), prec: p}
}

func (w *Writer) line(s string) {
	if w.err != nil {
		return
	}
	for range w.section {
		if w.err = w.w.WriteByte('\t'); w.err != nil {
			return
		}
	}
	if _, w.err = w.w.WriteString(s); w.err != nil {
		return
	}
	_, w.err = w.w.WriteString("\r\n")
}

// Start opens a new section.
func (w *Writer) Start(name string) {
	w.line(name)
	w.line("{")
	w.section = append(w.section, name)
}

// End closes the innermost section which has to be name.
func (w *Writer) End(name string) error {
	if len(w.section) == 0 {
		return errors.Errorf("no open sections left to end %q", name)
	}
	last := w.section[len(w.section)-1]
	if last != name {
		return errors.Errorf("section end name mismatch, expected %q, got %q", last, name)
	}
	w.section = w.section[:len(w.section)-1]
	w.line("}")
	return w.err
}

func (w *Writer) Put(key, value string) {
	w.line(`"` + key + `" "` + value + `"`)
}

func (w *Writer) PutInt(key string, v int) {
	w.Put(key, strconv.Itoa(v))
}

func (w *Writer) PutBool(key string, v bool) {
	if v {
		w.Put(key, "1")
	} else {
		w.Put(key, "0")
	}
}

// PutPlane writes three points in parentheses.
func (w *Writer) PutPlane(key string, p [3]vec.Vec3d) {
	w.Put(key, w.formatPoint(p[0])+" "+w.formatPoint(p[1])+" "+w.formatPoint(p[2]))
}

// PutAxis writes a texture axis as "[x y z shift] scale".
func (w *Writer) PutAxis(key string, a texture.Axis) {
	var sb strings.Builder
	sb.WriteByte('[')
	if !a.Axis.IsValid() {
		conlog.Warnf("Invalid vector: %v", a.Axis)
		sb.WriteString("0 0 0 ")
	} else {
		for _, c := range a.Axis {
			sb.WriteString(FormatFloat(c, w.prec.TextureAxis))
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(strconv.Itoa(a.Shift))
	sb.WriteString("] ")
	sb.WriteString(FormatFloat(a.Scale, w.prec.TextureScale))
	w.Put(key, sb.String())
}

func (w *Writer) PutTexture(t *texture.Texture) {
	w.Put("material", t.Name())
	w.PutAxis("uaxis", t.UAxis)
	w.PutAxis("vaxis", t.VAxis)
	w.PutInt("lightmapscale", t.LightmapScale)
}

// PutKeyValues writes kvs in order, leaving out the keys in skip.
func (w *Writer) PutKeyValues(kvs []bsp.KeyValue, skip ...string) {
	for _, kv := range kvs {
		if slices.Contains(skip, kv.Key) {
			continue
		}
		w.Put(kv.Key, kv.Value)
	}
}

func (w *Writer) formatPoint(v vec.Vec3d) string {
	if !v.IsValid() {
		conlog.Warnf("Invalid vector: %v", v)
		return "(0 0 0)"
	}
	return "(" + FormatFloat(v[0], w.prec.Float) + " " +
		FormatFloat(v[1], w.prec.Float) + " " +
		FormatFloat(v[2], w.prec.Float) + ")"
}

// FormatFloat writes f with at most places decimals, dropping trailing
// zeros. Zero places gives the shortest exact representation.
func FormatFloat(f float64, places int) string {
	var s string
	if places <= 0 {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', places, 64)
		if strings.IndexByte(s, '.') >= 0 {
			s = strings.TrimRight(s, "0")
			s = strings.TrimSuffix(s, ".")
		}
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return errors.Wrap(w.err, "failed to write vmf")
	}
	if err := w.w.Flush(); err != nil {
		return errors.Wrap(err, "failed to write vmf")
	}
	return nil
}

// Close flushes the writer and reports sections that were never ended.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if len(w.section) != 0 {
		return errors.Errorf("unclosed vmf section: %s", strings.Join(w.section, " -> "))
	}
	return nil
}
