// SPDX-License-Identifier: GPL-2.0-or-later

package winding

import (
	"sync"
	"sync/atomic"

	"bspdecomp/bsp"
)

// Cache builds brush side windings once and hands out the same winding on
// later calls. It is safe for concurrent use.
type Cache struct {
	data  *bsp.Data
	sides []sideEntry
	built atomic.Int64
}

type sideEntry struct {
	once sync.Once
	w    Winding
}

func NewCache(d *bsp.Data) *Cache {
	return &Cache{
		data:  d,
		sides: make([]sideEntry, len(d.BrushSides)),
	}
}

// Side returns the winding of the side with offset side inside brush.
func (c *Cache) Side(brush, side int) Winding {
	b, ok := c.data.Brush(brush)
	if !ok || side < 0 || side >= b.NumSides {
		return nil
	}
	iside := b.FirstSide + side
	if iside < 0 || iside >= len(c.sides) {
		return nil
	}
	e := &c.sides[iside]
	e.once.Do(func() {
		e.w = FromSide(c.data, b, iside)
		c.built.Add(1)
	})
	return e.w
}

// Built returns the number of windings built so far.
func (c *Cache) Built() int {
	return int(c.built.Load())
}
