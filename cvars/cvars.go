// SPDX-License-Identifier: GPL-2.0-or-later

// Package cvars registers the options of the decompiler.
package cvars

import (
	"bspdecomp/conlog"
	"bspdecomp/cvar"
)

var (
	TextureFixTools         *cvar.Cvar
	TextureFixPerpendicular *cvar.Cvar
	CorrelateOccluders      *cvar.Cvar
	CorrelateAreaportals    *cvar.Cvar
	VmfPrecision            *cvar.Cvar
	VmfPrecisionAxes        *cvar.Cvar
	VmfPrecisionScale       *cvar.Cvar
	Workers                 *cvar.Cvar
)

func init() {
	TextureFixTools = cvar.MustRegister("texture_fix_tools", "1").
		SetHelp("replace materials of occluder, areaportal and other tool brushes")
	TextureFixPerpendicular = cvar.MustRegister("texture_fix_perpendicular", "1").
		SetHelp("realign stored texture axes lying perpendicular to their face")
	CorrelateOccluders = cvar.MustRegister("correlate_occluders", "1").
		SetHelp("match occluder polys to brush sides")
	CorrelateAreaportals = cvar.MustRegister("correlate_areaportals", "1").
		SetHelp("match areaportals to brushes")
	VmfPrecision = cvar.MustRegister("vmf_precision", "6").
		SetHelp("decimal places of coordinates, 0 for shortest")
	VmfPrecisionAxes = cvar.MustRegister("vmf_precision_axes", "6").
		SetHelp("decimal places of texture axes")
	VmfPrecisionScale = cvar.MustRegister("vmf_precision_scale", "4").
		SetHelp("decimal places of texture scales")
	Workers = cvar.MustRegister("workers", "0").
		SetHelp("number of worker goroutines, 0 for one per cpu")

	for _, cv := range []*cvar.Cvar{VmfPrecision, VmfPrecisionAxes, VmfPrecisionScale} {
		cv.SetCallback(warnRange(0, 17))
	}
	Workers.SetCallback(warnRange(0, 1<<16))
}

// warnRange reports values the consumers will clamp.
func warnRange(lo, hi int) cvar.CallbackFunc {
	return func(cv *cvar.Cvar) {
		if v := cv.Int(); v < lo || v > hi {
			conlog.Warnf("%s: %d is outside %d..%d", cv.Name(), v, lo, hi)
		}
	}
}
