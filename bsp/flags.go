// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import "strings"

// BrushFlag holds the CONTENTS_ bits of a brush.
type BrushFlag uint32

const (
	ContentsSolid BrushFlag = 1 << iota
	ContentsWindow
	ContentsAux
	ContentsGrate
	ContentsSlime
	ContentsWater
	ContentsBlockLOS
	ContentsOpaque
	ContentsTestFogVolume
	ContentsUnused
	ContentsBlockLight
	ContentsTeam1
	ContentsTeam2
	ContentsIgnoreNodrawOpaque
	ContentsMoveable
	ContentsAreaportal
	ContentsPlayerClip
	ContentsMonsterClip
	ContentsCurrent0
	ContentsCurrent90
	ContentsCurrent180
	ContentsCurrent270
	ContentsCurrentUp
	ContentsCurrentDown
	ContentsOrigin
	ContentsMonster
	ContentsDebris
	ContentsDetail
	ContentsTranslucent
	ContentsLadder
	ContentsHitbox
)

var brushFlagNames = []string{
	"SOLID", "WINDOW", "AUX", "GRATE", "SLIME", "WATER", "BLOCKLOS", "OPAQUE",
	"TESTFOGVOLUME", "UNUSED", "BLOCKLIGHT", "TEAM1", "TEAM2",
	"IGNORE_NODRAW_OPAQUE", "MOVEABLE", "AREAPORTAL", "PLAYERCLIP",
	"MONSTERCLIP", "CURRENT_0", "CURRENT_90", "CURRENT_180", "CURRENT_270",
	"CURRENT_UP", "CURRENT_DOWN", "ORIGIN", "MONSTER", "DEBRIS", "DETAIL",
	"TRANSLUCENT", "LADDER", "HITBOX",
}

// Has reports whether all bits of o are set.
func (f BrushFlag) Has(o BrushFlag) bool {
	return f&o == o
}

func (f BrushFlag) String() string {
	return flagString(uint32(f), brushFlagNames)
}

// SurfaceFlag holds the SURF_ bits of a texinfo.
type SurfaceFlag uint32

const (
	SurfLight SurfaceFlag = 1 << iota
	SurfSky2D
	SurfSky
	SurfWarp
	SurfTrans
	SurfNoPortal
	SurfTrigger
	SurfNodraw
	SurfHint
	SurfSkip
	SurfNoLight
	SurfBumpLight
	SurfNoShadows
	SurfNoDecals
	SurfNoChop
	SurfHitbox
)

var surfaceFlagNames = []string{
	"LIGHT", "SKY2D", "SKY", "WARP", "TRANS", "NOPORTAL", "TRIGGER", "NODRAW",
	"HINT", "SKIP", "NOLIGHT", "BUMPLIGHT", "NOSHADOWS", "NODECALS", "NOCHOP",
	"HITBOX",
}

func (f SurfaceFlag) Has(o SurfaceFlag) bool {
	return f&o == o
}

func (f SurfaceFlag) String() string {
	return flagString(uint32(f), surfaceFlagNames)
}

func flagString(f uint32, names []string) string {
	if f == 0 {
		return "0"
	}
	var n []string
	for i, name := range names {
		if f&(1<<i) != 0 {
			n = append(n, name)
		}
	}
	return strings.Join(n, "|")
}

// ParseBrushFlags parses a '|' separated list of flag names as produced by
// String.
func ParseBrushFlags(s string) (BrushFlag, bool) {
	f, ok := parseFlags(s, brushFlagNames)
	return BrushFlag(f), ok
}

func ParseSurfaceFlags(s string) (SurfaceFlag, bool) {
	f, ok := parseFlags(s, surfaceFlagNames)
	return SurfaceFlag(f), ok
}

func parseFlags(s string, names []string) (uint32, bool) {
	var f uint32
	if strings.TrimSpace(s) == "" || s == "0" {
		return 0, true
	}
outer:
	for _, p := range strings.Split(s, "|") {
		p = strings.ToUpper(strings.TrimSpace(p))
		for i, name := range names {
			if name == p {
				f |= 1 << i
				continue outer
			}
		}
		return 0, false
	}
	return f, true
}
