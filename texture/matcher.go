// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"strings"

	"bspdecomp/bsp"
)

// Rule replaces the material of a side if the brush has all Contents bits
// and the side all Surface bits.
type Rule struct {
	Contents bsp.BrushFlag
	Surface  bsp.SurfaceFlag
	Texture  string
}

func (r *Rule) matches(contents bsp.BrushFlag, surface bsp.SurfaceFlag) bool {
	if r.Contents == 0 && r.Surface == 0 {
		return false
	}
	return contents.Has(r.Contents) && surface.Has(r.Surface)
}

// Matcher picks tool textures from brush contents and surface flags.
type Matcher struct {
	rules []Rule
}

// NewMatcher returns a matcher trying rules in order.
func NewMatcher(rules []Rule) *Matcher {
	return &Matcher{rules: append([]Rule(nil), rules...)}
}

var defaultRules = []Rule{
	{Surface: bsp.SurfSky2D, Texture: Skybox2D},
	{Surface: bsp.SurfSky, Texture: Skybox},
	{Surface: bsp.SurfHint, Texture: Hint},
	{Surface: bsp.SurfSkip, Texture: Skip},
	{Surface: bsp.SurfTrigger, Texture: Trigger},
	{Contents: bsp.ContentsAreaportal, Texture: Areaportal},
	{Contents: bsp.ContentsPlayerClip | bsp.ContentsMonsterClip, Texture: Clip},
	{Contents: bsp.ContentsPlayerClip, Texture: PlayerClip},
	{Contents: bsp.ContentsMonsterClip, Texture: NPCClip},
	{Contents: bsp.ContentsOrigin, Texture: Origin},
	{Contents: bsp.ContentsLadder, Texture: InvisibleLadder},
	{Contents: bsp.ContentsBlockLight, Texture: BlockLight},
}

// DefaultRules returns a copy of the built in rule set.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

func DefaultMatcher() *Matcher {
	return NewMatcher(defaultRules)
}

func (m *Matcher) Rules() []Rule {
	return m.rules
}

// Match returns the tool texture for a side currently using name. Sides
// that already use a tool texture other than nodraw are kept.
func (m *Matcher) Match(name string, contents bsp.BrushFlag, surface bsp.SurfaceFlag) (string, bool) {
	if IsTool(name) && !strings.EqualFold(name, Nodraw) {
		return "", false
	}
	for i := range m.rules {
		if m.rules[i].matches(contents, surface) {
			return m.rules[i].Texture, true
		}
	}
	return "", false
}
