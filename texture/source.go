// SPDX-License-Identifier: GPL-2.0-or-later

package texture

// Source holds the texture replacement settings of a session.
type Source struct {
	FixToolTextures bool
	// FixPerpendicular realigns stored axes whose plane is perpendicular
	// to the face
	FixPerpendicular bool
	// FixedNames maps texdata name indexes to replacement materials
	FixedNames map[int]string
	Matcher    *Matcher
}

func DefaultSource() *Source {
	return &Source{
		FixToolTextures:  true,
		FixPerpendicular: true,
		FixedNames:       make(map[int]string),
		Matcher:          DefaultMatcher(),
	}
}

func (s *Source) fixedName(texname int) string {
	if s.FixedNames == nil {
		return ""
	}
	return s.FixedNames[texname]
}
