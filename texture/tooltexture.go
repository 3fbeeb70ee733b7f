// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import "strings"

// Tool textures used as replacements.
const (
	Skip            = "tools/toolsskip"
	Nodraw          = "tools/toolsnodraw"
	Occluder        = "tools/toolsoccluder"
	Areaportal      = "tools/toolsareaportal"
	Skybox          = "tools/toolsskybox"
	Skybox2D        = "tools/toolsskybox2d"
	Hint            = "tools/toolshint"
	Clip            = "tools/toolsclip"
	PlayerClip      = "tools/toolsplayerclip"
	NPCClip         = "tools/toolsnpcclip"
	Origin          = "tools/toolsorigin"
	Trigger         = "tools/toolstrigger"
	InvisibleLadder = "tools/toolsinvisibleladder"
	BlockLight      = "tools/toolsblocklight"
)

const toolPrefix = "tools/"

// IsTool reports whether name is a material from the tools directory.
func IsTool(name string) bool {
	return len(name) >= len(toolPrefix) && strings.EqualFold(name[:len(toolPrefix)], toolPrefix)
}
