package layout

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseColor converts a zone color string to an RGBA color. Both the
// "0xrrggbb" form found in layout files and the CSS "#rrggbb" form are
// accepted. Unparseable values yield the neutral gray used by the generic
// box fallback.
func ParseColor(s string) color.RGBA {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}
