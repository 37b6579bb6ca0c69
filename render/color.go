package render

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseColor converts "#rgb", "#rrggbb" or a named color to a tcell color
// Unknown names map to tcell.ColorDefault
func ParseColor(s string) tcell.Color {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 16)
		if err != nil {
			return tcell.ColorDefault
		}
		r := int32(v>>8&0xf) * 0x11
		g := int32(v>>4&0xf) * 0x11
		b := int32(v&0xf) * 0x11
		return tcell.NewRGBColor(r, g, b)
	}
	return tcell.GetColor(strings.ToLower(s))
}

// colorCache memoizes ParseColor for the strings behaviors pass every frame
type colorCache map[string]tcell.Color

func (c colorCache) get(s string) tcell.Color {
	if col, ok := c[s]; ok {
		return col
	}
	col := ParseColor(s)
	c[s] = col
	return col
}
