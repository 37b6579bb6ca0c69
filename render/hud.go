package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilerun/status"
)

// HUD renders the status registry as a single line at the top of the screen
type HUD struct {
	status *status.Registry
	style  tcell.Style
}

// NewHUD creates a HUD over reg
func NewHUD(reg *status.Registry) *HUD {
	return &HUD{
		status: reg,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// Draw writes the status line, truncated to width
func (h *HUD) Draw(screen tcell.Screen, width int) {
	line := h.status.Line()
	x := 0
	for _, ch := range line {
		if x >= width {
			break
		}
		screen.SetContent(x, 0, ch, nil, h.style)
		x++
	}
}
