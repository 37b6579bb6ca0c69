package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tilerun/constant"
	"github.com/lixenwraith/tilerun/core"
)

// cellAspect is the height/width ratio of a terminal cell; vertical scale is divided by it
const cellAspect = 2.0

// TerminalRenderer draws world-space content onto a tcell screen
// One meter spans pixelsPerMeter columns and pixelsPerMeter/cellAspect rows; the camera point is the screen center
type TerminalRenderer struct {
	screen tcell.Screen
	scaleX float64
	scaleY float64
	colors colorCache

	// Per-frame state set by BeginFrame
	width   int
	height  int
	originX float64
	originY float64
	bg      tcell.Style

	hud *HUD
}

// NewTerminalRenderer creates a renderer for screen
func NewTerminalRenderer(screen tcell.Screen, pixelsPerMeter float64) *TerminalRenderer {
	if pixelsPerMeter <= 0 {
		pixelsPerMeter = constant.PixelsPerMeter
	}
	return &TerminalRenderer{
		screen: screen,
		scaleX: pixelsPerMeter,
		scaleY: pixelsPerMeter / cellAspect,
		colors: make(colorCache),
	}
}

// SetHUD installs an overlay drawn on top of each frame, nil removes it
func (r *TerminalRenderer) SetHUD(h *HUD) {
	r.hud = h
}

// BeginFrame clears the screen to the background and fixes the camera translation
func (r *TerminalRenderer) BeginFrame(cam core.Camera) {
	r.width, r.height = r.screen.Size()
	r.originX = cam.X*r.scaleX - float64(r.width)/2
	r.originY = cam.Y*r.scaleY - float64(r.height)/2
	r.bg = tcell.StyleDefault.Background(r.colors.get(constant.BackgroundColor))
	r.screen.Fill(' ', r.bg)
}

// ToScreen converts a world point to the cell containing it under the current frame's camera
func (r *TerminalRenderer) ToScreen(x, y float64) (int, int) {
	return int(math.Floor(x*r.scaleX - r.originX)), int(math.Floor(y*r.scaleY - r.originY))
}

// DrawVisual draws frame of v anchored at the entity position
// A negative scaleX mirrors the frame in place, a negative scaleY flips it in place
func (r *TerminalRenderer) DrawVisual(v core.Visual, e *core.Entity, frame int, scaleX, scaleY float64) {
	ox, oy := r.ToScreen(e.X, e.Y)

	s, ok := v.(*Sprite)
	if !ok {
		// Unknown visuals get a placeholder glyph
		name := []rune(v.Name())
		if len(name) > 0 {
			r.set(ox, oy, name[0], r.bg)
		}
		return
	}

	rows := s.Frame(frame)
	width := 0
	for _, cells := range rows {
		width = max(width, len(cells))
	}

	style := r.bg.Foreground(r.colors.get(s.color))
	for row, cells := range rows {
		if scaleY < 0 {
			row = len(rows) - 1 - row
		}
		y := oy + s.offsetY + row
		for col, ch := range cells {
			if ch == ' ' {
				continue
			}
			if scaleX < 0 {
				col = width - 1 - col
				ch = mirror(ch)
			}
			r.set(ox+s.offsetX+col, y, ch, style)
		}
	}
}

// DrawRect fills every cell whose center lies inside the world rectangle
func (r *TerminalRenderer) DrawRect(x, y, w, h float64, color string) {
	style := tcell.StyleDefault.Background(r.colors.get(color))
	left := int(math.Round(x*r.scaleX - r.originX))
	top := int(math.Round(y*r.scaleY - r.originY))
	right := int(math.Round((x+w)*r.scaleX - r.originX))
	bottom := int(math.Round((y+h)*r.scaleY - r.originY))
	for cy := top; cy < bottom; cy++ {
		for cx := left; cx < right; cx++ {
			r.set(cx, cy, ' ', style)
		}
	}
}

// EndFrame draws the HUD and presents the frame
func (r *TerminalRenderer) EndFrame() {
	if r.hud != nil {
		r.hud.Draw(r.screen, r.width)
	}
	r.screen.Show()
}

func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}
