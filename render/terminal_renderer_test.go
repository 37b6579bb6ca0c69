package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tilerun/core"
	"github.com/lixenwraith/tilerun/status"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func bgAt(s tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := s.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

// row returns the runes of screen row y between columns from and to
func row(s tcell.Screen, y, from, to int) string {
	var b strings.Builder
	for x := from; x < to; x++ {
		b.WriteRune(runeAt(s, x, y))
	}
	return b.String()
}

type namedVisual string

func (v namedVisual) Name() string  { return string(v) }
func (namedVisual) FrameCount() int { return 1 }

func TestParseColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(0x44, 0x44, 0x44), ParseColor("#444"))
	assert.Equal(t, tcell.NewRGBColor(0x44, 0x44, 0x44), ParseColor("#444444"))
	assert.Equal(t, tcell.NewRGBColor(0xff, 0x88, 0x00), ParseColor("#F80"))
	assert.Equal(t, tcell.ColorRed, ParseColor("red"))
	assert.Equal(t, tcell.ColorDefault, ParseColor("#zzz"))
	assert.Equal(t, tcell.ColorDefault, ParseColor("not-a-color"))
}

func TestBeginFrameClearsToBackground(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	screen.SetContent(3, 3, 'x', nil, tcell.StyleDefault)

	r := NewTerminalRenderer(screen, 2)
	r.BeginFrame(core.Camera{})

	assert.Equal(t, ' ', runeAt(screen, 3, 3))
	assert.Equal(t, ParseColor("#444"), bgAt(screen, 0, 0))
	assert.Equal(t, ParseColor("#444"), bgAt(screen, 19, 9))
}

func TestToScreenFollowsCamera(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewTerminalRenderer(screen, 2)

	r.BeginFrame(core.Camera{})
	x, y := r.ToScreen(0, 0)
	assert.Equal(t, [2]int{10, 5}, [2]int{x, y})
	x, y = r.ToScreen(1, 1)
	assert.Equal(t, [2]int{12, 6}, [2]int{x, y})

	r.BeginFrame(core.Camera{X: 3, Y: 2})
	x, y = r.ToScreen(3, 2)
	assert.Equal(t, [2]int{10, 5}, [2]int{x, y})
}

func TestDrawRect(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewTerminalRenderer(screen, 2)
	r.BeginFrame(core.Camera{})
	r.DrawRect(0, 0, 1, 1, "#f00")

	red := ParseColor("#f00")
	assert.Equal(t, red, bgAt(screen, 10, 5))
	assert.Equal(t, red, bgAt(screen, 11, 5))
	assert.NotEqual(t, red, bgAt(screen, 12, 5))
	assert.NotEqual(t, red, bgAt(screen, 10, 6))

	// off-screen rectangles are clipped
	assert.NotPanics(t, func() { r.DrawRect(-100, -100, 500, 500, "#0f0") })
}

func TestDrawVisualSprite(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewTerminalRenderer(screen, 2)
	s := NewSprite("hero", [][]string{{"o>", "/ "}, {"O>", "/|"}}, 0, -1, "#fff")
	e := &core.Entity{X: 0, Y: 0}

	r.BeginFrame(core.Camera{})
	r.DrawVisual(s, e, 0, 1, 1)
	assert.Equal(t, "o>", row(screen, 4, 10, 12))
	// spaces are transparent
	assert.Equal(t, "/ ", row(screen, 5, 10, 12))

	r.BeginFrame(core.Camera{})
	r.DrawVisual(s, e, 1, 1, 1)
	assert.Equal(t, "O>", row(screen, 4, 10, 12))
	assert.Equal(t, "/|", row(screen, 5, 10, 12))

	_, _, style, _ := screen.GetContent(10, 4)
	fg, _, _ := style.Decompose()
	assert.Equal(t, ParseColor("#fff"), fg)
}

func TestDrawVisualMirrored(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewTerminalRenderer(screen, 2)
	s := NewSprite("hero", [][]string{{"o>"}}, 0, 0, "#fff")

	r.BeginFrame(core.Camera{})
	r.DrawVisual(s, &core.Entity{}, 0, -1, 1)
	// mirrored in place, glyphs swapped
	assert.Equal(t, "<o", row(screen, 5, 10, 12))

	tall := NewSprite("flag", [][]string{{"|>", "| "}}, 0, 0, "#fff")
	r.BeginFrame(core.Camera{})
	r.DrawVisual(tall, &core.Entity{}, 0, 1, -1)
	assert.Equal(t, "| ", row(screen, 5, 10, 12))
	assert.Equal(t, "|>", row(screen, 6, 10, 12))
}

func TestDrawVisualPlaceholder(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewTerminalRenderer(screen, 2)
	r.BeginFrame(core.Camera{})
	r.DrawVisual(namedVisual("box"), &core.Entity{}, 0, 1, 1)
	assert.Equal(t, 'b', runeAt(screen, 10, 5))
}

func TestHUDDrawnOnEndFrame(t *testing.T) {
	screen := newTestScreen(t, 12, 4)
	reg := status.NewRegistry()
	reg.Int("score").Store(42)

	r := NewTerminalRenderer(screen, 2)
	r.SetHUD(NewHUD(reg))
	r.BeginFrame(core.Camera{})
	r.EndFrame()

	assert.Equal(t, "score=42    ", row(screen, 0, 0, 12))

	reg.Int("coins.collected").Store(3)
	r.BeginFrame(core.Camera{})
	r.EndFrame()
	// truncated at the screen edge
	assert.Equal(t, "coins.collec", row(screen, 0, 0, 12))
}

func TestSplitSheet(t *testing.T) {
	s, err := SplitSheet("coin", []string{"o0O", "---"}, 3, 0, 0, "#ff0")
	require.NoError(t, err)
	assert.Equal(t, 3, s.FrameCount())
	assert.Equal(t, [][]rune{{'0'}, {'-'}}, s.Frame(1))
	assert.Equal(t, s.Frame(0), s.Frame(3))

	_, err = SplitSheet("bad", []string{"ab"}, 3, 0, 0, "")
	assert.Error(t, err)
	_, err = SplitSheet("bad", []string{"ab"}, 0, 0, 0, "")
	assert.Error(t, err)
}

func TestLoadSprite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enemy.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n(oo)(OO)\n/  \\\\  /\n"), 0o644))

	s, err := LoadSprite(path, -2, -1, 2, "#f00")
	require.NoError(t, err)
	assert.Equal(t, path, s.Name())
	assert.Equal(t, 2, s.FrameCount())
	assert.Equal(t, "(OO)", string(s.Frame(1)[0]))
	assert.Equal(t, "\\  /", string(s.Frame(1)[1]))

	_, err = LoadSprite(filepath.Join(t.TempDir(), "missing.txt"), 0, 0, 1, "")
	assert.Error(t, err)
}
