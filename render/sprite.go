package render

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/lixenwraith/tilerun/level"
)

// Sprite is an ASCII sprite sheet split into equal-width frames
// A space cell is transparent
type Sprite struct {
	name    string
	frames  [][][]rune // frame, row, column
	offsetX int        // cells from the entity position to the sheet's top-left
	offsetY int
	color   string
}

// NewSprite builds a sprite from one row slice per frame
func NewSprite(name string, frames [][]string, offsetX, offsetY int, color string) *Sprite {
	s := &Sprite{name: name, offsetX: offsetX, offsetY: offsetY, color: color}
	for _, rows := range frames {
		f := make([][]rune, len(rows))
		for i, row := range rows {
			f[i] = []rune(row)
		}
		s.frames = append(s.frames, f)
	}
	return s
}

// SplitSheet cuts a sheet into frameCount frames of width sheetWidth/frameCount
func SplitSheet(name string, rows []string, frameCount, offsetX, offsetY int, color string) (*Sprite, error) {
	if frameCount < 1 {
		return nil, fmt.Errorf("sprite %q: frame count %d", name, frameCount)
	}
	width := 0
	for _, row := range rows {
		width = max(width, utf8.RuneCountInString(row))
	}
	frameWidth := width / frameCount
	if frameWidth == 0 {
		return nil, fmt.Errorf("sprite %q: sheet width %d too small for %d frames", name, width, frameCount)
	}

	frames := make([][]string, frameCount)
	for _, row := range rows {
		runes := []rune(row)
		for f := 0; f < frameCount; f++ {
			lo := min(f*frameWidth, len(runes))
			hi := min(lo+frameWidth, len(runes))
			frames[f] = append(frames[f], string(runes[lo:hi]))
		}
	}
	return NewSprite(name, frames, offsetX, offsetY, color), nil
}

// LoadSprite reads a text sprite sheet from path; the file name is the asset name
func LoadSprite(path string, offsetX, offsetY, frameCount int, color string) (*Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sprite: %w", err)
	}
	return SplitSheet(path, level.Parse(string(data)), frameCount, offsetX, offsetY, color)
}

func (s *Sprite) Name() string    { return s.name }
func (s *Sprite) FrameCount() int { return len(s.frames) }

// Color returns the foreground color string
func (s *Sprite) Color() string { return s.color }

// Frame returns the rows of frame i, wrapping out-of-range indices
func (s *Sprite) Frame(i int) [][]rune {
	n := len(s.frames)
	if n == 0 {
		return nil
	}
	i %= n
	if i < 0 {
		i += n
	}
	return s.frames[i]
}

var mirrorRunes = map[rune]rune{
	'/': '\\', '\\': '/',
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'd': 'b', 'b': 'd',
	'p': 'q', 'q': 'p',
}

// mirror swaps glyphs with a left/right counterpart
func mirror(r rune) rune {
	if m, ok := mirrorRunes[r]; ok {
		return m
	}
	return r
}
