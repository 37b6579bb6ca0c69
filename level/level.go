package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tilerun/core"
)

// Placer is the part of the world the loader needs
type Placer interface {
	HasType(tag core.TypeTag) bool
	AddEntity(tag core.TypeTag) (*core.Entity, error)
}

// Level is an ASCII map; every rune that names a registered type becomes one entity
type Level struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// Place adds one entity per registered cell at (column*tileSize, row*tileSize)
// Cells with unregistered runes, spaces included, are skipped
func Place(p Placer, rows []string, tileSize float64) (int, error) {
	placed := 0
	for y, row := range rows {
		for x, r := range []rune(row) {
			tag := core.TypeTag(r)
			if !p.HasType(tag) {
				continue
			}
			e, err := p.AddEntity(tag)
			if err != nil {
				return placed, fmt.Errorf("place %s at %d,%d: %w", tag, x, y, err)
			}
			e.X = float64(x) * tileSize
			e.Y = float64(y) * tileSize
			placed++
		}
	}
	return placed, nil
}

// Parse splits a multi-line map literal, dropping one leading and trailing blank line
func Parse(text string) []string {
	rows := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(rows) > 0 && strings.TrimSpace(rows[0]) == "" {
		rows = rows[1:]
	}
	if n := len(rows); n > 0 && strings.TrimSpace(rows[n-1]) == "" {
		rows = rows[:n-1]
	}
	return rows
}

// Decode reads a YAML level
func Decode(r io.Reader) (*Level, error) {
	var l Level
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty level")
		}
		return nil, fmt.Errorf("decode level: %w", err)
	}
	if len(l.Rows) == 0 {
		return nil, errors.New("level has no rows")
	}
	return &l, nil
}

// LoadFile reads a YAML level from path
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	l, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return l, nil
}

// Size returns the map extent in tiles
func (l *Level) Size() (width, height int) {
	for _, row := range l.Rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}
	return width, len(l.Rows)
}
