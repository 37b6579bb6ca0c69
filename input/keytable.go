package input

import "github.com/gdamore/tcell/v2"

// KeyBehavior classifies how a terminal key is processed
type KeyBehavior uint8

const (
	BehaviorNone KeyBehavior = iota
	BehaviorGame             // Feeds a tracked KeyCode
	BehaviorQuit             // Ends the session
)

// KeyEntry describes what a terminal key does
type KeyEntry struct {
	Behavior KeyBehavior
	Code     KeyCode
}

// KeyTable maps terminal keys to game keys
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, escape)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns arrows + space with hjkl and wasd aliases
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {BehaviorQuit, 0},
			tcell.KeyEscape: {BehaviorQuit, 0},
			tcell.KeyLeft:   {BehaviorGame, KeyLeft},
			tcell.KeyRight:  {BehaviorGame, KeyRight},
			tcell.KeyUp:     {BehaviorGame, KeyUp},
			tcell.KeyDown:   {BehaviorGame, KeyDown},
		},
		Runes: map[rune]KeyEntry{
			' ': {BehaviorGame, KeySpace},
			'q': {BehaviorQuit, 0},

			'h': {BehaviorGame, KeyLeft},
			'j': {BehaviorGame, KeyDown},
			'k': {BehaviorGame, KeyUp},
			'l': {BehaviorGame, KeyRight},

			'a': {BehaviorGame, KeyLeft},
			's': {BehaviorGame, KeyDown},
			'w': {BehaviorGame, KeyUp},
			'd': {BehaviorGame, KeyRight},
		},
	}
}

// Lookup resolves a key event, BehaviorNone when unbound
func (t *KeyTable) Lookup(ev *tcell.EventKey) KeyEntry {
	if ev.Key() == tcell.KeyRune {
		return t.Runes[ev.Rune()]
	}
	return t.SpecialKeys[ev.Key()]
}
