package input

// KeyCode identifies a tracked key, values follow browser key codes
type KeyCode int

const (
	KeySpace KeyCode = 32
	KeyLeft  KeyCode = 37
	KeyUp    KeyCode = 38
	KeyRight KeyCode = 39
	KeyDown  KeyCode = 40
)

// DefaultKeys are tracked from startup
var DefaultKeys = []KeyCode{KeySpace, KeyLeft, KeyUp, KeyRight, KeyDown}

// Key is the state of one key
// WentDown and WentUp are edge flags, true only for the tick in which the transition happened
type Key struct {
	IsDown   bool
	WentDown bool
	WentUp   bool
}

// Event is a raw press or release from the input collaborator
type Event struct {
	Code KeyCode
	Down bool
}

// KeyState tracks registered keys; events for other codes are ignored
type KeyState struct {
	keys map[KeyCode]*Key
}

// NewKeyState tracks the given codes
func NewKeyState(codes ...KeyCode) *KeyState {
	s := &KeyState{keys: make(map[KeyCode]*Key, len(codes))}
	for _, c := range codes {
		s.Register(c)
	}
	return s
}

// DefaultKeyState tracks DefaultKeys
func DefaultKeyState() *KeyState {
	return NewKeyState(DefaultKeys...)
}

// Register starts tracking code, no-op if already tracked
func (s *KeyState) Register(code KeyCode) {
	if _, ok := s.keys[code]; !ok {
		s.keys[code] = &Key{}
	}
}

// Press marks code down, setting WentDown only on an up→down transition
func (s *KeyState) Press(code KeyCode) {
	k, ok := s.keys[code]
	if !ok {
		return
	}
	if !k.IsDown {
		k.WentDown = true
		k.IsDown = true
	}
}

// Release marks code up, setting WentUp only on a down→up transition
func (s *KeyState) Release(code KeyCode) {
	k, ok := s.keys[code]
	if !ok {
		return
	}
	if k.IsDown {
		k.WentUp = true
		k.IsDown = false
	}
}

// Apply routes an event to Press or Release
func (s *KeyState) Apply(ev Event) {
	if ev.Down {
		s.Press(ev.Code)
	} else {
		s.Release(ev.Code)
	}
}

// Get returns a copy of the key state, zero for untracked codes
func (s *KeyState) Get(code KeyCode) Key {
	if k, ok := s.keys[code]; ok {
		return *k
	}
	return Key{}
}

func (s *KeyState) IsDown(code KeyCode) bool   { return s.Get(code).IsDown }
func (s *KeyState) WentDown(code KeyCode) bool { return s.Get(code).WentDown }
func (s *KeyState) WentUp(code KeyCode) bool   { return s.Get(code).WentUp }

// ClearEdges resets WentDown and WentUp on every key, called once per tick after all updates
func (s *KeyState) ClearEdges() {
	for _, k := range s.keys {
		k.WentDown = false
		k.WentUp = false
	}
}

// Drain applies every queued event without blocking and returns how many were applied
func (s *KeyState) Drain(events <-chan Event) int {
	n := 0
	for {
		select {
		case ev := <-events:
			s.Apply(ev)
			n++
		default:
			return n
		}
	}
}
