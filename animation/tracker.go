package animation

import (
	"math"

	"github.com/lixenwraith/tilerun/core"
)

// Tracker holds the fractional animation frame of every (visual, entity) pair drawn so far
// Each visual owns its own entity map, so sheets that share a name never share frame state
// Entities are keyed by Ref, so a reused slot starts its own animation from frame 0
type Tracker struct {
	frames map[core.Visual]map[core.Ref]float64
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		frames: make(map[core.Visual]map[core.Ref]float64),
	}
}

// Advance returns the frame of v to draw for e and steps the stored position by speed,
// wrapping to 0 once it reaches the frame count of v
// Every call advances, call at most once per tick per pair
func (t *Tracker) Advance(v core.Visual, e *core.Entity, speed float64) int {
	perEntity, ok := t.frames[v]
	if !ok {
		perEntity = make(map[core.Ref]float64)
		t.frames[v] = perEntity
	}

	saved := perEntity[e.Ref]
	current := int(math.Floor(saved))

	saved += speed
	if saved >= float64(v.FrameCount()) {
		saved = 0
	}
	perEntity[e.Ref] = saved

	return current
}

// Reset forgets every pair
func (t *Tracker) Reset() {
	clear(t.frames)
}
