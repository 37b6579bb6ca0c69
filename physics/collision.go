package physics

import (
	"iter"

	"github.com/lixenwraith/tilerun/constant"
	"github.com/lixenwraith/tilerun/core"
)

// Overlaps reports whether two world-space boxes intersect by more than CollisionEpsilon on both axes
// Boxes closer than epsilon to touching count as separate, resting contact is not a collision
func Overlaps(a, b core.Rect) bool {
	const eps = constant.CollisionEpsilon
	if a.Left >= b.Right-eps ||
		a.Right <= b.Left+eps ||
		a.Top >= b.Bottom-eps ||
		a.Bottom <= b.Top+eps {
		return false
	}
	return true
}

// TestOverlap returns the first entity in iteration order whose box overlaps e's box shifted by (offsetX, offsetY)
// Only entities whose type is in candidates are considered, e itself is skipped
// First match wins, not the nearest one
func TestOverlap(entities iter.Seq[*core.Entity], e *core.Entity, candidates core.TypeSet, offsetX, offsetY float64) *core.Entity {
	if len(candidates) == 0 {
		return nil
	}

	probe := e.Bounds(offsetX, offsetY)
	for other := range entities {
		if other == e || !candidates.Has(other.Type) {
			continue
		}
		if Overlaps(probe, other.Bounds(0, 0)) {
			return other
		}
	}
	return nil
}
