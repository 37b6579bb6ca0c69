package physics

import (
	"iter"

	"github.com/lixenwraith/tilerun/constant"
	"github.com/lixenwraith/tilerun/core"
)

// Hits reports the obstacles met by MoveAndResolve, either may be nil
type Hits struct {
	Horizontal *core.Entity
	Vertical   *core.Entity
}

// MoveAndResolve advances e by its velocity over dt, resolving against obstacles one axis at a time
//
// Horizontal: probe at (vx*dt, 0); on hit snap flush to the obstacle's near side and zero SpeedX.
// Vertical: probe at (vx*dt, vy*dt) with the post-horizontal SpeedX; on hit while falling rest on
// the obstacle's top and zero SpeedY, otherwise snap under its bottom and bounce with BonkDamping.
// Position then advances by the remaining velocity, so a blocked axis contributes nothing.
func MoveAndResolve(entities iter.Seq[*core.Entity], e *core.Entity, obstacles core.TypeSet, dt float64) Hits {
	var hits Hits

	if wall := TestOverlap(entities, e, obstacles, e.SpeedX*dt, 0); wall != nil {
		if e.SpeedX > 0 {
			e.X = wall.X + wall.BBox.Left - e.BBox.Left - e.BBox.Width
		} else {
			e.X = wall.X + wall.BBox.Left + wall.BBox.Width - e.BBox.Left
		}
		e.SpeedX = 0
		hits.Horizontal = wall
	}

	// The probe keeps the horizontal displacement; corner behavior depends on it
	if wall := TestOverlap(entities, e, obstacles, e.SpeedX*dt, e.SpeedY*dt); wall != nil {
		if e.SpeedY > 0 {
			e.Y = wall.Y + wall.BBox.Top - e.BBox.Top - e.BBox.Height
			e.SpeedY = 0
		} else {
			e.Y = wall.Y + wall.BBox.Top + wall.BBox.Height - e.BBox.Top
			e.SpeedY *= constant.BonkDamping
		}
		hits.Vertical = wall
	}

	e.X += e.SpeedX * dt
	e.Y += e.SpeedY * dt

	return hits
}
