package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/tilerun/animation"
	"github.com/lixenwraith/tilerun/config"
	"github.com/lixenwraith/tilerun/core"
	"github.com/lixenwraith/tilerun/input"
	"github.com/lixenwraith/tilerun/level"
	"github.com/lixenwraith/tilerun/physics"
	"github.com/lixenwraith/tilerun/registry"
	"github.com/lixenwraith/tilerun/status"
)

// Behavior is the update logic bound to an entity type
type Behavior = registry.Behavior[*World]

// BehaviorFunc adapts a function to Behavior
type BehaviorFunc = registry.BehaviorFunc[*World]

// World is the simulation context handed to every behavior
// All fields are owned by the scheduler goroutine; behaviors mutate them freely during their update
type World struct {
	Settings *config.Settings
	Types    *registry.Registry[*World]
	Store    *Store
	Keys     *input.KeyState
	Time     *TimeInfo
	Camera   core.Camera
	Frames   *animation.Tracker
	Status   *status.Registry

	// External collaborators, no-op until the caller wires real ones
	Renderer core.Renderer
	Audio    core.Audio

	Log *zap.Logger

	// work queued by behaviors for after the current update pass
	deferred []func(*World) error
}

// NewWorld creates an empty world with the default key set
// A nil settings uses config.Default, a nil log discards
func NewWorld(settings *config.Settings, log *zap.Logger) *World {
	if settings == nil {
		settings = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		Settings: settings,
		Types:    registry.New[*World](),
		Store:    NewStore(),
		Keys:     input.DefaultKeyState(),
		Time:     NewTimeInfo(time.Now()),
		Frames:   animation.NewTracker(),
		Status:   status.NewRegistry(),
		Renderer: core.NopRenderer{},
		Audio:    core.NopAudio{},
		Log:      log,
	}
}

// AddEntityType registers behavior and defaults under tag and returns tag
func (w *World) AddEntityType(tag core.TypeTag, behavior Behavior, defaults core.Attributes) core.TypeTag {
	return w.Types.Register(tag, behavior, defaults)
}

// HasType reports whether tag is registered
func (w *World) HasType(tag core.TypeTag) bool {
	return w.Types.Has(tag)
}

// AddEntity creates an entity of type tag with a copy of the type's default attributes
// Fails with *core.UnknownTypeError before touching the store if tag is unregistered
func (w *World) AddEntity(tag core.TypeTag) (*core.Entity, error) {
	typ, err := w.Types.Lookup(tag)
	if err != nil {
		return nil, err
	}
	return w.Store.Add(tag, typ.NewAttributes()), nil
}

// RemoveEntity removes e; a handle whose slot was freed or reused fails with *core.StaleReferenceError
func (w *World) RemoveEntity(e *core.Entity) error {
	return w.Store.RemoveEntity(e)
}

// Reset drops every entity and its animation state; registered types and metrics survive
// Handles taken before the reset resolve as stale
func (w *World) Reset() {
	w.Store.Clear()
	w.Frames.Reset()
	w.Camera = core.Camera{}
}

// Defer queues fn to run once the current update pass is over
// Use it for changes that must not happen mid-pass, such as Reset
func (w *World) Defer(fn func(*World) error) {
	w.deferred = append(w.deferred, fn)
}

// runDeferred runs queued work in order; work queued by a deferred fn waits for the next pass
func (w *World) runDeferred() error {
	pending := w.deferred
	w.deferred = nil
	for _, fn := range pending {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

// CreateMap places one entity per registered rune of rows, spaced by the tile size
func (w *World) CreateMap(rows []string) (int, error) {
	n, err := level.Place(w, rows, w.Settings.TileSize)
	if err != nil {
		return n, err
	}
	w.Log.Debug("map created", zap.Int("entities", n), zap.Int("rows", len(rows)))
	return n, nil
}

// CheckCollision returns the first live entity of a candidate type overlapping e shifted by (offsetX, offsetY)
func (w *World) CheckCollision(e *core.Entity, candidates core.TypeSet, offsetX, offsetY float64) *core.Entity {
	return physics.TestOverlap(w.Store.All(), e, candidates, offsetX, offsetY)
}

// MoveAndCheckForObstacles moves e by its velocity over this tick's delta, stopping at obstacles
func (w *World) MoveAndCheckForObstacles(e *core.Entity, obstacles core.TypeSet) physics.Hits {
	return physics.MoveAndResolve(w.Store.All(), e, obstacles, w.Time.DeltaTime)
}

// DrawSprite draws the current animation frame of v for e and advances the frame by speed
// Call at most once per tick for a given (v, e) pair
func (w *World) DrawSprite(v core.Visual, e *core.Entity, speed, scaleX, scaleY float64) {
	frame := w.Frames.Advance(v, e, speed)
	w.Renderer.DrawVisual(v, e, frame, scaleX, scaleY)
}

// DrawRect fills a world-space rectangle
func (w *World) DrawRect(x, y, width, height float64, color string) {
	w.Renderer.DrawRect(x, y, width, height, color)
}

// LoadSound loads a named sound through the audio collaborator
func (w *World) LoadSound(name string) (core.Sound, error) {
	return w.Audio.LoadSound(name)
}

// PlaySound restarts s at volume; a nil sound is ignored
func (w *World) PlaySound(s core.Sound, loop bool, volume float64) {
	if s == nil {
		return
	}
	w.Audio.PlaySound(s, loop, volume)
}
