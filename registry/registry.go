package registry

import (
	"sync"

	"github.com/lixenwraith/tilerun/core"
)

// Behavior is the per-type update logic, invoked once per tick for each live entity of the type
// C is the simulation context handed to behaviors, kept generic to avoid an import cycle with engine
type Behavior[C any] interface {
	Update(e *core.Entity, ctx C) error
}

// BehaviorFunc adapts a plain function to Behavior
type BehaviorFunc[C any] func(e *core.Entity, ctx C) error

// Update calls f(e, ctx)
func (f BehaviorFunc[C]) Update(e *core.Entity, ctx C) error {
	return f(e, ctx)
}

// EntityType binds an update behavior and a default attribute template to a tag
type EntityType[C any] struct {
	Tag      core.TypeTag
	Behavior Behavior[C]
	Defaults core.Attributes
}

// NewAttributes returns a fresh shallow copy of the default template, nil when the type has none
func (t *EntityType[C]) NewAttributes() core.Attributes {
	if t.Defaults == nil {
		return nil
	}
	return t.Defaults.Clone()
}

// Registry maps type tags to entity types
// Populated at startup, entries are replaced but never removed
type Registry[C any] struct {
	mu    sync.RWMutex
	types map[core.TypeTag]*EntityType[C]
}

// New creates an empty registry
func New[C any]() *Registry[C] {
	return &Registry[C]{
		types: make(map[core.TypeTag]*EntityType[C]),
	}
}

// Register stores behavior and defaults under tag, replacing any previous entry wholesale
// Returns tag unchanged so callers can bind it to a constant in one line
func (r *Registry[C]) Register(tag core.TypeTag, behavior Behavior[C], defaults core.Attributes) core.TypeTag {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[tag] = &EntityType[C]{
		Tag:      tag,
		Behavior: behavior,
		Defaults: defaults,
	}
	return tag
}

// Lookup returns the type registered under tag or *core.UnknownTypeError
func (r *Registry[C]) Lookup(tag core.TypeTag) (*EntityType[C], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[tag]
	if !ok {
		return nil, &core.UnknownTypeError{Tag: tag}
	}
	return t, nil
}

// Has reports whether tag is registered
func (r *Registry[C]) Has(tag core.TypeTag) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[tag]
	return ok
}
