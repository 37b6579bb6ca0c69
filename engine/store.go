package engine

import (
	"iter"

	"github.com/lixenwraith/tilerun/core"
)

// slot is one arena cell; live=false is the tombstone, never confused with a stored entity
type slot struct {
	entity *core.Entity
	gen    uint32
	live   bool
}

// Store is an entity arena with stable slot indices and LIFO reuse of freed slots
// Removal tombstones in place so indices of other entities never shift
// Not safe for concurrent use: owned by the goroutine running the scheduler
type Store struct {
	slots []slot
	free  []int
	live  int
}

// NewStore creates an empty arena
func NewStore() *Store {
	return &Store{
		slots: make([]slot, 0, 64),
	}
}

// Add allocates a slot for a zeroed entity of the given type carrying attrs
// The most recently freed slot is reused first, otherwise the arena grows by one
func (s *Store) Add(tag core.TypeTag, attrs core.Attributes) *core.Entity {
	idx := len(s.slots)
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
	}

	sl := &s.slots[idx]
	e := &core.Entity{
		Type:  tag,
		Ref:   core.Ref{Index: idx, Gen: sl.gen},
		Attrs: attrs,
	}
	sl.entity = e
	sl.live = true
	s.live++
	return e
}

// Remove tombstones the slot at id and queues it for reuse
// Returns *core.InvalidEntityError for out-of-range or already removed ids
func (s *Store) Remove(id int) error {
	if id < 0 || id >= len(s.slots) {
		return &core.InvalidEntityError{ID: id, Reason: "out of range"}
	}
	sl := &s.slots[id]
	if !sl.live {
		return &core.InvalidEntityError{ID: id, Reason: "already removed"}
	}
	sl.entity = nil
	sl.live = false
	sl.gen++
	s.free = append(s.free, id)
	s.live--
	return nil
}

// RemoveEntity removes e after checking that its handle still owns the slot
// A second removal through the same handle fails with *core.StaleReferenceError, which also matches *core.InvalidEntityError
func (s *Store) RemoveEntity(e *core.Entity) error {
	if e == nil {
		return &core.InvalidEntityError{ID: -1, Reason: "nil entity"}
	}
	if _, err := s.Resolve(e.Ref); err != nil {
		return err
	}
	return s.Remove(e.Ref.Index)
}

// Get returns the live entity at id
func (s *Store) Get(id int) (*core.Entity, error) {
	if id < 0 || id >= len(s.slots) {
		return nil, &core.InvalidEntityError{ID: id, Reason: "out of range"}
	}
	sl := s.slots[id]
	if !sl.live {
		return nil, &core.InvalidEntityError{ID: id, Reason: "removed"}
	}
	return sl.entity, nil
}

// Resolve returns the entity for ref, *core.StaleReferenceError if the slot was freed or reused since
func (s *Store) Resolve(ref core.Ref) (*core.Entity, error) {
	if ref.Index < 0 || ref.Index >= len(s.slots) {
		return nil, &core.InvalidEntityError{ID: ref.Index, Reason: "out of range"}
	}
	sl := s.slots[ref.Index]
	if !sl.live || sl.gen != ref.Gen {
		return nil, &core.StaleReferenceError{Ref: ref}
	}
	return sl.entity, nil
}

// At returns the entity in slot i, false for tombstones and out-of-range indices
func (s *Store) At(i int) (*core.Entity, bool) {
	if i < 0 || i >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[i]
	return sl.entity, sl.live
}

// Len returns the number of slots, tombstones included
func (s *Store) Len() int {
	return len(s.slots)
}

// Count returns the number of live entities
func (s *Store) Count() int {
	return s.live
}

// All yields live entities in slot order
// The sequence is a live view: slot length is re-read each step and tombstones are skipped at visit time,
// so consumers may add or remove entities mid-pass; collect it first for a stable set
func (s *Store) All() iter.Seq[*core.Entity] {
	return func(yield func(*core.Entity) bool) {
		for i := 0; i < len(s.slots); i++ {
			sl := s.slots[i]
			if !sl.live {
				continue
			}
			if !yield(sl.entity) {
				return
			}
		}
	}
}

// Clear drops every entity; generations survive so old handles stay stale
func (s *Store) Clear() {
	s.free = s.free[:0]
	for i := len(s.slots) - 1; i >= 0; i-- {
		if s.slots[i].live {
			s.slots[i].gen++
		}
		s.slots[i].entity = nil
		s.slots[i].live = false
		s.free = append(s.free, i)
	}
	s.live = 0
}
