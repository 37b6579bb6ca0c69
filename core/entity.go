package core

import "fmt"

// TypeTag identifies an entity type; map files use the same rune to place entities
type TypeTag rune

func (t TypeTag) String() string {
	return fmt.Sprintf("%q", rune(t))
}

// TypeSet is a set of type tags used to filter collision candidates
type TypeSet map[TypeTag]struct{}

// Types builds a TypeSet from tags
func Types(tags ...TypeTag) TypeSet {
	s := make(TypeSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tag is in the set, nil set has nothing
func (s TypeSet) Has(tag TypeTag) bool {
	_, ok := s[tag]
	return ok
}

// BBox is an axis-aligned box relative to the entity position
type BBox struct {
	Left, Top     float64
	Width, Height float64
}

// Rect is a world-space axis-aligned rectangle
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Ref is a stable entity handle: slot index plus the generation the slot had when the entity was added
type Ref struct {
	Index int
	Gen   uint32
}

func (r Ref) String() string {
	return fmt.Sprintf("#%d.%d", r.Index, r.Gen)
}

// Attributes is the per-type extension state carried by an entity
// Clone must return a shallow copy so defaults are never shared between entities
type Attributes interface {
	Clone() Attributes
}

// Entity is a simulated object owned by the entity store
type Entity struct {
	X, Y           float64
	BBox           BBox
	SpeedX, SpeedY float64

	Type TypeTag
	Ref  Ref

	// IsInitialized is left for the owning behavior to flip after its one-time setup
	IsInitialized bool

	Attrs Attributes
}

// ID returns the slot index of the entity
func (e *Entity) ID() int {
	return e.Ref.Index
}

// Bounds returns the world-space box translated by (offsetX, offsetY)
func (e *Entity) Bounds(offsetX, offsetY float64) Rect {
	left := e.X + offsetX + e.BBox.Left
	top := e.Y + offsetY + e.BBox.Top
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + e.BBox.Width,
		Bottom: top + e.BBox.Height,
	}
}

// AttrsOf returns the entity attributes as *T, nil if the entity carries another kind
func AttrsOf[T any](e *Entity) *T {
	if e == nil || e.Attrs == nil {
		return nil
	}
	v, _ := any(e.Attrs).(*T)
	return v
}

// Camera is the world point shown at the center of the view, in meters
type Camera struct {
	X, Y float64
}
