package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marker struct{ n int }

func (m *marker) Clone() Attributes {
	c := *m
	return &c
}

type other struct{}

func (o *other) Clone() Attributes { return &other{} }

func TestEntityBounds(t *testing.T) {
	e := &Entity{X: 2, Y: 3, BBox: BBox{Left: 0.25, Top: -0.5, Width: 1, Height: 2}}
	assert.Equal(t, Rect{Left: 2.25, Top: 2.5, Right: 3.25, Bottom: 4.5}, e.Bounds(0, 0))
	assert.Equal(t, Rect{Left: 3.25, Top: 2, Right: 4.25, Bottom: 4}, e.Bounds(1, -0.5))
}

func TestTypeSet(t *testing.T) {
	s := Types('#', 'E')
	assert.True(t, s.Has('#'))
	assert.False(t, s.Has('@'))

	var empty TypeSet
	assert.False(t, empty.Has('#'))
}

func TestAttrsOf(t *testing.T) {
	e := &Entity{Attrs: &marker{n: 3}}
	assert.Equal(t, 3, AttrsOf[marker](e).n)
	assert.Nil(t, AttrsOf[other](e))
	assert.Nil(t, AttrsOf[marker](&Entity{}))
	assert.Nil(t, AttrsOf[marker](nil))

	// the returned pointer is the stored attributes, not a copy
	AttrsOf[marker](e).n = 5
	assert.Equal(t, 5, e.Attrs.(*marker).n)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "'@'", TypeTag('@').String())
	assert.Equal(t, "#4.2", Ref{Index: 4, Gen: 2}.String())
	assert.Equal(t, "unknown entity type '?'", (&UnknownTypeError{Tag: '?'}).Error())
	assert.Equal(t, "invalid entity 7: out of range", (&InvalidEntityError{ID: 7, Reason: "out of range"}).Error())
	assert.Equal(t, "stale entity reference #1.0", (&StaleReferenceError{Ref: Ref{Index: 1}}).Error())
}

func TestErrorsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("update: %w", &StaleReferenceError{Ref: Ref{Index: 1, Gen: 3}})
	var stale *StaleReferenceError
	assert.True(t, errors.As(err, &stale))
	assert.Equal(t, uint32(3), stale.Ref.Gen)
	assert.ErrorIs(t, fmt.Errorf("pump: %w", ErrQuit), ErrQuit)

	var invalid *InvalidEntityError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 1, invalid.ID)
	assert.Equal(t, "stale reference", invalid.Reason)
}

func TestNopCollaborators(t *testing.T) {
	s, err := NopAudio{}.LoadSound("jump")
	assert.NoError(t, err)
	assert.Equal(t, "jump", s.Name())
	assert.NotPanics(t, func() {
		NopAudio{}.PlaySound(s, true, 1)
		var r Renderer = NopRenderer{}
		r.BeginFrame(Camera{})
		r.DrawRect(0, 0, 1, 1, "#fff")
		r.EndFrame()
	})
}
