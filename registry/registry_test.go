package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tilerun/core"
)

type testCtx struct {
	calls []core.TypeTag
}

type counter struct {
	N int
}

func (c *counter) Clone() core.Attributes {
	cp := *c
	return &cp
}

func TestRegisterReturnsTag(t *testing.T) {
	r := New[*testCtx]()
	const wall core.TypeTag = '#'

	got := r.Register(wall, nil, nil)
	assert.Equal(t, wall, got)
	assert.True(t, r.Has(wall))
}

func TestLookupUnknownTag(t *testing.T) {
	r := New[*testCtx]()

	typ, err := r.Lookup('?')
	require.Error(t, err)
	assert.Nil(t, typ)

	var unknown *core.UnknownTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, core.TypeTag('?'), unknown.Tag)
}

func TestRegisterOverwritesWithoutMerge(t *testing.T) {
	r := New[*testCtx]()
	r.Register('E', nil, &counter{N: 3})
	r.Register('E', BehaviorFunc[*testCtx](func(e *core.Entity, c *testCtx) error {
		c.calls = append(c.calls, e.Type)
		return nil
	}), nil)

	typ, err := r.Lookup('E')
	require.NoError(t, err)
	assert.Nil(t, typ.Defaults)
	assert.Nil(t, typ.NewAttributes())

	ctx := &testCtx{}
	require.NoError(t, typ.Behavior.Update(&core.Entity{Type: 'E'}, ctx))
	assert.Equal(t, []core.TypeTag{'E'}, ctx.calls)
}

func TestNewAttributesIsShallowCopy(t *testing.T) {
	r := New[*testCtx]()
	r.Register('c', nil, &counter{N: 1})
	typ, err := r.Lookup('c')
	require.NoError(t, err)

	a := typ.NewAttributes().(*counter)
	b := typ.NewAttributes().(*counter)
	a.N = 42

	assert.Equal(t, 1, b.N)
	assert.Equal(t, 1, typ.Defaults.(*counter).N)
}
