package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivarium-sim/vivarium/sim"
)

func emptyWorld(t *testing.T, name string) *sim.World {
	t.Helper()
	w, err := sim.NewWorld(sim.WorldConfig{Name: name})
	require.NoError(t, err)
	return w
}

func TestRegistry_AddAndGet(t *testing.T) {
	r := New()
	w := emptyWorld(t, "alpha")

	require.NoError(t, r.Add("alpha", w))

	got, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Same(t, w, got)
}

func TestRegistry_AddDuplicateNameFails(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("alpha", emptyWorld(t, "alpha")))

	err := r.Add("alpha", emptyWorld(t, "alpha"))
	assert.ErrorIs(t, err, sim.ErrWorldAlreadyExists)
}

func TestRegistry_GetUnknownReturnsFalse(t *testing.T) {
	r := New()
	_, ok := r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_List(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("a", emptyWorld(t, "a")))
	require.NoError(t, r.Add("b", emptyWorld(t, "b")))

	assert.ElementsMatch(t, []string{"a", "b"}, r.List())
}

func TestRegistry_Delete(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("a", emptyWorld(t, "a")))

	assert.True(t, r.Delete("a"))
	assert.False(t, r.Delete("a"))
	_, ok := r.Get("a")
	assert.False(t, ok)
}

func TestRegistry_WithWorld_MutatesThroughCallback(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("a", emptyWorld(t, "a")))

	var clockSeen sim.Tick
	ok := r.WithWorld("a", func(w *sim.World) {
		w.Update(1)
		clockSeen = w.Clock()
	})
	require.True(t, ok)
	assert.Equal(t, sim.Tick(1), clockSeen)
}

func TestRegistry_WithWorld_UnknownNameReturnsFalse(t *testing.T) {
	r := New()
	assert.False(t, r.WithWorld("ghost", func(w *sim.World) {}))
	assert.False(t, r.WithWorldRead("ghost", func(w *sim.World) {}))
}
