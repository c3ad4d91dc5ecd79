package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/ecs"
)

func TestWorldComponents(t *testing.T) {
	w := ecs.NewWorld()
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, ecs.ChangeTick(1), w.ChangeTick())

	pos := &Position{X: 1}
	e := w.Spawn(pos, Velocity{Y: 2})
	assert.Equal(t, 1, w.Len())
	assert.Same(t, pos, ecs.Get[Position](w, e))
	assert.True(t, ecs.Has[Velocity](w, e))
	assert.False(t, ecs.Has[Boost](w, e))

	ecs.Insert(w, e, Boost{Factor: 2})
	w.InsertOne(e, Velocity{Y: 3})
	assert.Equal(t, 2.0, ecs.Get[Boost](w, e).Factor)
	assert.Equal(t, 3.0, ecs.Get[Velocity](w, e).Y)

	assert.True(t, ecs.Remove[Boost](w, e))
	assert.False(t, ecs.Remove[Boost](w, e))
	assert.Nil(t, ecs.Get[Boost](w, e))

	require.True(t, w.Despawn(e))
	assert.False(t, w.Despawn(e))
	assert.False(t, w.Contains(e))
	assert.Nil(t, ecs.Get[Position](w, e))
	assert.Equal(t, 0, w.Len())

	e2 := w.Spawn()
	assert.Equal(t, e.ID, e2.ID)
	assert.NotEqual(t, e.Version, e2.Version)
}

func TestWorldResources(t *testing.T) {
	w := ecs.NewWorld()
	assert.False(t, ecs.HasResource[Counter](w))
	assert.Nil(t, ecs.GetResource[Counter](w))

	ecs.InsertResource(w, Counter{N: 1})
	ecs.InsertResource(w, Counter{N: 2})
	assert.Equal(t, 2, ecs.GetResource[Counter](w).N)
	assert.True(t, ecs.Has[Counter](w, w.ResourceEntity()))

	w.InsertResourceValue(&R1{Value: 3})
	assert.Equal(t, uint8(3), ecs.MustResource[R1](w).Value)

	assert.True(t, ecs.RemoveResource[Counter](w))
	assert.False(t, ecs.HasResource[Counter](w))
}

func TestWorldIdentity(t *testing.T) {
	a, b := ecs.NewWorld(), ecs.NewWorld()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotNil(t, a.Logger())
	assert.Equal(t, ecs.ChangeTick(2), a.IncrementChangeTick())
	assert.Equal(t, ecs.ChangeTick(1), b.ChangeTick())
}

func TestInsertPointerComponent(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Spawn()

	pos := &Position{X: 7}
	ecs.Insert(w, e, pos)
	assert.Same(t, pos, ecs.Get[Position](w, e))
	assert.False(t, ecs.Has[*Position](w, e))

	ecs.InsertResource(w, &Counter{N: 3})
	assert.Equal(t, 3, ecs.GetResource[Counter](w).N)

	assert.Panics(t, func() { ecs.Insert(w, e, (*Velocity)(nil)) })
}
