package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oriumgames/ecs"
)

func TestResourceReference(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, R1{Value: 7})

	sys := ecs.IntoSystem[ecs.Unit, uint8](getR1)
	assert.Equal(t, uint8(7), sys.Run(ecs.Unit{}, w))
	assert.Equal(t, "ecs_test.getR1", sys.Name())
}

func TestInputWritesResource(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, R1{Value: 7})

	set := ecs.IntoSystem[uint8, ecs.Unit](setR1)
	set.Run(3, w)
	assert.Equal(t, uint8(3), ecs.GetResource[R1](w).Value)

	get := ecs.IntoSystem[ecs.Unit, uint8](getR1)
	assert.Equal(t, uint8(3), get.Run(ecs.Unit{}, w))
}

func TestLazyInitialize(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, R1{Value: 1})

	sys := ecs.IntoSystem[ecs.Unit, uint8](getR1)
	assert.False(t, sys.IsInitialized())

	sys.Run(ecs.Unit{}, w)
	assert.True(t, sys.IsInitialized())
}

func TestRunUncheckedRequiresInitialize(t *testing.T) {
	w := ecs.NewWorld()
	sys := ecs.IntoSystem[ecs.Unit, ecs.Unit](func() {})

	assert.Panics(t, func() { sys.RunUnchecked(ecs.Unit{}, w) })
	assert.Panics(t, func() { sys.ApplyDeferred(w) })

	sys.Initialize(w)
	sys.RunUnchecked(ecs.Unit{}, w)
	sys.ApplyDeferred(w)
}

func TestChangeTick(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, R1{})
	assert.Equal(t, ecs.ChangeTick(1), w.ChangeTick())

	empty := ecs.IntoSystem[ecs.Unit, ecs.Unit](func() {})
	empty.Run(ecs.Unit{}, w)
	assert.Equal(t, ecs.ChangeTick(2), w.ChangeTick())
	assert.Equal(t, ecs.ChangeTick(2), empty.Meta().LastRun)

	many := ecs.IntoSystem[ecs.Unit, ecs.Unit](func(ecs.Res[R1], ecs.Local[int], ecs.Commands) {})
	many.Run(ecs.Unit{}, w)
	many.Run(ecs.Unit{}, w)
	assert.Equal(t, ecs.ChangeTick(4), w.ChangeTick())
	assert.Equal(t, ecs.ChangeTick(4), many.Meta().LastRun)

	many.Initialize(w)
	assert.Equal(t, ecs.ChangeTick(0), many.Meta().LastRun)
}

func TestMutationVisibleToNextRun(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, Counter{})

	inc := ecs.IntoSystem[ecs.Unit, int](func(c ecs.ResMut[Counter]) int {
		c.Get().N++
		return c.Get().N
	})
	assert.Equal(t, 1, inc.Run(ecs.Unit{}, w))
	assert.Equal(t, 2, inc.Run(ecs.Unit{}, w))
	assert.Equal(t, 2, ecs.GetResource[Counter](w).N)
}

func TestResMutSet(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, Counter{N: 5})

	ecs.IntoSystem[ecs.Unit, ecs.Unit](func(c ecs.ResMut[Counter]) {
		c.Set(Counter{N: 9})
	}).Run(ecs.Unit{}, w)
	assert.Equal(t, 9, ecs.GetResource[Counter](w).N)
}

func TestMissingResourcePanics(t *testing.T) {
	w := ecs.NewWorld()
	sys := ecs.IntoSystem[ecs.Unit, uint8](getR1)

	assert.PanicsWithValue(t, "ecs: resource ecs_test.R1 doesn't exist", func() {
		sys.Run(ecs.Unit{}, w)
	})

	// the borrow was dropped before panicking
	ecs.InsertResource(w, R1{Value: 4})
	assert.Equal(t, uint8(4), sys.Run(ecs.Unit{}, w))
}

func TestAliasedResourcePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   any
		msg  string
	}{
		{"mut mut", func(a, b ecs.ResMut[R1]) {}, "ecs: ecs_test.R1 already borrowed"},
		{"ref mut", func(a ecs.Res[R1], b ecs.ResMut[R1]) {}, "ecs: ecs_test.R1 already borrowed"},
		{"mut ref", func(a ecs.ResMut[R1], b ecs.Res[R1]) {}, "ecs: ecs_test.R1 already borrowed mutably"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ecs.InsertResource(w, R1{})
			sys := ecs.IntoSystem[ecs.Unit, ecs.Unit](tt.fn)
			assert.PanicsWithValue(t, tt.msg, func() { sys.Run(ecs.Unit{}, w) })
		})
	}
}

func TestSharedResourceBorrows(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, R1{Value: 2})

	sum := ecs.IntoSystem[ecs.Unit, uint8](func(a, b ecs.Res[R1]) uint8 {
		return a.Get().Value + b.Get().Value
	})
	assert.Equal(t, uint8(4), sum.Run(ecs.Unit{}, w))
	assert.Equal(t, uint8(4), sum.Run(ecs.Unit{}, w))
}

func TestHandleUsedAfterRunPanics(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, R1{Value: 1})

	var leaked ecs.Res[R1]
	sys := ecs.IntoSystem[ecs.Unit, ecs.Unit](func(r ecs.Res[R1]) {
		leaked = r
	})
	sys.Run(ecs.Unit{}, w)

	assert.PanicsWithValue(t, "ecs: Res[ecs_test.R1] used after its system returned", func() {
		leaked.Get()
	})

	// a later run does not revive an old handle
	sys.Run(ecs.Unit{}, w)
	stale := leaked
	sys.RunUnchecked(ecs.Unit{}, w)
	assert.Panics(t, func() { stale.Get() })
	sys.ApplyDeferred(w)
}

func TestLocal(t *testing.T) {
	w := ecs.NewWorld()

	count := func(l ecs.Local[int]) int {
		*l.Get()++
		return *l.Get()
	}
	a := ecs.IntoSystem[ecs.Unit, int](count)
	b := ecs.IntoSystem[ecs.Unit, int](count)

	assert.Equal(t, 1, a.Run(ecs.Unit{}, w))
	assert.Equal(t, 2, a.Run(ecs.Unit{}, w))
	assert.Equal(t, 1, b.Run(ecs.Unit{}, w))

	a.Initialize(w)
	assert.Equal(t, 1, a.Run(ecs.Unit{}, w))
}

func TestWorldMismatchPanics(t *testing.T) {
	w1 := ecs.NewWorld()
	w2 := ecs.NewWorld()
	require.NotEqual(t, w1.ID(), w2.ID())

	sys := ecs.IntoSystem[ecs.Unit, ecs.Unit](func(ecs.Local[int]) {})
	sys.Run(ecs.Unit{}, w1)

	msg, ok := recovered(func() { sys.Run(ecs.Unit{}, w2) }).(string)
	require.True(t, ok)
	assert.Contains(t, msg, "was initialized against world")

	sys.Initialize(w2)
	sys.Run(ecs.Unit{}, w2)
	assert.Equal(t, ecs.ChangeTick(2), w2.ChangeTick())
}

func TestSignatureValidation(t *testing.T) {
	_, err := ecs.NewSystem[ecs.Unit, ecs.Unit](42)
	assert.Error(t, err)

	_, err = ecs.NewSystem[int, ecs.Unit](func(ecs.Res[R1]) {})
	assert.ErrorContains(t, err, "first parameter must be")

	_, err = ecs.NewSystem[ecs.Unit, ecs.Unit](func(int) {})
	assert.ErrorContains(t, err, "is not a SystemParam")

	_, err = ecs.NewSystem[ecs.Unit, int](func() {})
	assert.ErrorContains(t, err, "returns nothing")

	_, err = ecs.NewSystem[ecs.Unit, ecs.Unit](func() (int, error) { return 0, nil })
	assert.ErrorContains(t, err, "at most one")

	_, err = ecs.NewSystem[ecs.Unit, string](func() int { return 0 })
	assert.ErrorContains(t, err, "expected string")

	_, err = ecs.NewSystem[ecs.Unit, ecs.Unit](func(...ecs.Commands) {})
	assert.ErrorContains(t, err, "variadic")

	assert.Panics(t, func() { ecs.IntoSystem[ecs.Unit, ecs.Unit](func(string) {}) })

	sys, err := ecs.NewSystem[ecs.Unit, ecs.Unit](func(ecs.In[ecs.Unit], ecs.Local[int]) {})
	require.NoError(t, err)
	sys.Run(ecs.Unit{}, ecs.NewWorld())
}

func TestWithName(t *testing.T) {
	sys := ecs.IntoSystem[ecs.Unit, ecs.Unit](func() {}).WithName("tick")
	assert.Equal(t, "tick", sys.Name())
	assert.Equal(t, "tick", sys.Meta().Name)
}

func TestSystemMeta(t *testing.T) {
	w := ecs.NewWorld()
	ecs.InsertResource(w, R1{})
	ecs.InsertResource(w, Counter{})

	writer := ecs.IntoSystem[ecs.Unit, ecs.Unit](func(q ecs.Query[movement], c ecs.ResMut[Counter], cmd ecs.Commands) {})
	reader := ecs.IntoSystem[ecs.Unit, ecs.Unit](func(q ecs.Query[positions], r ecs.Res[R1]) {})
	other := ecs.IntoSystem[ecs.Unit, ecs.Unit](func(r ecs.Res[R1]) {})

	writer.Initialize(w)
	reader.Initialize(w)
	other.Initialize(w)

	assert.True(t, writer.HasDeferred())
	assert.False(t, reader.HasDeferred())
	assert.False(t, writer.IsExclusive())

	wm, rm, om := writer.Meta(), reader.Meta(), other.Meta()
	assert.Len(t, wm.Access.Writes, 1)
	assert.Len(t, wm.Access.Reads, 1)
	assert.Len(t, wm.Access.ResWrites, 1)
	assert.Len(t, rm.Access.ResReads, 1)

	assert.True(t, wm.Access.Conflicts(&rm.Access))
	assert.True(t, rm.Access.Conflicts(&wm.Access))
	assert.False(t, rm.Access.Conflicts(&om.Access))
	assert.False(t, wm.Access.Conflicts(&om.Access))
}

func TestMissingResourceReleasesEarlierBorrows(t *testing.T) {
	type velocities struct {
		Velocity *Velocity `ecs:"mut"`
	}

	w := ecs.NewWorld()
	e := w.Spawn(Position{X: 1}, Velocity{})

	sys := ecs.IntoSystem[ecs.Unit, uint8](func(q ecs.Query[positions], v ecs.View[velocities], r ecs.Res[R1]) uint8 {
		return uint8(q.Count()) + r.Get().Value
	})
	assert.PanicsWithValue(t, "ecs: resource ecs_test.R1 doesn't exist", func() {
		sys.Run(ecs.Unit{}, w)
	})

	ecs.Insert(w, e, Position{X: 2})
	ecs.Insert(w, e, Velocity{X: 3})
	assert.Equal(t, 2.0, ecs.Get[Position](w, e).X)

	ecs.InsertResource(w, R1{Value: 4})
	assert.Equal(t, uint8(5), sys.Run(ecs.Unit{}, w))
}
