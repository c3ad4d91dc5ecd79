package ecs

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// ExclusiveSystemParam is implemented by argument types of exclusive
// systems. They never touch the world themselves: the function gets the
// *World directly and the parameters carry only per-system state.
type ExclusiveSystemParam interface {
	InitExclusive(w *World, meta *SystemMeta) ExclusiveParamState
}

// ExclusiveParamState is the persistent state of one exclusive parameter.
type ExclusiveParamState interface {
	GetExclusive(meta *SystemMeta) any
}

var exclusiveParamType = reflect.TypeFor[ExclusiveSystemParam]()

// ExclusiveFunctionSystem wraps a function that needs unmediated access to
// the world, for spawning, despawning or bulk inserts in its body:
//
//	func populate(w *ecs.World, spawned ecs.Local[int]) {
//	    w.Spawn(Position{}, Velocity{X: 1})
//	    *spawned.Get()++
//	}
//
// The function takes In[I] first unless I is Unit, then *World, then any
// number of ExclusiveSystemParams. Exclusive systems hold no borrows and
// have nothing to apply.
type ExclusiveFunctionSystem[I, O any] struct {
	sig    *funcSignature
	params []reflect.Type
	states []ExclusiveParamState
	meta   SystemMeta
	world  uuid.UUID
	args   []reflect.Value
}

// NewExclusiveSystem validates fn and wraps it.
func NewExclusiveSystem[I, O any](fn any) (*ExclusiveFunctionSystem[I, O], error) {
	sig, err := analyzeFunc(fn, reflect.TypeFor[I](), reflect.TypeFor[In[I]](), reflect.TypeFor[O](), true)
	if err != nil {
		return nil, fmt.Errorf("ecs: %w", err)
	}
	for i, t := range sig.params {
		if !t.Implements(exclusiveParamType) {
			return nil, fmt.Errorf("ecs: system %s: parameter %d (%s) is not an ExclusiveSystemParam", sig.name, i, t)
		}
	}
	return &ExclusiveFunctionSystem[I, O]{
		sig:    sig,
		params: sig.params,
		meta:   SystemMeta{Name: sig.name},
	}, nil
}

// IntoExclusiveSystem is like NewExclusiveSystem but panics on an invalid function.
func IntoExclusiveSystem[I, O any](fn any) *ExclusiveFunctionSystem[I, O] {
	s, err := NewExclusiveSystem[I, O](fn)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// WithName overrides the name derived from the function.
func (s *ExclusiveFunctionSystem[I, O]) WithName(name string) *ExclusiveFunctionSystem[I, O] {
	s.meta.Name = name
	return s
}

// Name implements System.
func (s *ExclusiveFunctionSystem[I, O]) Name() string {
	return s.meta.Name
}

// Meta implements System.
func (s *ExclusiveFunctionSystem[I, O]) Meta() SystemMeta {
	return s.meta
}

// IsExclusive implements System. Always true.
func (s *ExclusiveFunctionSystem[I, O]) IsExclusive() bool {
	return true
}

// HasDeferred implements System. Always false.
func (s *ExclusiveFunctionSystem[I, O]) HasDeferred() bool {
	return false
}

// Initialize implements System.
func (s *ExclusiveFunctionSystem[I, O]) Initialize(w *World) {
	s.meta.LastRun = 0
	s.states = make([]ExclusiveParamState, len(s.params))
	for i, t := range s.params {
		param := reflect.Zero(t).Interface().(ExclusiveSystemParam)
		s.states[i] = param.InitExclusive(w, &s.meta)
	}
	s.world = w.ID()
	s.args = make([]reflect.Value, 0, len(s.params)+2)

	w.log.Debug("ecs: exclusive system initialized", "system", s.meta.Name, "params", len(s.params))
}

// IsInitialized implements System.
func (s *ExclusiveFunctionSystem[I, O]) IsInitialized() bool {
	return s.states != nil
}

// RunUnchecked implements System.
func (s *ExclusiveFunctionSystem[I, O]) RunUnchecked(in I, w *World) O {
	if s.states == nil {
		panic(fmt.Sprintf(paramMessage, s.meta.Name))
	}
	if s.world != w.ID() {
		panic(fmt.Sprintf("ecs: system %s was initialized against world %s, not %s", s.meta.Name, s.world, w.ID()))
	}

	tick := w.IncrementChangeTick()
	span := w.startSystemSpan(s.meta.Name, tick, true)
	defer span.End()

	args := s.args[:0]
	if s.sig.hasInput {
		args = append(args, reflect.ValueOf(In[I]{Value: in}))
	}
	args = append(args, reflect.ValueOf(w))
	for i, state := range s.states {
		args = append(args, paramValue(s.params[i], state.GetExclusive(&s.meta)))
	}

	out := callSignature[O](s.sig, args)
	clear(args)
	s.meta.LastRun = tick
	return out
}

// ApplyDeferred implements System. Exclusive systems buffer nothing.
func (s *ExclusiveFunctionSystem[I, O]) ApplyDeferred(*World) {}

// Run implements System.
func (s *ExclusiveFunctionSystem[I, O]) Run(in I, w *World) O {
	return runSystem[I, O](s, in, w)
}

// RunWorld implements Runnable. The function receives the zero input.
func (s *ExclusiveFunctionSystem[I, O]) RunWorld(w *World) {
	var in I
	s.Run(in, w)
}
