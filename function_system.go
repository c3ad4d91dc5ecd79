package ecs

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// FunctionSystem wraps a plain function whose arguments are SystemParams,
// optionally preceded by In[I].
//
//	func getScore(score ecs.Res[Score]) int { return score.Get().Value }
//
//	sys := ecs.IntoSystem[ecs.Unit, int](getScore)
//	v := sys.Run(ecs.Unit{}, world)
type FunctionSystem[I, O any] struct {
	sig    *funcSignature
	params ParamSet
	state  *ParamSetState
	meta   SystemMeta
	world  uuid.UUID
	args   []reflect.Value
}

// NewSystem validates fn and wraps it. The function must take In[I] first
// unless I is Unit, every other argument must implement SystemParam, and it
// must return nothing (O is Unit) or one value assignable to O.
func NewSystem[I, O any](fn any) (*FunctionSystem[I, O], error) {
	sig, err := analyzeFunc(fn, reflect.TypeFor[I](), reflect.TypeFor[In[I]](), reflect.TypeFor[O](), false)
	if err != nil {
		return nil, fmt.Errorf("ecs: %w", err)
	}
	params := ParamSet(sig.params)
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("ecs: system %s: %w", sig.name, err)
	}
	return &FunctionSystem[I, O]{
		sig:    sig,
		params: params,
		meta:   SystemMeta{Name: sig.name},
	}, nil
}

// IntoSystem is like NewSystem but panics on an invalid function.
func IntoSystem[I, O any](fn any) *FunctionSystem[I, O] {
	s, err := NewSystem[I, O](fn)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// WithName overrides the name derived from the function.
func (s *FunctionSystem[I, O]) WithName(name string) *FunctionSystem[I, O] {
	s.meta.Name = name
	return s
}

// Name implements System.
func (s *FunctionSystem[I, O]) Name() string {
	return s.meta.Name
}

// Meta implements System.
func (s *FunctionSystem[I, O]) Meta() SystemMeta {
	return s.meta
}

// IsExclusive implements System.
func (s *FunctionSystem[I, O]) IsExclusive() bool {
	return false
}

// HasDeferred implements System.
func (s *FunctionSystem[I, O]) HasDeferred() bool {
	return s.meta.HasDeferred
}

// Initialize implements System.
func (s *FunctionSystem[I, O]) Initialize(w *World) {
	s.meta.HasDeferred = false
	s.meta.Access = AccessMeta{}
	s.state = s.params.init(w, &s.meta)
	s.meta.LastRun = 0
	s.world = w.ID()
	s.args = make([]reflect.Value, 0, len(s.params)+1)

	w.log.Debug("ecs: system initialized",
		"system", s.meta.Name,
		"params", len(s.params),
		"deferred", s.meta.HasDeferred,
	)
}

// IsInitialized implements System.
func (s *FunctionSystem[I, O]) IsInitialized() bool {
	return s.state != nil
}

// RunUnchecked implements System. Parameters are extracted after the tick
// is advanced and stay borrowed until ApplyDeferred.
func (s *FunctionSystem[I, O]) RunUnchecked(in I, w *World) O {
	if s.state == nil {
		panic(fmt.Sprintf(paramMessage, s.meta.Name))
	}
	if s.world != w.ID() {
		panic(fmt.Sprintf("ecs: system %s was initialized against world %s, not %s", s.meta.Name, s.world, w.ID()))
	}

	tick := w.IncrementChangeTick()
	span := w.startSystemSpan(s.meta.Name, tick, false)
	defer span.End()

	args := s.args[:0]
	if s.sig.hasInput {
		args = append(args, reflect.ValueOf(In[I]{Value: in}))
	}
	args = append(args, s.state.Values(&s.meta, w, tick)...)

	out := callSignature[O](s.sig, args)
	clear(args)
	s.meta.LastRun = tick
	return out
}

// ApplyDeferred implements System.
func (s *FunctionSystem[I, O]) ApplyDeferred(w *World) {
	if s.state == nil {
		panic(fmt.Sprintf(paramMessage, s.meta.Name))
	}
	s.state.Apply(&s.meta, w)
}

// Run implements System.
func (s *FunctionSystem[I, O]) Run(in I, w *World) O {
	return runSystem[I, O](s, in, w)
}

// RunWorld implements Runnable. The function receives the zero input.
func (s *FunctionSystem[I, O]) RunWorld(w *World) {
	var in I
	s.Run(in, w)
}
