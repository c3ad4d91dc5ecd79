package ecs

import (
	"fmt"
	"reflect"
)

// SystemParam is implemented by every type a system function can take as an
// argument. InitState is called on the zero value of the type, once per
// system, and returns the state reused by every run of that system.
//
// InitState may record in meta what the parameter reads and writes, and
// whether it buffers work until apply.
type SystemParam interface {
	InitState(w *World, meta *SystemMeta) ParamState
}

// ParamState is the persistent state of one parameter slot of one system.
//
// Get produces the argument value for one run. It may open a borrow on the
// world that stays open until Apply; a borrow that conflicts with one already
// open panics in the store.
//
// Apply releases whatever Get opened and flushes deferred work. It must be
// safe to call when nothing is open.
type ParamState interface {
	Get(meta *SystemMeta, w *World, tick ChangeTick) any
	Apply(meta *SystemMeta, w *World)
}

// NopApply can be embedded in a ParamState that has nothing to release.
type NopApply struct{}

// Apply does nothing.
func (NopApply) Apply(*SystemMeta, *World) {}

// deferredState marks states whose Apply writes to the world.
type deferredState interface {
	deferred() bool
}

var systemParamType = reflect.TypeFor[SystemParam]()

// ParamSet is an ordered list of parameter types treated as one parameter.
// Its state is the list of member states; init, get and apply run over the
// members in order.
type ParamSet []reflect.Type

// Validate checks that every member implements SystemParam.
func (ps ParamSet) Validate() error {
	for i, t := range ps {
		if !t.Implements(systemParamType) {
			return fmt.Errorf("parameter %d (%s) is not a SystemParam", i, t)
		}
	}
	return nil
}

// InitState implements SystemParam.
func (ps ParamSet) InitState(w *World, meta *SystemMeta) ParamState {
	return ps.init(w, meta)
}

func (ps ParamSet) init(w *World, meta *SystemMeta) *ParamSetState {
	s := &ParamSetState{
		types:  ps,
		states: make([]ParamState, len(ps)),
		values: make([]reflect.Value, len(ps)),
	}
	for i, t := range ps {
		param := reflect.Zero(t).Interface().(SystemParam)
		s.states[i] = param.InitState(w, meta)
	}
	return s
}

// ParamSetState is the state of a ParamSet.
type ParamSetState struct {
	types  []reflect.Type
	states []ParamState
	values []reflect.Value
}

// Len returns the number of member states.
func (s *ParamSetState) Len() int {
	return len(s.states)
}

// Get implements ParamState. The value is a []any in member order.
func (s *ParamSetState) Get(meta *SystemMeta, w *World, tick ChangeTick) any {
	values := s.Values(meta, w, tick)
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}
	return out
}

// Values extracts every member in order and returns them typed for a call.
// The returned slice is reused by the next call.
//
// If a member panics, the members extracted before it are applied before the
// panic continues, so a failed extraction leaves no borrow behind.
func (s *ParamSetState) Values(meta *SystemMeta, w *World, tick ChangeTick) []reflect.Value {
	done := 0
	defer func() {
		if done < len(s.states) {
			if r := recover(); r != nil {
				s.apply(s.states[:done], meta, w)
				clear(s.values)
				panic(r)
			}
		}
	}()
	for i, state := range s.states {
		s.values[i] = paramValue(s.types[i], state.Get(meta, w, tick))
		done++
	}
	return s.values
}

// Apply implements ParamState. Members holding borrows are applied first, in
// order, then members with deferred world writes, in order, so a flush never
// meets a column still borrowed by a sibling.
func (s *ParamSetState) Apply(meta *SystemMeta, w *World) {
	s.apply(s.states, meta, w)
	clear(s.values)
}

func (s *ParamSetState) apply(states []ParamState, meta *SystemMeta, w *World) {
	for _, state := range states {
		if !isDeferred(state) {
			state.Apply(meta, w)
		}
	}
	for _, state := range states {
		if isDeferred(state) {
			state.Apply(meta, w)
		}
	}
}

func (s *ParamSetState) deferred() bool {
	for _, state := range s.states {
		if isDeferred(state) {
			return true
		}
	}
	return false
}

func isDeferred(state ParamState) bool {
	d, ok := state.(deferredState)
	return ok && d.deferred()
}

// paramValue converts a state's output to the declared argument type.
func paramValue(t reflect.Type, v any) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != t {
		if !rv.Type().AssignableTo(t) {
			panic(fmt.Sprintf("ecs: parameter %s produced a %s", t, rv.Type()))
		}
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out
	}
	return rv
}
