package ecs

import (
	"fmt"
	"reflect"
)

// Res is a system parameter giving shared access to the resource T.
// The resource must exist when the system runs, or the run panics.
type Res[T any] struct {
	g     *ResourceGuard[T]
	epoch uint64
	value *T
}

// Get returns the resource. It panics if called after the system returned.
func (r Res[T]) Get() *T {
	r.g.check(r.epoch)
	return r.value
}

// InitState implements SystemParam.
func (Res[T]) InitState(w *World, meta *SystemMeta) ParamState {
	meta.Access.addResource(reflect.TypeFor[T](), false)
	return &resourceState[T]{g: NewResourceGuard[T](w, false)}
}

// ResMut is a system parameter giving exclusive access to the resource T.
// The resource must exist, and no other borrow of T may be open.
type ResMut[T any] struct {
	g     *ResourceGuard[T]
	epoch uint64
	value *T
}

// Get returns the resource. It panics if called after the system returned.
func (r ResMut[T]) Get() *T {
	r.g.check(r.epoch)
	return r.value
}

// Set replaces the resource value in place.
func (r ResMut[T]) Set(v T) {
	*r.Get() = v
}

// InitState implements SystemParam.
func (ResMut[T]) InitState(w *World, meta *SystemMeta) ParamState {
	meta.Access.addResource(reflect.TypeFor[T](), true)
	return &resourceState[T]{g: NewResourceGuard[T](w, true), mut: true}
}

// resourceState backs both Res and ResMut.
type resourceState[T any] struct {
	g   *ResourceGuard[T]
	mut bool
}

func (s *resourceState[T]) Get(_ *SystemMeta, w *World, _ ChangeTick) any {
	v := s.g.Lock(w)
	if v == nil {
		s.g.Unlock()
		panic(fmt.Sprintf("ecs: resource %s doesn't exist", reflect.TypeFor[T]()))
	}
	if s.mut {
		return ResMut[T]{g: s.g, epoch: s.g.epoch, value: v}
	}
	return Res[T]{g: s.g, epoch: s.g.epoch, value: v}
}

func (s *resourceState[T]) Apply(*SystemMeta, *World) {
	s.g.Unlock()
}
