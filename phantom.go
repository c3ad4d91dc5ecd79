package ecs

import (
	"reflect"
)

// With is a query filter requiring a component without borrowing it.
//
// Usage:
//
//	type Burning struct {
//	    Health *Health `ecs:"mut"`
//	    _      ecs.With[OnFire]
//	}
type With[T any] struct{}

// Without is a query filter skipping entities that carry a component.
//
// Usage:
//
//	type Alive struct {
//	    Health *Health
//	    _      ecs.Without[Dead]
//	}
type Without[T any] struct{}

// PhantomTypeInfo provides component type information for filter types.
type PhantomTypeInfo interface {
	ComponentType() reflect.Type
	IsWithout() bool
}

// ComponentType implements PhantomTypeInfo for With[T].
func (With[T]) ComponentType() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsWithout implements PhantomTypeInfo for With[T].
func (With[T]) IsWithout() bool {
	return false
}

// ComponentType implements PhantomTypeInfo for Without[T].
func (Without[T]) ComponentType() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsWithout implements PhantomTypeInfo for Without[T].
func (Without[T]) IsWithout() bool {
	return true
}

var phantomTypeInfoType = reflect.TypeFor[PhantomTypeInfo]()

// getPhantomInfo extracts the filtered component type from a filter type.
func getPhantomInfo(t reflect.Type) (compType reflect.Type, isWithout bool, ok bool) {
	if !t.Implements(phantomTypeInfoType) {
		return nil, false, false
	}
	v := reflect.Zero(t).Interface().(PhantomTypeInfo)
	return v.ComponentType(), v.IsWithout(), true
}
