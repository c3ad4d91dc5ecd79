package ecs

import (
	"reflect"
)

// Unit is the input and output type of systems that take or return nothing.
type Unit = struct{}

// In wraps the explicit input of a system. A function receiving input takes
// In[T] as its first argument; the value passed to Run arrives in Value.
//
//	func damage(amount ecs.In[int], hp ecs.ResMut[Health]) {
//	    hp.Get().Current -= amount.Value
//	}
type In[T any] struct {
	Value T
}

var unitType = reflect.TypeFor[Unit]()
