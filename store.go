package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// store owns all component data of a World: the entity allocator, the type
// registry and one column per registered component type.
type store struct {
	registry *componentRegistry
	columns  [MaxComponents]*column
	entities entities
}

func newStore() *store {
	return &store{registry: newComponentRegistry()}
}

// column returns the column for t, registering the type on first use.
func (s *store) column(t reflect.Type) *column {
	id := s.registry.register(t)
	c := s.columns[id]
	if c == nil {
		c = newColumn(id, t)
		s.columns[id] = c
	}
	return c
}

// existingColumn returns the column for t, or nil if t was never registered.
func (s *store) existingColumn(t reflect.Type) *column {
	id, ok := s.registry.lookup(t)
	if !ok {
		return nil
	}
	return s.columns[id]
}

// boxComponent turns a component value into its storage type and pointer.
// Pointers are stored as given; any other value is copied to the heap.
func boxComponent(component any) (reflect.Type, unsafe.Pointer) {
	if component == nil {
		panic("ecs: nil component")
	}
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			panic(fmt.Sprintf("ecs: nil component of type %s", v.Type()))
		}
		return v.Type().Elem(), v.UnsafePointer()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return v.Type(), p.UnsafePointer()
}

func (s *store) spawn(components ...any) Entity {
	e := s.entities.alloc()
	for _, c := range components {
		s.insertAny(e, c)
	}
	return e
}

func (s *store) insertAny(e Entity, component any) {
	t, ptr := boxComponent(component)
	s.insert(e, t, ptr)
}

func (s *store) insert(e Entity, t reflect.Type, ptr unsafe.Pointer) {
	m := s.entities.lookup(e)
	if m == nil {
		panic(fmt.Sprintf("ecs: insert %s on dead entity %s", t, e))
	}
	c := s.column(t)
	c.set(e, ptr)
	m.mask.Set(c.id)
}

func (s *store) remove(e Entity, t reflect.Type) unsafe.Pointer {
	m := s.entities.lookup(e)
	if m == nil {
		return nil
	}
	c := s.existingColumn(t)
	if c == nil || !m.mask.Has(c.id) {
		return nil
	}
	ptr := c.remove(e)
	m.mask.Clear(c.id)
	return ptr
}

func (s *store) despawn(e Entity) bool {
	m := s.entities.lookup(e)
	if m == nil {
		return false
	}
	for id := 0; id < s.registry.count; id++ {
		if m.mask.Has(ComponentID(id)) {
			s.columns[id].remove(e)
		}
	}
	s.entities.release(e)
	return true
}

// get is a one-shot read outside any guard; it refuses to alias a live writer.
func (s *store) get(e Entity, t reflect.Type) unsafe.Pointer {
	c := s.existingColumn(t)
	if c == nil || s.entities.lookup(e) == nil {
		return nil
	}
	c.checkReadable()
	return c.get(e)
}

func (s *store) contains(e Entity) bool {
	return s.entities.lookup(e) != nil
}
