package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ComponentID is a world-local identifier for a component type.
// Valid IDs range from 0 to 254.
type ComponentID uint8

// MaxComponents is the maximum number of component types one World supports.
const MaxComponents = 255

// componentRegistry assigns ComponentIDs to component types in first-seen order.
// It belongs to a single World and is not safe for concurrent use.
type componentRegistry struct {
	ids   map[reflect.Type]ComponentID
	count int
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{ids: make(map[reflect.Type]ComponentID)}
}

// register returns the ID of t, assigning a new one on first use.
func (r *componentRegistry) register(t reflect.Type) ComponentID {
	if id, ok := r.ids[t]; ok {
		return id
	}
	if r.count >= MaxComponents {
		panic(fmt.Sprintf("ecs: component limit exceeded (max %d types)", MaxComponents))
	}
	id := ComponentID(r.count)
	r.count++
	r.ids[t] = id
	return id
}

// lookup returns the ID of t without registering it.
func (r *componentRegistry) lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// borrowExclusive marks a column as held by a single writer.
const borrowExclusive = -1

// column stores every value of one component type as a dense pointer array
// with a sparse index by entity ID. borrow counts live guards: positive for
// shared readers, borrowExclusive for one writer.
type column struct {
	id       ComponentID
	typ      reflect.Type
	ptrs     []unsafe.Pointer
	entities []Entity
	index    map[uint32]int
	borrow   int32
}

func newColumn(id ComponentID, t reflect.Type) *column {
	return &column{id: id, typ: t, index: make(map[uint32]int)}
}

func (c *column) len() int {
	return len(c.ptrs)
}

func (c *column) get(e Entity) unsafe.Pointer {
	i, ok := c.index[e.ID]
	if !ok || c.entities[i] != e {
		return nil
	}
	return c.ptrs[i]
}

func (c *column) set(e Entity, ptr unsafe.Pointer) {
	c.checkUnborrowed("insert")
	if i, ok := c.index[e.ID]; ok {
		c.ptrs[i] = ptr
		c.entities[i] = e
		return
	}
	c.index[e.ID] = len(c.ptrs)
	c.ptrs = append(c.ptrs, ptr)
	c.entities = append(c.entities, e)
}

// remove swap-deletes e's value and returns it, or nil if e has none.
func (c *column) remove(e Entity) unsafe.Pointer {
	i, ok := c.index[e.ID]
	if !ok {
		return nil
	}
	c.checkUnborrowed("remove")
	ptr := c.ptrs[i]
	last := len(c.ptrs) - 1
	if i != last {
		c.ptrs[i] = c.ptrs[last]
		c.entities[i] = c.entities[last]
		c.index[c.entities[i].ID] = i
	}
	c.ptrs[last] = nil
	c.ptrs = c.ptrs[:last]
	c.entities = c.entities[:last]
	delete(c.index, e.ID)
	return ptr
}

// acquire claims the column for reading or writing. A claim that would alias
// an existing one is a programming error and panics.
func (c *column) acquire(mut bool) {
	if mut {
		if c.borrow != 0 {
			panic(fmt.Sprintf("ecs: %s already borrowed", c.typ))
		}
		c.borrow = borrowExclusive
		return
	}
	if c.borrow == borrowExclusive {
		panic(fmt.Sprintf("ecs: %s already borrowed mutably", c.typ))
	}
	c.borrow++
}

func (c *column) release(mut bool) {
	if mut {
		c.borrow = 0
		return
	}
	if c.borrow > 0 {
		c.borrow--
	}
}

func (c *column) checkUnborrowed(op string) {
	if c.borrow != 0 {
		panic(fmt.Sprintf("ecs: cannot %s %s while it is borrowed", op, c.typ))
	}
}

func (c *column) checkReadable() {
	if c.borrow == borrowExclusive {
		panic(fmt.Sprintf("ecs: %s already borrowed mutably", c.typ))
	}
}
