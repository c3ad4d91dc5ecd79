package ecs

import (
	"iter"
	"unsafe"
)

// Query is a system parameter iterating every entity that matches Q.
//
// Q is a struct describing one row:
//
//	type Movement struct {
//	    Entity   ecs.Entity
//	    Position *Position `ecs:"mut"`
//	    Velocity *Velocity
//	    Boost    *Boost    `ecs:"opt"`
//	    _        ecs.Without[Frozen]
//	}
//
//	func move(q ecs.Query[Movement]) {
//	    for _, m := range q.Iter() {
//	        m.Position.X += m.Velocity.X
//	    }
//	}
//
// Every component field borrows its column for the whole run: shared by
// default, exclusive with `ecs:"mut"`. A Query must not be kept after the
// system returns.
type Query[Q any] struct {
	g     *QueryGuard[Q]
	epoch uint64
}

// InitState implements SystemParam.
func (Query[Q]) InitState(w *World, meta *SystemMeta) ParamState {
	g, err := NewQueryGuard[Q](w)
	if err != nil {
		panic(err.Error())
	}
	g.meta.registerAccess(&meta.Access)
	return g
}

// Get implements ParamState.
func (g *QueryGuard[Q]) Get(_ *SystemMeta, w *World, _ ChangeTick) any {
	return g.Lock(w)
}

// Apply implements ParamState.
func (g *QueryGuard[Q]) Apply(*SystemMeta, *World) {
	g.Unlock()
}

// Next returns the next match, or false when the query is exhausted.
func (q Query[Q]) Next() (Entity, Q, bool) {
	q.g.check(q.epoch)
	if q.g.cursor >= len(q.g.matched) {
		var zero Q
		return Entity{}, zero, false
	}
	e, row := q.g.at(q.g.cursor)
	q.g.cursor++
	return e, row, true
}

// Iter yields the remaining matches.
func (q Query[Q]) Iter() iter.Seq2[Entity, Q] {
	return func(yield func(Entity, Q) bool) {
		for {
			e, row, ok := q.Next()
			if !ok || !yield(e, row) {
				return
			}
		}
	}
}

// Count returns the number of matches of this run, consumed or not.
func (q Query[Q]) Count() int {
	q.g.check(q.epoch)
	return len(q.g.matched)
}

// Single returns the only match. It returns false if there are zero or several.
func (q Query[Q]) Single() (Entity, Q, bool) {
	q.g.check(q.epoch)
	if len(q.g.matched) != 1 {
		var zero Q
		return Entity{}, zero, false
	}
	e, row := q.g.at(0)
	return e, row, true
}

// View is a system parameter giving random access by Entity to rows of Q.
// It borrows the same columns as Query[Q] would.
type View[Q any] struct {
	g     *ViewGuard[Q]
	epoch uint64
}

// InitState implements SystemParam.
func (View[Q]) InitState(w *World, meta *SystemMeta) ParamState {
	g, err := NewViewGuard[Q](w)
	if err != nil {
		panic(err.Error())
	}
	g.meta.registerAccess(&meta.Access)
	return g
}

// Get implements ParamState.
func (g *ViewGuard[Q]) Get(_ *SystemMeta, w *World, _ ChangeTick) any {
	return g.Lock(w)
}

// Apply implements ParamState.
func (g *ViewGuard[Q]) Apply(*SystemMeta, *World) {
	g.Unlock()
}

// Get returns the row of e, or false if e is dead or does not match Q.
func (v View[Q]) Get(e Entity) (Q, bool) {
	v.g.check(v.epoch)
	var out Q
	if !v.g.meta.matches(v.g.world, e) {
		return out, false
	}
	fillQuery(unsafe.Pointer(&out), v.g.meta, e)
	return out, true
}

// Contains reports whether e matches Q.
func (v View[Q]) Contains(e Entity) bool {
	v.g.check(v.epoch)
	return v.g.meta.matches(v.g.world, e)
}
