package ecs

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/google/uuid"
)

// claim is one column borrow held by a guard.
type claim struct {
	col *column
	mut bool
}

// guard is a two-phase borrow against a World's store: acquire claims every
// column at once, release gives them back. A guard belongs to one parameter
// slot of one system and may have at most one acquisition outstanding.
//
// Every acquisition bumps epoch. Handles given to system functions remember
// the epoch they were issued under, so a handle that escapes its run panics
// on use instead of reading data it no longer owns.
//
// A conflict while acquiring gives back every claim taken so far. A panic
// between acquire and release (inside the system function, say) leaves the
// claims in place, owned by the guard; Unlock still releases them.
type guard struct {
	label  string
	world  *World
	bound  uuid.UUID
	claims []claim
	live   bool
	epoch  uint64
}

func newGuard(label string, w *World, claims []claim) guard {
	return guard{label: label, world: w, bound: w.ID(), claims: claims}
}

func (g *guard) acquire(w *World) {
	if w.ID() != g.bound {
		panic(fmt.Sprintf("ecs: %s was initialized against world %s, not %s", g.label, g.bound, w.ID()))
	}
	if g.live {
		panic(fmt.Sprintf("ecs: %s is already locked", g.label))
	}
	taken := 0
	defer func() {
		// a conflicting claim panics; give back the ones already taken
		if taken < len(g.claims) {
			for _, c := range g.claims[:taken] {
				c.col.release(c.mut)
			}
		}
	}()
	for _, c := range g.claims {
		c.col.acquire(c.mut)
		taken++
	}
	g.live = true
	g.epoch++
	if w.traceBorrows {
		w.log.Debug("ecs: borrow acquired", "guard", g.label, "epoch", g.epoch, "columns", len(g.claims))
	}
}

// release gives back every claim. Releasing an unlocked guard does nothing.
func (g *guard) release() {
	if !g.live {
		return
	}
	for _, c := range g.claims {
		c.col.release(c.mut)
	}
	g.live = false
	if g.world.traceBorrows {
		g.world.log.Debug("ecs: borrow released", "guard", g.label, "epoch", g.epoch)
	}
}

// check panics unless the acquisition identified by epoch is still open.
func (g *guard) check(epoch uint64) {
	if !g.live || g.epoch != epoch {
		panic(fmt.Sprintf("ecs: %s used after its system returned", g.label))
	}
}

// Locked reports whether the guard currently holds its borrows.
func (g *guard) Locked() bool {
	return g.live
}

// QueryGuard opens a query against the store and walks its matches.
// The matched entity list is snapshotted at Lock; the borrowed columns cannot
// change structurally until Unlock.
type QueryGuard[Q any] struct {
	guard
	meta    *queryMeta
	matched []Entity
	cursor  int
}

// NewQueryGuard analyzes Q against w and returns an unlocked guard.
func NewQueryGuard[Q any](w *World) (*QueryGuard[Q], error) {
	meta, err := analyzeQuery(reflect.TypeFor[Q](), w)
	if err != nil {
		return nil, fmt.Errorf("ecs: %w", err)
	}
	return &QueryGuard[Q]{
		guard: newGuard("Query["+meta.Type.String()+"]", w, meta.claims()),
		meta:  meta,
	}, nil
}

// Lock borrows the query's columns and returns an iterator over its matches.
func (g *QueryGuard[Q]) Lock(w *World) Query[Q] {
	g.acquire(w)
	g.matched = g.meta.collect(w)
	g.cursor = 0
	return Query[Q]{g: g, epoch: g.epoch}
}

// Unlock drops the borrow. It is safe to call on an unlocked guard.
func (g *QueryGuard[Q]) Unlock() {
	g.release()
	g.matched = nil
	g.cursor = 0
}

func (g *QueryGuard[Q]) at(i int) (Entity, Q) {
	var out Q
	e := g.matched[i]
	fillQuery(unsafe.Pointer(&out), g.meta, e)
	return e, out
}

// ViewGuard opens a query against the store for random access by Entity.
type ViewGuard[Q any] struct {
	guard
	meta *queryMeta
}

// NewViewGuard analyzes Q against w and returns an unlocked guard.
func NewViewGuard[Q any](w *World) (*ViewGuard[Q], error) {
	meta, err := analyzeQuery(reflect.TypeFor[Q](), w)
	if err != nil {
		return nil, fmt.Errorf("ecs: %w", err)
	}
	return &ViewGuard[Q]{
		guard: newGuard("View["+meta.Type.String()+"]", w, meta.claims()),
		meta:  meta,
	}, nil
}

// Lock borrows the query's columns and returns a view keyed by Entity.
func (g *ViewGuard[Q]) Lock(w *World) View[Q] {
	g.acquire(w)
	return View[Q]{g: g, epoch: g.epoch}
}

// Unlock drops the borrow. It is safe to call on an unlocked guard.
func (g *ViewGuard[Q]) Unlock() {
	g.release()
}

// ResourceGuard borrows one resource type on the world's resource entity.
// It is a query scoped to exactly one entity: the same columns and the same
// aliasing rules as any other component access.
type ResourceGuard[T any] struct {
	guard
	col *column
}

// NewResourceGuard returns an unlocked guard for resource T.
func NewResourceGuard[T any](w *World, mut bool) *ResourceGuard[T] {
	col := w.store.column(reflect.TypeFor[T]())
	label := "Res[" + col.typ.String() + "]"
	if mut {
		label = "ResMut[" + col.typ.String() + "]"
	}
	return &ResourceGuard[T]{
		guard: newGuard(label, w, []claim{{col: col, mut: mut}}),
		col:   col,
	}
}

// Lock borrows the resource column and returns the resource, or nil if the
// world holds no T. The borrow is held either way until Unlock.
func (g *ResourceGuard[T]) Lock(w *World) *T {
	g.acquire(w)
	return (*T)(g.col.get(w.resourceEntity))
}

// Unlock drops the borrow. It is safe to call on an unlocked guard.
func (g *ResourceGuard[T]) Unlock() {
	g.release()
}
