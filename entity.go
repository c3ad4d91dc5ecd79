package ecs

import (
	"fmt"
)

// Entity identifies a row of component data in a World.
// The zero Entity is never allocated and can be used as "no entity".
type Entity struct {
	ID      uint32
	Version uint32
}

// IsZero reports whether e is the zero Entity.
func (e Entity) IsZero() bool {
	return e.Version == 0
}

// String returns a compact "id:version" form for logs.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.ID, e.Version)
}

// entityMeta is the per-ID bookkeeping of the store.
type entityMeta struct {
	version uint32
	alive   bool
	mask    Bitmask
}

// entities allocates entity IDs and recycles them after despawn.
// Versions start at 1 and are bumped on every free so stale handles stop matching.
type entities struct {
	meta  []entityMeta
	free  []uint32
	alive int
}

func (es *entities) alloc() Entity {
	es.alive++
	if n := len(es.free); n > 0 {
		id := es.free[n-1]
		es.free = es.free[:n-1]
		m := &es.meta[id]
		m.alive = true
		m.mask = Bitmask{}
		return Entity{ID: id, Version: m.version}
	}
	id := uint32(len(es.meta))
	es.meta = append(es.meta, entityMeta{version: 1, alive: true})
	return Entity{ID: id, Version: 1}
}

func (es *entities) release(e Entity) {
	m := &es.meta[e.ID]
	m.alive = false
	m.mask = Bitmask{}
	m.version++
	es.free = append(es.free, e.ID)
	es.alive--
}

// all returns every live entity in ID order.
func (es *entities) all() []Entity {
	out := make([]Entity, 0, es.alive)
	for id := range es.meta {
		if m := &es.meta[id]; m.alive {
			out = append(out, Entity{ID: uint32(id), Version: m.version})
		}
	}
	return out
}

// lookup returns the metadata for e, or nil if e is stale or unknown.
func (es *entities) lookup(e Entity) *entityMeta {
	if e.Version == 0 || int(e.ID) >= len(es.meta) {
		return nil
	}
	m := &es.meta[e.ID]
	if !m.alive || m.version != e.Version {
		return nil
	}
	return m
}
