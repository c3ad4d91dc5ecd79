package ecs

import (
	"math/bits"
)

// Bitmask is a 256-bit set of ComponentIDs.
// Every live entity carries one describing which component columns hold a value
// for it, and every query carries a require/exclude pair matched against it.
type Bitmask [4]uint64

// Set adds id to the mask.
func (m *Bitmask) Set(id ComponentID) {
	m[id/64] |= 1 << (id % 64)
}

// Clear removes id from the mask.
func (m *Bitmask) Clear(id ComponentID) {
	m[id/64] &^= 1 << (id % 64)
}

// Has reports whether id is in the mask.
func (m *Bitmask) Has(id ComponentID) bool {
	return m[id/64]&(1<<(id%64)) != 0
}

// ContainsAll reports whether every id in other is also in m.
func (m *Bitmask) ContainsAll(other Bitmask) bool {
	return (m[0]&other[0] == other[0]) &&
		(m[1]&other[1] == other[1]) &&
		(m[2]&other[2] == other[2]) &&
		(m[3]&other[3] == other[3])
}

// ContainsAny reports whether m and other share at least one id.
func (m *Bitmask) ContainsAny(other Bitmask) bool {
	return (m[0]&other[0] != 0) ||
		(m[1]&other[1] != 0) ||
		(m[2]&other[2] != 0) ||
		(m[3]&other[3] != 0)
}

// Matches reports whether an entity mask satisfies a query filter.
func (m *Bitmask) Matches(require, exclude Bitmask) bool {
	return m.ContainsAll(require) && !m.ContainsAny(exclude)
}

// IsZero reports whether the mask is empty.
func (m *Bitmask) IsZero() bool {
	return m[0] == 0 && m[1] == 0 && m[2] == 0 && m[3] == 0
}

// Count returns the number of ids in the mask.
func (m *Bitmask) Count() int {
	return bits.OnesCount64(m[0]) +
		bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) +
		bits.OnesCount64(m[3])
}
