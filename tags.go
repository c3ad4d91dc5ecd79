package ecs

import (
	"strings"
)

// Tag constants
const (
	tagName = "ecs"
)

// Tag modifiers
const (
	modMut = "mut" // Exclusive access
	modOpt = "opt" // Optional (nil if missing)
)

// FieldKind represents the role of a field in a query struct.
type FieldKind int

const (
	// KindComponent indicates a *T component field
	KindComponent FieldKind = iota
	// KindEntity indicates an Entity field receiving the matched entity
	KindEntity
	// KindPhantomWith indicates a With[T] filter
	KindPhantomWith
	// KindPhantomWithout indicates a Without[T] filter
	KindPhantomWithout
)

// String returns the string representation of FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindComponent:
		return "Component"
	case KindEntity:
		return "Entity"
	case KindPhantomWith:
		return "PhantomWith"
	case KindPhantomWithout:
		return "PhantomWithout"
	default:
		return "Unknown"
	}
}

// TagInfo holds parsed tag information.
type TagInfo struct {
	Mutable  bool // ecs:"mut"
	Optional bool // ecs:"opt"
}

// parseTag parses an ecs struct tag. Unknown modifiers are ignored.
func parseTag(tag string) TagInfo {
	info := TagInfo{}
	if tag == "" {
		return info
	}

	for part := range strings.SplitSeq(tag, ",") {
		switch strings.TrimSpace(part) {
		case modMut:
			info.Mutable = true
		case modOpt:
			info.Optional = true
		}
	}

	return info
}
