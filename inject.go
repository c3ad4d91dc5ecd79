package ecs

import (
	"unsafe"
)

// fillQuery writes e's component pointers into the query struct at dst.
// Optional fields whose component is missing are set to nil. Filters carry no data.
func fillQuery(dst unsafe.Pointer, meta *queryMeta, e Entity) {
	for i := range meta.Fields {
		field := &meta.Fields[i]

		switch field.Kind {
		case KindComponent:
			setFieldPtr(dst, field.Offset, field.column.get(e))

		case KindEntity:
			*(*Entity)(unsafe.Add(dst, field.Offset)) = e

		case KindPhantomWith, KindPhantomWithout:
			continue
		}
	}
}

// setFieldPtr sets a pointer field at the given offset.
func setFieldPtr(base unsafe.Pointer, offset uintptr, value unsafe.Pointer) {
	*(*unsafe.Pointer)(unsafe.Add(base, offset)) = value
}
