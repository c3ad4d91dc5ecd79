package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

// SystemMeta is the per-system record shared with its parameters.
// Parameters may update it during InitState; the system updates it on every run.
type SystemMeta struct {
	// Name is the system name for logs and traces
	Name string

	// LastRun is the change tick of the most recent run, 0 before the first
	LastRun ChangeTick

	// HasDeferred is set by parameters that buffer work until apply
	HasDeferred bool

	// Access lists the data the system's parameters declared at init
	Access AccessMeta
}

// AccessMeta describes what components and resources a system reads or writes.
// It is informational: this package never rejects a system because of it, but
// an external scheduler can use Conflicts to decide what may run side by side.
type AccessMeta struct {
	Reads     []reflect.Type
	Writes    []reflect.Type
	ResReads  []reflect.Type
	ResWrites []reflect.Type
}

func (a *AccessMeta) addComponent(t reflect.Type, mut bool) {
	if mut {
		a.Writes = appendUnique(a.Writes, t)
	} else {
		a.Reads = appendUnique(a.Reads, t)
	}
}

func (a *AccessMeta) addResource(t reflect.Type, mut bool) {
	if mut {
		a.ResWrites = appendUnique(a.ResWrites, t)
	} else {
		a.ResReads = appendUnique(a.ResReads, t)
	}
}

func appendUnique(s []reflect.Type, t reflect.Type) []reflect.Type {
	if slices.Contains(s, t) {
		return s
	}
	return append(s, t)
}

// Conflicts returns true if this access pattern conflicts with another.
func (a *AccessMeta) Conflicts(other *AccessMeta) bool {
	for _, w := range a.Writes {
		if slices.Contains(other.Reads, w) || slices.Contains(other.Writes, w) {
			return true
		}
	}
	for _, r := range a.Reads {
		if slices.Contains(other.Writes, r) {
			return true
		}
	}
	for _, w := range a.ResWrites {
		if slices.Contains(other.ResReads, w) || slices.Contains(other.ResWrites, w) {
			return true
		}
	}
	for _, r := range a.ResReads {
		if slices.Contains(other.ResWrites, r) {
			return true
		}
	}
	return false
}

// FieldMeta holds metadata about a single field of a query struct.
type FieldMeta struct {
	// Offset is the field offset in the struct for unsafe filling
	Offset uintptr

	// Name is the field name for debugging
	Name string

	// Kind is the role of the field
	Kind FieldKind

	// ComponentType is the component the field points to or filters on
	ComponentType reflect.Type

	// Optional indicates the field can be nil
	Optional bool

	// Mutable indicates the field takes an exclusive borrow
	Mutable bool

	column *column
}

// queryMeta is the reusable descriptor of a query struct against one World.
// It is computed once per parameter slot and reused by every run.
type queryMeta struct {
	Type    reflect.Type
	Fields  []FieldMeta
	Require Bitmask
	Exclude Bitmask

	// driving columns hold every required component; the smallest one drives iteration
	driving []*column
}

var entityType = reflect.TypeFor[Entity]()

// analyzeQuery analyzes a query struct type against a world's store.
func analyzeQuery(queryType reflect.Type, w *World) (*queryMeta, error) {
	if queryType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("query type must be a struct, got %v", queryType)
	}

	meta := &queryMeta{
		Type:    queryType,
		Exclude: w.hidden,
	}

	for i := 0; i < queryType.NumField(); i++ {
		field := queryType.Field(i)
		tag := parseTag(field.Tag.Get(tagName))

		fieldMeta := FieldMeta{
			Offset:   field.Offset,
			Name:     field.Name,
			Optional: tag.Optional,
			Mutable:  tag.Mutable,
		}

		if field.Type == entityType {
			fieldMeta.Kind = KindEntity
			meta.Fields = append(meta.Fields, fieldMeta)
			continue
		}

		if compType, isWithout, ok := getPhantomInfo(field.Type); ok {
			col := w.store.column(compType)
			if isWithout {
				fieldMeta.Kind = KindPhantomWithout
				meta.Exclude.Set(col.id)
			} else {
				fieldMeta.Kind = KindPhantomWith
				meta.Require.Set(col.id)
			}
			fieldMeta.ComponentType = compType
			meta.Fields = append(meta.Fields, fieldMeta)
			continue
		}

		if field.Type.Kind() != reflect.Pointer || field.Type.Elem().Kind() == reflect.Pointer {
			return nil, fmt.Errorf("query field %s.%s has unsupported type %s", queryType, field.Name, field.Type)
		}

		compType := field.Type.Elem()
		col := w.store.column(compType)
		fieldMeta.Kind = KindComponent
		fieldMeta.ComponentType = compType
		fieldMeta.column = col

		if !tag.Optional {
			meta.Require.Set(col.id)
			meta.driving = append(meta.driving, col)
		}

		meta.Fields = append(meta.Fields, fieldMeta)
	}

	if meta.Require.ContainsAny(meta.Exclude) {
		return nil, fmt.Errorf("query %s both requires and excludes the same component", queryType)
	}

	return meta, nil
}

// registerAccess records the query's borrows in a system's access list.
func (m *queryMeta) registerAccess(a *AccessMeta) {
	for i := range m.Fields {
		f := &m.Fields[i]
		if f.Kind == KindComponent {
			a.addComponent(f.ComponentType, f.Mutable)
		}
	}
}

// claims lists the column borrows the query needs, one per component field.
// Repeated fields are kept so that aliasing inside one query is caught by the store.
func (m *queryMeta) claims() []claim {
	var out []claim
	for i := range m.Fields {
		f := &m.Fields[i]
		if f.Kind == KindComponent {
			out = append(out, claim{col: f.column, mut: f.Mutable})
		}
	}
	return out
}

// matches reports whether e is live and passes the query filter.
func (m *queryMeta) matches(w *World, e Entity) bool {
	em := w.store.entities.lookup(e)
	return em != nil && em.mask.Matches(m.Require, m.Exclude)
}

// collect returns every entity currently matching the query.
func (m *queryMeta) collect(w *World) []Entity {
	var source []Entity
	if len(m.driving) > 0 {
		smallest := m.driving[0]
		for _, c := range m.driving[1:] {
			if c.len() < smallest.len() {
				smallest = c
			}
		}
		source = smallest.entities
	} else {
		source = w.store.entities.all()
	}

	out := make([]Entity, 0, len(source))
	for _, e := range source {
		if m.matches(w, e) {
			out = append(out, e)
		}
	}
	return out
}
