package ecs

import (
	"fmt"
	"log/slog"
	"reflect"
	"unsafe"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ChangeTick is the monotonic run counter of a World. It starts at 1 and
// advances by exactly one per system run. Wrap-around is not handled.
type ChangeTick uint32

// resourceMarker tags the resource entity and keeps it out of every query.
type resourceMarker struct{}

// World owns the component store, the change tick and the resource entity.
//
// A World is not safe for concurrent use. Systems run one at a time and
// their borrows are checked at run time: a conflicting access panics.
type World struct {
	id             uuid.UUID
	store          *store
	changeTick     ChangeTick
	resourceEntity Entity
	hidden         Bitmask

	log          *slog.Logger
	tracer       trace.Tracer
	traceBorrows bool
}

// NewWorld creates a world with the default configuration.
func NewWorld() *World {
	w, _ := NewBuilder().Build()
	return w
}

func newWorld(log *slog.Logger, tracer trace.Tracer, traceBorrows bool) *World {
	w := &World{
		id:           uuid.New(),
		store:        newStore(),
		changeTick:   1,
		log:          log,
		tracer:       tracer,
		traceBorrows: traceBorrows,
	}
	w.resourceEntity = w.store.spawn(resourceMarker{})
	w.hidden.Set(w.store.column(reflect.TypeFor[resourceMarker]()).id)
	return w
}

// ID returns the unique identity of this world instance.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Logger returns the world's logger.
func (w *World) Logger() *slog.Logger {
	return w.log
}

// ResourceEntity returns the entity hosting the world's resources.
func (w *World) ResourceEntity() Entity {
	return w.resourceEntity
}

// ChangeTick returns the current change tick.
func (w *World) ChangeTick() ChangeTick {
	return w.changeTick
}

// IncrementChangeTick advances the change tick and returns the new value.
func (w *World) IncrementChangeTick() ChangeTick {
	w.changeTick++
	return w.changeTick
}

// Spawn creates an entity with the given components. Pointers are stored as
// given, other values are copied; the component type is the pointee type in
// the first case and the value type in the second.
func (w *World) Spawn(components ...any) Entity {
	return w.store.spawn(components...)
}

// InsertOne adds or replaces one component on e, following Spawn's rules.
// It panics if e is dead or the component's column is borrowed.
func (w *World) InsertOne(e Entity, component any) {
	w.store.insertAny(e, component)
}

// Despawn removes e and all its components. It returns false if e is dead.
// The resource entity cannot be despawned.
func (w *World) Despawn(e Entity) bool {
	if e == w.resourceEntity {
		panic("ecs: cannot despawn the resource entity")
	}
	return w.store.despawn(e)
}

// Contains reports whether e is alive.
func (w *World) Contains(e Entity) bool {
	return w.store.contains(e)
}

// Len returns the number of live entities, not counting the resource entity.
func (w *World) Len() int {
	return w.store.entities.alive - 1
}

// Insert adds or replaces the T component of e. A pointer T is stored as
// given under its pointee type, as with Spawn.
func Insert[T any](w *World, e Entity, v T) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		w.store.insertAny(e, v)
		return
	}
	w.store.insert(e, t, unsafe.Pointer(&v))
}

// Get returns e's T component, or nil if e is dead or has none.
// It panics if T is exclusively borrowed by a running system.
func Get[T any](w *World, e Entity) *T {
	return (*T)(w.store.get(e, reflect.TypeFor[T]()))
}

// Has reports whether e carries a T component.
func Has[T any](w *World, e Entity) bool {
	c := w.store.existingColumn(reflect.TypeFor[T]())
	if c == nil {
		return false
	}
	m := w.store.entities.lookup(e)
	return m != nil && m.mask.Has(c.id)
}

// Remove deletes e's T component and reports whether there was one.
func Remove[T any](w *World, e Entity) bool {
	return w.store.remove(e, reflect.TypeFor[T]()) != nil
}

// InsertResource adds or replaces the resource T.
func InsertResource[T any](w *World, v T) {
	Insert(w, w.resourceEntity, v)
}

// InsertResourceValue adds or replaces a resource whose type is only known
// at run time, following Spawn's pointer rules.
func (w *World) InsertResourceValue(res any) {
	w.store.insertAny(w.resourceEntity, res)
}

// GetResource returns the resource T, or nil if the world has none.
func GetResource[T any](w *World) *T {
	return Get[T](w, w.resourceEntity)
}

// MustResource returns the resource T and panics if the world has none.
func MustResource[T any](w *World) *T {
	v := GetResource[T](w)
	if v == nil {
		panic(fmt.Sprintf("ecs: resource %s doesn't exist", reflect.TypeFor[T]()))
	}
	return v
}

// HasResource reports whether the world holds a resource T.
func HasResource[T any](w *World) bool {
	return Has[T](w, w.resourceEntity)
}

// RemoveResource deletes the resource T and reports whether there was one.
func RemoveResource[T any](w *World) bool {
	return Remove[T](w, w.resourceEntity)
}
