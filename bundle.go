package ecs

// Bundle groups related systems and resources together.
// Bundles are registered with the Builder and keep features apart.
type Bundle struct {
	name string

	// resources are inserted into the world before any system runs
	resources []any

	// systems are appended to the schedule in registration order
	systems []systemRegistration
}

// systemRegistration holds a system registration.
type systemRegistration struct {
	system Runnable
	stage  Stage
}

// NewBundle creates a new bundle with the given name.
func NewBundle(name string) *Bundle {
	return &Bundle{name: name}
}

// Name returns the bundle name.
func (b *Bundle) Name() string {
	return b.name
}

// Resource registers a resource inserted when the world is built.
// Pointers are stored as given, other values are copied.
func (b *Bundle) Resource(res any) *Bundle {
	b.resources = append(b.resources, res)
	return b
}

// System registers a system in the given stage.
func (b *Bundle) System(stage Stage, sys Runnable) *Bundle {
	b.systems = append(b.systems, systemRegistration{
		system: sys,
		stage:  stage,
	})
	return b
}

// Len returns the number of systems in the bundle.
func (b *Bundle) Len() int {
	return len(b.systems)
}
