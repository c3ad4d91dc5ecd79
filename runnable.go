package ecs

// Runnable is a system with its input and output erased, as stored by a
// Schedule. FunctionSystem and ExclusiveFunctionSystem implement it and run
// with the zero input.
type Runnable interface {
	Name() string
	RunWorld(w *World)
}

// RunnableFunc adapts a plain func(*World) to Runnable.
type RunnableFunc struct {
	name string
	fn   func(w *World)
}

// NewRunnableFunc names fn so it can be scheduled.
func NewRunnableFunc(name string, fn func(w *World)) RunnableFunc {
	return RunnableFunc{name: name, fn: fn}
}

// Name implements Runnable.
func (r RunnableFunc) Name() string {
	return r.name
}

// RunWorld implements Runnable.
func (r RunnableFunc) RunWorld(w *World) {
	r.fn(w)
}
