package ecs

// Local is a value private to one system, kept across its runs.
// It starts as the zero T and works in function and exclusive systems alike.
type Local[T any] struct {
	value *T
}

// Get returns the system's value.
func (l Local[T]) Get() *T {
	return l.value
}

type localState[T any] struct {
	NopApply
	value *T
}

// InitState implements SystemParam.
func (Local[T]) InitState(*World, *SystemMeta) ParamState {
	return &localState[T]{value: new(T)}
}

// InitExclusive implements ExclusiveSystemParam.
func (Local[T]) InitExclusive(*World, *SystemMeta) ExclusiveParamState {
	return &localState[T]{value: new(T)}
}

// Get implements ParamState.
func (s *localState[T]) Get(*SystemMeta, *World, ChangeTick) any {
	return Local[T]{value: s.value}
}

// GetExclusive implements ExclusiveParamState.
func (s *localState[T]) GetExclusive(*SystemMeta) any {
	return Local[T]{value: s.value}
}
