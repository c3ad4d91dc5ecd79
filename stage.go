package ecs

// Stage orders the systems of a Schedule.
// Systems are executed in stage order: Before → Default → After.
type Stage int

const (
	// Before stage runs first. Use for input handling and setup that
	// other systems depend on.
	Before Stage = iota

	// Default stage runs second and holds most systems.
	Default

	// After stage runs last. Use for cleanup and bookkeeping.
	After

	// stageCount is the total number of stages.
	stageCount
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case Before:
		return "Before"
	case Default:
		return "Default"
	case After:
		return "After"
	default:
		return "Unknown"
	}
}

// valid reports whether s names a real stage.
func (s Stage) valid() bool {
	return s >= Before && s < stageCount
}
