package ecs

import (
	"fmt"
	"runtime/debug"
)

// Schedule runs systems one at a time: stages in order, and systems within
// a stage in registration order. Each system is run, then applied, before
// the next one starts, so a system sees every deferred write of the systems
// before it.
type Schedule struct {
	systems [stageCount][]Runnable
}

// NewSchedule creates an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Add appends sys to the given stage.
func (s *Schedule) Add(stage Stage, sys Runnable) *Schedule {
	if !stage.valid() {
		panic(fmt.Sprintf("ecs: unknown stage %d", stage))
	}
	if sys == nil {
		panic("ecs: nil system")
	}
	s.systems[stage] = append(s.systems[stage], sys)
	return s
}

// Len returns the number of scheduled systems.
func (s *Schedule) Len() int {
	n := 0
	for _, stage := range s.systems {
		n += len(stage)
	}
	return n
}

// Systems returns the names of the systems in run order.
func (s *Schedule) Systems() []string {
	names := make([]string, 0, s.Len())
	for _, stage := range s.systems {
		for _, sys := range stage {
			names = append(names, sys.Name())
		}
	}
	return names
}

// Run runs every system once against w.
//
// A panicking system is logged with its name and stage, and the panic is
// re-raised. Borrows held by that system stay engaged.
func (s *Schedule) Run(w *World) {
	for stage := Before; stage < stageCount; stage++ {
		for _, sys := range s.systems[stage] {
			s.runOne(w, stage, sys)
		}
	}
}

func (s *Schedule) runOne(w *World, stage Stage, sys Runnable) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("ecs: system panicked",
				"system", sys.Name(),
				"stage", stage.String(),
				"tick", uint32(w.ChangeTick()),
				"panic", r,
				"stack", string(debug.Stack()),
			)
			panic(r)
		}
	}()
	sys.RunWorld(w)
}
