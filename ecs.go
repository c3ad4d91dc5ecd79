// Package ecs provides the system layer of an Entity Component System:
// plain Go functions lifted into systems whose arguments are fetched from a
// World before every run.
//
// The package offers:
//   - A World holding entities, components and a resource entity
//   - Reflection-driven dependency injection of system parameters
//   - Run-time borrow checking of every component and resource access
//   - Deferred structural changes through Commands
//   - Exclusive systems with direct access to the World
//   - A sequential, staged Schedule assembled from Bundles
//
// # Quick Start
//
//	type Score struct{ Value int }
//
//	func addPoints(in ecs.In[int], score ecs.ResMut[Score]) {
//	    score.Get().Value += in.Value
//	}
//
//	w := ecs.NewWorld()
//	ecs.InsertResource(w, Score{})
//
//	sys := ecs.IntoSystem[int, ecs.Unit](addPoints)
//	sys.Run(5, w)
//
// # Parameters
//
// A system function may take, in this order:
//
//	ecs.In[I]          the run input, only if I is not ecs.Unit
//	ecs.Query[Q]       iterate matching entities
//	ecs.View[Q]        random access by Entity
//	ecs.Res[T]         shared resource
//	ecs.ResMut[T]      exclusive resource
//	ecs.Commands       deferred world changes
//	ecs.Local[T]       per-system persistent value
//
// Any type implementing SystemParam can be used as well.
//
// # Queries
//
// Queries declare their rows as structs with pointer fields:
//
//	type Movement struct {
//	    Entity   ecs.Entity
//	    Position *Position `ecs:"mut"` // Required, exclusive
//	    Velocity *Velocity             // Required, shared
//	    Boost    *Boost    `ecs:"opt"` // Optional (nil if missing)
//	    _        ecs.With[Player]      // Must have Player
//	    _        ecs.Without[Frozen]   // Skip if Frozen exists
//	}
//
// # Tag Reference
//
//	(none)        Required read-only component
//	ecs:"mut"     Required mutable component
//	ecs:"opt"     Optional (nil if missing)
//	ecs:"opt,mut" Optional mutable
//
// # Borrowing
//
// Parameters borrow their data when the system starts and give it back when
// the system applies. Two borrows that would alias mutable data panic, as do
// structural changes to a borrowed component type. Handles must not be kept
// after the system returns.
package ecs

// Version is the package version.
const Version = "1.0.0"
