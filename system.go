package ecs

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// System is a function lifted into a runnable unit together with the
// persistent state of its parameters.
//
// A System is either uninitialized or initialized. Initialize builds the
// parameter state against a world; Run initializes lazily on first use and
// never re-initializes on its own. Call Initialize again to move a system to
// a different world.
type System[I, O any] interface {
	// Name returns the system name used in logs and traces.
	Name() string

	// Meta returns a copy of the system's metadata.
	Meta() SystemMeta

	// IsExclusive reports whether the system needs sole access to the world.
	IsExclusive() bool

	// HasDeferred reports whether the system buffers world writes until apply.
	HasDeferred() bool

	// Initialize builds the parameter state and resets LastRun to 0.
	Initialize(w *World)

	// IsInitialized reports whether Initialize has run.
	IsInitialized() bool

	// RunUnchecked runs the function without applying deferred work.
	// It panics if the system is not initialized.
	RunUnchecked(in I, w *World) O

	// ApplyDeferred releases the run's borrows and flushes deferred work.
	ApplyDeferred(w *World)

	// Run initializes if needed, runs the function and applies deferred work.
	Run(in I, w *World) O
}

const paramMessage = "ecs: system %s has no parameter state; initialize it before running it"

// runSystem is the Run contract shared by every System implementation.
func runSystem[I, O any](s System[I, O], in I, w *World) O {
	if !s.IsInitialized() {
		s.Initialize(w)
	}
	out := s.RunUnchecked(in, w)
	s.ApplyDeferred(w)
	return out
}

// funcSignature is the validated shape of a system function.
type funcSignature struct {
	fn        reflect.Value
	name      string
	hasInput  bool
	hasOutput bool
	params    []reflect.Type
}

var worldPtrType = reflect.TypeFor[*World]()

// analyzeFunc validates fn against the input and output types of a system.
// wrapped is In[I] for the system input I. Exclusive functions take *World
// right after the optional input.
func analyzeFunc(fn any, inType, wrapped, outType reflect.Type, exclusive bool) (*funcSignature, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("system must be a function, got %T", fn)
	}
	t := v.Type()
	sig := &funcSignature{fn: v, name: funcName(v)}

	if t.IsVariadic() {
		return nil, fmt.Errorf("system %s: variadic functions are not supported", sig.name)
	}

	next := 0
	if t.NumIn() > 0 && t.In(0) == wrapped {
		sig.hasInput = true
		next = 1
	} else if inType != unitType {
		return nil, fmt.Errorf("system %s: first parameter must be %s", sig.name, wrapped)
	}

	if exclusive {
		if t.NumIn() <= next || t.In(next) != worldPtrType {
			return nil, fmt.Errorf("system %s: exclusive systems take *ecs.World after their input", sig.name)
		}
		next++
	}

	for i := next; i < t.NumIn(); i++ {
		sig.params = append(sig.params, t.In(i))
	}

	switch t.NumOut() {
	case 0:
		if outType != unitType {
			return nil, fmt.Errorf("system %s: returns nothing, expected %s", sig.name, outType)
		}
	case 1:
		if !t.Out(0).AssignableTo(outType) {
			return nil, fmt.Errorf("system %s: returns %s, expected %s", sig.name, t.Out(0), outType)
		}
		sig.hasOutput = true
	default:
		return nil, fmt.Errorf("system %s: returns %d values, at most one is supported", sig.name, t.NumOut())
	}

	return sig, nil
}

// callSignature invokes the function and converts its result.
func callSignature[O any](sig *funcSignature, args []reflect.Value) O {
	var out O
	results := sig.fn.Call(args)
	if sig.hasOutput {
		reflect.ValueOf(&out).Elem().Set(results[0])
	}
	return out
}

// funcName returns the short name of a function, without its package path.
func funcName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return v.Type().String()
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
