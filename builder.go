package ecs

import (
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Builder configures a World and its Schedule.
// Use NewBuilder() to create a builder and chain configuration methods.
type Builder struct {
	cfg       Config
	log       *slog.Logger
	tracer    trace.Tracer
	bundles   []*Bundle
	resources []any
}

// NewBuilder creates a builder with the default configuration.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Config replaces the configuration.
func (b *Builder) Config(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// Logger sets the world logger. By default a text handler on stderr is
// used at the configured level.
func (b *Builder) Logger(log *slog.Logger) *Builder {
	b.log = log
	return b
}

// Tracer sets the tracer used for system spans, regardless of Config.Tracing.
func (b *Builder) Tracer(tracer trace.Tracer) *Builder {
	b.tracer = tracer
	return b
}

// Resource adds a world resource. Pointers are stored as given, other
// values are copied.
func (b *Builder) Resource(res any) *Builder {
	b.resources = append(b.resources, res)
	return b
}

// Bundle adds a bundle to the builder.
func (b *Builder) Bundle(bundle *Bundle) *Builder {
	b.bundles = append(b.bundles, bundle)
	return b
}

// Build creates the world and the schedule. Builder resources are inserted
// first, then bundle resources in bundle order; a later resource of the
// same type replaces an earlier one. Systems are initialized lazily on
// their first run.
func (b *Builder) Build() (*World, *Schedule) {
	level, err := b.cfg.Level()
	if err != nil {
		panic(err.Error())
	}

	log := b.log
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	tracer := b.tracer
	if tracer == nil {
		tracer = newTracer(b.cfg.Tracing)
	}

	w := newWorld(log, tracer, b.cfg.TraceBorrows)
	for _, res := range b.resources {
		w.InsertResourceValue(res)
	}

	sched := NewSchedule()
	for _, bundle := range b.bundles {
		for _, res := range bundle.resources {
			w.InsertResourceValue(res)
		}
		for _, reg := range bundle.systems {
			sched.Add(reg.stage, reg.system)
		}
		log.Debug("ecs: bundle added", "bundle", bundle.name, "systems", len(bundle.systems))
	}

	return w, sched
}
