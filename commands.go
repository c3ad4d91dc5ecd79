package ecs

// Commands is a system parameter queueing structural changes to the world.
// Queued commands run in order when the system applies its deferred work,
// after every borrow of the run has been released.
type Commands struct {
	q *commandQueue
}

type commandQueue struct {
	cmds []func(w *World)
}

// InitState implements SystemParam.
func (Commands) InitState(_ *World, meta *SystemMeta) ParamState {
	meta.HasDeferred = true
	return &commandQueue{}
}

func (q *commandQueue) Get(*SystemMeta, *World, ChangeTick) any {
	return Commands{q: q}
}

func (q *commandQueue) Apply(_ *SystemMeta, w *World) {
	cmds := q.cmds
	q.cmds = nil
	for _, cmd := range cmds {
		cmd(w)
	}
}

func (q *commandQueue) deferred() bool {
	return true
}

// Len returns the number of queued commands.
func (c Commands) Len() int {
	return len(c.q.cmds)
}

// Add queues an arbitrary world mutation.
func (c Commands) Add(fn func(w *World)) {
	c.q.cmds = append(c.q.cmds, fn)
}

// Spawn queues the creation of an entity. then, if not nil, receives it.
func (c Commands) Spawn(then func(Entity), components ...any) {
	c.Add(func(w *World) {
		e := w.Spawn(components...)
		if then != nil {
			then(e)
		}
	})
}

// Insert queues adding or replacing a component on e.
func (c Commands) Insert(e Entity, component any) {
	c.Add(func(w *World) {
		w.InsertOne(e, component)
	})
}

// Despawn queues the removal of e and all its components.
func (c Commands) Despawn(e Entity) {
	c.Add(func(w *World) {
		w.Despawn(e)
	})
}

// InsertResource queues adding or replacing a resource.
func (c Commands) InsertResource(res any) {
	c.Add(func(w *World) {
		w.InsertResourceValue(res)
	})
}

// QueueRemove queues the removal of e's T component.
func QueueRemove[T any](c Commands, e Entity) {
	c.Add(func(w *World) {
		Remove[T](w, e)
	})
}
