package ecs_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/oriumgames/ecs"
)

type Transform struct {
	Pos mgl64.Vec3
}

type Motion struct {
	Vel mgl64.Vec3
}

type Gravity struct {
	Accel mgl64.Vec3
}

type body struct {
	Transform *Transform `ecs:"mut"`
	Motion    *Motion    `ecs:"mut"`
}

func fall(q ecs.Query[body], g ecs.Res[Gravity]) {
	for _, b := range q.Iter() {
		b.Motion.Vel = b.Motion.Vel.Add(g.Get().Accel)
		b.Transform.Pos = b.Transform.Pos.Add(b.Motion.Vel)
	}
}

func Example() {
	physics := ecs.NewBundle("physics").
		Resource(Gravity{Accel: mgl64.Vec3{0, -1, 0}}).
		System(ecs.Default, ecs.IntoSystem[ecs.Unit, ecs.Unit](fall))

	w, sched := ecs.NewBuilder().Bundle(physics).Build()
	e := w.Spawn(Transform{Pos: mgl64.Vec3{0, 10, 0}}, Motion{Vel: mgl64.Vec3{1, 0, 0}})

	for range 3 {
		sched.Run(w)
	}

	p := ecs.Get[Transform](w, e).Pos
	fmt.Printf("%.0f %.0f %.0f\n", p.X(), p.Y(), p.Z())
	fmt.Println(w.ChangeTick())
	// Output:
	// 3 4 0
	// 4
}

func ExampleIntoExclusiveSystem() {
	w := ecs.NewWorld()

	spawner := ecs.IntoExclusiveSystem[int, ecs.Unit](func(n ecs.In[int], w *ecs.World) {
		for range n.Value {
			w.Spawn(Transform{})
		}
	})
	spawner.Run(5, w)

	fmt.Println(w.Len())
	// Output: 5
}
