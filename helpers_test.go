package ecs_test

import (
	"github.com/oriumgames/ecs"
)

type R1 struct {
	Value uint8
}

type Counter struct {
	N int
}

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Boost struct {
	Factor float64
}

type Frozen struct{}

type movement struct {
	Entity   ecs.Entity
	Position *Position `ecs:"mut"`
	Velocity *Velocity
	_        ecs.Without[Frozen]
}

type positions struct {
	Entity   ecs.Entity
	Position *Position
	Boost    *Boost `ecs:"opt"`
}

func getR1(r ecs.Res[R1]) uint8 {
	return r.Get().Value
}

func setR1(in ecs.In[uint8], r ecs.ResMut[R1]) {
	r.Get().Value = in.Value
}

// recovered runs f and returns what it panicked with, or nil.
func recovered(f func()) (r any) {
	defer func() {
		r = recover()
	}()
	f()
	return nil
}
