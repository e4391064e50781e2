package ecs_test

import "github.com/plus3/ces/ecs"

// Common test component types
type CompA struct{}

func (CompA) Name() string { return "a" }

type CompB struct{}

func (CompB) Name() string { return "b" }

type CompC struct{}

func (CompC) Name() string { return "c" }

type Position struct {
	X, Y float32
}

func (*Position) Name() string { return "position" }

type Velocity struct {
	DX, DY float32
}

func (*Velocity) Name() string { return "velocity" }

type Health struct {
	Current int
	Max     int
}

func (*Health) Name() string { return "health" }

// Label is a component whose name is chosen per instance.
type Label struct {
	Key   string
	Value string
}

func (l Label) Name() string { return l.Key }

func newEntity(components ...ecs.Component) *ecs.Entity {
	e := ecs.NewEntity()
	for _, c := range components {
		e.AddComponent(c)
	}
	return e
}

func createEntityA() *ecs.Entity { return newEntity(CompA{}, CompB{}, CompC{}) }
func createEntityB() *ecs.Entity { return newEntity(CompA{}, CompB{}) }
func createEntityC() *ecs.Entity { return newEntity(CompA{}, CompC{}) }
