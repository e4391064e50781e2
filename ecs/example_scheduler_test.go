package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/ces/ecs"
)

type Transform struct {
	X, Y float32
}

func (*Transform) Name() string { return "transform" }

type Speed struct {
	DX, DY float32
}

func (*Speed) Name() string { return "speed" }

type Hitpoints struct {
	Current, Max int
}

func (*Hitpoints) Name() string { return "hitpoints" }

type PhysicsSystem struct {
	ecs.BaseSystem
}

func (s *PhysicsSystem) Update(dt float64) {
	for _, e := range s.World.GetEntities("transform", "speed") {
		transform := e.GetComponent("transform").(*Transform)
		speed := e.GetComponent("speed").(*Speed)
		transform.X += speed.DX * float32(dt)
		transform.Y += speed.DY * float32(dt)
	}
}

type HealingSystem struct {
	ecs.BaseSystem
	RegenRate float32
}

func (s *HealingSystem) Update(dt float64) {
	for _, e := range s.World.GetEntities("hitpoints") {
		hp := e.GetComponent("hitpoints").(*Hitpoints)
		if hp.Current < hp.Max {
			hp.Current += int(s.RegenRate * float32(dt))
			if hp.Current > hp.Max {
				hp.Current = hp.Max
			}
		}
	}
}

// ExampleWorld_Update demonstrates building a game loop with multiple systems.
// Systems embed BaseSystem to receive their world when added and run in
// registration order on every Update.
func ExampleWorld_Update() {
	world := ecs.NewWorld()

	for _, spawn := range []struct {
		x, y, dx, dy float32
		hp           int
	}{
		{0, 0, 10, 5, 80},
		{100, 100, -5, -5, 50},
	} {
		e := ecs.NewEntity()
		e.AddComponent(&Transform{X: spawn.x, Y: spawn.y})
		e.AddComponent(&Speed{DX: spawn.dx, DY: spawn.dy})
		e.AddComponent(&Hitpoints{Current: spawn.hp, Max: 100})
		world.AddEntity(e)
	}

	world.AddSystem(&PhysicsSystem{}).AddSystem(&HealingSystem{RegenRate: 10})

	world.Update(1.0)

	fmt.Println("After one frame:")
	for _, e := range world.GetEntities("transform", "hitpoints") {
		transform := e.GetComponent("transform").(*Transform)
		hp := e.GetComponent("hitpoints").(*Hitpoints)
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n",
			transform.X, transform.Y, hp.Current, hp.Max)
	}

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleWorld_Run demonstrates running a continuous game loop.
// Run blocks and updates all systems at a fixed interval until the context
// is cancelled.
func ExampleWorld_Run() {
	world := ecs.NewWorld()

	e := ecs.NewEntity()
	e.AddComponent(&Transform{})
	e.AddComponent(&Speed{DX: 1, DY: 1})
	world.AddEntity(e)

	world.AddSystem(&PhysicsSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	world.Run(ctx, 16*time.Millisecond)

	fmt.Println("World stopped")
	// Output:
	// World stopped
}
