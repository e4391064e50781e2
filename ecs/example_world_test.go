package ecs_test

import (
	"fmt"

	"github.com/plus3/ces/ecs"
)

// ExampleWorld_EntityAdded demonstrates reacting to family membership.
// The signal fires when an entity is registered with the components already
// attached, and again when a later AddComponent makes another entity match.
func ExampleWorld_EntityAdded() {
	world := ecs.NewWorld()

	world.EntityAdded("transform", "speed").Listen(func(ev ecs.FamilyEvent) {
		fmt.Printf("moving: %v\n", ev.Entity.ComponentNames())
	})
	world.EntityRemoved("transform", "speed").Listen(func(ev ecs.FamilyEvent) {
		if ev.Component != nil {
			fmt.Printf("stopped: lost %s\n", ev.Component.Name())
			return
		}
		fmt.Println("stopped: entity removed")
	})

	runner := ecs.NewEntity()
	runner.AddComponent(&Transform{})
	runner.AddComponent(&Speed{DX: 1})
	world.AddEntity(runner)

	statue := ecs.NewEntity()
	statue.AddComponent(&Transform{})
	world.AddEntity(statue)
	statue.AddComponent(&Speed{DY: 2})

	runner.RemoveComponent("speed")
	world.RemoveEntity(statue)

	// Output:
	// moving: [speed transform]
	// moving: [speed transform]
	// stopped: lost speed
	// stopped: entity removed
}

// ExampleWorld_GetEntities demonstrates cached queries. The first query for
// a combination builds its family from the registered entities; later
// queries reuse the cache.
func ExampleWorld_GetEntities() {
	world := ecs.NewWorld()

	for i := range 6 {
		e := ecs.NewEntity()
		e.AddComponent(&Transform{X: float32(i)})
		if i%2 == 0 {
			e.AddComponent(&Speed{})
		}
		if i%3 == 0 {
			e.AddComponent(&Hitpoints{Current: 10, Max: 10})
		}
		world.AddEntity(e)
	}

	fmt.Println(len(world.GetEntities("transform")))
	fmt.Println(len(world.GetEntities("transform", "speed")))
	fmt.Println(len(world.GetEntities("transform", "speed", "hitpoints")))
	fmt.Println(world.Family("transform", "speed").Signature())

	// Output:
	// 6
	// 3
	// 1
	// $transform,speed
}
