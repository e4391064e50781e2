package ecs_test

import (
	"testing"

	"github.com/plus3/ces/ecs"
	"github.com/stretchr/testify/assert"
)

type testSpawnSystem struct {
	ecs.BaseSystem
	executed bool
}

func (s *testSpawnSystem) Update(dt float64) {
	s.executed = true
	s.World.Commands().AddEntity(newEntity(&Position{X: 1, Y: 2}, &Velocity{DX: 0.5, DY: 0.5}))
	s.World.Commands().AddEntity(newEntity(&Position{X: 3, Y: 4}))
}

// stripSystem removes velocity from every moving entity while iterating
// the family.
type stripSystem struct {
	ecs.BaseSystem
	seen int
}

func (s *stripSystem) Update(dt float64) {
	for _, e := range s.World.GetEntities("position", "velocity") {
		s.seen++
		s.World.Commands().RemoveComponent(e, "velocity")
	}
}

func TestCommands(t *testing.T) {
	t.Run("spawn entities", func(t *testing.T) {
		world := ecs.NewWorld()
		system := &testSpawnSystem{}
		world.AddSystem(system)

		assert.Empty(t, world.GetEntities("position"))

		world.Update(1.0)

		assert.True(t, system.executed)
		assert.Len(t, world.GetEntities("position"), 2)
		assert.Len(t, world.GetEntities("position", "velocity"), 1)
		assert.Equal(t, 0, world.Commands().Len())
	})

	t.Run("mutations are applied after systems", func(t *testing.T) {
		world := ecs.NewWorld()
		for range 3 {
			world.AddEntity(newEntity(&Position{}, &Velocity{}))
		}
		strip := &stripSystem{}
		world.AddSystem(strip)

		world.Update(1.0)

		assert.Equal(t, 3, strip.seen)
		assert.Empty(t, world.GetEntities("position", "velocity"))
		assert.Len(t, world.GetEntities("position"), 3)
	})

	t.Run("add and remove components", func(t *testing.T) {
		world := ecs.NewWorld()
		e := newEntity(&Position{})
		world.AddEntity(e)

		world.Commands().AddComponent(e, &Velocity{DX: 5, DY: 10})
		assert.False(t, e.HasComponent("velocity"))

		world.FlushCommands()
		assert.True(t, e.HasComponent("velocity"))
		assert.Len(t, world.GetEntities("velocity"), 1)

		world.Commands().RemoveComponent(e, "position")
		world.FlushCommands()
		assert.False(t, e.HasComponent("position"))
		assert.Empty(t, world.GetEntities("position"))
	})

	t.Run("removed entities skip component commands", func(t *testing.T) {
		world := ecs.NewWorld()
		e := newEntity(&Position{})
		world.AddEntity(e)

		world.Commands().AddComponent(e, &Velocity{})
		world.Commands().RemoveEntity(e)
		world.FlushCommands()

		assert.False(t, world.HasEntity(e))
		assert.False(t, e.HasComponent("velocity"))
	})

	t.Run("removal wins over a queued add of the same entity", func(t *testing.T) {
		world := ecs.NewWorld()
		family := world.Family("position")
		e := newEntity(&Position{})

		world.Commands().AddEntity(e)
		world.Commands().RemoveEntity(e)
		world.FlushCommands()

		assert.False(t, world.HasEntity(e))
		assert.Equal(t, 0, family.Len())
		assert.Equal(t, 0, world.Commands().Len())
	})

	t.Run("defer runs last", func(t *testing.T) {
		world := ecs.NewWorld()
		var order []string
		spawned := newEntity(&Health{})

		world.Commands().Defer(func() {
			order = append(order, "defer")
			assert.True(t, world.HasEntity(spawned))
		})
		world.Commands().AddEntity(spawned)
		world.FlushCommands()

		assert.Equal(t, []string{"defer"}, order)
	})

	t.Run("flush resets the buffer", func(t *testing.T) {
		world := ecs.NewWorld()
		count := 0
		world.Commands().Defer(func() { count++ })

		world.FlushCommands()
		world.FlushCommands()
		assert.Equal(t, 1, count)
	})
}

func TestCommandsQueuedDuringFlush(t *testing.T) {
	world := ecs.NewWorld()
	e := newEntity(&Position{})
	world.AddEntity(e)

	world.EntityRemoved("position").Listen(func(ev ecs.FamilyEvent) {
		world.Commands().AddEntity(newEntity(&Position{X: 9}))
	})
	world.Commands().Defer(func() {
		world.Commands().RemoveComponent(e, "position")
	})

	world.Commands().RemoveEntity(e)
	world.FlushCommands()

	assert.False(t, world.HasEntity(e))
	assert.Equal(t, 2, world.Commands().Len())

	world.FlushCommands()
	entities := world.GetEntities("position")
	if assert.Len(t, entities, 1) {
		assert.Equal(t, float32(9), entities[0].GetComponent("position").(*Position).X)
	}
	assert.False(t, e.HasComponent("position"))
	assert.Equal(t, 0, world.Commands().Len())
}
