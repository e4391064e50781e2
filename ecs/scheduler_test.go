package ecs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plus3/ces/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	ecs.BaseSystem
	ExecuteCount int
	LastDelta    float64
}

func (s *MovementSystem) Update(dt float64) {
	s.ExecuteCount++
	s.LastDelta = dt
	for _, e := range s.World.GetEntities("position", "velocity") {
		pos := e.GetComponent("position").(*Position)
		vel := e.GetComponent("velocity").(*Velocity)
		pos.X += vel.DX * float32(dt)
		pos.Y += vel.DY * float32(dt)
	}
}

type HealthSystem struct {
	ecs.BaseSystem
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Update(dt float64) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for _, e := range s.World.GetEntities("health") {
		s.TotalHealth += float64(e.GetComponent("health").(*Health).Current)
	}
}

type orderSystem struct {
	name  string
	order *[]string
}

func (s *orderSystem) Update(dt float64) {
	*s.order = append(*s.order, s.name)
}

type unimplementedSystem struct {
	ecs.BaseSystem
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		world := ecs.NewWorld()
		var order []string
		first := &orderSystem{name: "first", order: &order}
		second := &orderSystem{name: "second", order: &order}

		assert.Same(t, world, world.AddSystem(first).AddSystem(second))

		world.Update(1.0)
		world.Update(1.0)
		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	})

	t.Run("lifecycle hooks", func(t *testing.T) {
		world := ecs.NewWorld()
		movement := &MovementSystem{}

		world.AddSystem(movement)
		assert.Same(t, world, movement.World)

		assert.True(t, world.RemoveSystem(movement))
		assert.Nil(t, movement.World)
		assert.False(t, world.RemoveSystem(movement))
		assert.Empty(t, world.Systems())
	})

	t.Run("remove drops the first registration", func(t *testing.T) {
		world := ecs.NewWorld()
		var order []string
		sys := &orderSystem{name: "dup", order: &order}
		other := &orderSystem{name: "other", order: &order}
		world.AddSystem(sys).AddSystem(other).AddSystem(sys)

		world.RemoveSystem(sys)
		assert.Equal(t, []ecs.System{other, sys}, world.Systems())
	})

	t.Run("uncomparable systems are not removed", func(t *testing.T) {
		world := ecs.NewWorld()
		sys := sliceSystem{steps: []int{1}}
		world.AddSystem(sys)

		assert.NotPanics(t, func() {
			assert.False(t, world.RemoveSystem(sys))
		})
		assert.Len(t, world.Systems(), 1)
		assert.False(t, world.RemoveSystem(nil))
	})

	t.Run("custom state persistence", func(t *testing.T) {
		world := ecs.NewWorld()
		world.AddEntity(newEntity(&Health{Current: 50, Max: 100}))
		world.AddEntity(newEntity(&Health{Current: 75, Max: 100}))

		health := &HealthSystem{}
		world.AddSystem(health)
		world.Update(1.0)
		assert.Equal(t, 125.0, health.TotalHealth)

		world.AddEntity(newEntity(&Health{Current: 25, Max: 100}))
		world.Update(1.0)
		assert.Equal(t, 150.0, health.TotalHealth)
		assert.Equal(t, 2, health.ExecuteCount)
	})

	t.Run("delta time is forwarded", func(t *testing.T) {
		world := ecs.NewWorld()
		pos := &Position{}
		world.AddEntity(newEntity(pos, &Velocity{DX: 10, DY: 20}))

		movement := &MovementSystem{}
		world.AddSystem(movement)
		world.Update(0.5)

		assert.Equal(t, 0.5, movement.LastDelta)
		assert.Equal(t, float32(5), pos.X)
		assert.Equal(t, float32(10), pos.Y)
	})

	t.Run("base update panics", func(t *testing.T) {
		world := ecs.NewWorld()
		world.AddSystem(&unimplementedSystem{})

		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.True(t, errors.Is(err, ecs.ErrNotImplemented))
		}()
		world.Update(1.0)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		world := ecs.NewWorld()
		movement := &MovementSystem{}
		world.AddSystem(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			world.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("world did not stop after context cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})
}

// sliceSystem is registered by value and cannot be compared.
type sliceSystem struct {
	steps []int
}

func (sliceSystem) Update(dt float64) {}
