package ecs

import "go.uber.org/zap"

// Commands provides a buffer for deferred world operations that are
// executed after all systems ran in World.Update. Use it to mutate entities
// while iterating a family from inside a system.
type Commands struct {
	spawns  []*Entity
	deletes []*Entity
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type addComponentCommand struct {
	entity    *Entity
	component Component
}

type removeComponentCommand struct {
	entity *Entity
	name   string
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// AddEntity queues registering entity with the world.
func (c *Commands) AddEntity(entity *Entity) {
	c.spawns = append(c.spawns, entity)
}

// RemoveEntity queues unregistering entity from the world.
func (c *Commands) RemoveEntity(entity *Entity) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity *Entity, component Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity *Entity, name string) {
	c.removes = append(c.removes, removeComponentCommand{
		entity: entity,
		name:   name,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued operations to world and resets the buffer.
// Entity removals run first and win over any component operation or entity
// add queued for the same entity in the batch. Operations queued while the flush runs, by listeners or
// deferred funcs, stay buffered for the next flush.
func (c *Commands) Flush(world *World) {
	if c.Len() == 0 {
		return
	}
	batch := *c
	*c = Commands{}

	if ce := world.logger.Check(zap.DebugLevel, "flushing commands"); ce != nil {
		ce.Write(
			zap.Int("spawns", len(batch.spawns)),
			zap.Int("deletes", len(batch.deletes)),
			zap.Int("adds", len(batch.adds)),
			zap.Int("removes", len(batch.removes)),
			zap.Int("defers", len(batch.defers)),
		)
	}

	deletedEntities := make(map[EntityID]bool, len(batch.deletes))

	for _, entity := range batch.deletes {
		world.RemoveEntity(entity)
		deletedEntities[entity.id] = true
	}

	for _, cmd := range batch.removes {
		if !deletedEntities[cmd.entity.id] {
			cmd.entity.RemoveComponent(cmd.name)
		}
	}

	for _, cmd := range batch.adds {
		if !deletedEntities[cmd.entity.id] {
			cmd.entity.AddComponent(cmd.component)
		}
	}

	for _, entity := range batch.spawns {
		if !deletedEntities[entity.id] {
			world.AddEntity(entity)
		}
	}

	for _, df := range batch.defers {
		df.fn()
	}
}

// Commands returns the world's deferred command buffer.
func (w *World) Commands() *Commands {
	return w.commands
}

// FlushCommands applies the queued commands immediately.
func (w *World) FlushCommands() {
	w.commands.Flush(w)
}
