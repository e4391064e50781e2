package main

import (
	"math/rand"

	"github.com/plus3/ces/ecs"
)

// querySystem owns one family. It counts membership events through the
// family signals and touches every member on update.
type querySystem struct {
	ecs.BaseSystem
	names []string

	onAdded   *ecs.Listener[ecs.FamilyEvent]
	onRemoved *ecs.Listener[ecs.FamilyEvent]

	added   int64
	removed int64
	visited int64
}

func newQuerySystem(names []string) *querySystem {
	s := &querySystem{names: names}
	s.onAdded = ecs.NewListener(func(ecs.FamilyEvent) { s.added++ })
	s.onRemoved = ecs.NewListener(func(ecs.FamilyEvent) { s.removed++ })
	return s
}

func (s *querySystem) AddedToWorld(w *ecs.World) {
	s.BaseSystem.AddedToWorld(w)
	w.EntityAdded(s.names...).Add(s.onAdded)
	w.EntityRemoved(s.names...).Add(s.onRemoved)
}

func (s *querySystem) RemovedFromWorld() {
	s.World.EntityAdded(s.names...).Remove(s.onAdded)
	s.World.EntityRemoved(s.names...).Remove(s.onRemoved)
	s.BaseSystem.RemovedFromWorld()
}

func (s *querySystem) Update(dt float64) {
	for _, e := range s.World.GetEntities(s.names...) {
		if c, ok := ecs.ReadComponent[*generatedComponent](e, s.names[0]); ok {
			c.Value++
		}
		s.visited++
	}
}

// churnSystem queues random component additions and removals, and
// occasionally replaces a whole entity, through the command buffer.
type churnSystem struct {
	ecs.BaseSystem
	rng       *rand.Rand
	pool      []string
	entities  []*ecs.Entity
	perUpdate int

	mutations    int64
	replacements int64
}

func (s *churnSystem) Update(dt float64) {
	if len(s.entities) == 0 {
		return
	}
	commands := s.World.Commands()
	for range s.perUpdate {
		i := s.rng.Intn(len(s.entities))
		e := s.entities[i]

		// Entities spawned earlier in this update are not registered yet.
		if s.rng.Intn(50) == 0 && s.World.HasEntity(e) {
			replacement := newRandomEntity(s.rng, s.pool)
			commands.RemoveEntity(e)
			commands.AddEntity(replacement)
			s.entities[i] = replacement
			s.replacements++
			continue
		}

		name := s.pool[s.rng.Intn(len(s.pool))]
		if e.HasComponent(name) {
			commands.RemoveComponent(e, name)
		} else {
			commands.AddComponent(e, &generatedComponent{name: name})
		}
		s.mutations++
	}
}
