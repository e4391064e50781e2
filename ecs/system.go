package ecs

import "errors"

// ErrNotImplemented is the panic value raised by BaseSystem.Update when the
// embedding system does not provide its own Update.
var ErrNotImplemented = errors.New("ecs: system update not implemented")

// System represents a behavior driven once per tick by World.Update.
// Systems are compared by identity, so register pointers.
type System interface {
	Update(dt float64)
}

// WorldAttacher is implemented by systems that want to know the world they
// were added to.
type WorldAttacher interface {
	AddedToWorld(w *World)
}

// WorldDetacher is implemented by systems that want to know when they were
// removed from their world.
type WorldDetacher interface {
	RemovedFromWorld()
}

// BaseSystem can be embedded to get the lifecycle hooks. The embedding type
// must define Update; the embedded one panics.
type BaseSystem struct {
	World *World
}

func (s *BaseSystem) AddedToWorld(w *World) {
	s.World = w
}

func (s *BaseSystem) RemovedFromWorld() {
	s.World = nil
}

// Update panics with ErrNotImplemented.
func (s *BaseSystem) Update(dt float64) {
	panic(ErrNotImplemented)
}
