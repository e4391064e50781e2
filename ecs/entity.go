package ecs

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// EntityID uniquely identifies an entity for the lifetime of the process.
// Zero is never assigned and means "no entity".
type EntityID uint64

var lastEntityID atomic.Uint64

func nextEntityID() EntityID {
	return EntityID(lastEntityID.Add(1))
}

// Entity is an identifier plus a set of components keyed by name.
// Mutations are announced synchronously on OnComponentAdded and
// OnComponentRemoved.
type Entity struct {
	id         EntityID
	components map[string]Component

	OnComponentAdded   *Signal[ComponentEvent]
	OnComponentRemoved *Signal[ComponentEvent]
}

// NewEntity creates an entity with a fresh identifier and no components.
// The entity is not attached to any World.
func NewEntity() *Entity {
	return &Entity{
		id:                 nextEntityID(),
		components:         make(map[string]Component),
		OnComponentAdded:   NewSignal[ComponentEvent](),
		OnComponentRemoved: NewSignal[ComponentEvent](),
	}
}

// ID returns the entity's identifier.
func (e *Entity) ID() EntityID {
	return e.id
}

// HasComponent reports whether a component is stored under name.
func (e *Entity) HasComponent(name string) bool {
	_, ok := e.components[name]
	return ok
}

// GetComponent returns the component stored under name, or nil.
func (e *Entity) GetComponent(name string) Component {
	return e.components[name]
}

// AddComponent stores c under c.Name(), replacing any previous component
// with that name, then emits OnComponentAdded. Replacing does not emit a
// removal.
func (e *Entity) AddComponent(c Component) {
	if c == nil {
		panic("cannot add a nil component")
	}
	name := c.Name()
	e.components[name] = c
	e.OnComponentAdded.Emit(ComponentEvent{Entity: e, Name: name, Component: c})
}

// RemoveComponent deletes the component stored under name and emits
// OnComponentRemoved with the previous value. The signal fires even when
// nothing was stored under name; the event's Component is nil then.
func (e *Entity) RemoveComponent(name string) {
	previous := e.components[name]
	delete(e.components, name)
	e.OnComponentRemoved.Emit(ComponentEvent{Entity: e, Name: name, Component: previous})
}

// ComponentNames returns the names of the stored components, sorted.
func (e *Entity) ComponentNames() []string {
	names := make([]string, 0, len(e.components))
	for name := range e.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ComponentCount returns the number of stored components.
func (e *Entity) ComponentCount() int {
	return len(e.components)
}

func (e *Entity) String() string {
	return fmt.Sprintf("Entity(%d)", e.id)
}
