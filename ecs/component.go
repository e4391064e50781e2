package ecs

// Component is a named data record attached to an entity. The name acts as
// the component's type tag: an entity holds at most one component per name.
type Component interface {
	Name() string
}

// ComponentEvent is emitted by an entity when a component is added or
// removed. On removal Component holds the previous value, or nil when
// nothing was stored under Name.
type ComponentEvent struct {
	Entity    *Entity
	Name      string
	Component Component
}

// ReadComponent returns the component stored under name as a T.
// It reports false if the entity has no such component or it is not a T.
func ReadComponent[T Component](e *Entity, name string) (T, bool) {
	c, ok := e.components[name]
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}
