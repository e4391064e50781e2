package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

const defaultListCapacity = 64

// EntityNode links an entity into an EntityList.
type EntityNode struct {
	Entity *Entity
	next   *EntityNode
	prev   *EntityNode
}

// Next returns the following node, or nil at the tail.
func (n *EntityNode) Next() *EntityNode { return n.next }

// Prev returns the preceding node, or nil at the head.
func (n *EntityNode) Prev() *EntityNode { return n.prev }

// EntityList is a doubly-linked list of entities with an id index, giving
// O(1) add, remove and membership checks while keeping insertion order.
type EntityList struct {
	head   *EntityNode
	tail   *EntityNode
	length int
	nodes  *intmap.Map[EntityID, *EntityNode]
}

// NewEntityList creates an empty list.
func NewEntityList() *EntityList {
	return &EntityList{
		nodes: intmap.New[EntityID, *EntityNode](defaultListCapacity),
	}
}

// Head returns the first node, or nil if the list is empty.
func (l *EntityList) Head() *EntityNode { return l.head }

// Tail returns the last node, or nil if the list is empty.
func (l *EntityList) Tail() *EntityNode { return l.tail }

// Len returns the number of entities in the list.
func (l *EntityList) Len() int { return l.length }

// Add appends e to the tail. Adding an entity that is already present is
// a no-op.
func (l *EntityList) Add(e *Entity) {
	if _, ok := l.nodes.Get(e.id); ok {
		return
	}

	node := &EntityNode{Entity: e}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.prev = l.tail
		l.tail.next = node
		l.tail = node
	}
	l.length++
	l.nodes.Put(e.id, node)
}

// Remove unlinks e. Removing an entity that is not present is a no-op.
func (l *EntityList) Remove(e *Entity) {
	node, ok := l.nodes.Get(e.id)
	if !ok {
		return
	}

	if node.prev == nil {
		l.head = node.next
	} else {
		node.prev.next = node.next
	}
	if node.next == nil {
		l.tail = node.prev
	} else {
		node.next.prev = node.prev
	}
	node.next = nil
	node.prev = nil

	l.length--
	l.nodes.Del(e.id)
}

// Has reports whether e is in the list.
func (l *EntityList) Has(e *Entity) bool {
	_, ok := l.nodes.Get(e.id)
	return ok
}

// Clear drops every entity.
func (l *EntityList) Clear() {
	l.head = nil
	l.tail = nil
	l.length = 0
	l.nodes = intmap.New[EntityID, *EntityNode](defaultListCapacity)
}

// ToArray returns the entities from head to tail. The slice is a snapshot
// and is safe to iterate while mutating the list.
func (l *EntityList) ToArray() []*Entity {
	entities := make([]*Entity, 0, l.length)
	for node := l.head; node != nil; node = node.next {
		entities = append(entities, node.Entity)
	}
	return entities
}

// All iterates over a snapshot of the list from head to tail.
func (l *EntityList) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range l.ToArray() {
			if !yield(e) {
				return
			}
		}
	}
}
