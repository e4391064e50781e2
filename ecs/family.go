package ecs

import (
	"slices"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	signaturePrefix    = "$"
	signatureDelimiter = ","
)

// FamilyEvent is emitted when an entity enters or leaves a family.
// Component is set only when the entity left because that component was
// removed from it.
type FamilyEvent struct {
	Entity    *Entity
	Component Component
}

// Family caches every offered entity that holds all of a fixed set of
// component names. It never discovers entities itself: entities must be
// offered with AddEntityIfMatch and the family must be told about their
// component mutations.
type Family struct {
	names     []string
	signature string
	id        uint64
	entities  *EntityList

	EntityAdded   *Signal[FamilyEvent]
	EntityRemoved *Signal[FamilyEvent]
}

// NewFamily creates a family requiring every name in names, in the order
// given.
func NewFamily(names ...string) *Family {
	names = slices.Clone(names)
	signature := Signature(names)
	return &Family{
		names:         names,
		signature:     signature,
		id:            xxhash.Sum64String(signature),
		entities:      NewEntityList(),
		EntityAdded:   NewSignal[FamilyEvent](),
		EntityRemoved: NewSignal[FamilyEvent](),
	}
}

// Signature returns the registry key for a list of component names. The
// key is order sensitive: ("a", "b") and ("b", "a") differ.
func Signature(names []string) string {
	return signaturePrefix + strings.Join(names, signatureDelimiter)
}

// CanonicalNames returns a sorted copy of names with duplicates removed.
func CanonicalNames(names []string) []string {
	canonical := slices.Clone(names)
	sort.Strings(canonical)
	return slices.Compact(canonical)
}

// Names returns the required component names.
func (f *Family) Names() []string {
	return slices.Clone(f.names)
}

// Signature returns the family's registry key.
func (f *Family) Signature() string {
	return f.signature
}

// ID returns a 64-bit hash of the signature.
func (f *Family) ID() uint64 {
	return f.id
}

// Entities returns the matching entities in cache order.
func (f *Family) Entities() []*Entity {
	return f.entities.ToArray()
}

// Len returns the number of matching entities.
func (f *Family) Len() int {
	return f.entities.Len()
}

// Has reports whether e is currently cached.
func (f *Family) Has(e *Entity) bool {
	return f.entities.Has(e)
}

// Matches reports whether e holds every required component.
func (f *Family) Matches(e *Entity) bool {
	return HasComponents(e, f.names...)
}

// AddEntityIfMatch caches e and emits EntityAdded if e is not cached yet
// and holds every required component.
func (f *Family) AddEntityIfMatch(e *Entity) {
	if f.entities.Has(e) || !f.Matches(e) {
		return
	}
	f.entities.Add(e)
	f.EntityAdded.Emit(FamilyEvent{Entity: e})
}

// RemoveEntity drops e and emits EntityRemoved if e is cached.
func (f *Family) RemoveEntity(e *Entity) {
	if !f.entities.Has(e) {
		return
	}
	f.entities.Remove(e)
	f.EntityRemoved.Emit(FamilyEvent{Entity: e})
}

// OnComponentAdded re-tests membership after a component was added.
// An addition can only make an entity start matching.
func (f *Family) OnComponentAdded(ev ComponentEvent) {
	f.AddEntityIfMatch(ev.Entity)
}

// OnComponentRemoved drops a cached entity if the removed name is
// required, passing the removed component along with the event.
func (f *Family) OnComponentRemoved(ev ComponentEvent) {
	if !f.entities.Has(ev.Entity) {
		return
	}
	if !slices.Contains(f.names, ev.Name) {
		return
	}
	f.entities.Remove(ev.Entity)
	f.EntityRemoved.Emit(FamilyEvent{Entity: ev.Entity, Component: ev.Component})
}

// HasComponents reports whether e holds a component under every name.
func HasComponents(e *Entity, names ...string) bool {
	for _, name := range names {
		if !e.HasComponent(name) {
			return false
		}
	}
	return true
}
