package ecs

import (
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// entityHooks are the World's listeners on one registered entity.
type entityHooks struct {
	added   *Listener[ComponentEvent]
	removed *Listener[ComponentEvent]
}

// World owns a set of registered entities, the systems driven by Update
// and the families built lazily from queries. A World is not safe for
// concurrent use.
type World struct {
	entities    *EntityList
	hooks       *intmap.Map[EntityID, entityHooks]
	families    []*Family
	familyIndex map[string]*Family
	systems     []*systemEntry
	commands    *Commands
	logger      *zap.Logger
	canonical   bool
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		entities:    NewEntityList(),
		hooks:       intmap.New[EntityID, entityHooks](256),
		familyIndex: make(map[string]*Family),
		commands:    newCommands(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddEntity registers e. It is first offered to every existing family
// with its current components, then the world subscribes to its mutation
// signals, then it joins the global entity list. Adding an entity that is
// already registered is a no-op.
func (w *World) AddEntity(e *Entity) {
	if w.entities.Has(e) {
		return
	}

	w.eachFamily(func(family *Family) { family.AddEntityIfMatch(e) })

	w.hooks.Put(e.id, entityHooks{
		added:   e.OnComponentAdded.Listen(w.onComponentAdded),
		removed: e.OnComponentRemoved.Listen(w.onComponentRemoved),
	})
	w.entities.Add(e)

	if ce := w.logger.Check(zap.DebugLevel, "entity added"); ce != nil {
		ce.Write(zap.Uint64("entity", uint64(e.id)), zap.Int("components", e.ComponentCount()))
	}
}

// RemoveEntity unregisters e: it leaves every family, the world stops
// listening to its mutation signals and it leaves the global list.
// Removing an unregistered entity is a no-op apart from family removal.
func (w *World) RemoveEntity(e *Entity) {
	w.eachFamily(func(family *Family) { family.RemoveEntity(e) })

	if hooks, ok := w.hooks.Get(e.id); ok {
		e.OnComponentAdded.Remove(hooks.added)
		e.OnComponentRemoved.Remove(hooks.removed)
		w.hooks.Del(e.id)
	}
	w.entities.Remove(e)

	if ce := w.logger.Check(zap.DebugLevel, "entity removed"); ce != nil {
		ce.Write(zap.Uint64("entity", uint64(e.id)))
	}
}

// HasEntity reports whether e is registered.
func (w *World) HasEntity(e *Entity) bool {
	return w.entities.Has(e)
}

// Entities returns every registered entity in registration order.
func (w *World) Entities() []*Entity {
	return w.entities.ToArray()
}

// EntityCount returns the number of registered entities.
func (w *World) EntityCount() int {
	return w.entities.Len()
}

// GetEntities returns the registered entities holding every named
// component, creating and back-filling the family on first use.
func (w *World) GetEntities(names ...string) []*Entity {
	return w.Family(names...).Entities()
}

// EntityAdded returns the signal fired when an entity starts matching the
// named components.
func (w *World) EntityAdded(names ...string) *Signal[FamilyEvent] {
	return w.Family(names...).EntityAdded
}

// EntityRemoved returns the signal fired when an entity stops matching
// the named components.
func (w *World) EntityRemoved(names ...string) *Signal[FamilyEvent] {
	return w.Family(names...).EntityRemoved
}

// Family returns the family for names, creating it if needed. A new
// family is back-filled from the registered entities in list order.
func (w *World) Family(names ...string) *Family {
	if w.canonical {
		names = CanonicalNames(names)
	}
	signature := Signature(names)
	if family, ok := w.familyIndex[signature]; ok {
		return family
	}

	family := NewFamily(names...)
	w.familyIndex[signature] = family
	w.families = append(w.families, family)

	for node := w.entities.Head(); node != nil; node = node.Next() {
		family.AddEntityIfMatch(node.Entity)
	}

	if ce := w.logger.Check(zap.DebugLevel, "family created"); ce != nil {
		ce.Write(
			zap.String("signature", signature),
			zap.Uint64("family", family.ID()),
			zap.Int("entities", family.Len()),
		)
	}
	return family
}

// Families returns the families in creation order.
func (w *World) Families() []*Family {
	families := make([]*Family, len(w.families))
	copy(families, w.families)
	return families
}

// eachFamily calls fn for every family, including families created by a
// listener while the walk is in progress. Families are never removed, so
// indexing stays valid.
func (w *World) eachFamily(fn func(*Family)) {
	for i := 0; i < len(w.families); i++ {
		fn(w.families[i])
	}
}

func (w *World) onComponentAdded(ev ComponentEvent) {
	w.eachFamily(func(family *Family) { family.OnComponentAdded(ev) })
}

func (w *World) onComponentRemoved(ev ComponentEvent) {
	w.eachFamily(func(family *Family) { family.OnComponentRemoved(ev) })
}
