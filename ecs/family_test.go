package ecs_test

import (
	"testing"

	"github.com/plus3/ces/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilySignature(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{nil, "$"},
		{[]string{"a"}, "$a"},
		{[]string{"a", "b"}, "$a,b"},
		{[]string{"b", "a"}, "$b,a"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ecs.Signature(tt.names))
			assert.Equal(t, tt.want, ecs.NewFamily(tt.names...).Signature())
		})
	}

	assert.Equal(t, []string{"a", "b"}, ecs.CanonicalNames([]string{"b", "a", "b"}))
	assert.NotEqual(t, ecs.NewFamily("a", "b").ID(), ecs.NewFamily("b", "a").ID())
	assert.Equal(t, ecs.NewFamily("a", "b").ID(), ecs.NewFamily("a", "b").ID())
}

func TestFamilyMembership(t *testing.T) {
	t.Run("adds matching entities once", func(t *testing.T) {
		family := ecs.NewFamily("a", "b")
		added := 0
		family.EntityAdded.Listen(func(ecs.FamilyEvent) { added++ })

		match := createEntityB()
		family.AddEntityIfMatch(match)
		family.AddEntityIfMatch(match)
		family.AddEntityIfMatch(createEntityC())

		assert.Equal(t, []*ecs.Entity{match}, family.Entities())
		assert.Equal(t, 1, added)
	})

	t.Run("remove entity emits without component", func(t *testing.T) {
		family := ecs.NewFamily("a")
		var events []ecs.FamilyEvent
		family.EntityRemoved.Listen(func(ev ecs.FamilyEvent) { events = append(events, ev) })

		entity := createEntityA()
		family.RemoveEntity(entity)
		assert.Empty(t, events)

		family.AddEntityIfMatch(entity)
		family.RemoveEntity(entity)

		require.Len(t, events, 1)
		assert.Same(t, entity, events[0].Entity)
		assert.Nil(t, events[0].Component)
		assert.False(t, family.Has(entity))
	})

	t.Run("component added makes entity match", func(t *testing.T) {
		family := ecs.NewFamily("a", "b", "c")
		entity := createEntityB()
		family.AddEntityIfMatch(entity)
		require.Equal(t, 0, family.Len())

		entity.AddComponent(CompC{})
		family.OnComponentAdded(ecs.ComponentEvent{Entity: entity, Name: "c", Component: CompC{}})

		assert.True(t, family.Has(entity))
	})

	t.Run("component removed carries the removed component", func(t *testing.T) {
		family := ecs.NewFamily("position")
		pos := &Position{}
		entity := newEntity(pos)
		family.AddEntityIfMatch(entity)

		var events []ecs.FamilyEvent
		family.EntityRemoved.Listen(func(ev ecs.FamilyEvent) { events = append(events, ev) })

		entity.RemoveComponent("position")
		family.OnComponentRemoved(ecs.ComponentEvent{Entity: entity, Name: "position", Component: pos})

		require.Len(t, events, 1)
		assert.Same(t, pos, events[0].Component)
		assert.Equal(t, 0, family.Len())
	})

	t.Run("unrelated removal keeps the entity", func(t *testing.T) {
		family := ecs.NewFamily("a")
		entity := createEntityA()
		family.AddEntityIfMatch(entity)

		entity.RemoveComponent("b")
		family.OnComponentRemoved(ecs.ComponentEvent{Entity: entity, Name: "b"})

		assert.True(t, family.Has(entity))
	})

	t.Run("removal for an uncached entity is ignored", func(t *testing.T) {
		family := ecs.NewFamily("a")
		removed := 0
		family.EntityRemoved.Listen(func(ecs.FamilyEvent) { removed++ })

		family.OnComponentRemoved(ecs.ComponentEvent{Entity: createEntityA(), Name: "a"})
		assert.Equal(t, 0, removed)
	})

	t.Run("duplicate required name removes once", func(t *testing.T) {
		family := ecs.NewFamily("a", "a")
		entity := createEntityA()
		family.AddEntityIfMatch(entity)

		removed := 0
		family.EntityRemoved.Listen(func(ecs.FamilyEvent) { removed++ })
		family.OnComponentRemoved(ecs.ComponentEvent{Entity: entity, Name: "a"})

		assert.Equal(t, 1, removed)
	})

	t.Run("empty family matches everything", func(t *testing.T) {
		family := ecs.NewFamily()
		entity := ecs.NewEntity()
		family.AddEntityIfMatch(entity)

		assert.True(t, family.Has(entity))
	})

	t.Run("names are copied", func(t *testing.T) {
		names := []string{"a", "b"}
		family := ecs.NewFamily(names...)
		names[0] = "z"

		assert.Equal(t, []string{"a", "b"}, family.Names())
		family.Names()[1] = "y"
		assert.Equal(t, "$a,b", family.Signature())
		assert.Equal(t, []string{"a", "b"}, family.Names())
	})
}
