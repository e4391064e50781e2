package main

import (
	"fmt"
	"math/rand"

	"github.com/plus3/ces/ecs"
)

// generatedComponent carries a counter under a generated name. Every name
// in the pool is a distinct component kind.
type generatedComponent struct {
	name  string
	Value int
}

func (c *generatedComponent) Name() string { return c.name }

func componentPool(size int) []string {
	pool := make([]string, size)
	for i := range pool {
		pool[i] = fmt.Sprintf("component%03d", i)
	}
	return pool
}

// randomNames picks n distinct names from pool.
func randomNames(rng *rand.Rand, pool []string, n int) []string {
	n = min(n, len(pool))
	names := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		names = append(names, pool[i])
	}
	return names
}

func newRandomEntity(rng *rand.Rand, pool []string) *ecs.Entity {
	e := ecs.NewEntity()
	for _, name := range randomNames(rng, pool, rng.Intn(5)+1) {
		e.AddComponent(&generatedComponent{name: name, Value: rng.Intn(100)})
	}
	return e
}
