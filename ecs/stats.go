package ecs

// WorldStats is a snapshot of a world's registries.
type WorldStats struct {
	EntityCount     int
	FamilyCount     int
	SystemCount     int
	FamilyBreakdown []FamilyStats
}

// FamilyStats describes one family.
type FamilyStats struct {
	ID                   uint64
	Signature            string
	Names                []string
	EntityCount          int
	AddedListenerCount   int
	RemovedListenerCount int
}

// CollectStats gathers entity, system and family counts.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		EntityCount:     w.entities.Len(),
		FamilyCount:     len(w.families),
		SystemCount:     len(w.systems),
		FamilyBreakdown: make([]FamilyStats, 0, len(w.families)),
	}

	for _, family := range w.families {
		stats.FamilyBreakdown = append(stats.FamilyBreakdown, FamilyStats{
			ID:                   family.ID(),
			Signature:            family.Signature(),
			Names:                family.Names(),
			EntityCount:          family.Len(),
			AddedListenerCount:   family.EntityAdded.Len(),
			RemovedListenerCount: family.EntityRemoved.Len(),
		})
	}

	return stats
}
