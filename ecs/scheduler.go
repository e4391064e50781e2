package ecs

import (
	"context"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about system execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system         System
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newSystemEntry(system System) *systemEntry {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return &systemEntry{
		system:      system,
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (e *systemEntry) record(duration time.Duration) {
	e.executionCount++
	e.lastDuration = duration
	e.totalDuration += duration

	if duration < e.minDuration {
		e.minDuration = duration
	}
	if duration > e.maxDuration {
		e.maxDuration = duration
	}
}

// AddSystem appends system to the update order and calls its AddedToWorld
// hook. It returns the world for chaining.
func (w *World) AddSystem(system System) *World {
	entry := newSystemEntry(system)
	w.systems = append(w.systems, entry)
	if attacher, ok := system.(WorldAttacher); ok {
		attacher.AddedToWorld(w)
	}

	w.logger.Debug("system added", zap.String("system", entry.name), zap.Int("systems", len(w.systems)))
	return w
}

// RemoveSystem removes the first registration of system and calls its
// RemovedFromWorld hook. It reports whether the system was registered.
// Systems of an uncomparable type, such as value structs holding a slice,
// cannot be identified and are never removed.
func (w *World) RemoveSystem(system System) bool {
	if system == nil || !reflect.TypeOf(system).Comparable() {
		return false
	}
	for i, entry := range w.systems {
		if entry.system != system {
			continue
		}
		next := make([]*systemEntry, 0, len(w.systems)-1)
		next = append(next, w.systems[:i]...)
		next = append(next, w.systems[i+1:]...)
		w.systems = next

		if detacher, ok := system.(WorldDetacher); ok {
			detacher.RemovedFromWorld()
		}
		w.logger.Debug("system removed", zap.String("system", entry.name), zap.Int("systems", len(w.systems)))
		return true
	}
	return false
}

// Systems returns the registered systems in update order.
func (w *World) Systems() []System {
	systems := make([]System, len(w.systems))
	for i, entry := range w.systems {
		systems[i] = entry.system
	}
	return systems
}

// Update calls every system's Update once, in registration order, with the
// same dt, then flushes the command buffer.
func (w *World) Update(dt float64) {
	for _, entry := range w.systems {
		start := time.Now()
		entry.system.Update(dt)
		entry.record(time.Since(start))
	}

	w.commands.Flush(w)
}

// Run calls Update repeatedly at the given interval until the context is
// cancelled. dt is the measured time since the previous tick in seconds.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			w.Update(dt)
		}
	}
}

// SystemStats returns statistics about system execution.
func (w *World) SystemStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(w.systems),
		Systems:     make([]SystemStats, len(w.systems)),
	}

	var totalExecs int64
	for i, entry := range w.systems {
		var avgDuration, minDuration time.Duration
		if entry.executionCount > 0 {
			avgDuration = entry.totalDuration / time.Duration(entry.executionCount)
			minDuration = entry.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			ExecutionCount: entry.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    entry.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   entry.lastDuration,
			TotalDuration:  entry.totalDuration,
		}
		totalExecs += entry.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
