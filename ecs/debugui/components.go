package debugui

import (
	"github.com/plus3/ces/ecs"
)

const (
	EntityBrowserName      = "debugui.entity_browser"
	ComponentInspectorName = "debugui.component_inspector"
	FamilyViewerName       = "debugui.family_viewer"
	PerformanceStatsName   = "debugui.performance_stats"
	QueryDebuggerName      = "debugui.query_debugger"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selected           *ecs.Entity
	filterText         string
	filterFamilyID     *uint64
	maxEntitiesPerPage int
	currentPage        int
}

func (*EntityBrowserComponent) Name() string { return EntityBrowserName }

type ComponentInspectorComponent struct {
	selected *ecs.Entity
}

func (*ComponentInspectorComponent) Name() string { return ComponentInspectorName }

type FamilyViewerComponent struct {
	cache            *FamilyViewerCache
	selectedFamilyID *uint64
}

func (*FamilyViewerComponent) Name() string { return FamilyViewerName }

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func (*PerformanceStatsComponent) Name() string { return PerformanceStatsName }

type QueryDebuggerComponent struct {
	selectedNames map[string]bool
	cache         *QueryDebuggerCache
}

func (*QueryDebuggerComponent) Name() string { return QueryDebuggerName }
