package main

import (
	"cmp"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/ces/ecs"
	"github.com/plus3/ces/internal/config"
)

type Report struct {
	// Configuration
	RunID  string
	Config config.StressConfig

	// Results
	Worlds        []WorldResult
	TotalUpdates  int64
	TotalTime     time.Duration
	UpdateTime    Stats
	FamilyAdded   int64
	FamilyRemoved int64
	Mutations     int64
	Replacements  int64
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type WorldResult struct {
	Index            int
	Updates          int64
	UpdateTime       Stats
	Entities         int
	Families         int
	NonEmptyFamilies int
	FamilyAdded      int64
	FamilyRemoved    int64
	Visited          int64
	Mutations        int64
	Replacements     int64
	Systems          []ecs.SystemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Finalize aggregates the per-world results.
func (r *Report) Finalize() {
	r.UpdateTime = Stats{}
	for _, w := range r.Worlds {
		r.TotalUpdates += w.Updates
		r.FamilyAdded += w.FamilyAdded
		r.FamilyRemoved += w.FamilyRemoved
		r.Mutations += w.Mutations
		r.Replacements += w.Replacements
		r.UpdateTime.Samples = append(r.UpdateTime.Samples, w.UpdateTime.Samples...)
	}
	r.UpdateTime.Finalize()
}

// slowestSystems returns up to n systems with the highest average duration.
func slowestSystems(systems []ecs.SystemStats, n int) []ecs.SystemStats {
	sorted := slices.Clone(systems)
	slices.SortStableFunc(sorted, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	return sorted[:min(n, len(sorted))]
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# CES Stress Test Report

## Test Configuration
- **Run ID:** {{.RunID}}
- **Run Duration:** {{.Config.Duration}}
- **Worlds:** {{.Config.Worlds}}
- **Initial Entities (per world):** {{.Config.Entities}}
- **Component Pool:** {{.Config.Components}}
- **Query Systems (per world):** {{.Config.QuerySystems}}
- **Churn per Update:** {{.Config.ChurnPerUpdate}}
- **Canonical Signatures:** {{.Config.Canonical}}
- **Seed:** {{.Config.Seed}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Family Entries:** {{.FamilyAdded}}
- **Family Exits:** {{.FamilyRemoved}}
- **Component Mutations:** {{.Mutations}}
- **Entity Replacements:** {{.Replacements}}
{{range .Worlds}}
### World {{.Index}}
- Updates: {{.Updates}} (avg {{.UpdateTime.Avg}}, max {{.UpdateTime.Max}})
- Entities: {{.Entities}}
- Families: {{.Families}} ({{.NonEmptyFamilies}} non-empty)
- Family entries/exits: {{.FamilyAdded}} / {{.FamilyRemoved}}
- Members visited: {{.Visited}}
- Slowest systems:{{range slowest .Systems 3}}
  - {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}, runs {{.ExecutionCount}}{{end}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .Config.GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"slowest": slowestSystems,
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
