package debugui

import "github.com/plus3/ces/ecs"

// SpawnDebugUI registers an entity carrying every inspection window and an
// ImguiItem that draws them. The entity browser selection drives the
// component inspector and clicking a family filters the browser.
func SpawnDebugUI(world *ecs.World) *ecs.Entity {
	browser := NewEntityBrowserComponent(100)
	inspector := NewComponentInspectorComponent()
	families := NewFamilyViewerComponent()
	performance := NewPerformanceStatsComponent(120)
	queries := NewQueryDebuggerComponent()
	timer := NewFrameTimer()

	e := ecs.NewEntity()
	e.AddComponent(browser)
	e.AddComponent(inspector)
	e.AddComponent(families)
	e.AddComponent(performance)
	e.AddComponent(queries)
	e.AddComponent(&ImguiItem{
		Render: func() {
			browser.Render(world)
			inspector.Render(world, browser.GetSelectedEntity())
			if clicked := families.Render(world); clicked != nil {
				browser.SetFamilyFilter(clicked)
			}
			performance.Render(world, timer.GetDeltaTime())
			queries.Render(world)
		},
	})

	world.AddEntity(e)
	return e
}
