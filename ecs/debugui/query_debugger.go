package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ces/ecs"
)

type QueryDebuggerCache struct {
	componentNames  []string
	lastEntityCount int
}

// QueryResult describes the registered entities that hold every selected
// component.
type QueryResult struct {
	Names        []string
	Signature    string
	Matching     []*ecs.Entity
	CachedFamily *ecs.Family
}

func NewQueryDebuggerComponent() *QueryDebuggerComponent {
	return &QueryDebuggerComponent{
		selectedNames: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastEntityCount: -1,
		},
	}
}

func (qd *QueryDebuggerComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(world)

	imgui.Text("Select Components:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedNames = make(map[string]bool)
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		qd.rebuildCache(world)
	}

	for _, name := range qd.cache.componentNames {
		selected := qd.selectedNames[name]
		if imgui.Checkbox(name, &selected) {
			qd.Select(name, selected)
		}
	}

	imgui.Separator()

	result := qd.Evaluate(world)
	if len(result.Names) == 0 {
		imgui.Text("No components selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Signature: %s", result.Signature))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(result.Matching)))
	if result.CachedFamily != nil {
		imgui.Text(fmt.Sprintf("Cached Family: %016X (%d entities)", result.CachedFamily.ID(), result.CachedFamily.Len()))
	} else {
		imgui.Text("Cached Family: none")
	}

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, e := range result.Matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", e.ID()))

				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(e.ComponentNames(), ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerComponent) Select(name string, selected bool) {
	if selected {
		qd.selectedNames[name] = true
	} else {
		delete(qd.selectedNames, name)
	}
}

// SelectedNames returns the selected component names in sorted order.
func (qd *QueryDebuggerComponent) SelectedNames() []string {
	names := make([]string, 0, len(qd.selectedNames))
	for name := range qd.selectedNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate scans the registered entities for the selected names. It never
// creates a family, so inspecting a query leaves the world unchanged.
func (qd *QueryDebuggerComponent) Evaluate(world *ecs.World) QueryResult {
	names := qd.SelectedNames()
	result := QueryResult{
		Names:     names,
		Signature: ecs.Signature(names),
	}
	if len(names) == 0 {
		return result
	}

	for _, e := range world.Entities() {
		if ecs.HasComponents(e, names...) {
			result.Matching = append(result.Matching, e)
		}
	}

	for _, family := range world.Families() {
		if family.Signature() == result.Signature {
			result.CachedFamily = family
			break
		}
	}
	return result
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(world *ecs.World) {
	if qd.cache.componentNames == nil || qd.cache.lastEntityCount != world.EntityCount() {
		qd.rebuildCache(world)
	}
}

func (qd *QueryDebuggerComponent) rebuildCache(world *ecs.World) {
	nameSet := make(map[string]bool)

	for _, e := range world.Entities() {
		for _, name := range e.ComponentNames() {
			nameSet[name] = true
		}
	}

	qd.cache.lastEntityCount = world.EntityCount()
	qd.cache.componentNames = make([]string, 0, len(nameSet))
	for name := range nameSet {
		qd.cache.componentNames = append(qd.cache.componentNames, name)
	}

	sort.Strings(qd.cache.componentNames)
}
