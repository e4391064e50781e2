package debugui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ces/ecs"
)

type EntityInfo struct {
	Entity         *ecs.Entity
	ID             ecs.EntityID
	ComponentNames []string
	ComponentCount int
	FamilyIDs      []uint64
}

type EntityBrowserCache struct {
	entities        []EntityInfo
	lastEntityCount int
	lastFamilyCount int
	sortColumn      int
	sortAscending   bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) *EntityBrowserComponent {
	return &EntityBrowserComponent{
		cache: &EntityBrowserCache{
			lastEntityCount: -1,
			sortColumn:      0,
			sortAscending:   true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterFamilyID = nil
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.rebuildCache(world)
	}

	filteredEntities := eb.getFilteredEntities()
	if eb.currentPage*eb.maxEntitiesPerPage >= len(filteredEntities) {
		eb.currentPage = 0
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("Families")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			filteredEntities = eb.getFilteredEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected == entity.Entity
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.Entity
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentNames, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.FamilyIDs)))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// rebuildCacheIfNeeded rebuilds when entities or families were added or
// removed. Component changes that keep both counts stable need a manual
// refresh.
func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(world *ecs.World) {
	entityCount := world.EntityCount()
	familyCount := len(world.Families())
	if eb.cache.entities == nil || eb.cache.lastEntityCount != entityCount || eb.cache.lastFamilyCount != familyCount {
		eb.rebuildCache(world)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(world *ecs.World) {
	families := world.Families()
	eb.cache.entities = make([]EntityInfo, 0, world.EntityCount())
	eb.cache.lastEntityCount = world.EntityCount()
	eb.cache.lastFamilyCount = len(families)

	for _, e := range world.Entities() {
		info := EntityInfo{
			Entity:         e,
			ID:             e.ID(),
			ComponentNames: e.ComponentNames(),
			ComponentCount: e.ComponentCount(),
		}
		for _, family := range families {
			if family.Has(e) {
				info.FamilyIDs = append(info.FamilyIDs, family.ID())
			}
		}
		eb.cache.entities = append(eb.cache.entities, info)
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.ComponentNames, ",") < strings.Join(b.ComponentNames, ",")
		case 2:
			less = a.ComponentCount < b.ComponentCount
		case 3:
			less = len(a.FamilyIDs) < len(b.FamilyIDs)
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" && eb.filterFamilyID == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterFamilyID != nil && !slices.Contains(entity.FamilyIDs, *eb.filterFamilyID) {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentNames, " "))

			if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// SetFamilyFilter limits the listing to members of the family with the
// given id. A nil id clears the filter.
func (eb *EntityBrowserComponent) SetFamilyFilter(id *uint64) {
	eb.filterFamilyID = id
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) GetSelectedEntity() *ecs.Entity {
	return eb.selected
}
