package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ces/ecs"
)

type FamilyInfo struct {
	ID             uint64
	Signature      string
	Names          []string
	EntityCount    int
	ListenerCount  int
	ComponentCount int
}

type FamilyViewerCache struct {
	families        []FamilyInfo
	lastFamilyCount int
	sortColumn      int
	sortAscending   bool
}

func NewFamilyViewerComponent() *FamilyViewerComponent {
	return &FamilyViewerComponent{
		cache: &FamilyViewerCache{
			lastFamilyCount: -1,
			sortColumn:      3,
			sortAscending:   false,
		},
	}
}

// Render draws the family table and returns the id of the family clicked
// this frame, or nil.
func (fv *FamilyViewerComponent) Render(world *ecs.World) *uint64 {
	if !imgui.BeginV("Family Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	fv.rebuildCacheIfNeeded(world)

	maxEntityCount := 0
	for _, family := range fv.cache.families {
		maxEntityCount = max(maxEntityCount, family.EntityCount)
	}

	var clickedFamilyID *uint64

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("FamilyTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Family ID")
		imgui.TableSetupColumn("Signature")
		imgui.TableSetupColumn("Names")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Listeners")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			fv.cache.sortColumn = int(spec.ColumnIndex())
			fv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			fv.sortFamilies()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, family := range fv.cache.families {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := fv.selectedFamilyID != nil && *fv.selectedFamilyID == family.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%016X", family.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := family.ID
				clickedFamilyID = &id
				fv.selectedFamilyID = &id
			}

			imgui.TableNextColumn()
			imgui.Text(family.Signature)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(family.Names, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", family.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(family.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", family.ListenerCount))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clickedFamilyID
}

// rebuildCacheIfNeeded rebuilds the rows when families were created and
// otherwise refreshes the member and listener counts.
func (fv *FamilyViewerComponent) rebuildCacheIfNeeded(world *ecs.World) {
	stats := world.CollectStats()
	if fv.cache.families == nil || fv.cache.lastFamilyCount != stats.FamilyCount {
		fv.rebuildCache(stats)
		return
	}
	fv.updateCounts(stats)
}

func (fv *FamilyViewerComponent) rebuildCache(stats *ecs.WorldStats) {
	fv.cache.lastFamilyCount = stats.FamilyCount
	fv.cache.families = make([]FamilyInfo, 0, len(stats.FamilyBreakdown))

	for _, family := range stats.FamilyBreakdown {
		fv.cache.families = append(fv.cache.families, FamilyInfo{
			ID:             family.ID,
			Signature:      family.Signature,
			Names:          family.Names,
			EntityCount:    family.EntityCount,
			ListenerCount:  family.AddedListenerCount + family.RemovedListenerCount,
			ComponentCount: len(family.Names),
		})
	}

	fv.sortFamilies()
}

func (fv *FamilyViewerComponent) updateCounts(stats *ecs.WorldStats) {
	byID := make(map[uint64]ecs.FamilyStats, len(stats.FamilyBreakdown))
	for _, family := range stats.FamilyBreakdown {
		byID[family.ID] = family
	}

	for i := range fv.cache.families {
		family, ok := byID[fv.cache.families[i].ID]
		if !ok {
			continue
		}
		fv.cache.families[i].EntityCount = family.EntityCount
		fv.cache.families[i].ListenerCount = family.AddedListenerCount + family.RemovedListenerCount
	}

	if fv.cache.sortColumn == 3 || fv.cache.sortColumn == 4 {
		fv.sortFamilies()
	}
}

func (fv *FamilyViewerComponent) sortFamilies() {
	sort.SliceStable(fv.cache.families, func(i, j int) bool {
		a, b := fv.cache.families[i], fv.cache.families[j]
		var less bool

		switch fv.cache.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Signature < b.Signature
		case 2:
			less = a.ComponentCount < b.ComponentCount
		case 4:
			less = a.ListenerCount < b.ListenerCount
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !fv.cache.sortAscending {
			return !less
		}
		return less
	})
}
