// Package debugui provides immediate-mode GUI integration for CES worlds using Dear ImGui.
// Render functions and inspection windows are components attached to entities
// and are drawn by ImguiSystem.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ces/ecs"
)

// ImguiItemName is the component name of ImguiItem.
const ImguiItemName = "debugui.item"

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

func (*ImguiItem) Name() string { return ImguiItemName }

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem walks every entity holding an ImguiItem and defers its render
// function until the world flushes its commands. It also refreshes
// InputState each update.
type ImguiSystem struct {
	ecs.BaseSystem
	InputState ImguiInputState
}

// Update records input state and queues all ImGui render functions.
func (s *ImguiSystem) Update(dt float64) {
	io := imgui.CurrentIO()
	s.InputState.WantCaptureMouse = io.WantCaptureMouse()
	s.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, render := range renderFuncs(s.World) {
		s.World.Commands().Defer(render)
	}
}

func renderFuncs(world *ecs.World) []func() {
	entities := world.GetEntities(ImguiItemName)
	funcs := make([]func(), 0, len(entities))
	for _, e := range entities {
		item, ok := ecs.ReadComponent[*ImguiItem](e, ImguiItemName)
		if !ok || item.Render == nil {
			continue
		}
		funcs = append(funcs, item.Render)
	}
	return funcs
}
