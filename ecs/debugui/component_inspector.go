package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ces/ecs"
)

func NewComponentInspectorComponent() *ComponentInspectorComponent {
	return &ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(world *ecs.World, selected *ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selected = selected

	if ci.selected == nil {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !world.HasEntity(ci.selected) {
		imgui.Text(fmt.Sprintf("Entity %d is not registered", ci.selected.ID()))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selected.ID()))
	imgui.Text(fmt.Sprintf("Components: %d", ci.selected.ComponentCount()))
	imgui.Separator()

	for _, name := range ci.selected.ComponentNames() {
		component := ci.selected.GetComponent(name)
		if component == nil {
			continue
		}

		open := imgui.TreeNodeStr(name)
		imgui.SameLine()
		if imgui.Button(fmt.Sprintf("Remove##%s", name)) {
			world.Commands().RemoveComponent(ci.selected, name)
		}
		if open {
			ci.renderComponent(name, component)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderComponent(name string, component ecs.Component) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return
	}

	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		ci.renderField(name, val, field)
	}
}

func (ci *ComponentInspectorComponent) renderField(componentName string, root reflect.Value, field FieldInfo) {
	val, err := root.FieldByIndexErr(field.Index)
	if err != nil || !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", field.Name))
		return
	}

	if field.IsPointer {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", field.Name))
			return
		}
		val = val.Elem()
	}

	id := fmt.Sprintf("##%s.%v", componentName, field.Index)
	e := ci.selected

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			SetIntField(e, componentName, field.Index, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			SetUintField(e, componentName, field.Index, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			SetFloatField(e, componentName, field.Index, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(field.Name+id, &v) {
			SetBoolField(e, componentName, field.Index, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			SetStringField(e, componentName, field.Index, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(field.Name + id) {
			for _, nested := range globalReflectionCache.nested(field) {
				ci.renderField(componentName, root, nested)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", field.Name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", field.Name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", field.Name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", field.Name, val.Kind()))
		}
	}
}

func SetIntField(e *ecs.Entity, name string, index []int, value int64) bool {
	return updateField(e, name, index, func(field reflect.Value) bool {
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		default:
			return false
		}
		if field.OverflowInt(value) {
			return false
		}
		field.SetInt(value)
		return true
	})
}

func SetUintField(e *ecs.Entity, name string, index []int, value uint64) bool {
	return updateField(e, name, index, func(field reflect.Value) bool {
		switch field.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return false
		}
		if field.OverflowUint(value) {
			return false
		}
		field.SetUint(value)
		return true
	})
}

func SetFloatField(e *ecs.Entity, name string, index []int, value float64) bool {
	return updateField(e, name, index, func(field reflect.Value) bool {
		if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
			return false
		}
		field.SetFloat(value)
		return true
	})
}

func SetBoolField(e *ecs.Entity, name string, index []int, value bool) bool {
	return updateField(e, name, index, func(field reflect.Value) bool {
		if field.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(value)
		return true
	})
}

func SetStringField(e *ecs.Entity, name string, index []int, value string) bool {
	return updateField(e, name, index, func(field reflect.Value) bool {
		if field.Kind() != reflect.String {
			return false
		}
		field.SetString(value)
		return true
	})
}

// updateField assigns a field of the component stored under name. Pointer
// components are edited in place. Value components are copied, edited and
// stored again with AddComponent, so families observe the change; an edit
// that would change the component's name is rejected.
func updateField(e *ecs.Entity, name string, index []int, assign func(reflect.Value) bool) bool {
	component := e.GetComponent(name)
	if component == nil {
		return false
	}

	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() || val.Elem().Kind() != reflect.Struct {
			return false
		}
		field, ok := settableField(val.Elem(), index)
		return ok && assign(field)
	}

	if val.Kind() != reflect.Struct {
		return false
	}
	replacement := reflect.New(val.Type()).Elem()
	replacement.Set(val)
	field, ok := settableField(replacement, index)
	if !ok || !assign(field) {
		return false
	}

	updated, ok := replacement.Interface().(ecs.Component)
	if !ok || updated.Name() != name {
		return false
	}
	e.AddComponent(updated)
	return true
}

func settableField(root reflect.Value, index []int) (reflect.Value, bool) {
	field, err := root.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, false
	}
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return reflect.Value{}, false
		}
		field = field.Elem()
	}
	return field, field.CanSet()
}
