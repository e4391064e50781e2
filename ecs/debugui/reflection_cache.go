package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field reachable from a component type.
// Index is the path accepted by reflect.Value.FieldByIndex.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     []int
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
}

// ReflectionCache memoizes the editable field layout of component types so
// the inspector walks reflect metadata once per type rather than per frame.
// It is safe for concurrent use.
type ReflectionCache struct {
	mu     sync.RWMutex
	layout map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{layout: make(map[reflect.Type][]FieldInfo)}
}

// GetFields returns the exported fields of t, or of t's element when t is
// a pointer. Non-struct types have no fields.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	rc.mu.RLock()
	fields, ok := rc.layout[t]
	rc.mu.RUnlock()
	if ok {
		return fields
	}

	fields = describeFields(t)
	rc.mu.Lock()
	if existing, ok := rc.layout[t]; ok {
		fields = existing
	} else {
		rc.layout[t] = fields
	}
	rc.mu.Unlock()
	return fields
}

func describeFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var fields []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.IsExported() {
			fields = append(fields, describeField(sf, i))
		}
	}
	return fields
}

func describeField(sf reflect.StructField, i int) FieldInfo {
	info := FieldInfo{Name: sf.Name, Type: sf.Type, Index: []int{i}}
	if info.Type.Kind() == reflect.Ptr {
		info.IsPointer = true
		info.Type = info.Type.Elem()
	}
	switch info.Type.Kind() {
	case reflect.Struct:
		info.IsStruct = true
	case reflect.Slice:
		info.IsSlice = true
	case reflect.Map:
		info.IsMap = true
	}
	return info
}

// nested returns the fields of a struct field with their index paths
// rooted at the enclosing component.
func (rc *ReflectionCache) nested(parent FieldInfo) []FieldInfo {
	children := rc.GetFields(parent.Type)
	fields := make([]FieldInfo, len(children))
	for i, child := range children {
		child.Index = append(append(make([]int, 0, len(parent.Index)+1), parent.Index...), child.Index...)
		fields[i] = child
	}
	return fields
}

var globalReflectionCache = NewReflectionCache()
