package ecs

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// queryField describes one component descriptor of a query shape.
type queryField struct {
	name   string
	typ    reflect.Type
	offset uintptr
	access Access
}

// queryShape is the parsed form of a query data struct. The struct T must have only
// pointer fields, one per component type. Fields are shared descriptors unless
// tagged `ecs:"mut"`, which makes them exclusive:
//
//	struct {
//		*Position `ecs:"mut"`
//		*Velocity
//	}
type queryShape struct {
	typ    reflect.Type
	fields []queryField
}

var shapeCache struct {
	mu     sync.RWMutex
	shapes map[reflect.Type]*queryShape
}

// shapeOf returns the cached shape for D, parsing it on first use.
func shapeOf[D any]() *queryShape {
	t := reflect.TypeFor[D]()

	shapeCache.mu.RLock()
	shape, ok := shapeCache.shapes[t]
	shapeCache.mu.RUnlock()
	if ok {
		return shape
	}

	shapeCache.mu.Lock()
	defer shapeCache.mu.Unlock()
	if shape, ok := shapeCache.shapes[t]; ok {
		return shape
	}
	if shapeCache.shapes == nil {
		shapeCache.shapes = make(map[reflect.Type]*queryShape)
	}
	shape = parseShape(t)
	shapeCache.shapes[t] = shape
	return shape
}

func parseShape(structType reflect.Type) *queryShape {
	if structType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("ecs: query data %s must be a struct of component pointers", structType))
	}
	if structType.NumField() == 0 {
		panic(fmt.Sprintf("ecs: query data %s has no component fields", structType))
	}

	shape := &queryShape{
		typ:    structType,
		fields: make([]queryField, 0, structType.NumField()),
	}
	seen := make(map[reflect.Type]Access, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("ecs: query data field %s.%s must be a pointer type", structType, field.Name))
		}

		access := AccessShared
		switch tag := field.Tag.Get("ecs"); tag {
		case "":
		case "mut":
			access = AccessExclusive
		default:
			panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"mut\" is supported)")
		}

		componentType := field.Type.Elem()
		if prev, dup := seen[componentType]; dup && (prev == AccessExclusive || access == AccessExclusive) {
			panic(fmt.Sprintf("ecs: query data %s requests %s more than once with exclusive access", structType, componentType))
		}
		seen[componentType] = access

		shape.fields = append(shape.fields, queryField{
			name:   field.Name,
			typ:    componentType,
			offset: field.Offset,
			access: access,
		})
	}
	return shape
}

// fill writes the component pointers of row index into the struct at dst.
// Returns false, leaving dst partially written, if any column lacks the row.
func (s *queryShape) fill(dst unsafe.Pointer, columns []iComponentStorage, index int) bool {
	for i := range s.fields {
		ptr := columns[i].ptrAt(index)
		if ptr == nil {
			return false
		}
		*(*unsafe.Pointer)(unsafe.Add(dst, s.fields[i].offset)) = ptr
	}
	return true
}
