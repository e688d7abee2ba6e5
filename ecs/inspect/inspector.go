package inspect

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/plus3/carnot/ecs"
)

// WriteEntity prints every component of entity as an indented field tree.
func WriteEntity(out io.Writer, w *ecs.World, entity ecs.EntityId) error {
	if !w.Contains(entity) {
		_, err := fmt.Fprintf(out, "Entity %d not found\n", entity)
		return err
	}

	p := &printer{out: out}
	p.line(0, "Entity ID: %d", entity)
	for _, compType := range w.ComponentTypes() {
		component := w.GetComponent(entity, compType)
		if component == nil {
			continue
		}
		p.line(0, "%s", compType)
		p.component(reflect.ValueOf(component).Elem(), 1)
	}
	return p.err
}

type printer struct {
	out io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.out, strings.Repeat("  ", depth)+format+"\n", args...)
}

func (p *printer) component(val reflect.Value, depth int) {
	if val.Kind() != reflect.Struct {
		p.line(depth, "value: %v", val.Interface())
		return
	}
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				p.line(depth, "%s: nil", field.Name)
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		p.field(field.Name, fieldVal, depth)
	}
}

func (p *printer) field(name string, val reflect.Value, depth int) {
	switch val.Kind() {
	case reflect.Struct:
		if stringer, ok := val.Interface().(fmt.Stringer); ok {
			p.line(depth, "%s: %s", name, stringer)
			return
		}
		p.line(depth, "%s:", name)
		p.component(val, depth+1)
	case reflect.Slice:
		p.line(depth, "%s: [%d items]", name, val.Len())
	case reflect.Map:
		p.line(depth, "%s: map[%d items]", name, val.Len())
	case reflect.Float32, reflect.Float64:
		p.line(depth, "%s: %g", name, val.Float())
	case reflect.String:
		p.line(depth, "%s: %q", name, val.String())
	default:
		p.line(depth, "%s: %v", name, val.Interface())
	}
}

// SetField parses value and stores it into the named field of the entity's
// component. Nested struct fields are addressed with dots, e.g. "Position.X".
// Only booleans, numbers and strings can be set.
func SetField(w *ecs.World, entity ecs.EntityId, compType reflect.Type, path, value string) error {
	component := w.GetComponent(entity, compType)
	if component == nil {
		return fmt.Errorf("inspect: entity %d has no %s", entity, compType)
	}

	val := reflect.ValueOf(component).Elem()
	for _, name := range strings.Split(path, ".") {
		if val.Kind() == reflect.Pointer {
			if val.IsNil() {
				return fmt.Errorf("inspect: %s.%s is nil", compType, path)
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct {
			return fmt.Errorf("inspect: %s.%s: %s is not a struct", compType, path, val.Type())
		}
		val = val.FieldByName(name)
		if !val.IsValid() {
			return fmt.Errorf("inspect: %s has no field %q", compType, path)
		}
	}
	if !val.CanSet() {
		return fmt.Errorf("inspect: %s.%s cannot be set", compType, path)
	}
	return setScalar(val, value)
}

func setScalar(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(v)
	case reflect.String:
		field.SetString(value)
	default:
		return fmt.Errorf("inspect: cannot set field of kind %s", field.Kind())
	}
	return nil
}
