package ecs

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// paramContext is what a parameter is resolved against.
type paramContext struct {
	world *World
	frame *UpdateFrame
}

// Param is a capability a system can declare: Query[D], Res[T], ResMut[T] or
// Deferred. Params are resolved immediately before the system runs and released
// as soon as it returns.
type Param interface {
	acquire(ctx *paramContext)
	release()
}

// paramPtr constrains PP to be *P and a Param, so that FuncN can allocate a P and
// resolve it in place.
type paramPtr[P any] interface {
	*P
	Param
}

// Deferred gives a system access to the frame's command buffer.
type Deferred struct {
	*Commands
}

func (d *Deferred) acquire(ctx *paramContext) {
	if ctx.frame == nil {
		panic("ecs: Deferred requires a scheduler frame")
	}
	d.Commands = ctx.frame.Commands
}

func (d *Deferred) release() {
	d.Commands = nil
}

// resolveParams acquires every param in order. If one panics, those already
// acquired are released before the panic continues.
func resolveParams(ctx *paramContext, params ...Param) {
	acquired := 0
	defer func() {
		if acquired < len(params) {
			releaseParams(params[:acquired])
		}
	}()
	for _, p := range params {
		p.acquire(ctx)
		acquired++
	}
}

func releaseParams(params []Param) {
	for i := len(params) - 1; i >= 0; i-- {
		params[i].release()
	}
}

// funcSystem adapts a plain function to the System interface.
type funcSystem struct {
	name string
	run  func(frame *UpdateFrame)
}

func (s *funcSystem) Execute(frame *UpdateFrame) {
	s.run(frame)
}

func (s *funcSystem) Name() string {
	return s.name
}

func runWithParams(frame *UpdateFrame, call func(), params ...Param) {
	ctx := &paramContext{world: frame.World, frame: frame}
	resolveParams(ctx, params...)
	defer releaseParams(params)
	call()
}

// Func0 wraps a function without parameters as a system.
func Func0(fn func()) System {
	return &funcSystem{
		name: funcName(fn),
		run:  func(*UpdateFrame) { fn() },
	}
}

// Func1 wraps a function of one capability as a system:
//
//	ecs.Func1(func(q *ecs.Query[struct{ *Position }]) { ... })
func Func1[P1 any, PP1 paramPtr[P1]](fn func(*P1)) System {
	return &funcSystem{
		name: funcName(fn),
		run: func(frame *UpdateFrame) {
			var p1 P1
			runWithParams(frame, func() { fn(&p1) }, PP1(&p1))
		},
	}
}

// Func2 wraps a function of two capabilities as a system.
func Func2[P1, P2 any, PP1 paramPtr[P1], PP2 paramPtr[P2]](fn func(*P1, *P2)) System {
	return &funcSystem{
		name: funcName(fn),
		run: func(frame *UpdateFrame) {
			var p1 P1
			var p2 P2
			runWithParams(frame, func() { fn(&p1, &p2) }, PP1(&p1), PP2(&p2))
		},
	}
}

// Func3 wraps a function of three capabilities as a system.
func Func3[P1, P2, P3 any, PP1 paramPtr[P1], PP2 paramPtr[P2], PP3 paramPtr[P3]](fn func(*P1, *P2, *P3)) System {
	return &funcSystem{
		name: funcName(fn),
		run: func(frame *UpdateFrame) {
			var p1 P1
			var p2 P2
			var p3 P3
			runWithParams(frame, func() { fn(&p1, &p2, &p3) }, PP1(&p1), PP2(&p2), PP3(&p3))
		},
	}
}

// Func4 wraps a function of four capabilities as a system.
func Func4[P1, P2, P3, P4 any, PP1 paramPtr[P1], PP2 paramPtr[P2], PP3 paramPtr[P3], PP4 paramPtr[P4]](fn func(*P1, *P2, *P3, *P4)) System {
	return &funcSystem{
		name: funcName(fn),
		run: func(frame *UpdateFrame) {
			var p1 P1
			var p2 P2
			var p3 P3
			var p4 P4
			runWithParams(frame, func() { fn(&p1, &p2, &p3, &p4) }, PP1(&p1), PP2(&p2), PP3(&p3), PP4(&p4))
		},
	}
}

// Exclusive wraps a function that needs the whole World, for example to create
// entities or insert resources. It cannot be combined with other capabilities.
func Exclusive(fn func(w *World)) System {
	return &funcSystem{
		name: funcName(fn),
		run:  func(frame *UpdateFrame) { fn(frame.World) },
	}
}

// Named overrides the name a system is reported under in stats and errors.
func Named(name string, system System) System {
	return &namedSystem{System: system, name: name}
}

type namedSystem struct {
	System
	name string
}

func (s *namedSystem) Name() string {
	return s.name
}

// structParams collects the exported Param fields of a struct system. They are
// found once at registration and resolved in place before every Execute.
func structParams(system System) []Param {
	if named, ok := system.(*namedSystem); ok {
		return structParams(named.System)
	}
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Pointer || systemValue.IsNil() {
		return nil
	}
	systemValue = systemValue.Elem()
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	systemType := systemValue.Type()
	var params []Param
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || !field.CanAddr() {
			continue
		}
		if param, ok := field.Addr().Interface().(Param); ok {
			params = append(params, param)
			continue
		}
		if field.Kind() == reflect.Pointer && field.Type().Implements(paramType) {
			panic(fmt.Sprintf("ecs: system %s field %s must be a %s value, not a pointer",
				systemType, systemType.Field(i).Name, field.Type().Elem()))
		}
	}
	return params
}

var paramType = reflect.TypeFor[Param]()

// systemName derives a readable name for stats and errors.
func systemName(system System) string {
	if named, ok := system.(interface{ Name() string }); ok {
		return named.Name()
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Pointer {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "func"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
