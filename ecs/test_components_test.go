package ecs_test

import "github.com/plus3/carnot/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Temperature float64

// Resources
type Counter int

type Log struct {
	Entries []string
}

type Gravity struct {
	Y float32
}

func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	ecs.RegisterComponent[Position](w)
	ecs.RegisterComponent[Velocity](w)
	ecs.RegisterComponent[Name](w)
	ecs.RegisterComponent[Health](w)
	ecs.RegisterComponent[PlayerController](w)
	ecs.RegisterComponent[Score](w)
	ecs.RegisterComponent[Temperature](w)
	return w
}
