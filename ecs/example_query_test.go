package ecs_test

import (
	"fmt"

	"github.com/plus3/carnot/ecs"
)

// ExampleFetchQuery demonstrates joining component storages. Only entities that
// have every requested component are visited, in ascending id order, and a
// component type that was never inserted simply yields no rows.
func ExampleFetchQuery() {
	w := ecs.NewWorld()
	for i := 0; i < 3; i++ {
		e := w.NewEntity()
		ecs.AddComponent(w, e, Position{X: float32(i * 10), Y: float32(i * 10)})
		if i != 1 {
			ecs.AddComponent(w, e, Velocity{DX: 1, DY: -1})
		}
	}

	query := ecs.FetchQuery[struct {
		*Position `ecs:"mut"`
		*Velocity
	}](w)
	fmt.Println("Moving entities:")
	for id, item := range query.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
		fmt.Printf("%d -> (%.0f, %.0f)\n", id, item.Position.X, item.Position.Y)
	}
	query.Release()

	missing := ecs.FetchQuery[struct{ *Health }](w)
	fmt.Printf("Entities with health: %d\n", missing.Count())
	missing.Release()

	// Output:
	// Moving entities:
	// 0 -> (1, -1)
	// 2 -> (21, 19)
	// Entities with health: 0
}
