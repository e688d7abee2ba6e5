package main

import (
	"math/rand/v2"
	"reflect"

	"github.com/plus3/carnot/ecs"
)

type (
	Position struct{ X, Y float64 }
	Velocity struct{ X, Y float64 }
	Health   struct{ Current, Max int64 }
	Damage   struct{ PerFrame int64 }
	Heat     struct{ Value float64 }
	Mass     struct{ Kg float64 }
	Lifetime struct{ Frames int64 }
	Tag      struct{ ID int64 }
)

// Counters is the resource the workload systems report into.
type Counters struct {
	Moved    int64
	Damaged  int64
	Expired  int64
	Spawned  int64
	Respawns int64
}

var componentTypes = []reflect.Type{
	reflect.TypeFor[Position](),
	reflect.TypeFor[Velocity](),
	reflect.TypeFor[Health](),
	reflect.TypeFor[Damage](),
	reflect.TypeFor[Heat](),
	reflect.TypeFor[Mass](),
	reflect.TypeFor[Lifetime](),
	reflect.TypeFor[Tag](),
}

func registerComponents(w *ecs.World) {
	ecs.RegisterComponent[Position](w)
	ecs.RegisterComponent[Velocity](w)
	ecs.RegisterComponent[Health](w)
	ecs.RegisterComponent[Damage](w)
	ecs.RegisterComponent[Heat](w)
	ecs.RegisterComponent[Mass](w)
	ecs.RegisterComponent[Lifetime](w)
	ecs.RegisterComponent[Tag](w)
}

// randomComponents returns between 1 and 5 distinct random components.
func randomComponents(rng *rand.Rand) []any {
	n := rng.IntN(5) + 1
	picked := rng.Perm(len(componentTypes))[:n]
	components := make([]any, 0, n)
	for _, i := range picked {
		components = append(components, newComponent(rng, i))
	}
	return components
}

func newComponent(rng *rand.Rand, kind int) any {
	switch kind {
	case 0:
		return Position{X: rng.Float64() * 100, Y: rng.Float64() * 100}
	case 1:
		return Velocity{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5}
	case 2:
		return Health{Current: 100, Max: 100}
	case 3:
		return Damage{PerFrame: rng.Int64N(3) + 1}
	case 4:
		return Heat{Value: rng.Float64() * 50}
	case 5:
		return Mass{Kg: rng.Float64()*10 + 1}
	case 6:
		return Lifetime{Frames: rng.Int64N(600) + 60}
	default:
		return Tag{ID: rng.Int64()}
	}
}

type moveRow struct {
	*Position `ecs:"mut"`
	*Velocity
}

func moveSystem(clock *ecs.Res[ecs.Time], movers *ecs.Query[moveRow], counters *ecs.ResMut[Counters]) {
	dt := clock.Get().DeltaSeconds()
	for row := range movers.Values() {
		row.Position.X += row.Velocity.X * dt
		row.Position.Y += row.Velocity.Y * dt
		counters.Get().Moved++
	}
}

type damageRow struct {
	*Health `ecs:"mut"`
	*Damage
}

func damageSystem(targets *ecs.Query[damageRow], counters *ecs.ResMut[Counters]) {
	for row := range targets.Values() {
		row.Health.Current -= row.Damage.PerFrame
		if row.Health.Current <= 0 {
			row.Health.Current = row.Health.Max
			counters.Get().Respawns++
		}
		counters.Get().Damaged++
	}
}

type coolRow struct {
	*Heat `ecs:"mut"`
	*Mass
}

func coolSystem(bodies *ecs.Query[coolRow]) {
	for row := range bodies.Values() {
		row.Heat.Value -= row.Heat.Value * 0.01 / row.Mass.Kg
	}
}

type lifetimeRow struct {
	*Lifetime `ecs:"mut"`
}

func lifetimeSystem(lives *ecs.Query[lifetimeRow], commands *ecs.Deferred, counters *ecs.ResMut[Counters]) {
	for entity, row := range lives.Iter() {
		row.Lifetime.Frames--
		if row.Lifetime.Frames == 0 {
			commands.RemoveComponent(entity, reflect.TypeFor[Lifetime]())
			counters.Get().Expired++
		}
	}
}

// spawnerSystem replaces expired entities so the population keeps growing
// slowly over the run.
type spawnerSystem struct {
	Counters ecs.ResMut[Counters]
	Commands ecs.Deferred

	rng     *rand.Rand
	pending int64
}

func (s *spawnerSystem) Execute(*ecs.UpdateFrame) {
	counters := s.Counters.Get()
	for s.pending < counters.Expired {
		s.Commands.Spawn(randomComponents(s.rng)...)
		s.pending++
		counters.Spawned++
	}
}

// registerSystems adds copies workload copies of every system.
func registerSystems(scheduler *ecs.Scheduler, copies int, rng *rand.Rand) {
	for i := 0; i < copies; i++ {
		scheduler.AddSystem(ecs.Update, ecs.Func3(moveSystem))
		scheduler.AddSystem(ecs.Update, ecs.Func2(damageSystem))
		scheduler.AddSystem(ecs.Update, ecs.Func1(coolSystem))
	}
	scheduler.AddSystem(ecs.PostUpdate, ecs.Func3(lifetimeSystem))
	scheduler.AddSystem(ecs.PostUpdate, &spawnerSystem{rng: rng})
}
