package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/controls"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
	"github.com/plus3/carnot/render"
)

// Spin rotates an entity around a local axis.
type Spin struct {
	Axis mgl32.Vec3
	Rate float32 // radians per second
}

// Highlight remembers the diffuse color to restore when an entity is deselected.
type Highlight struct {
	Base mgl32.Vec3
}

var highlightColor = mgl32.Vec3{1, 0.85, 0.2}

func spawnScene(w *ecs.World) {
	aspect := float32(1)
	if size, ok := ecs.GetResource[render.WindowSize](w); ok {
		if a := size.Get().AspectRatio(); a > 0 {
			aspect = a
		}
		size.Release()
	}

	camera := w.NewEntity()
	ecs.AddComponent(w, camera, graphics.NewPerspectiveCamera(
		mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, aspect, 60, 0.1, 100))
	ecs.AddComponent(w, camera, graphics.FromTranslation(mgl32.Vec3{0, 1, 6}))
	ecs.AddComponent(w, camera, graphics.ActiveCamera{})
	ecs.AddComponent(w, camera, controls.DefaultFlyCamera())

	spawnShape(w, graphics.Cube(), mgl32.Vec3{-1.5, 0.5, 0}, mgl32.Vec3{0.9, 0.3, 0.3}, &Spin{Axis: mgl32.Vec3{0, 1, 0}, Rate: 1})

	sphere, _ := graphics.Sphere(0.5, 8, 12)
	spawnShape(w, sphere, mgl32.Vec3{1.5, 0.5, 0}, mgl32.Vec3{0.3, 0.5, 0.9}, &Spin{Axis: mgl32.Vec3{1, 0, 0}, Rate: 0.5})

	floor := w.NewEntity()
	ecs.AddComponent(w, floor, graphics.Plane())
	ecs.AddComponent(w, floor, graphics.FromScaleRotationTranslation(
		mgl32.Vec3{10, 1, 10}, mgl32.QuatIdent(), mgl32.Vec3{}))
	ecs.AddComponent(w, floor, graphics.LambertMaterial{
		Ambient: mgl32.Vec3{0.05, 0.05, 0.05},
		Diffuse: mgl32.Vec3{0.4, 0.4, 0.4},
		Opacity: 1,
	})
}

func spawnShape(w *ecs.World, mesh graphics.Mesh, at, color mgl32.Vec3, spin *Spin) ecs.EntityId {
	entity := w.NewEntity()
	ecs.AddComponent(w, entity, mesh)
	ecs.AddComponent(w, entity, graphics.FromTranslation(at))
	ecs.AddComponent(w, entity, graphics.LambertMaterial{Diffuse: color, Opacity: 1})
	ecs.AddComponent(w, entity, Highlight{Base: color})
	ecs.AddComponent(w, entity, controls.Pickable{})
	if spin != nil {
		ecs.AddComponent(w, entity, *spin)
	}
	return entity
}

type spinRow struct {
	*graphics.Transform `ecs:"mut"`
	*Spin
}

func spinSystem(clock *ecs.Res[ecs.Time], spinners *ecs.Query[spinRow]) {
	dt := float32(clock.Get().DeltaSeconds())
	for row := range spinners.Values() {
		row.Transform.RotateLocal(row.Spin.Rate*dt, row.Spin.Axis)
	}
}

type highlightRow struct {
	*graphics.LambertMaterial `ecs:"mut"`
	*Highlight
}

func highlightSystem(selection *ecs.Res[controls.Selection], shapes *ecs.Query[highlightRow]) {
	selected := selection.Get()
	for entity, row := range shapes.Iter() {
		if selected.Valid && selected.Entity == entity {
			row.LambertMaterial.Diffuse = highlightColor
		} else {
			row.LambertMaterial.Diffuse = row.Highlight.Base
		}
	}
}

// scenePlugin spawns the demo scene and its behaviour systems.
type scenePlugin struct{}

func (scenePlugin) Build(a *app.App) {
	a.AddStartupSystem(ecs.Named("spawnScene", ecs.Exclusive(spawnScene)))
	a.AddSystem(ecs.Update, ecs.Func2(spinSystem))
	a.AddSystem(ecs.PostUpdate, ecs.Func2(highlightSystem))
}
