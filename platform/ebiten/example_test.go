package ebiten_test

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/config"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
	carnotebiten "github.com/plus3/carnot/platform/ebiten"
)

func Example() {
	cfg := config.Default()
	cfg.App.Title = "Spinning cube"

	a := app.New(cfg)
	a.AddStartupSystem(ecs.Exclusive(func(w *ecs.World) {
		camera := w.NewEntity()
		ecs.AddComponent(w, camera, graphics.NewPerspectiveCamera(
			mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, 16.0/9.0, 60, 0.1, 100))
		ecs.AddComponent(w, camera, graphics.FromTranslation(mgl32.Vec3{0, 0, 3}))
		ecs.AddComponent(w, camera, graphics.ActiveCamera{})

		cube := w.NewEntity()
		ecs.AddComponent(w, cube, graphics.Cube())
		ecs.AddComponent(w, cube, graphics.NewTransform())
	}))

	game := carnotebiten.NewGame(a)
	if err := game.Run(); err != nil {
		panic(err)
	}
}
