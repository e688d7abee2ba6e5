package render

import (
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/ecs"
)

// Plugin installs a renderer, the WindowSize resource sized from the app config,
// the camera aspect system and the render System.
type Plugin struct {
	Renderer Renderer
}

// Build implements app.Plugin.
func (p Plugin) Build(a *app.App) {
	cfg := a.Config()
	ecs.AddResource(a.World(), Handle{Renderer: p.Renderer})
	ecs.AddResource(a.World(), WindowSize{Width: cfg.App.Width, Height: cfg.App.Height})
	a.AddSystem(ecs.PreUpdate, ecs.Named("render.CameraAspect", ecs.Func2(CameraAspectSystem)))
	a.AddSystem(ecs.Render, NewSystem(cfg.Render, a.Logger()))
}
