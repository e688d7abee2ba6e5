package controls

import (
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/ecs"
)

// Plugin registers the fly camera and picking systems. It expects the input and
// render plugins to be installed.
type Plugin struct{}

// Build implements app.Plugin.
func (Plugin) Build(a *app.App) {
	ecs.AddResource(a.World(), Selection{})
	a.AddSystem(ecs.Update, ecs.Named("controls.Fly", ecs.Func3(FlySystem)))
	a.AddSystem(ecs.Update, &PickSystem{})
}
