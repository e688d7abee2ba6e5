package input

import (
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/ecs"
)

// EndFrameSystem clears per-frame input once the frame's update stages are done.
func EndFrameSystem(state *ecs.ResMut[State]) {
	state.Get().EndFrame()
}

// Plugin inserts an empty State and clears it at the end of every frame.
type Plugin struct{}

// Build implements app.Plugin.
func (Plugin) Build(a *app.App) {
	ecs.AddResource(a.World(), NewState())
	a.AddSystem(ecs.PostUpdate, ecs.Named("input.EndFrame", ecs.Func1(EndFrameSystem)))
}
