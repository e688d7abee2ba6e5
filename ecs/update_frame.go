package ecs

// UpdateFrame is passed to every system run by the Scheduler.
type UpdateFrame struct {
	DeltaTime float64
	Frame     uint64
	Stage     Stage
	Commands  *Commands
	World     *World
}

func newUpdateFrame(world *World, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		Commands: commands,
		World:    world,
	}
}
