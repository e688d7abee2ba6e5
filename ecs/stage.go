package ecs

//go:generate go run golang.org/x/tools/cmd/stringer -type=Stage

// Stage is an execution bucket. Startup systems run once, before the first frame;
// the remaining stages run every frame in declaration order. Within a stage,
// systems run in registration order.
type Stage int

const (
	// Startup runs exactly once, before any other stage.
	Startup Stage = iota
	// PreUpdate runs after platform events were applied to resources.
	PreUpdate
	// Update holds the main per-frame logic.
	Update
	// PostUpdate runs after the main logic, for cleanup and bookkeeping.
	PostUpdate
	// Render hands the frame's state to the renderer.
	Render

	stageCount
)

// FrameStages lists the stages that run every frame, in order.
var FrameStages = []Stage{PreUpdate, Update, PostUpdate, Render}
