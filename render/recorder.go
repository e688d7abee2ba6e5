package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
)

// RecordedDraw is a DrawCommand with the mesh reduced to its sizes.
type RecordedDraw struct {
	Entity    ecs.EntityId
	Model     mgl32.Mat4
	Color     mgl32.Vec4
	Vertices  int
	Triangles int
}

// RecordedFrame is a copy of a submitted Frame that outlives Submit.
type RecordedFrame struct {
	Number       uint64
	Camera       graphics.CameraUniform
	CameraEntity ecs.EntityId
	Draws        []RecordedDraw
}

// Recorder is a headless Renderer that keeps copies of submitted frames. Keep
// bounds how many are retained; 0 keeps them all.
type Recorder struct {
	Keep   int
	Frames []RecordedFrame
}

// NewRecorder returns a recorder retaining the last keep frames.
func NewRecorder(keep int) *Recorder {
	return &Recorder{Keep: keep}
}

// Submit implements Renderer.
func (r *Recorder) Submit(frame *Frame) error {
	recorded := RecordedFrame{
		Number:       frame.Number,
		Camera:       frame.Camera,
		CameraEntity: frame.CameraEntity,
		Draws:        make([]RecordedDraw, 0, len(frame.Draws)),
	}
	for _, draw := range frame.Draws {
		if err := draw.Mesh.Validate(); err != nil {
			return err
		}
		recorded.Draws = append(recorded.Draws, RecordedDraw{
			Entity:    draw.Entity,
			Model:     draw.Model,
			Color:     draw.Color,
			Vertices:  len(draw.Mesh.Vertices),
			Triangles: draw.Mesh.Triangles(),
		})
	}

	r.Frames = append(r.Frames, recorded)
	if r.Keep > 0 && len(r.Frames) > r.Keep {
		r.Frames = append(r.Frames[:0], r.Frames[len(r.Frames)-r.Keep:]...)
	}
	return nil
}

// Last returns the most recent frame.
func (r *Recorder) Last() (RecordedFrame, bool) {
	if len(r.Frames) == 0 {
		return RecordedFrame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}
