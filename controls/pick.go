package controls

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
	"github.com/plus3/carnot/input"
	"github.com/plus3/carnot/render"
)

// Pickable marks an entity that can be selected by clicking on it. Its shape is
// the implicit sphere placed by its Transform.
type Pickable struct{}

// Selection is the resource holding the most recently clicked entity.
type Selection struct {
	Entity ecs.EntityId
	Valid  bool
	Hit    mgl32.Vec3
}

type pickCameraRow struct {
	*graphics.PerspectiveCamera
	*graphics.Transform
	*graphics.ActiveCamera
}

type pickableRow struct {
	*graphics.Transform
	*Pickable
}

// PickSystem casts a ray through the cursor when the left button is clicked and
// selects the nearest pickable entity it hits. A click on nothing clears the
// selection.
type PickSystem struct {
	Input     ecs.Res[input.State]
	Size      ecs.Res[render.WindowSize]
	Selection ecs.ResMut[Selection]
	Cameras   ecs.Query[pickCameraRow]
	Targets   ecs.Query[pickableRow]
}

// Name implements the scheduler's naming hook.
func (s *PickSystem) Name() string {
	return "controls.Pick"
}

// Execute implements ecs.System.
func (s *PickSystem) Execute(*ecs.UpdateFrame) {
	in := s.Input.Get()
	if !in.Clicked {
		return
	}
	_, camera, ok := s.Cameras.First()
	if !ok {
		return
	}
	ray, ok := CursorRay(camera.PerspectiveCamera, camera.Transform, *s.Size.Get(), in.Cursor.X(), in.Cursor.Y())
	if !ok {
		return
	}

	var sphere graphics.ImplicitSphere
	best := Selection{}
	var nearest float32
	for entity, row := range s.Targets.Iter() {
		t, hit := sphere.IntersectWorld(ray, *row.Transform)
		if !hit || (best.Valid && t >= nearest) {
			continue
		}
		nearest = t
		best = Selection{Entity: entity, Valid: true, Hit: ray.At(t)}
	}
	*s.Selection.Get() = best
}

// CursorRay returns the world-space ray under the cursor at (x, y) window pixels.
func CursorRay(camera *graphics.PerspectiveCamera, pose *graphics.Transform, size render.WindowSize, x, y float64) (graphics.Ray, bool) {
	if size.Width <= 0 || size.Height <= 0 {
		return graphics.Ray{}, false
	}
	view := pose.Matrix.Inv()
	proj := camera.Projection()
	winY := float32(size.Height) - float32(y)

	near, err := mgl32.UnProject(mgl32.Vec3{float32(x), winY, 0}, view, proj, 0, 0, size.Width, size.Height)
	if err != nil {
		return graphics.Ray{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{float32(x), winY, 1}, view, proj, 0, 0, size.Width, size.Height)
	if err != nil {
		return graphics.Ray{}, false
	}
	direction := far.Sub(near)
	if direction.Len() == 0 {
		return graphics.Ray{}, false
	}
	return graphics.Ray{Origin: near, Direction: direction.Normalize()}, true
}
