// Package controls turns input into camera motion and entity selection.
package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
	"github.com/plus3/carnot/input"
)

// FlyCamera makes the active camera fly with WASD and look around with the mouse
// while the right button is held.
type FlyCamera struct {
	Speed       float32 // units per second
	Sensitivity float32 // radians per pixel
}

// DefaultFlyCamera returns moderate speed and sensitivity.
func DefaultFlyCamera() FlyCamera {
	return FlyCamera{Speed: 3, Sensitivity: 0.005}
}

type flyRow struct {
	*graphics.Transform `ecs:"mut"`
	*FlyCamera
	*graphics.ActiveCamera
}

// maxPitch keeps the view direction away from straight up and down.
const maxPitch = 0.99

// FlySystem moves and turns the active fly camera.
func FlySystem(state *ecs.Res[input.State], clock *ecs.Res[ecs.Time], cameras *ecs.Query[flyRow]) {
	in := state.Get()
	dt := float32(clock.Get().DeltaSeconds())

	for row := range cameras.Values() {
		fly(row.Transform, row.FlyCamera, in, dt)
	}
}

func fly(tr *graphics.Transform, cfg *FlyCamera, in *input.State, dt float32) {
	right, _, back := tr.Axes()
	strafe := float32(in.Axis(input.KeyA, input.KeyD))
	forward := float32(in.Axis(input.KeyS, input.KeyW))

	move := right.Mul(strafe).Sub(back.Mul(forward))
	if move.Len() > 0 {
		tr.Translate(move.Normalize().Mul(cfg.Speed * dt))
	}

	if !in.ButtonDown(input.MouseRight) {
		return
	}
	delta := in.CursorDelta
	if delta[0] == 0 && delta[1] == 0 {
		return
	}

	yaw := -float32(delta[0]) * cfg.Sensitivity
	pitch := -float32(delta[1]) * cfg.Sensitivity

	position := tr.Translation()
	rotation := tr.Matrix
	rotation.SetCol(3, mgl32.Vec4{0, 0, 0, 1})

	turned := mgl32.HomogRotate3DY(yaw).Mul4(rotation)
	pitched := turned.Mul4(mgl32.HomogRotate3DX(pitch))
	if view := pitched.Col(2).Vec3().Normalize(); float32(math.Abs(float64(view.Y()))) < maxPitch {
		turned = pitched
	}

	tr.Matrix = mgl32.Translate3D(position.X(), position.Y(), position.Z()).Mul4(turned)
}
