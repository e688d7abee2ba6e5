package controls_test

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/config"
	"github.com/plus3/carnot/controls"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
	"github.com/plus3/carnot/input"
	"github.com/plus3/carnot/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-4

func assertVecNear(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], epsilon, msgAndArgs...)
}

func newControlsApp(t *testing.T) (*app.App, ecs.EntityId) {
	t.Helper()
	cfg := config.Default()
	a := app.New(cfg).
		AddPlugin(input.Plugin{}).
		AddPlugin(render.Plugin{Renderer: render.NewRecorder(1)}).
		AddPlugin(controls.Plugin{})

	w := a.World()
	camera := w.NewEntity()
	aspect := float32(cfg.App.Width) / float32(cfg.App.Height)
	ecs.AddComponent(w, camera, graphics.NewPerspectiveCamera(
		mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, aspect, 60, 0.1, 100))
	ecs.AddComponent(w, camera, graphics.FromTranslation(mgl32.Vec3{0, 0, 5}))
	ecs.AddComponent(w, camera, graphics.ActiveCamera{})
	ecs.AddComponent(w, camera, controls.DefaultFlyCamera())
	return a, camera
}

func withInput(t *testing.T, a *app.App, fn func(*input.State)) {
	t.Helper()
	state, ok := ecs.GetResourceMut[input.State](a.World())
	require.True(t, ok)
	defer state.Release()
	fn(state.Get())
}

func TestFlySystemMoves(t *testing.T) {
	a, camera := newControlsApp(t)
	pose := ecs.ReadComponent[graphics.Transform](a.World(), camera)

	withInput(t, a, func(s *input.State) { s.PressKey(input.KeyW) })
	require.NoError(t, a.Step(500*time.Millisecond))
	assertVecNear(t, mgl32.Vec3{0, 0, 3.5}, pose.Translation(), "after forward %v", pose.Translation())

	withInput(t, a, func(s *input.State) {
		s.ReleaseKey(input.KeyW)
		s.PressKey(input.KeyD)
	})
	require.NoError(t, a.Step(time.Second))
	assertVecNear(t, mgl32.Vec3{3, 0, 3.5}, pose.Translation(), "after strafe %v", pose.Translation())

	withInput(t, a, func(s *input.State) { s.PressKey(input.KeyW) })
	require.NoError(t, a.Step(time.Second))
	moved := pose.Translation().Sub(mgl32.Vec3{3, 0, 3.5})
	assert.InDelta(t, 3, moved.Len(), epsilon, "diagonal motion is normalized")
}

func TestFlySystemLooks(t *testing.T) {
	a, camera := newControlsApp(t)
	pose := ecs.ReadComponent[graphics.Transform](a.World(), camera)

	t.Run("mouse motion without the right button does nothing", func(t *testing.T) {
		withInput(t, a, func(s *input.State) {
			s.MoveCursor(mgl64.Vec2{100, 100})
			s.MoveCursor(mgl64.Vec2{200, 100})
		})
		require.NoError(t, a.Step(time.Millisecond))
		assert.Equal(t, graphics.FromTranslation(mgl32.Vec3{0, 0, 5}).Matrix, pose.Matrix)
	})

	t.Run("yaw turns right", func(t *testing.T) {
		withInput(t, a, func(s *input.State) {
			s.PressButton(input.MouseRight)
			s.MoveCursor(mgl64.Vec2{300, 100})
		})
		require.NoError(t, a.Step(time.Millisecond))

		_, _, back := pose.Axes()
		forward := back.Mul(-1)
		assert.Greater(t, forward.X(), float32(0.4))
		assert.InDelta(t, 0, forward.Y(), epsilon)
		assertVecNear(t, mgl32.Vec3{0, 0, 5}, pose.Translation())
	})

	t.Run("pitch stops short of vertical", func(t *testing.T) {
		before := pose.Matrix
		withInput(t, a, func(s *input.State) { s.MoveCursor(mgl64.Vec2{300, 414}) })
		require.NoError(t, a.Step(time.Millisecond))
		assert.Equal(t, before, pose.Matrix)
	})
}

func TestPickSystem(t *testing.T) {
	a, _ := newControlsApp(t)
	w := a.World()

	near := w.NewEntity()
	ecs.AddComponent(w, near, graphics.NewTransform())
	ecs.AddComponent(w, near, controls.Pickable{})

	far := w.NewEntity()
	ecs.AddComponent(w, far, graphics.FromTranslation(mgl32.Vec3{0, 0, -10}))
	ecs.AddComponent(w, far, controls.Pickable{})

	aside := w.NewEntity()
	ecs.AddComponent(w, aside, graphics.FromTranslation(mgl32.Vec3{3, 0, 0}))

	selection := func() controls.Selection {
		res, ok := ecs.GetResource[controls.Selection](w)
		require.True(t, ok)
		defer res.Release()
		return *res.Get()
	}

	withInput(t, a, func(s *input.State) {
		s.MoveCursor(mgl64.Vec2{640, 360})
		s.PressButton(input.MouseLeft)
	})
	require.NoError(t, a.Step(time.Millisecond))

	picked := selection()
	require.True(t, picked.Valid)
	assert.Equal(t, near, picked.Entity)
	want := mgl32.Vec3{0, 0, 0.5}
	assert.InDeltaSlice(t, want[:], picked.Hit[:], 1e-3, "hit %v", picked.Hit)

	withInput(t, a, func(s *input.State) {
		s.ReleaseButton(input.MouseLeft)
		s.MoveCursor(mgl64.Vec2{5, 5})
	})
	require.NoError(t, a.Step(time.Millisecond))
	assert.True(t, selection().Valid, "selection holds until the next click")

	withInput(t, a, func(s *input.State) { s.PressButton(input.MouseLeft) })
	require.NoError(t, a.Step(time.Millisecond))
	assert.False(t, selection().Valid)
}

func TestCursorRay(t *testing.T) {
	camera := graphics.NewPerspectiveCamera(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, 2, 90, 0.1, 100)
	pose := graphics.NewTransform()

	ray, ok := controls.CursorRay(&camera, &pose, render.WindowSize{Width: 200, Height: 100}, 100, 50)
	require.True(t, ok)
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, ray.Direction, "direction %v", ray.Direction)
	assert.InDelta(t, -0.1, ray.Origin.Z(), epsilon)

	_, ok = controls.CursorRay(&camera, &pose, render.WindowSize{}, 0, 0)
	assert.False(t, ok)
}
