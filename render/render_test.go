package render_test

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/app"
	"github.com/plus3/carnot/config"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
	"github.com/plus3/carnot/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func spawnCamera(w *ecs.World, at mgl32.Vec3) ecs.EntityId {
	camera := w.NewEntity()
	ecs.AddComponent(w, camera, graphics.NewPerspectiveCamera(
		mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, 1, 60, 0.1, 100))
	ecs.AddComponent(w, camera, graphics.FromTranslation(at))
	ecs.AddComponent(w, camera, graphics.ActiveCamera{})
	return camera
}

func spawnMesh(w *ecs.World, mesh graphics.Mesh, at mgl32.Vec3) ecs.EntityId {
	entity := w.NewEntity()
	ecs.AddComponent(w, entity, mesh)
	ecs.AddComponent(w, entity, graphics.FromTranslation(at))
	return entity
}

func newRecordingApp(cfg *config.Config, opts ...app.Option) (*app.App, *render.Recorder) {
	recorder := render.NewRecorder(0)
	a := app.New(cfg, opts...)
	a.AddPlugin(render.Plugin{Renderer: recorder})
	return a, recorder
}

func TestRenderSystem(t *testing.T) {
	a, recorder := newRecordingApp(config.Default())
	w := a.World()

	cube := spawnMesh(w, graphics.Cube(), mgl32.Vec3{0, 0, -5})
	spawnMesh(w, graphics.Plane(), mgl32.Vec3{0, -1, 0})
	ecs.AddComponent(w, cube, graphics.LambertMaterial{Diffuse: mgl32.Vec3{1, 0, 0}, Opacity: 1})

	// a mesh without a transform is not drawn
	loose := w.NewEntity()
	ecs.AddComponent(w, loose, graphics.Triangle())

	camera := spawnCamera(w, mgl32.Vec3{0, 0, 2})

	require.NoError(t, a.Step(time.Millisecond))

	frame, ok := recorder.Last()
	require.True(t, ok)
	assert.Equal(t, uint64(1), frame.Number)
	assert.Equal(t, camera, frame.CameraEntity)

	require.Len(t, frame.Draws, 2)
	assert.Equal(t, cube, frame.Draws[0].Entity)
	assert.Equal(t, 12, frame.Draws[0].Triangles)
	assert.Equal(t, 24, frame.Draws[0].Vertices)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, frame.Draws[0].Color)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, frame.Draws[1].Color)
	assert.Equal(t, mgl32.Translate3D(0, -1, 0), frame.Draws[1].Model)

	cam := ecs.ReadComponent[graphics.PerspectiveCamera](w, camera)
	pose := ecs.ReadComponent[graphics.Transform](w, camera)
	require.NotNil(t, cam)
	assert.Equal(t, graphics.FromCamera(cam, pose), frame.Camera)
}

func TestRenderSystemPhongOverLambert(t *testing.T) {
	a, recorder := newRecordingApp(config.Default())
	w := a.World()
	spawnCamera(w, mgl32.Vec3{})

	entity := spawnMesh(w, graphics.Triangle(), mgl32.Vec3{})
	ecs.AddComponent(w, entity, graphics.LambertMaterial{Diffuse: mgl32.Vec3{1, 0, 0}, Opacity: 1})
	ecs.AddComponent(w, entity, graphics.PhongMaterial{Diffuse: mgl32.Vec3{0, 0, 1}, Opacity: 0.5})

	require.NoError(t, a.Step(time.Millisecond))
	frame, _ := recorder.Last()
	require.Len(t, frame.Draws, 1)
	assert.Equal(t, mgl32.Vec4{0, 0, 1, 0.5}, frame.Draws[0].Color)
}

func TestMissingCamera(t *testing.T) {
	t.Run("skip", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		recorder := render.NewRecorder(0)
		a := app.New(config.Default(), app.WithLogger(zap.New(core)))
		ecs.AddResource(a.World(), render.Handle{Renderer: recorder})
		system := render.NewSystem(config.Default().Render, a.Logger())
		a.AddSystem(ecs.Render, system)

		spawnMesh(a.World(), graphics.Cube(), mgl32.Vec3{})

		for range 3 {
			require.NoError(t, a.Step(time.Millisecond))
		}
		assert.Empty(t, recorder.Frames)
		assert.Equal(t, uint64(3), system.Skipped())
		assert.Equal(t, 1, logs.FilterMessage("no active camera, skipping frames").Len())

		spawnCamera(a.World(), mgl32.Vec3{})
		require.NoError(t, a.Step(time.Millisecond))
		assert.Len(t, recorder.Frames, 1)
		assert.Equal(t, 1, logs.FilterMessage("active camera found, rendering resumed").Len())
	})

	t.Run("fail", func(t *testing.T) {
		cfg := config.Default()
		cfg.Render.MissingCamera = config.MissingCameraFail
		a, recorder := newRecordingApp(cfg)
		spawnMesh(a.World(), graphics.Cube(), mgl32.Vec3{})

		err := a.Step(time.Millisecond)
		require.Error(t, err)
		assert.True(t, errors.Is(err, render.ErrNoActiveCamera))

		var sysErr *ecs.SystemError
		require.ErrorAs(t, err, &sysErr)
		assert.Equal(t, "render.System", sysErr.System)
		assert.Equal(t, ecs.Render, sysErr.Stage)
		assert.Empty(t, recorder.Frames)
	})
}

func TestMissingRenderer(t *testing.T) {
	a := app.New(config.Default())
	a.AddSystem(ecs.Render, render.NewSystem(config.Default().Render, nil))
	spawnCamera(a.World(), mgl32.Vec3{})

	var missing *ecs.MissingResourceError
	require.ErrorAs(t, a.Step(time.Millisecond), &missing)
}

func TestSubmitErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	a, recorder := newRecordingApp(config.Default(), app.WithLogger(zap.New(core)))
	spawnCamera(a.World(), mgl32.Vec3{})

	broken := graphics.Triangle()
	broken.Indices = []uint32{0, 1, 7}
	spawnMesh(a.World(), broken, mgl32.Vec3{})

	require.NoError(t, a.Step(time.Millisecond))
	assert.Empty(t, recorder.Frames)

	entries := logs.FilterMessage("submit frame failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "out of range")
}

func TestCameraAspectSystem(t *testing.T) {
	a, _ := newRecordingApp(config.Default())
	w := a.World()
	camera := spawnCamera(w, mgl32.Vec3{})

	require.NoError(t, a.Step(time.Millisecond))
	cam := ecs.ReadComponent[graphics.PerspectiveCamera](w, camera)
	assert.InDelta(t, 1280.0/720.0, cam.AspectRatio, 1e-6)

	size, ok := ecs.GetResourceMut[render.WindowSize](w)
	require.True(t, ok)
	*size.Get() = render.WindowSize{Width: 800, Height: 400}
	size.Release()

	require.NoError(t, a.Step(time.Millisecond))
	assert.Equal(t, float32(2), cam.AspectRatio)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(60), 2, 0.1, 100), cam.Projection())

	size, _ = ecs.GetResourceMut[render.WindowSize](w)
	*size.Get() = render.WindowSize{Width: 800}
	size.Release()

	require.NoError(t, a.Step(time.Millisecond))
	assert.Equal(t, float32(2), cam.AspectRatio, "a zero height leaves the camera alone")
}

func TestRecorderKeep(t *testing.T) {
	recorder := render.NewRecorder(2)
	for i := range 5 {
		require.NoError(t, recorder.Submit(&render.Frame{Number: uint64(i + 1)}))
	}
	require.Len(t, recorder.Frames, 2)
	assert.Equal(t, uint64(4), recorder.Frames[0].Number)

	last, ok := recorder.Last()
	require.True(t, ok)
	assert.Equal(t, uint64(5), last.Number)

	_, ok = render.NewRecorder(0).Last()
	assert.False(t, ok)
}

func TestWindowSize(t *testing.T) {
	assert.Equal(t, float32(2), render.WindowSize{Width: 200, Height: 100}.AspectRatio())
	assert.Equal(t, float32(0), render.WindowSize{Width: 200}.AspectRatio())
}
