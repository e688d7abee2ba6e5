package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/config"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
	"go.uber.org/zap"
)

type meshRow struct {
	*graphics.Mesh
	*graphics.Transform
}

type cameraRow struct {
	*graphics.PerspectiveCamera
	*graphics.Transform
	*graphics.ActiveCamera
}

type lambertRow struct {
	*graphics.LambertMaterial
}

type phongRow struct {
	*graphics.PhongMaterial
}

var defaultColor = mgl32.Vec4{1, 1, 1, 1}

// System builds a Frame from the world and submits it to the Handle's renderer.
// Entities with a Mesh and a Transform are drawn; a Phong or Lambert material,
// if present, gives the draw its color.
type System struct {
	Meshes  ecs.Query[meshRow]
	Cameras ecs.Query[cameraRow]
	Lambert ecs.Query[lambertRow]
	Phong   ecs.Query[phongRow]
	Target  ecs.Res[Handle]

	cfg      config.RenderConfig
	logger   *zap.Logger
	frame    Frame
	skipping bool
	skipped  uint64
}

// NewSystem creates the render system for cfg.
func NewSystem(cfg config.RenderConfig, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{cfg: cfg, logger: logger}
}

// Name implements the scheduler's naming hook.
func (s *System) Name() string {
	return "render.System"
}

// Skipped returns the number of frames skipped for lack of an active camera.
func (s *System) Skipped() uint64 {
	return s.skipped
}

// Execute implements ecs.System.
func (s *System) Execute(frame *ecs.UpdateFrame) {
	cameraEntity, camera, ok := s.Cameras.First()
	if !ok {
		s.missingCamera(frame.Frame)
		return
	}
	if s.skipping {
		s.logger.Info("active camera found, rendering resumed",
			zap.Uint64("frame", frame.Frame),
			zap.Uint64("skipped", s.skipped))
		s.skipping = false
	}

	s.frame.Number = frame.Frame
	s.frame.Camera = graphics.FromCamera(camera.PerspectiveCamera, camera.Transform)
	s.frame.CameraEntity = cameraEntity
	s.frame.ClearColor = mgl32.Vec4(s.cfg.ClearColor)
	s.frame.LineWidth = s.cfg.LineWidth
	s.frame.Draws = s.frame.Draws[:0]

	for entity, row := range s.Meshes.Iter() {
		s.frame.Draws = append(s.frame.Draws, DrawCommand{
			Entity: entity,
			Mesh:   row.Mesh,
			Model:  row.Transform.Matrix,
			Color:  s.color(entity),
		})
	}

	if err := s.Target.Get().Renderer.Submit(&s.frame); err != nil {
		s.logger.Error("submit frame failed", zap.Uint64("frame", frame.Frame), zap.Error(err))
	}

	clear(s.frame.Draws)
}

func (s *System) color(entity ecs.EntityId) mgl32.Vec4 {
	if m, ok := s.Phong.Get(entity); ok {
		return m.PhongMaterial.BaseColor()
	}
	if m, ok := s.Lambert.Get(entity); ok {
		return m.LambertMaterial.BaseColor()
	}
	return defaultColor
}

func (s *System) missingCamera(frame uint64) {
	if s.cfg.MissingCamera == config.MissingCameraFail {
		panic(ErrNoActiveCamera)
	}
	s.skipped++
	if !s.skipping {
		s.logger.Warn("no active camera, skipping frames", zap.Uint64("frame", frame))
		s.skipping = true
	}
}

type activeCameraRow struct {
	*graphics.PerspectiveCamera `ecs:"mut"`
	*graphics.ActiveCamera
}

// CameraAspectSystem keeps the active camera's aspect ratio in line with the
// WindowSize resource.
func CameraAspectSystem(size *ecs.Res[WindowSize], cameras *ecs.Query[activeCameraRow]) {
	aspect := size.Get().AspectRatio()
	if aspect == 0 {
		return
	}
	for row := range cameras.Values() {
		if row.PerspectiveCamera.AspectRatio != aspect {
			row.PerspectiveCamera.SetAspectRatio(aspect)
		}
	}
}
