// Package render is the boundary between the world and a concrete renderer.
// Each frame the render System joins drawable meshes with their transforms,
// picks the active camera and hands the result to the Renderer resource.
package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/ecs"
	"github.com/plus3/carnot/graphics"
)

// ErrNoActiveCamera is raised when no entity carries a PerspectiveCamera, a
// Transform and the ActiveCamera marker.
var ErrNoActiveCamera = errors.New("render: no active camera")

// DrawCommand is one mesh to draw.
type DrawCommand struct {
	Entity ecs.EntityId
	Mesh   *graphics.Mesh
	Model  mgl32.Mat4
	Color  mgl32.Vec4
}

// Frame is everything a renderer needs for one frame. A Frame and the meshes it
// points to are only valid during Submit.
type Frame struct {
	Number       uint64
	Camera       graphics.CameraUniform
	CameraEntity ecs.EntityId
	ClearColor   mgl32.Vec4
	LineWidth    float32
	Draws        []DrawCommand
}

// Renderer draws frames.
type Renderer interface {
	Submit(frame *Frame) error
}

// Handle is the resource holding the renderer the render System submits to.
type Handle struct {
	Renderer Renderer
}

// WindowSize is the resource holding the current drawable size in pixels.
type WindowSize struct {
	Width  int
	Height int
}

// AspectRatio returns width / height, or 0 while the window has no height.
func (s WindowSize) AspectRatio() float32 {
	if s.Height <= 0 {
		return 0
	}
	return float32(s.Width) / float32(s.Height)
}
