package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/carnot/render"
)

// WireframeRenderer is a render.Renderer that keeps the projected edges of the
// last submitted frame and strokes them onto the screen.
type WireframeRenderer struct {
	lines     []render.Line
	clear     color.RGBA
	lineWidth float32
	frames    uint64
}

// Submit implements render.Renderer.
func (r *WireframeRenderer) Submit(frame *render.Frame) error {
	r.lines = render.Wireframe(frame, r.lines[:0])
	r.clear = render.RGBA(frame.ClearColor)
	r.lineWidth = frame.LineWidth
	r.frames++
	return nil
}

// Frames returns the number of frames submitted.
func (r *WireframeRenderer) Frames() uint64 {
	return r.frames
}

// Draw paints the last submitted frame.
func (r *WireframeRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.clear)
	bounds := screen.Bounds()
	for _, line := range r.lines {
		x0, y0, x1, y1 := line.Screen(bounds.Dx(), bounds.Dy())
		vector.StrokeLine(screen, x0, y0, x1, y1, r.lineWidth, render.RGBA(line.Color), true)
	}
}
