package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Line is a projected mesh edge in normalized device coordinates.
type Line struct {
	From  mgl32.Vec2
	To    mgl32.Vec2
	Color mgl32.Vec4
}

// Screen maps the line to pixel coordinates of a width x height target with the
// origin in the top-left corner.
func (l Line) Screen(width, height int) (x0, y0, x1, y1 float32) {
	w, h := float32(width), float32(height)
	x0 = (l.From.X() + 1) / 2 * w
	y0 = (1 - l.From.Y()) / 2 * h
	x1 = (l.To.X() + 1) / 2 * w
	y1 = (1 - l.To.Y()) / 2 * h
	return x0, y0, x1, y1
}

// Wireframe appends the edges of every draw in frame to dst, projected through
// the frame's camera. Edges with an endpoint behind the camera are dropped.
func Wireframe(frame *Frame, dst []Line) []Line {
	var projected []mgl32.Vec3
	var visible []bool

	for _, draw := range frame.Draws {
		mvp := frame.Camera.ViewProj.Mul4(draw.Model)

		projected = projected[:0]
		visible = visible[:0]
		for _, v := range draw.Mesh.Vertices {
			clip := mvp.Mul4x1(v.Position.Vec4(1))
			if clip.W() <= 0 {
				projected = append(projected, mgl32.Vec3{})
				visible = append(visible, false)
				continue
			}
			projected = append(projected, clip.Vec3().Mul(1/clip.W()))
			visible = append(visible, true)
		}

		for _, edge := range draw.Mesh.Edges() {
			a, b := edge[0], edge[1]
			if int(b) >= len(projected) || !visible[a] || !visible[b] {
				continue
			}
			dst = append(dst, Line{
				From:  projected[a].Vec2(),
				To:    projected[b].Vec2(),
				Color: draw.Color,
			})
		}
	}
	return dst
}

// RGBA converts a color with channels in 0..1 to 8-bit RGBA, clamping out of
// range channels.
func RGBA(c mgl32.Vec4) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: channel(c[3])}
}
