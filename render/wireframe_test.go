package render_test

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/carnot/graphics"
	"github.com/plus3/carnot/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wireframeFrame(model mgl32.Mat4, mesh *graphics.Mesh) *render.Frame {
	camera := graphics.NewPerspectiveCamera(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, 1, 90, 0.1, 100)
	pose := graphics.NewTransform()
	return &render.Frame{
		Camera: graphics.FromCamera(&camera, &pose),
		Draws: []render.DrawCommand{
			{Mesh: mesh, Model: model, Color: mgl32.Vec4{0, 1, 0, 1}},
		},
	}
}

func TestWireframe(t *testing.T) {
	t.Run("triangle in front", func(t *testing.T) {
		tri := graphics.Triangle()
		lines := render.Wireframe(wireframeFrame(mgl32.Translate3D(0, 0, -1), &tri), nil)

		require.Len(t, lines, 3)
		// apex (0, 0.5) at distance 1 with a 90 degree lens lands at y = 0.5
		assert.InDelta(t, 0, lines[0].From.X(), 1e-5)
		assert.InDelta(t, 0.5, lines[0].From.Y(), 1e-5)
		assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, lines[0].Color)
	})

	t.Run("behind the camera", func(t *testing.T) {
		tri := graphics.Triangle()
		lines := render.Wireframe(wireframeFrame(mgl32.Translate3D(0, 0, 5), &tri), nil)
		assert.Empty(t, lines)
	})

	t.Run("appends to dst", func(t *testing.T) {
		cube := graphics.Cube()
		dst := []render.Line{{}}
		lines := render.Wireframe(wireframeFrame(mgl32.Translate3D(0, 0, -5), &cube), dst)
		assert.Len(t, lines, 1+30)
	})
}

func TestLineScreen(t *testing.T) {
	line := render.Line{From: mgl32.Vec2{-1, 1}, To: mgl32.Vec2{0.5, -0.5}}
	x0, y0, x1, y1 := line.Screen(200, 100)
	assert.Equal(t, float32(0), x0)
	assert.Equal(t, float32(0), y0)
	assert.Equal(t, float32(150), x1)
	assert.Equal(t, float32(75), y1)
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 255}, render.RGBA(mgl32.Vec4{1, 0.5, -2, 3}))
}
