package graphics

import "github.com/go-gl/mathgl/mgl32"

// LambertMaterial is a diffuse-only surface.
type LambertMaterial struct {
	Ambient mgl32.Vec3
	Diffuse mgl32.Vec3
	Opacity float32
}

// PhongMaterial adds a specular highlight.
type PhongMaterial struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
	Opacity   float32
}

// BaseColor returns the color used by renderers that do no lighting.
func (m LambertMaterial) BaseColor() mgl32.Vec4 {
	return m.Diffuse.Add(m.Ambient).Vec4(m.Opacity)
}

// BaseColor returns the color used by renderers that do no lighting.
func (m PhongMaterial) BaseColor() mgl32.Vec4 {
	return m.Diffuse.Add(m.Ambient).Vec4(m.Opacity)
}
