// Package graphics holds the plain component types that the rendering
// collaborator consumes: transforms, meshes, cameras and materials.
package graphics

import "github.com/go-gl/mathgl/mgl32"

// Transform places an entity in world space.
type Transform struct {
	Matrix mgl32.Mat4
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Matrix: mgl32.Ident4()}
}

// FromTranslation returns a transform that only moves by v.
func FromTranslation(v mgl32.Vec3) Transform {
	return Transform{Matrix: mgl32.Translate3D(v.X(), v.Y(), v.Z())}
}

// FromScaleRotationTranslation composes scale, then rotation, then translation.
func FromScaleRotationTranslation(scale mgl32.Vec3, rotation mgl32.Quat, translation mgl32.Vec3) Transform {
	m := mgl32.Translate3D(translation.X(), translation.Y(), translation.Z()).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
	return Transform{Matrix: m}
}

// Translation returns the position part of the transform.
func (t Transform) Translation() mgl32.Vec3 {
	return t.Matrix.Col(3).Vec3()
}

// Translate moves the transform by v in world space.
func (t *Transform) Translate(v mgl32.Vec3) {
	t.Matrix = mgl32.Translate3D(v.X(), v.Y(), v.Z()).Mul4(t.Matrix)
}

// RotateLocal rotates the transform by angle radians around axis, in its own frame.
func (t *Transform) RotateLocal(angle float32, axis mgl32.Vec3) {
	t.Matrix = t.Matrix.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
}

// Axes returns the transform's local right, up and backward directions.
func (t Transform) Axes() (x, y, z mgl32.Vec3) {
	return t.Matrix.Col(0).Vec3(), t.Matrix.Col(1).Vec3(), t.Matrix.Col(2).Vec3()
}

// TransformPoint maps a local point to world space.
func (t Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.Matrix)
}
