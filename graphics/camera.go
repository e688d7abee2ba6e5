package graphics

import "github.com/go-gl/mathgl/mgl32"

// PerspectiveCamera holds the intrinsics and extrinsics of a perspective camera,
// with its projection and view matrices kept up to date.
type PerspectiveCamera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	AspectRatio float32 // width / height
	FovY        float32 // vertical field of view, degrees
	Near, Far   float32

	projection mgl32.Mat4
	view       mgl32.Mat4
}

// NewPerspectiveCamera creates a camera at eye looking at target. fovY is in degrees.
func NewPerspectiveCamera(eye, target, up mgl32.Vec3, aspectRatio, fovY, near, far float32) PerspectiveCamera {
	c := PerspectiveCamera{}
	c.UpdateIntrinsics(aspectRatio, fovY, near, far)
	c.UpdateExtrinsics(eye, target, up)
	return c
}

// UpdateIntrinsics replaces the lens parameters and recomputes the projection.
func (c *PerspectiveCamera) UpdateIntrinsics(aspectRatio, fovY, near, far float32) {
	c.AspectRatio = aspectRatio
	c.FovY = fovY
	c.Near = near
	c.Far = far
	c.projection = mgl32.Perspective(mgl32.DegToRad(fovY), aspectRatio, near, far)
}

// SetAspectRatio keeps the other intrinsics and recomputes the projection.
func (c *PerspectiveCamera) SetAspectRatio(aspectRatio float32) {
	c.UpdateIntrinsics(aspectRatio, c.FovY, c.Near, c.Far)
}

// UpdateExtrinsics moves the camera and recomputes the view matrix.
func (c *PerspectiveCamera) UpdateExtrinsics(eye, target, up mgl32.Vec3) {
	c.Eye = eye
	c.Target = target
	c.Up = up
	c.view = mgl32.LookAtV(eye, target, up)
}

// Projection returns the most recently computed projection matrix.
func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return c.projection
}

// View returns the most recently computed look-at matrix.
func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return c.view
}

// ActiveCamera marks the camera entity the renderer draws from.
type ActiveCamera struct{}

// CameraUniform is the combined matrix uploaded to the renderer.
type CameraUniform struct {
	ViewProj mgl32.Mat4
}

// NewCameraUniform returns the identity uniform.
func NewCameraUniform() CameraUniform {
	return CameraUniform{ViewProj: mgl32.Ident4()}
}

// FromViewProj stores proj * view.
func (u *CameraUniform) FromViewProj(view, proj mgl32.Mat4) {
	u.ViewProj = proj.Mul4(view)
}

// FromCamera builds the uniform for a camera placed by transform. The transform
// is the camera's pose in world space, so the view matrix is its inverse.
func FromCamera(camera *PerspectiveCamera, transform *Transform) CameraUniform {
	var u CameraUniform
	u.FromViewProj(transform.Matrix.Inv(), camera.Projection())
	return u
}

// Project maps a world point to normalized device coordinates. The second result
// is false for points behind the camera.
func (u CameraUniform) Project(p mgl32.Vec3) (mgl32.Vec3, bool) {
	clip := u.ViewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}
