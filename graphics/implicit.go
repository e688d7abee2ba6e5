package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ImplicitSphere is a sphere of radius 0.5 at the local origin, matching Sphere
// meshes scaled by one half. It is used for picking.
type ImplicitSphere struct{}

// IntersectWorld returns the nearest non-negative ray parameter at which the ray
// hits the sphere placed by transform.
func (ImplicitSphere) IntersectWorld(ray Ray, transform Transform) (float32, bool) {
	inv := transform.Matrix.Inv()
	origin := mgl32.TransformCoordinate(ray.Origin, inv)
	direction := mgl32.TransformNormal(ray.Direction, inv)

	a := direction.Dot(direction)
	b := 2 * direction.Dot(origin)
	c := origin.Dot(origin) - 0.25

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return 0, false
	}

	sqrt := float32(math.Sqrt(float64(discriminant)))
	t0 := (-b - sqrt) / (2 * a)
	t1 := (-b + sqrt) / (2 * a)

	switch {
	case t0 < 0 && t1 < 0:
		return 0, false
	case t0 < 0:
		return t1, true
	case t1 < 0:
		return t0, true
	default:
		return min(t0, t1), true
	}
}
