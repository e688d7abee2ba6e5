package graphics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle returns a unit triangle in the XY plane facing +Z.
func Triangle() Mesh {
	normal := mgl32.Vec3{0, 0, 1}
	return Mesh{
		Vertices: []MeshVertex{
			{Position: mgl32.Vec3{0, 0.5, 0}, Normal: normal, TexCoords: mgl32.Vec2{0.5, 1}},
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: normal, TexCoords: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: normal, TexCoords: mgl32.Vec2{1, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

// Plane returns a unit square in the XZ plane facing +Y.
func Plane() Mesh {
	normal := mgl32.Vec3{0, 1, 0}
	return Mesh{
		Vertices: []MeshVertex{
			{Position: mgl32.Vec3{-0.5, 0, 0.5}, Normal: normal, TexCoords: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{0.5, 0, 0.5}, Normal: normal, TexCoords: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{0.5, 0, -0.5}, Normal: normal, TexCoords: mgl32.Vec2{1, 1}},
			{Position: mgl32.Vec3{-0.5, 0, -0.5}, Normal: normal, TexCoords: mgl32.Vec2{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// cubeFaces lists, per face, the outward normal and the four corners in
// counter-clockwise order seen from outside.
var cubeFaces = [6]struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
}

var quadTexCoords = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Cube returns a unit cube centered at the origin with 24 vertices, so that each
// face has its own normals.
func Cube() Mesh {
	mesh := Mesh{
		Vertices: make([]MeshVertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, face := range cubeFaces {
		base := uint32(len(mesh.Vertices))
		for i, corner := range face.corners {
			mesh.Vertices = append(mesh.Vertices, MeshVertex{
				Position:  corner,
				Normal:    face.normal,
				TexCoords: quadTexCoords[i],
			})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return mesh
}

// Sphere tessellates a UV sphere centered at the origin. rings and sectors must be
// at least 1; two extra of each are always added so the poles close.
func Sphere(radius float32, rings, sectors int) (Mesh, error) {
	if rings < 1 || sectors < 1 {
		return Mesh{}, fmt.Errorf("%w: sphere needs at least 1 ring and sector, got %d and %d",
			ErrInvalidMesh, rings, sectors)
	}
	rings += 2
	sectors += 2

	var mesh Mesh
	for ring := 0; ring <= rings; ring++ {
		phi := math.Pi * float64(ring) / float64(rings)
		y := float32(math.Cos(phi))
		r := float32(math.Sin(phi))

		for sector := 0; sector <= sectors; sector++ {
			theta := 2 * math.Pi * float64(sector) / float64(sectors)
			x := r * float32(math.Sin(theta))
			z := r * float32(math.Cos(theta))

			mesh.Vertices = append(mesh.Vertices, MeshVertex{
				Position:  mgl32.Vec3{radius * x, radius * y, radius * z},
				Normal:    mgl32.Vec3{x, y, z},
				TexCoords: mgl32.Vec2{float32(sector) / float32(sectors), float32(ring) / float32(rings)},
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for sector := 0; sector < sectors; sector++ {
			lower := uint32(ring*(sectors+1) + sector)
			upper := lower + uint32(sectors) + 1
			mesh.Indices = append(mesh.Indices,
				lower, upper, lower+1,
				upper, upper+1, lower+1,
			)
		}
	}
	return mesh, nil
}
