package graphics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidMesh is wrapped by Mesh.Validate failures.
var ErrInvalidMesh = errors.New("graphics: invalid mesh")

// MeshVertex is one vertex of a triangle mesh.
type MeshVertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	TexCoords mgl32.Vec2
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []MeshVertex
	Indices  []uint32
}

// Validate checks that the indices form whole triangles over existing vertices.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	for i, index := range m.Indices {
		if int(index) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at position %d out of range (%d vertices)",
				ErrInvalidMesh, index, i, len(m.Vertices))
		}
	}
	return nil
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Edge is an undirected pair of vertex indices, smaller index first.
type Edge [2]uint32

// Edges returns every distinct triangle edge, in first-seen order.
func (m *Mesh) Edges() []Edge {
	seen := make(map[Edge]struct{}, len(m.Indices))
	edges := make([]Edge, 0, len(m.Indices))
	for tri := 0; tri+2 < len(m.Indices); tri += 3 {
		a, b, c := m.Indices[tri], m.Indices[tri+1], m.Indices[tri+2]
		for _, pair := range [3][2]uint32{{a, b}, {b, c}, {c, a}} {
			edge := Edge{min(pair[0], pair[1]), max(pair[0], pair[1])}
			if _, ok := seen[edge]; ok {
				continue
			}
			seen[edge] = struct{}{}
			edges = append(edges, edge)
		}
	}
	return edges
}
