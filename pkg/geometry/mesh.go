// Package geometry tessellates X3D geometry nodes into flat triangle lists.
// Every tessellator is pure: it reads its fields and returns a new Mesh.
package geometry

import "github.com/taigrr/x3dgl/pkg/math3d"

// DefaultSegments is the number of angular steps used for round solids.
const DefaultSegments = 12

// Primitive is any node that can be turned into triangles.
type Primitive interface {
	Tessellate() Mesh
}

// Mesh is a flat triangle list: every three positions form one triangle.
// Colors (0..1 per channel) and UVs are either empty or parallel to
// Positions.
type Mesh struct {
	Positions []math3d.Vec3
	Colors    []math3d.Vec3
	UVs       []math3d.Vec2
}

// Triangles returns the number of complete triangles.
func (m Mesh) Triangles() int {
	return len(m.Positions) / 3
}

// HasColors reports whether every vertex carries a color.
func (m Mesh) HasColors() bool {
	return len(m.Colors) > 0 && len(m.Colors) == len(m.Positions)
}

// HasUVs reports whether every vertex carries texture coordinates.
func (m Mesh) HasUVs() bool {
	return len(m.UVs) > 0 && len(m.UVs) == len(m.Positions)
}

// Bounds returns the bounding box of the mesh positions.
func (m Mesh) Bounds() (math3d.Bounds, bool) {
	return math3d.BoundsOf(m.Positions)
}

func (m *Mesh) tri(a, b, c math3d.Vec3) {
	m.Positions = append(m.Positions, a, b, c)
}

// Points3 groups a flat [x0, y0, z0, x1, ...] list into points. A trailing
// incomplete tuple is ignored.
func Points3(flat []float64) []math3d.Vec3 {
	out := make([]math3d.Vec3, len(flat)/3)
	for i := range out {
		out[i] = math3d.V3(flat[3*i], flat[3*i+1], flat[3*i+2])
	}
	return out
}

// Points2 groups a flat [u0, v0, u1, ...] list into pairs. A trailing
// incomplete tuple is ignored.
func Points2(flat []float64) []math3d.Vec2 {
	out := make([]math3d.Vec2, len(flat)/2)
	for i := range out {
		out[i] = math3d.V2(flat[2*i], flat[2*i+1])
	}
	return out
}

// Colors3 groups a flat [r0, g0, b0, ...] list into colors.
func Colors3(flat []float64) []math3d.Vec3 {
	return Points3(flat)
}

func segments(n int) int {
	if n < 3 {
		return DefaultSegments
	}
	return n
}
