// Package models loads glTF and GLB files as x3dgl face sets.
package models

import (
	"github.com/taigrr/x3dgl/pkg/geometry"
	"github.com/taigrr/x3dgl/pkg/math3d"
	"github.com/taigrr/x3dgl/pkg/texture"
)

// Model is a glTF document flattened to one indexed face set with a
// single material.
type Model struct {
	Name  string
	Faces geometry.IndexedFaceSet

	// BaseColor is the base color factor of the first material, RGB in 0..1.
	BaseColor [3]float64

	// Texture is the base color image, nil when the document carries none.
	Texture *texture.Pyramid
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Model) Bounds() (math3d.Bounds, bool) {
	return math3d.BoundsOf(m.Faces.Coord)
}

// Normalize centres the model on the origin and scales it so its largest
// extent is 1.
func (m *Model) Normalize() {
	b, ok := m.Bounds()
	if !ok {
		return
	}
	center := b.Center()
	scale := 1.0
	if l := b.Largest(); l > 0 {
		scale = 1 / l
	}
	for i, p := range m.Faces.Coord {
		m.Faces.Coord[i] = p.Sub(center).Scale(scale)
	}
}

// TriangleCount returns the number of triangles the face set tessellates to.
func (m *Model) TriangleCount() int {
	return m.Faces.Tessellate().Triangles()
}

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int {
	return len(m.Faces.Coord)
}

// Colors returns the material as an X3D color dictionary.
func (m *Model) Colors() map[string]any {
	return map[string]any{"diffuseColor": m.BaseColor[:]}
}
