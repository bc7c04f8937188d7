package geometry

import "github.com/taigrr/x3dgl/pkg/math3d"

// IndexedFaceSet is a polygon mesh. CoordIndex lists each face's vertices
// terminated by -1; faces are fan triangulated from their first vertex.
type IndexedFaceSet struct {
	Coord      []math3d.Vec3
	CoordIndex []int

	// Color is used only when ColorPerVertex is set. ColorIndex falls back
	// to CoordIndex when empty.
	Color          []math3d.Vec3
	ColorIndex     []int
	ColorPerVertex bool

	// TexCoordIndex falls back to CoordIndex when empty.
	TexCoord      []math3d.Vec2
	TexCoordIndex []int
}

// Colored reports whether the set carries usable per-vertex colors.
func (f IndexedFaceSet) Colored() bool {
	return f.ColorPerVertex && len(f.Color) > 0
}

// Textured reports whether the set carries texture coordinates.
func (f IndexedFaceSet) Textured() bool {
	return len(f.TexCoord) > 0
}

// Tessellate implements Primitive. Faces with fewer than three vertices or
// any out-of-range index are skipped.
func (f IndexedFaceSet) Tessellate() Mesh {
	colored, textured := f.Colored(), f.Textured()
	colorIndex := f.ColorIndex
	if len(colorIndex) == 0 {
		colorIndex = f.CoordIndex
	}
	texIndex := f.TexCoordIndex
	if len(texIndex) == 0 {
		texIndex = f.CoordIndex
	}

	var m Mesh
	start := 0
	for start < len(f.CoordIndex) {
		end := start
		for end < len(f.CoordIndex) && f.CoordIndex[end] != -1 {
			end++
		}
		if f.validFace(start, end, colorIndex, texIndex, colored, textured) {
			for i := start + 1; i+1 < end; i++ {
				corners := [3]int{start, i, i + 1}
				for _, k := range corners {
					m.Positions = append(m.Positions, f.Coord[f.CoordIndex[k]])
					if colored {
						m.Colors = append(m.Colors, f.Color[colorIndex[k]])
					}
					if textured {
						m.UVs = append(m.UVs, f.TexCoord[texIndex[k]])
					}
				}
			}
		}
		start = end + 1
	}
	return m
}

// validFace checks the face spanning CoordIndex[start:end].
func (f IndexedFaceSet) validFace(start, end int, colorIndex, texIndex []int, colored, textured bool) bool {
	if end-start < 3 {
		return false
	}
	for k := start; k < end; k++ {
		if !inRange(len(f.Coord), f.CoordIndex[k]) {
			return false
		}
		if colored && (k >= len(colorIndex) || !inRange(len(f.Color), colorIndex[k])) {
			return false
		}
		if textured && (k >= len(texIndex) || !inRange(len(f.TexCoord), texIndex[k])) {
			return false
		}
	}
	return true
}
