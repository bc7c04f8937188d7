package geometry

import "github.com/taigrr/x3dgl/pkg/math3d"

// TriangleSet draws every consecutive triple of points.
type TriangleSet struct {
	Points []math3d.Vec3
}

// Tessellate implements Primitive.
func (s TriangleSet) Tessellate() Mesh {
	n := len(s.Points) / 3 * 3
	return Mesh{Positions: append([]math3d.Vec3(nil), s.Points[:n]...)}
}

// TriangleStripSet splits Points into strips of StripCount[i] vertices.
type TriangleStripSet struct {
	Points     []math3d.Vec3
	StripCount []int
}

// Tessellate implements Primitive. Odd windows of each strip swap their
// last two vertices so the whole strip keeps one winding.
func (s TriangleStripSet) Tessellate() Mesh {
	var m Mesh
	start := 0
	for _, count := range s.StripCount {
		end := min(start+max(count, 0), len(s.Points))
		strip := s.Points[start:end]
		for i := 0; i+2 < len(strip); i++ {
			if i%2 == 1 {
				m.tri(strip[i], strip[i+2], strip[i+1])
			} else {
				m.tri(strip[i], strip[i+1], strip[i+2])
			}
		}
		start = end
	}
	return m
}

// IndexedTriangleStripSet reads strips from Index; -1 ends a strip.
type IndexedTriangleStripSet struct {
	Points []math3d.Vec3
	Index  []int
}

// Tessellate implements Primitive. Windows that reference a missing point
// are skipped without breaking the strip's parity.
func (s IndexedTriangleStripSet) Tessellate() Mesh {
	var m Mesh
	for _, strip := range splitIndex(s.Index) {
		for i := 0; i+2 < len(strip); i++ {
			a, b, c := strip[i], strip[i+1], strip[i+2]
			if !inRange(len(s.Points), a, b, c) {
				continue
			}
			if i%2 == 1 {
				a, b = b, a
			}
			m.tri(s.Points[a], s.Points[b], s.Points[c])
		}
	}
	return m
}

// splitIndex cuts an index list at every -1. Empty runs are dropped.
func splitIndex(index []int) [][]int {
	var runs [][]int
	start := 0
	for i, v := range index {
		if v == -1 {
			if i > start {
				runs = append(runs, index[start:i])
			}
			start = i + 1
		}
	}
	if start < len(index) {
		runs = append(runs, index[start:])
	}
	return runs
}

func inRange(n int, idx ...int) bool {
	for _, i := range idx {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}
