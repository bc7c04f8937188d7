package geometry

import (
	"math"

	"github.com/taigrr/x3dgl/pkg/math3d"
)

// Box is an axis-aligned box centred on the origin.
type Box struct {
	Size math3d.Vec3
}

// boxFaces lists the six quads over the corners produced by FaceSet.
var boxFaces = []int{
	5, 4, 0, 1, -1,
	5, 7, 6, 4, -1,
	4, 6, 2, 0, -1,
	0, 2, 3, 1, -1,
	1, 3, 7, 5, -1,
	7, 3, 2, 6, -1,
}

// FaceSet returns the box as an IndexedFaceSet. Corner i has the signs
// of x, y and z taken from bits 2, 1 and 0 of i, a set bit meaning -.
func (b Box) FaceSet() IndexedFaceSet {
	half := b.Size.Scale(0.5)
	coord := make([]math3d.Vec3, 0, 8)
	for _, cx := range []float64{1, -1} {
		for _, cy := range []float64{1, -1} {
			for _, cz := range []float64{1, -1} {
				coord = append(coord, math3d.V3(half.X*cx, half.Y*cy, half.Z*cz))
			}
		}
	}
	return IndexedFaceSet{Coord: coord, CoordIndex: boxFaces}
}

// Tessellate implements Primitive.
func (b Box) Tessellate() Mesh {
	return b.FaceSet().Tessellate()
}

// Sphere is a UV sphere centred on the origin.
type Sphere struct {
	Radius   float64
	Segments int // Latitude bands and longitude steps; 0 means 12
}

// Tessellate implements Primitive. Band i joins ring i-1 above to ring i
// below; the pole triangles that would collapse to a line are omitted.
func (s Sphere) Tessellate() Mesh {
	n := segments(s.Segments)
	vStep, hStep := math.Pi/float64(n), 2*math.Pi/float64(n)

	ring := func(i, j int) math3d.Vec3 {
		switch i {
		case 0:
			return math3d.V3(0, s.Radius, 0)
		case n:
			return math3d.V3(0, -s.Radius, 0)
		}
		v := float64(i) * vStep
		h := float64(j%n) * hStep
		r := math.Sin(v) * s.Radius
		return math3d.V3(r*math.Cos(h), math.Cos(v)*s.Radius, r*math.Sin(h))
	}

	var m Mesh
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			topPrev, topNew := ring(i-1, j-1), ring(i-1, j)
			botPrev, botNew := ring(i, j-1), ring(i, j)
			if i < n {
				m.tri(botNew, botPrev, topPrev)
			}
			if i > 1 {
				m.tri(topPrev, topNew, botNew)
			}
		}
	}
	return m
}

// Cone is centred on the origin with its apex on +Y.
type Cone struct {
	BottomRadius float64
	Height       float64
	Bottom       bool // Close the base
	Segments     int  // 0 means 12
}

// Tessellate implements Primitive.
func (c Cone) Tessellate() Mesh {
	n := segments(c.Segments)
	half := c.Height / 2
	apex := math3d.V3(0, half, 0)
	base := math3d.V3(0, -half, 0)

	var m Mesh
	for j := 1; j <= n; j++ {
		prev := circlePoint(c.BottomRadius, -half, j-1, n)
		next := circlePoint(c.BottomRadius, -half, j, n)
		m.tri(next, prev, apex)
		if c.Bottom {
			m.tri(base, prev, next)
		}
	}
	return m
}

// Cylinder is centred on the origin along Y.
type Cylinder struct {
	Radius   float64
	Height   float64
	Top      bool // Close the top cap
	Bottom   bool // Close the bottom cap
	Segments int  // 0 means 12
}

// Tessellate implements Primitive.
func (c Cylinder) Tessellate() Mesh {
	n := segments(c.Segments)
	half := c.Height / 2
	top := math3d.V3(0, half, 0)
	bottom := math3d.V3(0, -half, 0)

	var m Mesh
	for j := 1; j <= n; j++ {
		prevLo := circlePoint(c.Radius, -half, j-1, n)
		nextLo := circlePoint(c.Radius, -half, j, n)
		prevHi := circlePoint(c.Radius, half, j-1, n)
		nextHi := circlePoint(c.Radius, half, j, n)

		m.tri(nextLo, prevLo, prevHi)
		m.tri(prevHi, nextHi, nextLo)
		if c.Top {
			m.tri(top, nextHi, prevHi)
		}
		if c.Bottom {
			m.tri(bottom, prevLo, nextLo)
		}
	}
	return m
}

// circlePoint returns step j of n around a circle of radius r at height y
// in the XZ plane. Step n closes exactly onto step 0.
func circlePoint(r, y float64, j, n int) math3d.Vec3 {
	a := 2 * math.Pi * float64(j%n) / float64(n)
	return math3d.V3(r*math.Cos(a), y, r*math.Sin(a))
}
