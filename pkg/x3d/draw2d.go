package x3d

import (
	"math"

	"github.com/taigrr/x3dgl/pkg/render"
)

// Polypoint2D plots each [x, y] point, in output pixels, with the
// material color.
func (r *Renderer) Polypoint2D(point []float64, colors map[string]any) {
	warnTrailing("Polypoint2D", point, 2)
	mat := ParseMaterial(colors)
	for i := 0; i+1 < len(point); i += 2 {
		r.raster.PlotPixel(pixel(point[i]), pixel(point[i+1]), mat.Color(), mat.Transparency)
	}
	r.Flush()
}

// Polyline2D connects consecutive [x, y] points with lines.
func (r *Renderer) Polyline2D(lineSegments []float64, colors map[string]any) {
	warnTrailing("Polyline2D", lineSegments, 2)
	mat := ParseMaterial(colors)
	c := mat.Color()
	switch {
	case len(lineSegments) < 2:
		return
	case len(lineSegments) < 4:
		r.raster.PlotPixel(pixel(lineSegments[0]), pixel(lineSegments[1]), c, mat.Transparency)
	}
	for i := 0; i+3 < len(lineSegments); i += 2 {
		r.raster.DrawLine2D(
			pixel(lineSegments[i]), pixel(lineSegments[i+1]),
			pixel(lineSegments[i+2]), pixel(lineSegments[i+3]),
			c, mat.Transparency)
	}
	r.Flush()
}

// Circle2D draws the outline of a circle centred on the 2D origin.
func (r *Renderer) Circle2D(radius float64, colors map[string]any) {
	if radius < 0 || math.IsNaN(radius) {
		Logger().Warn("x3d: ignoring circle with invalid radius", "radius", radius)
		return
	}
	mat := ParseMaterial(colors)
	r.raster.DrawCircle2D(0, 0, int(math.Round(min(radius, maxCoord))), mat.Color(), mat.Transparency)
	r.Flush()
}

// TriangleSet2D fills triangles given as [x, y] output pixel positions.
// They are drawn in submission order without depth testing.
func (r *Renderer) TriangleSet2D(vertices []float64, colors map[string]any) {
	warnTrailing("TriangleSet2D", vertices, 6)
	mat := ParseMaterial(colors)
	s := float64(r.factor)

	tris := make([]render.Triangle, len(vertices)/6)
	for i := range tris {
		for k := range 3 {
			j := 6*i + 2*k
			tris[i].V[k] = render.Vertex{X: vertices[j] * s, Y: vertices[j+1] * s, Z: 1}
		}
	}
	if len(tris) == 0 {
		return
	}

	r.raster.DrawTriangles(tris, render.Shading{
		Color:        mat.Color(),
		Transparency: mat.Transparency,
		SkipDepth:    true,
	})
	r.Flush()
}

// maxCoord bounds 2D coordinates so line walks stay finite.
const maxCoord = 1 << 20

func pixel(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Floor(min(max(v, -maxCoord), maxCoord)))
}
