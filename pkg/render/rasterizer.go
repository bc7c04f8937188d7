package render

import (
	"math"

	"github.com/taigrr/x3dgl/pkg/math3d"
)

// DefaultSupersampling is the per-axis supersampling factor.
const DefaultSupersampling = 2

// areaEpsilon is the smallest |signed area| in samples² a triangle needs
// to produce any fragment.
const areaEpsilon = 1e-12

// Vertex is a triangle corner in supersampled screen space. Z is the clip
// space z kept from before the perspective divide.
type Vertex struct {
	X, Y, Z float64
	Color   RGB
	UV      math3d.Vec2
}

// Triangle is three screen-space vertices.
type Triangle struct {
	V [3]Vertex
}

// FillMode selects how fragment colors are resolved.
type FillMode int

const (
	FillFlat        FillMode = iota // Shading.Color everywhere
	FillVertexColor                 // perspective-correct vertex colors
	FillTexture                     // perspective-correct UV into Shading.Texture
)

// Sampler returns a filtered texel for UV coordinates and their screen
// space derivatives.
type Sampler interface {
	Sample(u, v, dudx, dvdx, dudy, dvdy float64) RGB
}

// Shading holds the per draw call state that is constant across its
// triangles.
type Shading struct {
	Mode         FillMode
	Color        RGB     // Flat color
	Transparency float64 // 0 opaque, 1 invisible
	Texture      Sampler // Required for FillTexture

	// SkipDepth disables the depth test and leaves the depth buffer
	// untouched. 2D nodes draw with it in submission order.
	SkipDepth bool
}

// Stats counts rasterizer work since the last Reset.
type Stats struct {
	Triangles  int // Triangles submitted
	Degenerate int // Zero-area triangles dropped
	Skipped    int // Triangles dropped for a zero vertex depth
	Samples    int // Samples written to the color buffer
}

// Rasterizer owns the supersampled color and depth buffers.
type Rasterizer struct {
	width  int // Supersampled width
	height int // Supersampled height
	factor int
	color  []RGB     // Row-major samples
	depth  []float64 // Row-major depths
	Stats  Stats
}

// NewRasterizer creates buffers for a width x height output image
// supersampled by factor on each axis. A factor below 1 is treated as 1.
func NewRasterizer(width, height, factor int) *Rasterizer {
	if factor < 1 {
		factor = 1
	}
	w, h := max(width, 0)*factor, max(height, 0)*factor
	r := &Rasterizer{
		width:  w,
		height: h,
		factor: factor,
		color:  make([]RGB, w*h),
		depth:  make([]float64, w*h),
	}
	r.ClearDepth()
	return r
}

// Width returns the supersampled buffer width.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the supersampled buffer height.
func (r *Rasterizer) Height() int { return r.height }

// Factor returns the supersampling factor.
func (r *Rasterizer) Factor() int { return r.factor }

// Reset clears the color buffer to c, the depth buffer to +Inf and the
// statistics.
func (r *Rasterizer) Reset(c RGB) {
	r.Fill(c)
	r.ClearDepth()
	r.Stats = Stats{}
}

// Fill sets every sample to c without touching depth.
func (r *Rasterizer) Fill(c RGB) {
	n := len(r.color)
	if n == 0 {
		return
	}
	r.color[0] = c
	for i := 1; i < n; i *= 2 {
		copy(r.color[i:], r.color[:i])
	}
}

// ClearDepth resets the depth buffer to +Inf.
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.depth)
	if n == 0 {
		return
	}
	r.depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(r.depth[i:], r.depth[:i])
	}
}

// Sample returns the color of sample (x, y), or black out of bounds.
func (r *Rasterizer) Sample(x, y int) RGB {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return Black
	}
	return r.color[y*r.width+x]
}

// Depth returns the stored depth of sample (x, y), or +Inf out of bounds.
func (r *Rasterizer) Depth(x, y int) float64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return math.Inf(1)
	}
	return r.depth[y*r.width+x]
}

// DrawTriangles rasterizes every triangle with the same shading.
func (r *Rasterizer) DrawTriangles(tris []Triangle, sh Shading) {
	for i := range tris {
		r.DrawTriangle(&tris[i], sh)
	}
}

// DrawTriangle fills the samples whose centers pass the edge tests of tri.
func (r *Rasterizer) DrawTriangle(tri *Triangle, sh Shading) {
	r.Stats.Triangles++

	a, b, c := &tri.V[0], &tri.V[1], &tri.V[2]
	total := signedArea(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if math.Abs(total) < areaEpsilon || math.IsNaN(total) {
		r.Stats.Degenerate++
		return
	}
	if !sh.SkipDepth && (a.Z == 0 || b.Z == 0 || c.Z == 0) {
		r.Stats.Skipped++
		return
	}
	if sh.Mode == FillTexture && sh.Texture == nil {
		sh.Mode = FillFlat
	}
	t := clampUnit(sh.Transparency)

	// Find bounding box, clipped to the buffer
	minX := max(0, floorInt(min(a.X, b.X, c.X)))
	maxX := min(r.width-1, floorInt(max(a.X, b.X, c.X)))
	minY := max(0, floorInt(min(a.Y, b.Y, c.Y)))
	maxY := min(r.height-1, floorInt(max(a.Y, b.Y, c.Y)))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if !inside(tri, px, py) {
				continue
			}

			alpha, beta, gamma := barycentric(tri, total, px, py)
			i := y*r.width + x

			var z float64
			if !sh.SkipDepth {
				var ok bool
				z, ok = depthAt(tri, alpha, beta, gamma)
				if !ok || z >= r.depth[i] {
					continue
				}
			}

			var fragment RGB
			switch sh.Mode {
			case FillVertexColor:
				fragment = perspectiveColor(tri, alpha, beta, gamma, z, sh.SkipDepth)
			case FillTexture:
				fragment = r.textureFragment(tri, total, px, py, alpha, beta, gamma, z, sh.Texture)
			default:
				fragment = sh.Color
			}

			r.color[i] = fragment.Lerp(r.color[i], t)
			if !sh.SkipDepth {
				r.depth[i] = z
			}
			r.Stats.Samples++
		}
	}
}

// depthAt returns the perspective-correct depth 1 / Σ(wᵢ/zᵢ). ok is false
// when the result is not a finite, positive depth.
func depthAt(tri *Triangle, alpha, beta, gamma float64) (z float64, ok bool) {
	inv := alpha/tri.V[0].Z + beta/tri.V[1].Z + gamma/tri.V[2].Z
	if inv == 0 || math.IsNaN(inv) || math.IsInf(inv, 0) {
		return 0, false
	}
	z = 1 / inv
	return z, z > 0
}

// perspectiveColor interpolates vertex colors as (Σ wᵢ·cᵢ/zᵢ)·z. Without
// depth the weights are used directly.
func perspectiveColor(tri *Triangle, alpha, beta, gamma, z float64, affine bool) RGB {
	c0, c1, c2 := tri.V[0].Color, tri.V[1].Color, tri.V[2].Color
	if affine {
		return c0.Scale(alpha).Add(c1.Scale(beta)).Add(c2.Scale(gamma))
	}
	w0, w1, w2 := alpha/tri.V[0].Z, beta/tri.V[1].Z, gamma/tri.V[2].Z
	return c0.Scale(w0).Add(c1.Scale(w1)).Add(c2.Scale(w2)).Scale(z)
}

// uvAt interpolates texture coordinates with the same weighting as color.
func uvAt(tri *Triangle, alpha, beta, gamma, z float64) math3d.Vec2 {
	w0, w1, w2 := alpha/tri.V[0].Z, beta/tri.V[1].Z, gamma/tri.V[2].Z
	return tri.V[0].UV.Scale(w0).Add(tri.V[1].UV.Scale(w1)).Add(tri.V[2].UV.Scale(w2)).Scale(z)
}

// textureFragment samples the texture at the fragment. The derivatives
// come from re-evaluating the UV at the sample to the right and the
// sample above.
func (r *Rasterizer) textureFragment(tri *Triangle, total, px, py, alpha, beta, gamma, z float64, tex Sampler) RGB {
	uv := uvAt(tri, alpha, beta, gamma, z)

	neighbor := func(nx, ny float64) (math3d.Vec2, bool) {
		a, b, g := barycentric(tri, total, nx, ny)
		nz, ok := depthAt(tri, a, b, g)
		if !ok {
			return math3d.Vec2{}, false
		}
		return uvAt(tri, a, b, g, nz), true
	}

	var ddx, ddy math3d.Vec2
	if right, ok := neighbor(px+1, py); ok {
		ddx = right.Sub(uv)
	}
	if up, ok := neighbor(px, py-1); ok {
		ddy = up.Sub(uv)
	}
	return tex.Sample(uv.X, uv.Y, ddx.X, ddx.Y, ddy.X, ddy.Y)
}

// Downsample writes the unweighted mean of every factor x factor block to
// dst as one output pixel.
func (r *Rasterizer) Downsample(dst PixelWriter) {
	f := r.factor
	n := float64(f * f)
	for oy := range r.height / f {
		for ox := range r.width / f {
			var sum RGB
			for sy := oy * f; sy < (oy+1)*f; sy++ {
				row := r.color[sy*r.width:]
				for sx := ox * f; sx < (ox+1)*f; sx++ {
					sum = sum.Add(row[sx])
				}
			}
			dst.SetPixel(ox, oy, sum.Scale(1/n).Color())
		}
	}
}

func floorInt(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(math.Floor(v))
}

func clampUnit(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
