package texture

import (
	"math"

	"github.com/taigrr/x3dgl/pkg/render"
)

var _ render.Sampler = (*Pyramid)(nil)

// Bilinear samples the level at texture coordinates (u, v). v = 0 is the
// bottom of the image. Texel centres sit at half-integer coordinates; samples
// past the outer centres clamp to the edge texel.
func (l Level) Bilinear(u, v float64) render.RGB {
	if len(l.Texels) == 0 {
		return render.Black
	}

	x := clampCoord(u*float64(l.Width)-0.5, l.Width)
	y := clampCoord((1-v)*float64(l.Height)-0.5, l.Height)

	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, l.Width-1), min(y0+1, l.Height-1)
	fx, fy := x-float64(x0), y-float64(y0)

	top := l.At(x0, y0).Lerp(l.At(x1, y0), fx)
	bottom := l.At(x0, y1).Lerp(l.At(x1, y1), fx)
	return top.Lerp(bottom, fy)
}

// LOD returns the fractional mip level for the given UV derivatives.
// Footprints smaller than one texel select level 0.
func (p *Pyramid) LOD(dudx, dvdx, dudy, dvdy float64) float64 {
	if len(p.Levels) == 0 {
		return 0
	}
	w, h := float64(p.Levels[0].Width), float64(p.Levels[0].Height)
	l := max(math.Hypot(dudx*w, dvdx*h), math.Hypot(dudy*w, dvdy*h))
	if !(l > 0) {
		return 0
	}
	d := math.Log2(l)
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}

// Sample blends bilinear samples of the two mip levels around the LOD
// chosen from the screen-space derivatives.
func (p *Pyramid) Sample(u, v, dudx, dvdx, dudy, dvdy float64) render.RGB {
	n := len(p.Levels)
	if n == 0 {
		return render.Black
	}

	d := p.LOD(dudx, dvdx, dudy, dvdy)
	lo := int(math.Floor(d))
	frac := d - float64(lo)
	if lo >= n-1 {
		return p.Levels[n-1].Bilinear(u, v)
	}

	c0 := p.Levels[lo].Bilinear(u, v)
	c1 := p.Levels[lo+1].Bilinear(u, v)
	return c0.Lerp(c1, frac)
}

func clampCoord(c float64, size int) float64 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	if hi := float64(size - 1); c > hi {
		return hi
	}
	return c
}
