package texture

import "github.com/taigrr/x3dgl/pkg/render"

// Pyramid is an immutable mipmap chain. Levels[0] is the source image and
// the last level is 1x1.
type Pyramid struct {
	Levels []Level
}

// BuildPyramid halves the base level until it reaches 1x1. Each texel of
// a new level is the mean of the up to 2x2 block it covers.
func BuildPyramid(base Level) *Pyramid {
	p := &Pyramid{Levels: []Level{base}}
	if base.Width < 1 || base.Height < 1 {
		return p
	}

	cur := base
	for cur.Width > 1 || cur.Height > 1 {
		next := NewLevel(max(1, cur.Width/2), max(1, cur.Height/2))
		for y := range next.Height {
			for x := range next.Width {
				next.Texels[y*next.Width+x] = average(cur, 2*x, 2*y)
			}
		}
		p.Levels = append(p.Levels, next)
		cur = next
	}
	return p
}

// Load reads an image file and builds its pyramid.
func Load(path string) (*Pyramid, error) {
	base, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return BuildPyramid(base), nil
}

// average returns the mean of the texels in [x, x+2) x [y, y+2) that lie
// inside l.
func average(l Level, x, y int) render.RGB {
	var sum render.RGB
	n := 0
	for sy := y; sy < min(y+2, l.Height); sy++ {
		for sx := x; sx < min(x+2, l.Width); sx++ {
			sum = sum.Add(l.Texels[sy*l.Width+sx])
			n++
		}
	}
	if n == 0 {
		return render.Black
	}
	return sum.Scale(1 / float64(n))
}
