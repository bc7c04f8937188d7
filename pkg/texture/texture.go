// Package texture loads images into float RGB texel grids, builds mipmap
// pyramids from them and samples those pyramids with trilinear filtering.
package texture

import "github.com/taigrr/x3dgl/pkg/render"

// Level is one mipmap level. Row 0 is the top of the image.
type Level struct {
	Width  int
	Height int
	Texels []render.RGB // Row-major texel data
}

// NewLevel allocates a black level.
func NewLevel(width, height int) Level {
	return Level{
		Width:  width,
		Height: height,
		Texels: make([]render.RGB, width*height),
	}
}

// At returns the texel at (x, y), clamped to the level edges.
func (l Level) At(x, y int) render.RGB {
	if len(l.Texels) == 0 {
		return render.Black
	}
	x = min(max(x, 0), l.Width-1)
	y = min(max(y, 0), l.Height-1)
	return l.Texels[y*l.Width+x]
}

// Set writes the texel at (x, y). Out-of-bounds writes are dropped.
func (l Level) Set(x, y int, c render.RGB) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return
	}
	l.Texels[y*l.Width+x] = c
}

// Checker creates a size x size checkerboard with cell x cell squares.
func Checker(size, cell int, a, b render.RGB) Level {
	if cell < 1 {
		cell = 1
	}
	l := NewLevel(size, size)
	for y := range size {
		for x := range size {
			if (x/cell+y/cell)%2 == 0 {
				l.Texels[y*size+x] = a
			} else {
				l.Texels[y*size+x] = b
			}
		}
	}
	return l
}
