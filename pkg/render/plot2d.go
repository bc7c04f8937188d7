package render

// PlotPixel fills the factor x factor sample block of output pixel (x, y),
// blending with transparency t. Pixels outside the screen are dropped and
// depth is left untouched.
func (r *Rasterizer) PlotPixel(x, y int, c RGB, t float64) {
	f := r.factor
	if x < 0 || y < 0 || x*f >= r.width || y*f >= r.height {
		return
	}
	t = clampUnit(t)
	for sy := y * f; sy < (y+1)*f; sy++ {
		row := sy * r.width
		for sx := x * f; sx < (x+1)*f; sx++ {
			r.color[row+sx] = c.Lerp(r.color[row+sx], t)
			r.Stats.Samples++
		}
	}
}

// DrawLine2D draws a line between two output pixels using Bresenham's
// algorithm. Both endpoints are plotted.
func (r *Rasterizer) DrawLine2D(x0, y0, x1, y1 int, c RGB, t float64) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		r.PlotPixel(x0, y0, c, t)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle2D draws the outline of a circle of the given radius in output
// pixels with the midpoint algorithm. Only the on-screen arc is visible.
func (r *Rasterizer) DrawCircle2D(cx, cy, radius int, c RGB, t float64) {
	if radius < 0 {
		return
	}
	if radius == 0 {
		r.PlotPixel(cx, cy, c, t)
		return
	}

	// Mirrored points coincide on the axes and diagonals
	plotted := make(map[[2]int]struct{}, 8)
	plot := func(x, y int) {
		k := [2]int{x, y}
		if _, ok := plotted[k]; ok {
			return
		}
		plotted[k] = struct{}{}
		r.PlotPixel(x, y, c, t)
	}

	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		clear(plotted)
		plot(cx+x, cy+y)
		plot(cx+y, cy+x)
		plot(cx-y, cy+x)
		plot(cx-x, cy+y)
		plot(cx-x, cy-y)
		plot(cx-y, cy-x)
		plot(cx+y, cy-x)
		plot(cx+x, cy-y)

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
