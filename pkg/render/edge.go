package render

// edgeFunction returns the signed 2D cross product of (p - a) and (b - a)
// in screen space, where y grows downward. It is non-negative when p lies
// on the inner side of the directed edge a→b of a counter-clockwise
// (front-facing) triangle.
func edgeFunction(ax, ay, bx, by, px, py float64) float64 {
	return (px-ax)*(by-ay) - (py-ay)*(bx-ax)
}

// edge evaluates the edge function of a→b. Both directions of an edge are
// computed from the same endpoint, so triangles sharing it get exactly
// negated values and a sample on the edge is never rejected by both.
func edge(a, b *Vertex, px, py float64) float64 {
	if a.X < b.X || (a.X == b.X && a.Y < b.Y) {
		return edgeFunction(a.X, a.Y, b.X, b.Y, px, py)
	}
	return -edgeFunction(b.X, b.Y, a.X, a.Y, px, py)
}

// inside reports whether the point passes all three edge tests of the
// triangle v0→v1→v2.
func inside(tri *Triangle, px, py float64) bool {
	a, b, c := &tri.V[0], &tri.V[1], &tri.V[2]
	return edge(a, b, px, py) >= 0 &&
		edge(b, c, px, py) >= 0 &&
		edge(c, a, px, py) >= 0
}

// signedArea returns the signed area of the triangle (x1,y1) (x2,y2)
// (x3,y3), the shoelace formula halved.
func signedArea(x1, y1, x2, y2, x3, y3 float64) float64 {
	return (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2)) / 2
}

// barycentric returns the weights of point (px, py) for the triangle. The
// sub-triangle opposite each vertex gives that vertex's weight; gamma is
// derived so the three always sum to 1. total is the triangle's signed
// area; callers must reject triangles whose total is ~0 before calling.
func barycentric(tri *Triangle, total, px, py float64) (alpha, beta, gamma float64) {
	a, b, c := &tri.V[0], &tri.V[1], &tri.V[2]
	a1 := signedArea(px, py, b.X, b.Y, c.X, c.Y)
	a2 := signedArea(a.X, a.Y, px, py, c.X, c.Y)
	alpha = a1 / total
	beta = a2 / total
	gamma = 1 - alpha - beta
	return alpha, beta, gamma
}
