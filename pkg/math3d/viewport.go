package math3d

// Viewport maps normalized device coordinates onto a pixel grid whose
// origin is the top-left corner.
type Viewport struct {
	Width, Height float64
}

// ToScreen maps NDC x, y in [-1, 1] to pixel coordinates, flipping y.
func (v Viewport) ToScreen(ndcX, ndcY float64) (x, y float64) {
	x = (ndcX + 1) * v.Width / 2
	y = v.Height/2 - ndcY*v.Height/2
	return x, y
}

// ToNDC inverts ToScreen.
func (v Viewport) ToNDC(x, y float64) (ndcX, ndcY float64) {
	ndcX = 2*x/v.Width - 1
	ndcY = (v.Height/2 - y) * 2 / v.Height
	return ndcX, ndcY
}

// Aspect returns width / height.
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}
