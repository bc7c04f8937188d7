package render

import (
	"math"

	"github.com/taigrr/x3dgl/pkg/math3d"
)

// ScreenPoint is a projected position in supersampled screen space. Z is
// the clip-space z before the perspective divide.
type ScreenPoint struct {
	X, Y, Z float64
}

// Camera holds the view and projection matrices of the active viewpoint.
// Both are identity until SetViewpoint is called.
type Camera struct {
	Near, Far float64
	Viewport  math3d.Viewport // Supersampled screen size

	// FOV is the vertical field of view of the last viewpoint, in radians
	FOV float64

	view math3d.Mat4
	proj math3d.Mat4
}

// NewCamera creates a camera for a supersampled width x height screen.
func NewCamera(width, height int, near, far float64) *Camera {
	return &Camera{
		Near:     near,
		Far:      far,
		Viewport: math3d.Viewport{Width: float64(width), Height: float64(height)},
		view:     math3d.Identity(),
		proj:     math3d.Identity(),
	}
}

// SetViewpoint places the camera at position, rotated by orientation, with
// a field of view measured against the screen diagonal.
func (c *Camera) SetViewpoint(position math3d.Vec3, orientation math3d.AxisAngle, fov float64) {
	// The inverse of a rotation is its transpose
	rotInv := orientation.Mat4().Transpose()
	c.view = rotInv.Mul(math3d.Translate(position.Scale(-1)))

	w, h := c.Viewport.Width, c.Viewport.Height
	c.FOV = math3d.VerticalFOV(fov, w, h)
	top := c.Near * math.Tan(c.FOV)
	right := top * c.Viewport.Aspect()
	c.proj = math3d.Frustum(c.Near, c.Far, right, top)
}

// ViewMatrix returns the world to camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return c.view
}

// Position returns the eye position in world space.
func (c *Camera) Position() math3d.Vec3 {
	return c.view.Inverse().MulPoint(math3d.Vec3{})
}

// ProjectionMatrix returns the camera to clip transform.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return c.proj
}

// Project transforms model-space points to screen space through P·V·M.
func (c *Camera) Project(model math3d.Mat4, points []math3d.Vec3) []ScreenPoint {
	pvm := c.proj.Mul(c.view).Mul(model)
	out := make([]ScreenPoint, len(points))
	for i, p := range points {
		clip := pvm.MulVec4(math3d.Point(p))
		ndc := clip.PerspectiveDivide()
		x, y := c.Viewport.ToScreen(ndc.X, ndc.Y)
		out[i] = ScreenPoint{X: x, Y: y, Z: clip.Z}
	}
	return out
}

// Unproject maps a screen position back to normalized device coordinates.
func (c *Camera) Unproject(x, y float64) (ndcX, ndcY float64) {
	return c.Viewport.ToNDC(x, y)
}
