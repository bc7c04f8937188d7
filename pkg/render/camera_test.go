package render

import (
	"math"
	"testing"

	"github.com/taigrr/x3dgl/pkg/math3d"
)

// createTestCamera looks at the origin from +Z.
func createTestCamera(width, height int) *Camera {
	c := NewCamera(width, height, 0.01, 1000)
	c.SetViewpoint(math3d.V3(0, 0, 10), math3d.AxisAngle{Axis: math3d.V3(0, 0, 1)}, math.Pi/4)
	return c
}

func TestCamera_IdentityBeforeViewpoint(t *testing.T) {
	c := NewCamera(100, 50, 0.01, 1000)
	if c.ViewMatrix() != math3d.Identity() || c.ProjectionMatrix() != math3d.Identity() {
		t.Fatal("matrices should start as identity")
	}

	got := c.Project(math3d.Identity(), []math3d.Vec3{math3d.V3(0.5, 0.5, 0.25)})[0]
	want := ScreenPoint{X: 75, Y: 12.5, Z: 0.25}
	if got != want {
		t.Errorf("Project = %+v, want %+v", got, want)
	}
}

func TestCamera_ProjectCenter(t *testing.T) {
	c := createTestCamera(200, 100)
	p := c.Project(math3d.Identity(), []math3d.Vec3{math3d.Vec3{}})[0]

	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-50) > 1e-9 {
		t.Errorf("origin projects to (%v, %v), want screen center", p.X, p.Y)
	}
	if p.Z <= 0 {
		t.Errorf("Z = %v, want positive depth in front of the camera", p.Z)
	}
}

func TestCamera_ProjectOrientation(t *testing.T) {
	c := createTestCamera(200, 100)
	pts := c.Project(math3d.Identity(), []math3d.Vec3{
		math3d.V3(1, 0, 0),
		math3d.V3(0, 1, 0),
		math3d.V3(0, 0, -5),
		math3d.Vec3{},
	})

	if pts[0].X <= 100 {
		t.Errorf("+X projects to x = %v, want right of center", pts[0].X)
	}
	if pts[1].Y >= 50 {
		t.Errorf("+Y projects to y = %v, want above center", pts[1].Y)
	}
	if pts[2].Z <= pts[3].Z {
		t.Errorf("farther point depth %v not greater than %v", pts[2].Z, pts[3].Z)
	}
}

func TestCamera_Position(t *testing.T) {
	c := NewCamera(100, 100, 0.01, 1000)
	if got := c.Position(); got != (math3d.Vec3{}) {
		t.Errorf("Position before viewpoint = %v, want origin", got)
	}

	want := math3d.V3(1, 2, 5)
	c.SetViewpoint(want, math3d.AxisAngle{Axis: math3d.V3(1, 1, 0), Angle: 0.7}, math.Pi/4)
	got := c.Position()
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Errorf("Position = %v, want %v", got, want)
	}
}

func TestCamera_ViewpointRotation(t *testing.T) {
	// Turned 90° left around Y, the camera looks down -X
	c := NewCamera(100, 100, 0.01, 1000)
	c.SetViewpoint(math3d.Vec3{}, math3d.AxisAngle{Axis: math3d.V3(0, 1, 0), Angle: math.Pi / 2}, math.Pi/3)
	p := c.Project(math3d.Identity(), []math3d.Vec3{math3d.V3(-5, 0, 0)})[0]

	if math.Abs(p.X-50) > 1e-9 || math.Abs(p.Y-50) > 1e-9 || p.Z <= 0 {
		t.Errorf("point ahead projects to %+v, want screen center in front", p)
	}
}

func TestCamera_UnprojectRoundTrip(t *testing.T) {
	c := createTestCamera(320, 240)
	model := math3d.TRS(math3d.V3(0.3, -0.2, 1), math3d.AxisAngle{Axis: math3d.V3(1, 1, 0), Angle: 0.7}, math3d.V3(1, 2, 1))
	pvm := c.ProjectionMatrix().Mul(c.ViewMatrix()).Mul(model)

	points := []math3d.Vec3{math3d.V3(1, 1, 1), math3d.V3(-1, 0.5, 0), math3d.V3(0, -1, -1)}
	screen := c.Project(model, points)
	for i, p := range points {
		ndc := pvm.MulVec4(math3d.Point(p)).PerspectiveDivide()
		x, y := c.Unproject(screen[i].X, screen[i].Y)
		if math.Abs(x-ndc.X) > 1e-9 || math.Abs(y-ndc.Y) > 1e-9 {
			t.Errorf("Unproject(%v, %v) = (%v, %v), want (%v, %v)", screen[i].X, screen[i].Y, x, y, ndc.X, ndc.Y)
		}
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	c := createTestCamera(200, 100)
	want := 2 * math.Atan(math.Tan(math.Pi/8)*100/math.Hypot(200, 100))
	if math.Abs(c.FOV-want) > 1e-12 {
		t.Errorf("FOV = %v, want %v", c.FOV, want)
	}

	proj := c.ProjectionMatrix()
	top := 0.01 * math.Tan(want)
	if got := proj.Get(1, 1); math.Abs(got-0.01/top) > 1e-9 {
		t.Errorf("P[1][1] = %v, want %v", got, 0.01/top)
	}
	if got := proj.Get(0, 0); math.Abs(got-0.01/(top*2)) > 1e-9 {
		t.Errorf("P[0][0] = %v, want %v", got, 0.01/(top*2))
	}
}
