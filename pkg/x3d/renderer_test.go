package x3d

import (
	"errors"
	"io/fs"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/taigrr/x3dgl/pkg/render"
	"github.com/taigrr/x3dgl/pkg/texture"
)

var (
	redMat  = map[string]any{"emissiveColor": []float64{1, 0, 0}}
	blueMat = map[string]any{"emissiveColor": []float64{0, 0, 1}}
)

// createTestRenderer returns a renderer whose camera sits on +Z looking at
// the origin.
func createTestRenderer(width, height int) (*Renderer, *render.Framebuffer) {
	fb := render.NewFramebuffer(width, height)
	r := New(fb, Options{Width: width, Height: height})
	r.Viewpoint([]float64{0, 0, 5}, []float64{0, 0, 1, 0}, math.Pi/4)
	return r, fb
}

func TestNew_Defaults(t *testing.T) {
	r := New(nil, Options{})
	if w, h := r.Size(); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size() = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
	if r.Supersampling() != render.DefaultSupersampling {
		t.Errorf("Supersampling() = %d, want %d", r.Supersampling(), render.DefaultSupersampling)
	}
	if r.Camera().Near != DefaultNear || r.Camera().Far != DefaultFar {
		t.Errorf("near/far = %v/%v", r.Camera().Near, r.Camera().Far)
	}
	if r.Textures() == nil {
		t.Error("Textures() is nil")
	}
	// Draws with no output are allowed
	r.Box(nil, redMat)
}

func TestBox_CenteredFrontFaces(t *testing.T) {
	r, fb := createTestRenderer(40, 30)
	r.Box([]float64{1, 1, 1}, redMat)

	red := render.RGB8(255, 0, 0)
	if got := fb.GetPixel(20, 15); got != red {
		t.Errorf("center = %v, want red", got)
	}
	for _, p := range [][2]int{{0, 0}, {39, 0}, {0, 29}, {39, 29}} {
		if got := fb.GetPixel(p[0], p[1]); got != render.RGB8(0, 0, 0) {
			t.Errorf("corner %v = %v, want black", p, got)
		}
	}

	// The red region is symmetric about the center
	for y := range 30 {
		for x := range 20 {
			if (fb.GetPixel(x, y) == red) != (fb.GetPixel(39-x, y) == red) {
				t.Fatalf("row %d is not mirrored at column %d", y, x)
			}
		}
	}

	// Only the +Z face reaches the samples
	front, _ := createTestRenderer(40, 30)
	front.TriangleSet([]float64{
		-0.5, 0.5, 0.5, -0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
		-0.5, 0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	}, redMat)
	if got, want := r.Stats().Samples, front.Stats().Samples; got != want || got == 0 {
		t.Errorf("box wrote %d samples, front face alone %d", got, want)
	}
	if r.Stats().Triangles != 12 {
		t.Errorf("Triangles = %d, want 12", r.Stats().Triangles)
	}
}

func TestTriangleSet_DepthOrder(t *testing.T) {
	nearTri := []float64{-1, -1, 1, 1, -1, 1, 0, 1, 1}
	farTri := []float64{-1, -1, -1, 1, -1, -1, 0, 1, -1}

	orders := []struct {
		name        string
		first, next []float64
		fmat, nmat  map[string]any
	}{
		{"red first", nearTri, farTri, redMat, blueMat},
		{"blue first", farTri, nearTri, blueMat, redMat},
	}

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRenderer(40, 40)
			r.TriangleSet(tc.first, tc.fmat)
			r.TriangleSet(tc.next, tc.nmat)
			if got := fb.GetPixel(20, 21); got != render.RGB8(255, 0, 0) {
				t.Errorf("overlap = %v, want red", got)
			}
		})
	}
}

func TestTriangleStripSet_FrontFacing(t *testing.T) {
	r, fb := createTestRenderer(40, 40)
	r.TriangleStripSet([]float64{
		-1, -1, 0,
		1, -1, 0,
		-1, 1, 0,
		1, 1, 0,
	}, []int{4}, redMat)

	single, _ := createTestRenderer(40, 40)
	single.TriangleSet([]float64{-1, -1, 0, 1, -1, 0, -1, 1, 0}, redMat)

	st := r.Stats()
	if st.Triangles != 2 {
		t.Fatalf("Triangles = %d, want 2", st.Triangles)
	}
	// Both halves of the square contribute samples
	if st.Samples <= single.Stats().Samples {
		t.Errorf("strip wrote %d samples, first triangle alone %d", st.Samples, single.Stats().Samples)
	}

	idx, idxFB := createTestRenderer(40, 40)
	idx.IndexedTriangleStripSet([]float64{-1, -1, 0, 1, -1, 0, -1, 1, 0, 1, 1, 0}, []int{0, 1, 2, 3, -1}, redMat)
	for i := range fb.Pixels {
		if fb.Pixels[i] != idxFB.Pixels[i] {
			t.Fatalf("indexed strip differs from strip at pixel %d", i)
		}
	}
}

func TestIndexedFaceSet_VertexColors(t *testing.T) {
	r, fb := createTestRenderer(40, 40)
	err := r.IndexedFaceSet(FaceSet{
		Coord:          []float64{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0},
		CoordIndex:     []int{0, 1, 2, 3, -1},
		ColorPerVertex: true,
		Color:          []float64{0, 1, 0},
		ColorIndex:     []int{0, 0, 0, 0, -1},
	}, redMat)
	if err != nil {
		t.Fatalf("IndexedFaceSet: %v", err)
	}
	if got := fb.GetPixel(20, 20); got != render.RGB8(0, 255, 0) {
		t.Errorf("center = %v, want the vertex color", got)
	}
}

func TestIndexedFaceSet_Textures(t *testing.T) {
	quad := FaceSet{
		Coord:      []float64{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0},
		CoordIndex: []int{0, 1, 2, 3, -1},
		TexCoord:   []float64{0, 0, 1, 0, 1, 1, 0, 1},
	}

	t.Run("missing texture path", func(t *testing.T) {
		r, _ := createTestRenderer(20, 20)
		if err := r.IndexedFaceSet(quad, nil); !errors.Is(err, ErrMissingTexture) {
			t.Errorf("err = %v, want ErrMissingTexture", err)
		}
	})

	t.Run("unreadable file", func(t *testing.T) {
		r, _ := createTestRenderer(20, 20)
		set := quad
		set.Texture = filepath.Join(t.TempDir(), "missing.png")
		err := r.IndexedFaceSet(set, nil)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("err = %v, want fs.ErrNotExist", err)
		}
		if r.Stats().Samples != 0 {
			t.Error("failed texture still rasterized")
		}
	})

	t.Run("registered texture", func(t *testing.T) {
		r, fb := createTestRenderer(20, 20)
		green := render.RGB{G: 255}
		r.Textures().Put("green", texture.BuildPyramid(texture.Checker(4, 4, green, green)))
		set := quad
		set.Texture = "green"
		if err := r.IndexedFaceSet(set, nil); err != nil {
			t.Fatalf("IndexedFaceSet: %v", err)
		}
		if got := fb.GetPixel(10, 10); got != render.RGB8(0, 255, 0) {
			t.Errorf("center = %v, want texture color", got)
		}
	})
}

func TestSolids_Render(t *testing.T) {
	draws := []struct {
		name string
		draw func(r *Renderer)
	}{
		{"sphere", func(r *Renderer) { r.Sphere(1, redMat) }},
		{"cone", func(r *Renderer) { r.Cone(1, 2, redMat) }},
		{"cylinder", func(r *Renderer) { r.Cylinder(1, 2, redMat) }},
	}

	for _, tc := range draws {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRenderer(40, 40)
			tc.draw(r)
			if got := fb.GetPixel(20, 20); got != render.RGB8(255, 0, 0) {
				t.Errorf("center = %v, want red", got)
			}
			if r.Stats().Samples == 0 {
				t.Error("no samples written")
			}
		})
	}
}

func TestTransforms(t *testing.T) {
	r, fb := createTestRenderer(40, 40)

	r.TransformIn([]float64{10, 0, 0}, nil, nil)
	if r.TransformDepth() != 2 {
		t.Errorf("TransformDepth = %d, want 2", r.TransformDepth())
	}
	r.Box([]float64{1, 1, 1}, redMat)
	r.TransformOut()

	// Moved off screen
	if got := fb.GetPixel(20, 20); got == render.RGB8(255, 0, 0) {
		t.Error("translated box still covers the center")
	}

	r.TransformOut()
	r.TransformOut()
	if r.UnmatchedPops() != 2 || r.TransformDepth() != 1 {
		t.Errorf("UnmatchedPops = %d, TransformDepth = %d, want 2, 1", r.UnmatchedPops(), r.TransformDepth())
	}

	r.TransformIn(nil, []float64{2, 2, 2}, []float64{0, 1, 0, math.Pi})
	r.Setup(40, 40, DefaultNear, DefaultFar)
	if r.TransformDepth() != 1 || r.UnmatchedPops() != 0 {
		t.Error("Setup did not reset the transform stack")
	}
}

func TestClear(t *testing.T) {
	r, fb := createTestRenderer(10, 10)
	r.Box(nil, redMat)
	r.Clear(render.RGB{R: 0, G: 0, B: 255})
	r.Flush()

	if got := fb.GetPixel(5, 5); got != render.RGB8(0, 0, 255) {
		t.Errorf("pixel = %v, want the clear color", got)
	}
	if r.Stats() != (render.Stats{}) {
		t.Errorf("Stats = %+v, want zero after Clear", r.Stats())
	}
}

func Test2DNodes(t *testing.T) {
	red := render.RGB8(255, 0, 0)

	t.Run("polypoint", func(t *testing.T) {
		r, fb := createTestRenderer(8, 8)
		r.Polypoint2D([]float64{1, 1, 6.7, 2.2, 100, 100}, redMat)
		if fb.GetPixel(1, 1) != red || fb.GetPixel(6, 2) != red {
			t.Error("points not plotted")
		}
		if fb.GetPixel(0, 0) == red {
			t.Error("unexpected pixel")
		}
	})

	t.Run("polyline", func(t *testing.T) {
		r, fb := createTestRenderer(8, 8)
		r.Polyline2D([]float64{0, 0, 5, 0, 5, 5}, redMat)
		for _, p := range [][2]int{{0, 0}, {3, 0}, {5, 0}, {5, 3}, {5, 5}} {
			if fb.GetPixel(p[0], p[1]) != red {
				t.Errorf("pixel %v not on the line", p)
			}
		}
	})

	t.Run("circle at origin", func(t *testing.T) {
		r, fb := createTestRenderer(8, 8)
		r.Circle2D(3, redMat)
		if fb.GetPixel(3, 0) != red || fb.GetPixel(0, 3) != red {
			t.Error("circle arc missing")
		}
		if fb.GetPixel(1, 1) == red {
			t.Error("circle interior filled")
		}
	})

	t.Run("huge circle radius is bounded", func(t *testing.T) {
		for _, radius := range []float64{1e12, 1e300, math.Inf(1)} {
			r, fb := createTestRenderer(8, 8)
			r.Circle2D(radius, redMat)
			if fb.GetPixel(0, 0) == red || fb.GetPixel(7, 7) == red {
				t.Errorf("radius %v drew inside the viewport", radius)
			}
		}
	})

	t.Run("triangle set", func(t *testing.T) {
		r, fb := createTestRenderer(10, 10)
		r.TriangleSet2D([]float64{0, 0, 0, 10, 10, 0}, redMat)
		if fb.GetPixel(1, 1) != red {
			t.Error("triangle not filled")
		}
		if fb.GetPixel(9, 9) == red {
			t.Error("pixel outside the triangle filled")
		}
		d := r.Rasterizer().Depth(2, 2)
		if !math.IsInf(d, 1) {
			t.Errorf("2D triangle wrote depth %v", d)
		}
	})

	t.Run("transparency", func(t *testing.T) {
		r, fb := createTestRenderer(4, 4)
		r.Polypoint2D([]float64{1, 1}, map[string]any{"emissiveColor": []float64{1, 0, 0}, "transparency": 0.5})
		if got := fb.GetPixel(1, 1); got != render.RGB8(128, 0, 0) {
			t.Errorf("pixel = %v, want half red", got)
		}
	})
}

func TestTimeSensor(t *testing.T) {
	clock := func() time.Time { return time.Unix(100, 500_000_000) }
	r := New(nil, Options{Width: 4, Height: 4, Clock: clock})

	tests := []struct {
		cycle float64
		want  float64
	}{
		{4, 0.125},
		{1, 0.5},
		{0, 0},
		{-2, 0},
		{math.NaN(), 0},
	}
	for _, tc := range tests {
		if got := r.TimeSensor(tc.cycle, true); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("TimeSensor(%v) = %v, want %v", tc.cycle, got, tc.want)
		}
	}
}

type namedShader string

func (s namedShader) Name() string { return string(s) }

func TestStubNodes(t *testing.T) {
	r := New(nil, Options{Width: 4, Height: 4})

	r.NavigationInfo(true)
	r.DirectionalLight(0, []float64{1, 1, 1}, 1, []float64{0, 0, -1})
	r.PointLight(0, []float64{1, 1, 1}, 1, []float64{0, 0, 0})
	r.Fog(10, []float64{1, 1, 1})
	r.VertexShader(namedShader("vs"))
	r.FragmentShader(nil)

	if got := r.SplinePositionInterpolator(0.5, []float64{0, 1}, []float64{0, 0, 0, 1, 1, 1}, false); got != [3]float64{0, 0, 0} {
		t.Errorf("SplinePositionInterpolator = %v", got)
	}
	if got := r.OrientationInterpolator(0.5, []float64{0, 1}, []float64{0, 1, 0, 0, 0, 1, 0, 3}); got != [4]float64{0, 0, 1, 0} {
		t.Errorf("OrientationInterpolator = %v", got)
	}
	if r.Stats() != (render.Stats{}) {
		t.Error("stub nodes touched the rasterizer")
	}
}

func BenchmarkBox(b *testing.B) {
	r, _ := createTestRenderer(320, 240)
	for b.Loop() {
		r.Clear(render.Black)
		r.Box([]float64{1, 1, 1}, redMat)
	}
}
