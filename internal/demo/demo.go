// Package demo holds the built-in scenes drawn by the CLI.
package demo

import (
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"sync"

	"github.com/taigrr/x3dgl/pkg/models"
	"github.com/taigrr/x3dgl/pkg/render"
	"github.com/taigrr/x3dgl/pkg/texture"
	"github.com/taigrr/x3dgl/pkg/x3d"
)

// Scene draws one frame. spin is a rotation about +Y in radians that the
// interactive viewer animates.
type Scene struct {
	Name        string
	Description string
	Draw        func(r *x3d.Renderer, spin float64) error

	// Textures lists the image files Draw samples. They are loaded into
	// the renderer's cache before the first frame.
	Textures []string
}

// CheckerTexture is the cache key of the built-in checker texture.
const CheckerTexture = "demo:checker"

var (
	red   = map[string]any{"emissiveColor": []float64{1, 0, 0}}
	blue  = map[string]any{"emissiveColor": []float64{0, 0, 1}}
	green = map[string]any{"emissiveColor": []float64{0, 1, 0}}
	white = map[string]any{"emissiveColor": []float64{1, 1, 1}}
)

var checker = sync.OnceValue(func() *texture.Pyramid {
	return texture.BuildPyramid(texture.Checker(64, 8, render.RGB{R: 240, G: 240, B: 240}, render.RGB{R: 200, G: 40, B: 40}))
})

var scenes = []Scene{
	{Name: "box", Description: "unit red box seen from +Z", Draw: drawBox},
	{Name: "depth", Description: "red triangle in front of a blue one", Draw: drawDepth},
	{Name: "strip", Description: "triangle strip and indexed strip", Draw: drawStrip},
	{Name: "colors", Description: "per-vertex colored face set", Draw: drawColors},
	{Name: "textured", Description: "checker textured quad", Draw: drawTextured},
	{Name: "solids", Description: "sphere, cone and cylinder under nested transforms", Draw: drawSolids},
	{Name: "flat", Description: "2D points, lines, circle and triangles", Draw: drawFlat},
}

// Scenes returns the built-in scenes in display order.
func Scenes() []Scene {
	return slices.Clone(scenes)
}

// Lookup finds a built-in scene by name.
func Lookup(name string) (Scene, bool) {
	i := slices.IndexFunc(scenes, func(s Scene) bool { return s.Name == name })
	if i < 0 {
		return Scene{}, false
	}
	return scenes[i], true
}

// Names returns the built-in scene names.
func Names() []string {
	names := make([]string, len(scenes))
	for i, s := range scenes {
		names[i] = s.Name
	}
	return names
}

// ModelScene wraps a loaded glTF model. The model should be normalized to
// unit size.
func ModelScene(m *models.Model) Scene {
	key := "model:" + m.Name
	return Scene{
		Name:        m.Name,
		Description: fmt.Sprintf("%d triangles", m.TriangleCount()),
		Draw: func(r *x3d.Renderer, spin float64) error {
			faces := m.Faces
			path := ""
			if m.Texture != nil {
				r.Textures().Put(key, m.Texture)
				path = key
			} else {
				faces.TexCoord = nil
			}

			r.Viewpoint([]float64{0, 0, 2}, nil, math.Pi/4)
			r.TransformIn(nil, nil, []float64{0, 1, 0, spin})
			defer r.TransformOut()
			return r.Draw(faces, x3d.ParseMaterial(m.Colors()), path)
		},
	}
}

func spinY(r *x3d.Renderer, spin float64) {
	r.TransformIn(nil, nil, []float64{0, 1, 0, spin})
}

func drawBox(r *x3d.Renderer, spin float64) error {
	r.Viewpoint([]float64{0, 0, 5}, []float64{0, 0, 1, 0}, math.Pi/4)
	spinY(r, spin)
	r.Box([]float64{1, 1, 1}, red)
	r.TransformOut()
	return nil
}

func drawDepth(r *x3d.Renderer, spin float64) error {
	r.Viewpoint(nil, nil, math.Pi/2)
	spinY(r, spin)
	// Far first so the depth test, not submission order, decides
	r.TriangleSet([]float64{-4, -4, -5, 4, -4, -5, 0, 4, -5}, blue)
	r.TriangleSet([]float64{-0.5, -0.5, -1, 0.5, -0.5, -1, 0, 0.5, -1}, red)
	r.TransformOut()
	return nil
}

func drawStrip(r *x3d.Renderer, spin float64) error {
	r.Viewpoint([]float64{0, 0, 6}, nil, math.Pi/4)
	spinY(r, spin)
	r.TransformIn([]float64{-1.2, 0, 0}, nil, nil)
	r.TriangleStripSet([]float64{-1, -1, 0, 1, -1, 0, -1, 1, 0, 1, 1, 0}, []int{4}, green)
	r.TransformOut()
	r.TransformIn([]float64{1.2, 0, 0}, nil, nil)
	r.IndexedTriangleStripSet([]float64{-1, -1, 0, 1, -1, 0, -1, 1, 0, 1, 1, 0}, []int{0, 1, 2, 3, -1}, blue)
	r.TransformOut()
	r.TransformOut()
	return nil
}

func drawColors(r *x3d.Renderer, spin float64) error {
	r.Viewpoint([]float64{0, 0, 5}, nil, math.Pi/4)
	spinY(r, spin)
	defer r.TransformOut()
	return r.IndexedFaceSet(x3d.FaceSet{
		Coord:          []float64{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0},
		CoordIndex:     []int{0, 1, 2, 3, -1},
		ColorPerVertex: true,
		Color:          []float64{1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 0},
	}, white)
}

// ImageScene maps an image file once over an upright quad.
func ImageScene(path string) Scene {
	return Scene{
		Name:        filepath.Base(path),
		Description: "image " + path,
		Textures:    []string{path},
		Draw: func(r *x3d.Renderer, spin float64) error {
			r.Viewpoint([]float64{0, 0, 4}, nil, math.Pi/4)
			spinY(r, spin)
			defer r.TransformOut()
			return texturedQuad(r, path, 1.5, 1)
		},
	}
}

func drawTextured(r *x3d.Renderer, spin float64) error {
	r.Textures().Put(CheckerTexture, checker())
	r.Viewpoint([]float64{0, 0, 4}, nil, math.Pi/4)
	// Tilted back so the checker shows its mip levels
	r.TransformIn(nil, nil, []float64{1, 0, 0, -1.1})
	spinY(r, spin)
	defer r.TransformOut()
	defer r.TransformOut()
	return texturedQuad(r, CheckerTexture, 3, 4)
}

// texturedQuad draws a square of half size h in the z = 0 plane with the
// texture repeated n times along each axis.
func texturedQuad(r *x3d.Renderer, tex string, h, n float64) error {
	return r.IndexedFaceSet(x3d.FaceSet{
		Coord:      []float64{-h, -h, 0, h, -h, 0, h, h, 0, -h, h, 0},
		CoordIndex: []int{0, 1, 2, 3, -1},
		TexCoord:   []float64{0, 0, n, 0, n, n, 0, n},
		Texture:    tex,
	}, nil)
}

func drawSolids(r *x3d.Renderer, spin float64) error {
	r.Viewpoint([]float64{0, 1, 8}, []float64{1, 0, 0, -0.1}, math.Pi/4)
	spinY(r, spin)
	r.TransformIn([]float64{-2, 0, 0}, nil, nil)
	r.Sphere(0.9, red)
	r.TransformIn([]float64{2, 0, 0}, nil, []float64{0, 0, 1, 0.3})
	r.Cone(0.8, 1.6, green)
	r.TransformIn([]float64{2, 0, 0}, []float64{1, 0.5, 1}, nil)
	r.Cylinder(0.7, 2, map[string]any{"diffuseColor": []float64{0.2, 0.4, 1}, "transparency": 0.3})
	r.TransformOut()
	r.TransformOut()
	r.TransformOut()
	r.TransformOut()
	return nil
}

func drawFlat(r *x3d.Renderer, _ float64) error {
	w, h := r.Size()
	fw, fh := float64(w), float64(h)
	r.TriangleSet2D([]float64{fw * 0.1, fh * 0.9, fw * 0.5, fh * 0.1, fw * 0.9, fh * 0.9}, blue)
	r.Polyline2D([]float64{0, 0, fw - 1, fh - 1, fw - 1, 0}, green)
	r.Polypoint2D([]float64{fw / 2, fh / 2, fw/2 + 2, fh / 2, fw / 2, fh/2 + 2}, white)
	r.Circle2D(min(fw, fh)/3, map[string]any{"emissiveColor": []float64{1, 1, 0}, "transparency": 0.5})
	return nil
}
