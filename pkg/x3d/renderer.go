// Package x3d is the entry point of the rasterizer for X3D scene walkers.
// A Renderer receives one call per scene-graph node with fully resolved
// numeric fields and turns it into pixels on a render.PixelWriter.
//
// A Renderer is not safe for concurrent use. Every draw call rasterizes
// into the supersampled buffer and downsamples to the output before it
// returns.
package x3d

import (
	"errors"
	"fmt"
	"time"

	"github.com/taigrr/x3dgl/pkg/math3d"
	"github.com/taigrr/x3dgl/pkg/render"
	"github.com/taigrr/x3dgl/pkg/texture"
)

// ErrMissingTexture is returned when geometry carries texture coordinates
// but no texture was named.
var ErrMissingTexture = errors.New("x3d: texture coordinates without a texture")

// Default viewport configuration.
const (
	DefaultWidth  = 320
	DefaultHeight = 240
	DefaultNear   = 0.01
	DefaultFar    = 1000
)

// Options configures a Renderer. Zero fields take the defaults.
type Options struct {
	Width, Height int
	Near, Far     float64
	Supersampling int            // Per-axis factor; 0 means render.DefaultSupersampling
	Textures      *texture.Cache // Shared texture cache; nil creates a private one
	Clock         func() time.Time
}

// Renderer holds the buffers, camera and transform stack for one output.
type Renderer struct {
	out      render.PixelWriter
	factor   int
	width    int
	height   int
	raster   *render.Rasterizer
	camera   *render.Camera
	stack    *render.TransformStack
	textures *texture.Cache
	clock    func() time.Time
}

// New creates a renderer drawing into out.
func New(out render.PixelWriter, opts Options) *Renderer {
	r := &Renderer{
		out:      out,
		factor:   opts.Supersampling,
		textures: opts.Textures,
		clock:    opts.Clock,
		stack:    render.NewTransformStack(),
	}
	if r.factor < 1 {
		r.factor = render.DefaultSupersampling
	}
	if r.textures == nil {
		r.textures = texture.NewCache()
	}
	if r.clock == nil {
		r.clock = time.Now
	}

	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	near, far := opts.Near, opts.Far
	if near <= 0 {
		near = DefaultNear
	}
	if far <= near {
		far = max(DefaultFar, near*2)
	}
	r.Setup(w, h, near, far)
	return r
}

// Setup reallocates the buffers for a width x height output and resets
// the depth buffer, the transform stack and the camera.
func (r *Renderer) Setup(width, height int, near, far float64) {
	r.width, r.height = max(width, 0), max(height, 0)
	r.raster = render.NewRasterizer(r.width, r.height, r.factor)
	r.camera = render.NewCamera(r.raster.Width(), r.raster.Height(), near, far)
	r.stack.Reset()

	Logger().Debug("x3d: setup",
		"width", r.width, "height", r.height,
		"near", near, "far", far, "supersampling", r.factor)
}

// Clear starts a new frame: every sample is set to bg and the depth
// buffer is reset. The output is not touched until the next draw.
func (r *Renderer) Clear(bg render.RGB) {
	r.raster.Reset(bg)
}

// Flush downsamples the current samples to the output.
func (r *Renderer) Flush() {
	if r.out != nil {
		r.raster.Downsample(r.out)
	}
}

// Size returns the output size in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Supersampling returns the per-axis supersampling factor.
func (r *Renderer) Supersampling() int {
	return r.factor
}

// Textures returns the cache used to resolve texture paths.
func (r *Renderer) Textures() *texture.Cache {
	return r.textures
}

// Viewpoint places the camera. position is [x, y, z], orientation is an
// [x, y, z, angle] rotation and fov is measured against the screen
// diagonal, in radians.
func (r *Renderer) Viewpoint(position, orientation []float64, fov float64) {
	pos := math3d.V3FromSlice(position, math3d.Vec3{})
	rot := math3d.AxisAngleFromSlice(orientation)
	r.camera.SetViewpoint(pos, rot, fov)

	Logger().Debug("x3d: viewpoint",
		"position", pos, "orientation", orientation, "fov", fov, "fovY", r.camera.FOV,
		"eye", r.camera.Position())
}

// TransformIn enters a Transform node. Missing arguments mean no
// translation, unit scale and no rotation.
func (r *Renderer) TransformIn(translation, scale, rotation []float64) {
	t := math3d.V3FromSlice(translation, math3d.Vec3{})
	s := math3d.V3FromSlice(scale, math3d.V3(1, 1, 1))
	r.stack.PushTRS(t, math3d.AxisAngleFromSlice(rotation), s)
}

// TransformOut leaves the innermost Transform node.
func (r *Renderer) TransformOut() {
	before := r.stack.Unmatched()
	r.stack.Pop()
	if r.stack.Unmatched() != before {
		Logger().Warn("x3d: transform out without matching transform in", "unmatched", r.stack.Unmatched())
	}
}

// UnmatchedPops returns how many TransformOut calls found an empty stack.
func (r *Renderer) UnmatchedPops() int {
	return r.stack.Unmatched()
}

// TransformDepth returns the transform stack depth including the base.
func (r *Renderer) TransformDepth() int {
	return r.stack.Depth()
}

// Stats returns the rasterizer counters since the last Setup or Clear.
func (r *Renderer) Stats() render.Stats {
	return r.raster.Stats
}

// Camera exposes the active camera for diagnostics.
func (r *Renderer) Camera() *render.Camera {
	return r.camera
}

// Rasterizer exposes the sample buffers for diagnostics.
func (r *Renderer) Rasterizer() *render.Rasterizer {
	return r.raster
}

// texture resolves path through the cache.
func (r *Renderer) texture(path string) (*texture.Pyramid, error) {
	p, err := r.textures.Get(path)
	if err != nil {
		return nil, fmt.Errorf("x3d: load texture: %w", err)
	}
	return p, nil
}
