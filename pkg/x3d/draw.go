package x3d

import (
	"github.com/taigrr/x3dgl/pkg/geometry"
	"github.com/taigrr/x3dgl/pkg/math3d"
	"github.com/taigrr/x3dgl/pkg/render"
	"github.com/taigrr/x3dgl/pkg/texture"
)

// FaceSet carries the flat fields of an IndexedFaceSet node.
type FaceSet struct {
	Coord          []float64 // [x0, y0, z0, x1, ...]
	CoordIndex     []int
	ColorPerVertex bool
	Color          []float64 // [r0, g0, b0, ...] in 0..1
	ColorIndex     []int
	TexCoord       []float64 // [u0, v0, u1, ...]
	TexCoordIndex  []int
	Texture        string // Image path for TexCoord
}

// Geometry converts the flat fields to a tessellator.
func (f FaceSet) Geometry() geometry.IndexedFaceSet {
	return geometry.IndexedFaceSet{
		Coord:          geometry.Points3(f.Coord),
		CoordIndex:     f.CoordIndex,
		Color:          geometry.Colors3(f.Color),
		ColorIndex:     f.ColorIndex,
		ColorPerVertex: f.ColorPerVertex,
		TexCoord:       geometry.Points2(f.TexCoord),
		TexCoordIndex:  f.TexCoordIndex,
	}
}

// Draw tessellates p and rasterizes it under the current transform. Meshes
// with texture coordinates sample texturePath; meshes with vertex colors
// interpolate them; everything else fills with the material color.
func (r *Renderer) Draw(p geometry.Primitive, mat Material, texturePath string) error {
	mesh := p.Tessellate()

	var tex *texture.Pyramid
	if mesh.HasUVs() {
		if texturePath == "" {
			return ErrMissingTexture
		}
		var err error
		if tex, err = r.texture(texturePath); err != nil {
			return err
		}
	}

	r.drawMesh(mesh, mat, tex)
	return nil
}

// TriangleSet draws every consecutive triple of [x, y, z] points.
func (r *Renderer) TriangleSet(point []float64, colors map[string]any) {
	warnTrailing("TriangleSet", point, 3)
	r.drawMesh(geometry.TriangleSet{Points: geometry.Points3(point)}.Tessellate(), ParseMaterial(colors), nil)
}

// TriangleStripSet draws strips of stripCount[i] consecutive points.
func (r *Renderer) TriangleStripSet(point []float64, stripCount []int, colors map[string]any) {
	warnTrailing("TriangleStripSet", point, 3)
	strips := geometry.TriangleStripSet{Points: geometry.Points3(point), StripCount: stripCount}
	r.drawMesh(strips.Tessellate(), ParseMaterial(colors), nil)
}

// IndexedTriangleStripSet draws strips of indices into point separated
// by -1.
func (r *Renderer) IndexedTriangleStripSet(point []float64, index []int, colors map[string]any) {
	warnTrailing("IndexedTriangleStripSet", point, 3)
	strips := geometry.IndexedTriangleStripSet{Points: geometry.Points3(point), Index: index}
	r.drawMesh(strips.Tessellate(), ParseMaterial(colors), nil)
}

// IndexedFaceSet draws a polygon mesh. Texture load failures are returned.
func (r *Renderer) IndexedFaceSet(fs FaceSet, colors map[string]any) error {
	warnTrailing("IndexedFaceSet coord", fs.Coord, 3)
	warnTrailing("IndexedFaceSet color", fs.Color, 3)
	warnTrailing("IndexedFaceSet texCoord", fs.TexCoord, 2)
	return r.Draw(fs.Geometry(), ParseMaterial(colors), fs.Texture)
}

// Box draws an axis-aligned box of the given [x, y, z] size. A missing
// size draws the X3D default 2x2x2 box.
func (r *Renderer) Box(size []float64, colors map[string]any) {
	b := geometry.Box{Size: math3d.V3FromSlice(size, math3d.V3(2, 2, 2))}
	r.drawMesh(b.Tessellate(), ParseMaterial(colors), nil)
}

// Sphere draws a sphere centred on the local origin.
func (r *Renderer) Sphere(radius float64, colors map[string]any) {
	r.drawMesh(geometry.Sphere{Radius: radius}.Tessellate(), ParseMaterial(colors), nil)
}

// Cone draws a closed cone with its apex on +Y.
func (r *Renderer) Cone(bottomRadius, height float64, colors map[string]any) {
	c := geometry.Cone{BottomRadius: bottomRadius, Height: height, Bottom: true}
	r.drawMesh(c.Tessellate(), ParseMaterial(colors), nil)
}

// Cylinder draws a closed cylinder along Y.
func (r *Renderer) Cylinder(radius, height float64, colors map[string]any) {
	c := geometry.Cylinder{Radius: radius, Height: height, Top: true, Bottom: true}
	r.drawMesh(c.Tessellate(), ParseMaterial(colors), nil)
}

// drawMesh projects the mesh through the camera and the current model
// transform, rasterizes it and flushes the result.
func (r *Renderer) drawMesh(mesh geometry.Mesh, mat Material, tex *texture.Pyramid) {
	n := mesh.Triangles()
	if n == 0 {
		return
	}

	sh := render.Shading{
		Mode:         render.FillFlat,
		Color:        mat.Color(),
		Transparency: mat.Transparency,
	}
	colored := mesh.HasColors()
	textured := tex != nil && mesh.HasUVs()
	switch {
	case textured:
		sh.Mode = render.FillTexture
		sh.Texture = tex
	case colored:
		sh.Mode = render.FillVertexColor
	}

	screen := r.camera.Project(r.stack.Top(), mesh.Positions[:3*n])
	tris := make([]render.Triangle, n)
	for i := range tris {
		for k := range 3 {
			j := 3*i + k
			v := &tris[i].V[k]
			v.X, v.Y, v.Z = screen[j].X, screen[j].Y, screen[j].Z
			if colored {
				c := mesh.Colors[j]
				v.Color = render.FromUnit(c.X, c.Y, c.Z)
			}
			if textured {
				v.UV = mesh.UVs[j]
			}
		}
	}

	r.raster.DrawTriangles(tris, sh)
	r.Flush()
}

// warnTrailing logs flat coordinate lists whose length is not a multiple
// of the tuple size.
func warnTrailing(node string, flat []float64, tuple int) {
	if rem := len(flat) % tuple; rem != 0 {
		Logger().Warn("x3d: ignoring trailing values", "node", node, "values", rem)
	}
}
