package models

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/x3dgl/pkg/math3d"
	"github.com/taigrr/x3dgl/pkg/texture"
)

// Load opens a glTF or GLB file and flattens its triangle primitives into
// a model. External images are resolved relative to the file.
func Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	m, err := FromDocument(doc, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	m.Name = filepath.Base(path)
	return m, nil
}

// FromDocument converts every triangle primitive of doc. dir is the base
// directory for image URIs.
func FromDocument(doc *gltf.Document, dir string) (*Model, error) {
	m := &Model{BaseColor: [3]float64{1, 1, 1}}
	material := -1

	var colored, textured bool
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				// Skip lines and points
				continue
			}
			c, t, err := addPrimitive(doc, prim, m)
			if err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", mesh.Name, err)
			}
			colored = colored || c
			textured = textured || t
			if material < 0 && prim.Material != nil {
				material = *prim.Material
			}
		}
	}

	if !colored {
		m.Faces.Color = nil
	}
	m.Faces.ColorPerVertex = colored
	if !textured {
		m.Faces.TexCoord = nil
	}

	img := -1
	if material >= 0 && material < len(doc.Materials) {
		if pbr := doc.Materials[material].PBRMetallicRoughness; pbr != nil {
			if f := pbr.BaseColorFactor; f != nil {
				m.BaseColor = [3]float64{f[0], f[1], f[2]}
			}
			if ti := pbr.BaseColorTexture; ti != nil && ti.Index < len(doc.Textures) {
				if src := doc.Textures[ti.Index].Source; src != nil {
					img = *src
				}
			}
		}
	}
	if textured {
		tex, err := baseTexture(doc, dir, img)
		if err != nil {
			return nil, err
		}
		m.Texture = tex
	}
	return m, nil
}

// addPrimitive appends one primitive. Color and TexCoord are kept parallel
// to Coord; the results report whether the primitive supplied them.
func addPrimitive(doc *gltf.Document, prim *gltf.Primitive, m *Model) (colored, textured bool, err error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return false, false, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, false, fmt.Errorf("read positions: %w", err)
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return false, false, fmt.Errorf("read uvs: %w", err)
		}
	}

	var colors [][4]uint8
	if idx, ok := prim.Attributes[gltf.COLOR_0]; ok {
		colors, err = modeler.ReadColor(doc, doc.Accessors[idx], nil)
		if err != nil {
			return false, false, fmt.Errorf("read colors: %w", err)
		}
	}

	base := len(m.Faces.Coord)
	for i, p := range positions {
		m.Faces.Coord = append(m.Faces.Coord, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))

		uv := math3d.V2(0, 0)
		if i < len(uvs) {
			// glTF puts V=0 at the top of the image
			uv = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
		}
		m.Faces.TexCoord = append(m.Faces.TexCoord, uv)

		c := math3d.V3(1, 1, 1)
		if i < len(colors) {
			c = math3d.V3(float64(colors[i][0])/255, float64(colors[i][1])/255, float64(colors[i][2])/255)
		}
		m.Faces.Color = append(m.Faces.Color, c)
	}

	// glTF front faces are counter-clockwise, which the rasterizer keeps
	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return false, false, fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			m.Faces.CoordIndex = append(m.Faces.CoordIndex,
				base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]), -1)
		}
	} else {
		for i := 0; i+2 < len(positions); i += 3 {
			m.Faces.CoordIndex = append(m.Faces.CoordIndex, base+i, base+i+1, base+i+2, -1)
		}
	}

	return len(colors) > 0, len(uvs) > 0, nil
}

// baseTexture decodes image img, or the first decodable image when img is
// negative. A document without images yields a nil texture.
func baseTexture(doc *gltf.Document, dir string, img int) (*texture.Pyramid, error) {
	if img >= 0 {
		if img >= len(doc.Images) {
			return nil, fmt.Errorf("image %d out of range", img)
		}
		data, err := imageData(doc, dir, doc.Images[img])
		if err != nil {
			return nil, fmt.Errorf("read image %d: %w", img, err)
		}
		level, err := texture.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return texture.BuildPyramid(level), nil
	}

	for _, im := range doc.Images {
		data, err := imageData(doc, dir, im)
		if err != nil || len(data) == 0 {
			continue
		}
		if level, err := texture.Decode(bytes.NewReader(data)); err == nil {
			return texture.BuildPyramid(level), nil
		}
	}
	return nil, nil
}

// imageData returns the encoded bytes of an embedded or external image.
func imageData(doc *gltf.Document, dir string, im *gltf.Image) ([]byte, error) {
	if im.BufferView != nil {
		bv := doc.BufferViews[*im.BufferView]
		buf := doc.Buffers[bv.Buffer]
		start, end := bv.ByteOffset, bv.ByteOffset+bv.ByteLength
		if end > len(buf.Data) {
			return nil, fmt.Errorf("buffer view exceeds buffer")
		}
		return buf.Data[start:end], nil
	}
	if im.URI == "" {
		return nil, fmt.Errorf("image has no data")
	}
	if im.IsEmbeddedResource() {
		return im.MarshalData()
	}
	return os.ReadFile(filepath.Join(dir, im.URI))
}
