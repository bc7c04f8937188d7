package x3d

import (
	"github.com/taigrr/x3dgl/pkg/render"
)

// Material is the parsed X3D appearance color dictionary. Colors are
// stored in the 0..255 range.
type Material struct {
	Emissive     render.RGB
	Diffuse      render.RGB
	Specular     render.RGB
	Shininess    float64
	Transparency float64 // 0 opaque, 1 invisible

	hasEmissive bool
}

// DefaultMaterial returns the X3D Material defaults.
func DefaultMaterial() Material {
	return Material{
		Diffuse:   render.FromUnit(0.8, 0.8, 0.8),
		Shininess: 0.2,
	}
}

// ParseMaterial reads the keys emissiveColor, diffuseColor,
// specularColor, shininess and transparency. Colors are [r, g, b] lists
// in 0..1, as []float64 or decoded JSON []any. Unknown keys and malformed
// values are ignored.
func ParseMaterial(colors map[string]any) Material {
	m := DefaultMaterial()
	if c, ok := colorValue(colors["emissiveColor"]); ok {
		m.Emissive = c
		m.hasEmissive = true
	}
	if c, ok := colorValue(colors["diffuseColor"]); ok {
		m.Diffuse = c
	}
	if c, ok := colorValue(colors["specularColor"]); ok {
		m.Specular = c
	}
	if v, ok := number(colors["shininess"]); ok {
		m.Shininess = v
	}
	if v, ok := number(colors["transparency"]); ok {
		m.Transparency = min(max(v, 0), 1)
	}
	return m
}

// Color returns the unlit fill color: the emissive color when one was
// given, the diffuse color otherwise.
func (m Material) Color() render.RGB {
	if m.hasEmissive {
		return m.Emissive
	}
	return m.Diffuse
}

// WithEmissive returns a copy of m that fills with c.
func (m Material) WithEmissive(c render.RGB) Material {
	m.Emissive = c
	m.hasEmissive = true
	return m
}

func colorValue(v any) (render.RGB, bool) {
	var f [3]float64
	switch c := v.(type) {
	case []float64:
		if len(c) < 3 {
			return render.RGB{}, false
		}
		copy(f[:], c)
	case [3]float64:
		f = c
	case []any:
		if len(c) < 3 {
			return render.RGB{}, false
		}
		for i := range f {
			n, ok := number(c[i])
			if !ok {
				return render.RGB{}, false
			}
			f[i] = n
		}
	default:
		return render.RGB{}, false
	}
	return render.FromUnit(f[0], f[1], f[2]), true
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case []float64:
		if len(n) > 0 {
			return n[0], true
		}
	case []any:
		if len(n) > 0 {
			return number(n[0])
		}
	}
	return 0, false
}
