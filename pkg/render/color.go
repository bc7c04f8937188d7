package render

import (
	"image/color"
	"math"
)

// Color is an 8-bit framebuffer pixel. Alpha is always opaque.
type Color = color.RGBA

// RGB is a floating-point color with channels in the 0..255 range. The
// supersampled buffer and texture texels store colors this way so
// blending and averaging do not lose precision before the final
// quantization.
type RGB struct {
	R, G, B float64
}

// Black is the cleared buffer color.
var Black = RGB{}

// RGB8 creates an opaque framebuffer color.
func RGB8(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromUnit converts 0..1 channels, the X3D convention, to 0..255.
func FromUnit(r, g, b float64) RGB {
	return RGB{R: r * 255, G: g * 255, B: b * 255}
}

// Add returns the channel-wise sum.
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies every channel by s.
func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Lerp blends from c to o by t.
func (c RGB) Lerp(o RGB, t float64) RGB {
	return RGB{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Color quantizes to an opaque RGB8 pixel, rounding and clamping.
func (c RGB) Color() Color {
	return RGB8(clamp255(c.R), clamp255(c.G), clamp255(c.B))
}

func clamp255(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
