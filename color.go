package mandel

import (
	"image/color"
	"math"
)

// RGB is an opaque color with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Black is the color of bounded points.
var Black = RGB{}

// RGBA converts c to an 8-bit opaque color.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: 255,
	}
}

// Hue colors an escape value on the hue wheel: value v maps to hue v*360°
// at full saturation and brightness. Bounded points are black.
func Hue(e Escape) RGB {
	if !e.Escaped() {
		return Black
	}
	return hsv(float64(e), 1, 1)
}

// hsv converts hue h in turns (1 == 360°), saturation s and value v to RGB.
func hsv(h, s, v float64) RGB {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	switch i % 6 {
	case 0:
		return RGB{v, t, p}
	case 1:
		return RGB{q, v, p}
	case 2:
		return RGB{p, v, t}
	case 3:
		return RGB{p, q, v}
	case 4:
		return RGB{t, p, v}
	default:
		return RGB{v, p, q}
	}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
