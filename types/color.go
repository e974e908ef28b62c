package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

// A linear RGB color with single precision channels, nominally in [0, 1].
type Color f32.Vec3

// Define a color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b}
}

// Black is the zero color.
var Black = Color{}

func (c Color) R() float32 { return c[0] }
func (c Color) G() float32 { return c[1] }
func (c Color) B() float32 { return c[2] }

// Add a color.
func (c Color) Add(c2 Color) Color {
	return Color{c[0] + c2[0], c[1] + c2[1], c[2] + c2[2]}
}

// Multiply channels pairwise.
func (c Color) Mul(c2 Color) Color {
	return Color{c[0] * c2[0], c[1] * c2[1], c[2] * c2[2]}
}

// Multiply all channels with a scalar.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// Clamp every channel to [0, 1].
func (c Color) Clamp() Color {
	return Color{Clamp(c[0]), Clamp(c[1]), Clamp(c[2])}
}

// Apply gamma 2 correction by taking the square root of each channel.
func (c Color) Gamma2() Color {
	return Color{
		float32(math.Sqrt(float64(c[0]))),
		float32(math.Sqrt(float64(c[1]))),
		float32(math.Sqrt(float64(c[2]))),
	}
}

// Quantize to 8-bit channel values. Channels are clamped and rounded.
func (c Color) RGB8() [3]uint8 {
	return [3]uint8{toUint8(c[0]), toUint8(c[1]), toUint8(c[2])}
}

// Clamp a value to [0, 1].
func Clamp(v float32) float32 {
	if v < 0.0 {
		return 0.0
	} else if v > 1.0 {
		return 1.0
	}
	return v
}

func toUint8(v float32) uint8 {
	return uint8(math.Round(float64(Clamp(v)) * 255.0))
}
