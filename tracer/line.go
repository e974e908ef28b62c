package tracer

import (
	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
)

// Render frame row y into pixels, which must hold exactly one row in the
// given format. Row 0 is the top of the image.
func RenderLine(pixels []byte, format PixelFormat, sc *scene.Scene, lights []*scene.Sphere, y int, rng types.Sampler) {
	// Guard single pixel wide/tall frames against a zero denominator.
	uDenom := float64(max(sc.Width-1, 1))
	vDenom := float64(max(sc.Height-1, 1))
	scale := 1.0 / float32(sc.SamplesPerPixel)
	stride := format.Channels()

	for x := 0; x < sc.Width; x++ {
		var sum types.Color
		for s := 0; s < sc.SamplesPerPixel; s++ {
			u := (float64(x) + rng.Float64()) / uDenom
			v := (float64(sc.Height) - (float64(y) + rng.Float64())) / vDenom
			r := sc.Camera.GetRay(u, v)
			sum = sum.Add(RayColor(r, sc, lights, sc.MaxDepth, sc.MaxDepth, rng))
		}

		pixel := sum.Scale(scale).Gamma2().RGB8()
		offset := x * stride
		pixels[offset] = pixel[0]
		pixels[offset+1] = pixel[1]
		pixels[offset+2] = pixel[2]
		if format == RGBA8 {
			pixels[offset+3] = 255
		}
	}
}
