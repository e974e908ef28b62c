package tracer

import (
	"math"

	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
)

const (
	// Lower bound for hit distances; avoids re-hitting the surface a ray
	// was spawned from.
	minHitDistance = 0.001

	// Per light probability of sampling the lights directly at a hit.
	lightSampleProbability      = 0.1
	glassLightSampleProbability = 0.05

	// Recursion budget for the rays traced towards a light.
	lightSampleMaxDepth = 2
	lightSampleDepth    = 1

	// Attenuation applied to environment texture samples.
	skyTextureAttenuation = 0.7
)

var (
	// Gradient sky colors at the horizon (t=0) and zenith (t=1).
	skyHorizonColor = types.RGB(1.0, 1.0, 1.0)
	skyZenithColor  = types.RGB(0.5, 0.7, 1.0)
)

// Find the nearest intersection of r with any object in [tMin, tMax].
func HitWorld(objects []scene.Sphere, r types.Ray, tMin, tMax float64) (scene.HitRecord, bool) {
	var nearest scene.HitRecord
	found := false
	closestSoFar := tMax
	for i := range objects {
		if hit, ok := objects[i].Hit(r, tMin, closestSoFar); ok {
			closestSoFar = hit.T
			nearest = hit
			found = true
		}
	}
	return nearest, found
}

// Estimate the radiance arriving along r. The estimate recurses until depth
// reaches 0; maxDepth is the budget the path started with and gates direct
// light sampling to the first two bounces. lights must contain the emissive
// objects of sc (see scene.Scene.Lights).
func RayColor(r types.Ray, sc *scene.Scene, lights []*scene.Sphere, maxDepth, depth int, rng types.Sampler) types.Color {
	if depth <= 0 {
		return types.Black
	}

	hit, ok := HitWorld(sc.Objects, r, minHitDistance, math.MaxFloat64)
	if !ok {
		return Background(sc, r)
	}

	scattered, ok := hit.Material.Scatter(r, &hit, rng)
	if !ok {
		// Absorbed rays are not bounced towards the lights either.
		return types.Black
	}
	albedo := scattered.Attenuation

	var light types.Color
	prob := lightSampleProbability
	if hit.Material.Type == scene.GlassMaterial {
		prob = glassLightSampleProbability
	}
	if len(lights) > 0 &&
		rng.Float64() > 1.0-float64(len(lights))*prob &&
		depth > maxDepth-2 {
		for _, l := range lights {
			lightRay := types.NewRay(hit.Point, l.Center.Sub(hit.Point))
			target := RayColor(lightRay, sc, lights, lightSampleMaxDepth, lightSampleDepth, rng)
			light = light.Add(albedo.Mul(target))
		}
		light = light.Scale(1.0 / float32(len(lights)))
	}

	if !scattered.HasRay {
		return albedo
	}

	target := RayColor(scattered.Ray, sc, lights, maxDepth, depth-1, rng)
	return light.Add(albedo.Mul(target)).Clamp()
}

// Get the background color for a ray that escapes the scene.
func Background(sc *scene.Scene, r types.Ray) types.Color {
	if sc.Sky == nil {
		return types.Black
	}

	dir := r.Direction.Normalize()
	t := types.Clamp(0.5 * (float32(dir.Y()) + 1.0))
	u := types.Clamp(0.5 * (float32(dir.X()) + 1.0))

	tex := sc.Sky.Texture
	if tex == nil {
		return skyHorizonColor.Scale(1.0 - t).Add(skyZenithColor.Scale(t))
	}

	x := int(u * float32(tex.Width-1))
	y := int((1.0 - t) * float32(tex.Height-1))
	return tex.At(x, y).Scale(skyTextureAttenuation)
}
