package tracer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/achilleasa/spheretrace/scene"
	"github.com/achilleasa/spheretrace/types"
)

// Replays a fixed list of values and fails the test if it runs out.
type scriptedSampler struct {
	t      *testing.T
	values []float64
	next   int
}

func (s *scriptedSampler) Float64() float64 {
	if s.next >= len(s.values) {
		s.t.Fatalf("sampler exhausted after %d draws", s.next)
	}
	v := s.values[s.next]
	s.next++
	return v
}

func testScene() *scene.Scene {
	return &scene.Scene{
		Width:           80,
		Height:          60,
		SamplesPerPixel: 1,
		MaxDepth:        2,
		Sky:             scene.NewDefaultSky(),
		Camera: scene.NewCamera(
			types.XYZ(0, 0, -3),
			types.XYZ(0, 0, 0),
			types.XYZ(0, 1, 0),
			20.0,
			1.333,
		),
	}
}

func TestRayColorGradient(t *testing.T) {
	sc := testScene()
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0))

	got := RayColor(r, sc, sc.Lights(), 2, 2, rand.New(rand.NewSource(1)))
	exp := types.RGB(0.75, 0.85, 1.0)
	if got[0] != exp[0] || got[2] != exp[2] || math.Abs(float64(got[1]-exp[1])) > 1e-6 {
		t.Fatalf("expected %v; got %v", exp, got)
	}

	// Straight up and straight down hit the gradient endpoints.
	if got = Background(sc, types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 2, 0))); got != skyZenithColor {
		t.Fatalf("expected zenith color %v; got %v", skyZenithColor, got)
	}
	if got = Background(sc, types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, -2, 0))); got != skyHorizonColor {
		t.Fatalf("expected horizon color %v; got %v", skyHorizonColor, got)
	}
}

func TestRayColorWithoutSky(t *testing.T) {
	sc := testScene()
	sc.Sky = nil
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0.3, 0.4, -1))

	if got := RayColor(r, sc, nil, 2, 2, rand.New(rand.NewSource(1))); got != types.Black {
		t.Fatalf("expected black background; got %v", got)
	}
}

func TestRayColorDepthExhausted(t *testing.T) {
	sc := testScene()
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 0, -1), 0.5, scene.Light()))
	sc.AddSphere(scene.NewSphere(types.XYZ(0, -100.5, -1), 100, scene.Lambertian(types.RGB(0.5, 0.5, 0.5))))
	lights := sc.Lights()
	rng := rand.New(rand.NewSource(7))

	dirs := []types.Vec3{
		types.XYZ(0, 0, -1),
		types.XYZ(0, -1, -1),
		types.XYZ(1, 0, 0),
		types.XYZ(0, 1, 0),
	}
	for _, dir := range dirs {
		r := types.NewRay(types.XYZ(0, 0, 0), dir)
		for _, maxDepth := range []int{0, 1, 10} {
			if got := RayColor(r, sc, lights, maxDepth, 0, rng); got != types.Black {
				t.Fatalf("expected black for depth 0 (dir %v, max depth %d); got %v", dir, maxDepth, got)
			}
		}
	}
}

func TestRayColorHitsLight(t *testing.T) {
	sc := testScene()
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 0, -2), 0.5, scene.Light()))
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 8; i++ {
		if got := RayColor(r, sc, sc.Lights(), 4, 4, rng); got != types.RGB(1, 1, 1) {
			t.Fatalf("expected light emission; got %v", got)
		}
	}
}

func TestRayColorDiffuseBounce(t *testing.T) {
	sc := testScene()
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 0, -2), 0.5, scene.Lambertian(types.RGB(0.5, 0.5, 0.5))))
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))
	rng := rand.New(rand.NewSource(11))

	// The last bounce has no budget left.
	if got := RayColor(r, sc, nil, 1, 1, rng); got != types.Black {
		t.Fatalf("expected black when the bounce has no budget; got %v", got)
	}

	// Bounces off a lone convex object escape to the sky.
	for i := 0; i < 32; i++ {
		got := RayColor(r, sc, nil, 2, 2, rng)
		if math.Abs(float64(got[2])-0.5) > 1e-6 {
			t.Fatalf("expected blue channel to be albedo * 1.0; got %v", got)
		}
		if got[0] < 0.25 || got[0] > 0.5 || got[1] < 0.35 || got[1] > 0.5 {
			t.Fatalf("expected albedo-scaled gradient color; got %v", got)
		}
	}
}

func TestRayColorLightSampling(t *testing.T) {
	sc := testScene()
	sc.Sky = nil
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 0, -1), 0.5, scene.Lambertian(types.RGB(0.5, 0.5, 0.5))))
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 5, 0), 1, scene.Light()))
	lights := sc.Lights()
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	// Diffuse bounce towards -y escapes into the black background.
	bounce := []float64{0.5, 0.2, 0.5}

	type spec struct {
		draws    []float64
		maxDepth int
		depth    int
		exp      types.Color
	}
	specs := []spec{
		// Threshold passes; the light ray's own sampling check fails.
		{append(append([]float64{}, bounce...), 0.95, 0.0), 2, 2, types.RGB(0.5, 0.5, 0.5)},
		// Threshold fails.
		{append(append([]float64{}, bounce...), 0.5), 2, 2, types.Black},
		// Threshold passes but the hit is not within the last two bounces.
		{append(append([]float64{}, bounce...), 0.95), 4, 2, types.Black},
	}

	for index, s := range specs {
		rng := &scriptedSampler{t: t, values: s.draws}
		got := RayColor(r, sc, lights, s.maxDepth, s.depth, rng)
		if got != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
		if rng.next != len(s.draws) {
			t.Fatalf("[spec %d] expected %d random draws; got %d", index, len(s.draws), rng.next)
		}
	}
}

func TestBackgroundTexture(t *testing.T) {
	sc := testScene()
	sc.Sky.Texture = &scene.Texture{
		Width:    2,
		Height:   2,
		Channels: 3,
		Pixels: []byte{
			255, 0, 0 /**/, 0, 255, 0,
			0, 0, 255 /**/, 255, 255, 255,
		},
	}

	type spec struct {
		dir types.Vec3
		exp types.Color
	}
	specs := []spec{
		{types.XYZ(0, 1, 0), types.RGB(0.7, 0, 0)},
		{types.XYZ(0, -1, 0), types.RGB(0, 0, 0.7)},
		{types.XYZ(1, 0, 0), types.RGB(0, 0.7, 0)},
		{types.XYZ(-1, 0, 0), types.RGB(0.7, 0, 0)},
	}

	for index, s := range specs {
		got := Background(sc, types.NewRay(types.XYZ(0, 0, 0), s.dir))
		if got != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestHitWorldNearest(t *testing.T) {
	mat := scene.Lambertian(types.RGB(1, 1, 1))
	objects := []scene.Sphere{
		scene.NewSphere(types.XYZ(0, 0, -10), 1, mat),
		scene.NewSphere(types.XYZ(0, 0, -3), 1, mat),
		scene.NewSphere(types.XYZ(0, 0, -6), 1, mat),
		scene.NewSphere(types.XYZ(5, 0, -1), 1, mat),
	}
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	hit, ok := HitWorld(objects, r, minHitDistance, math.MaxFloat64)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.T != 2 {
		t.Fatalf("expected nearest hit at t=2; got %f", hit.T)
	}
	if hit.Material != &objects[1].Material {
		t.Fatal("expected hit to reference the material of the nearest object")
	}

	if _, ok = HitWorld(objects, r, minHitDistance, 1.5); ok {
		t.Fatal("expected no hit within [0.001, 1.5]")
	}
	if _, ok = HitWorld(nil, r, minHitDistance, math.MaxFloat64); ok {
		t.Fatal("expected no hit in an empty world")
	}
}

func TestRayColorGlassLightSampling(t *testing.T) {
	sc := testScene()
	sc.Sky = nil
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 0, -1), 0.5, scene.Glass(1.5)))
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 5, 0), 1, scene.Light()))
	lights := sc.Lights()
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	type spec struct {
		draws []float64
		exp   types.Color
	}
	specs := []spec{
		// 0.92 clears the diffuse threshold (0.9) but not the glass one (0.95).
		// The refracted ray passes through the back face and runs out of budget.
		{[]float64{0.5, 0.92, 0.5, 0.0}, types.Black},
		// 0.96 clears the glass threshold; the light contributes white.
		{[]float64{0.5, 0.96, 0.0, 0.5, 0.0}, types.RGB(1, 1, 1)},
	}

	for index, s := range specs {
		rng := &scriptedSampler{t: t, values: s.draws}
		got := RayColor(r, sc, lights, 2, 2, rng)
		if got != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
		if rng.next != len(s.draws) {
			t.Fatalf("[spec %d] expected %d random draws; got %d", index, len(s.draws), rng.next)
		}
	}
}

func TestRayColorClampsCombinedLight(t *testing.T) {
	sc := testScene()
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 0, -1), 0.5, scene.Lambertian(types.RGB(1, 1, 1))))
	sc.AddSphere(scene.NewSphere(types.XYZ(0, 5, 0), 1, scene.Light()))
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	// The light term (white) plus the bright sky seen by the bounce exceeds 1.
	rng := &scriptedSampler{t: t, values: []float64{0.5, 0.2, 0.5, 0.95, 0.0}}
	got := RayColor(r, sc, sc.Lights(), 2, 2, rng)
	if exp := types.RGB(1, 1, 1); got != exp {
		t.Fatalf("expected combined light to be clamped to %v; got %v", exp, got)
	}
	if rng.next != len(rng.values) {
		t.Fatalf("expected %d random draws; got %d", len(rng.values), rng.next)
	}
}
