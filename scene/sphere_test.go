package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/spheretrace/types"
)

func TestSphereHitTowardsCenter(t *testing.T) {
	type spec struct {
		origin types.Vec3
		center types.Vec3
		radius float64
	}
	specs := []spec{
		{types.XYZ(0, 0, 0), types.XYZ(0, 0, -5), 1},
		{types.XYZ(3, -2, 1), types.XYZ(-1, 4, 2), 0.5},
		{types.XYZ(10, 10, 10), types.XYZ(0, 0, 0), 3},
	}

	for index, s := range specs {
		sphere := NewSphere(s.center, s.radius, Lambertian(types.RGB(0.5, 0.5, 0.5)))
		r := types.NewRay(s.origin, s.center.Sub(s.origin))

		hit, ok := sphere.Hit(r, 0.001, math.MaxFloat64)
		if !ok {
			t.Fatalf("[spec %d] expected ray aimed at center to hit", index)
		}
		if hit.T <= 0 {
			t.Fatalf("[spec %d] expected positive t; got %f", index, hit.T)
		}

		expNormal := hit.Point.Sub(s.center).Normalize()
		if hit.Normal.Sub(expNormal).Len() > 1e-9 {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, expNormal, hit.Normal)
		}
		if math.Abs(hit.Normal.Len()-1.0) > 1e-9 {
			t.Fatalf("[spec %d] expected unit normal; got len %f", index, hit.Normal.Len())
		}
		if !hit.FrontFace {
			t.Fatalf("[spec %d] expected outside hit to be front facing", index)
		}
		if hit.Material != &sphere.Material {
			t.Fatalf("[spec %d] expected hit record to reference the sphere material", index)
		}
	}
}

func TestSphereMiss(t *testing.T) {
	sphere := NewSphere(types.XYZ(0, 0, -5), 1, Lambertian(types.RGB(1, 1, 1)))

	// Offset perpendicular to the ray by more than the radius.
	r := types.NewRay(types.XYZ(1.5, 0, 0), types.XYZ(0, 0, -1))
	if _, ok := sphere.Hit(r, 0.001, math.MaxFloat64); ok {
		t.Fatal("expected ray to miss the sphere")
	}

	// Sphere behind the ray.
	r = types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1))
	if _, ok := sphere.Hit(r, 0.001, math.MaxFloat64); ok {
		t.Fatal("expected ray pointing away to miss the sphere")
	}
}

func TestSphereHitInterval(t *testing.T) {
	sphere := NewSphere(types.XYZ(0, 0, -5), 1, Lambertian(types.RGB(1, 1, 1)))
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	hit, ok := sphere.Hit(r, 0.001, math.MaxFloat64)
	if !ok || hit.T != 4 {
		t.Fatalf("expected near root t=4; got %f (hit: %t)", hit.T, ok)
	}

	// Near root excluded; fall back to far root from the inside.
	hit, ok = sphere.Hit(r, 4.5, math.MaxFloat64)
	if !ok || hit.T != 6 {
		t.Fatalf("expected far root t=6; got %f (hit: %t)", hit.T, ok)
	}
	if hit.FrontFace {
		t.Fatal("expected far root hit to be back facing")
	}
	if hit.Normal != types.XYZ(0, 0, 1) {
		t.Fatalf("expected normal to face the ray; got %v", hit.Normal)
	}

	// Both roots outside the interval.
	if _, ok = sphere.Hit(r, 0.001, 3.9); ok {
		t.Fatal("expected no hit when both roots exceed tMax")
	}
}
