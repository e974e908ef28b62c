package scene

import (
	"math"

	"github.com/achilleasa/spheretrace/types"
)

// Information about a ray-surface intersection.
type HitRecord struct {
	Point  types.Vec3
	Normal types.Vec3
	T      float64

	// The material of the hit object. It points into the scene object list
	// and must not be modified.
	Material *Material

	// True if the ray hit the outside of the surface. Normal always points
	// against the ray.
	FrontFace bool
}

func (h *HitRecord) setFaceNormal(r types.Ray, outwardNormal types.Vec3) {
	h.FrontFace = r.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Neg()
	}
}

// Defines a sphere. Radius must be positive.
type Sphere struct {
	Center   types.Vec3
	Radius   float64
	Material Material
}

// Create new sphere.
func NewSphere(center types.Vec3, radius float64, material Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect the sphere with a ray. The nearest root lying in [tMin, tMax] is
// selected; the far root is used when the near one falls outside the interval.
func (s *Sphere) Hit(r types.Ray, tMin, tMax float64) (HitRecord, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.LenSquared()
	halfB := oc.Dot(r.Direction)
	c := oc.LenSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return HitRecord{}, false
		}
	}

	hit := HitRecord{
		T:        root,
		Point:    r.PointAt(root),
		Material: &s.Material,
	}
	hit.setFaceNormal(r, hit.Point.Sub(s.Center).Mul(1.0/s.Radius))
	return hit, true
}
