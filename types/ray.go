package types

// A ray with an origin and a (not necessarily normalized) direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Create a new ray.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Evaluate the point at parametric distance t along the ray.
func (r Ray) PointAt(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
