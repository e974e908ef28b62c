package types

// The Sampler interface is implemented by sources of uniformly distributed
// random numbers in [0, 1). A *rand.Rand from math/rand satisfies it.
type Sampler interface {
	Float64() float64
}

// Pick a random point inside the unit sphere using rejection sampling.
func RandomInUnitSphere(rng Sampler) Vec3 {
	for {
		p := Vec3{
			2*rng.Float64() - 1,
			2*rng.Float64() - 1,
			2*rng.Float64() - 1,
		}
		if p.LenSquared() < 1 {
			return p
		}
	}
}

// Pick a random direction uniformly distributed on the unit sphere.
func RandomUnitVector(rng Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(rng)
		if l := p.LenSquared(); l > 1e-160 {
			return p.Normalize()
		}
	}
}
