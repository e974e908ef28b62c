package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/spheretrace/types"
)

type MaterialType uint8

const (
	LambertianMaterial MaterialType = iota
	MetalMaterial
	GlassMaterial
	LightMaterial
)

var materialTypeNames = [...]string{
	LambertianMaterial: "lambertian",
	MetalMaterial:      "metal",
	GlassMaterial:      "glass",
	LightMaterial:      "light",
}

func (t MaterialType) String() string {
	if int(t) < len(materialTypeNames) {
		return materialTypeNames[t]
	}
	return fmt.Sprintf("MaterialType(%d)", uint8(t))
}

// Lookup a material type by its name.
func ParseMaterialType(name string) (MaterialType, error) {
	for t, n := range materialTypeNames {
		if n == name {
			return MaterialType(t), nil
		}
	}
	return 0, fmt.Errorf("scene: unknown material type %q", name)
}

// Emitted color of light materials.
var lightEmission = types.RGB(1.0, 1.0, 1.0)

// Defines a scene material. The Type field selects which of the
// remaining fields are meaningful.
type Material struct {
	// The type of the material.
	Type MaterialType

	// Surface color (lambertian and metal materials).
	Albedo types.Color

	// Reflection perturbation (metal materials only). 0 is a perfect mirror.
	Fuzz float64

	// Index of refraction (glass materials only).
	RefractiveIndex float64
}

// Create a diffuse material.
func Lambertian(albedo types.Color) Material {
	return Material{Type: LambertianMaterial, Albedo: albedo}
}

// Create a reflective material. Fuzz must be in [0, 1]; see Scene.Validate.
func Metal(albedo types.Color, fuzz float64) Material {
	return Material{Type: MetalMaterial, Albedo: albedo, Fuzz: fuzz}
}

// Create a dielectric material.
func Glass(refractiveIndex float64) Material {
	return Material{Type: GlassMaterial, RefractiveIndex: refractiveIndex}
}

// Create an emissive material.
func Light() Material {
	return Material{Type: LightMaterial}
}

// The outcome of a ray-surface interaction.
type Scatter struct {
	// The outgoing ray. Only valid if HasRay is true; light materials
	// terminate the path and report their emission as the attenuation.
	Ray    types.Ray
	HasRay bool

	Attenuation types.Color
}

// Scatter an incoming ray at a hit point. The second return value is false
// when the ray is absorbed.
func (m *Material) Scatter(in types.Ray, hit *HitRecord, rng types.Sampler) (Scatter, bool) {
	switch m.Type {
	case LambertianMaterial:
		dir := hit.Normal.Add(types.RandomUnitVector(rng))
		if dir.NearZero() {
			dir = hit.Normal
		}
		return Scatter{Ray: types.NewRay(hit.Point, dir), HasRay: true, Attenuation: m.Albedo}, true
	case MetalMaterial:
		reflected := in.Direction.Normalize().Reflect(hit.Normal)
		if m.Fuzz > 0 {
			reflected = reflected.Add(types.RandomInUnitSphere(rng).Mul(m.Fuzz))
		}
		if reflected.Dot(hit.Normal) <= 0 {
			return Scatter{}, false
		}
		return Scatter{Ray: types.NewRay(hit.Point, reflected), HasRay: true, Attenuation: m.Albedo}, true
	case GlassMaterial:
		return m.scatterGlass(in, hit, rng), true
	case LightMaterial:
		return Scatter{Attenuation: lightEmission}, true
	}

	panic(fmt.Sprintf("scene: scatter called on unsupported material type %d", m.Type))
}

func (m *Material) scatterGlass(in types.Ray, hit *HitRecord, rng types.Sampler) Scatter {
	ratio := m.RefractiveIndex
	if hit.FrontFace {
		ratio = 1.0 / m.RefractiveIndex
	}

	unitDir := in.Direction.Normalize()
	cosTheta := math.Min(unitDir.Neg().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var dir types.Vec3
	if ratio*sinTheta > 1.0 || reflectance(cosTheta, ratio) > rng.Float64() {
		dir = unitDir.Reflect(hit.Normal)
	} else {
		dir = unitDir.Refract(hit.Normal, ratio)
	}

	return Scatter{
		Ray:         types.NewRay(hit.Point, dir),
		HasRay:      true,
		Attenuation: types.RGB(1.0, 1.0, 1.0),
	}
}

// Schlick's approximation for the fresnel reflectance.
func reflectance(cosine, ratio float64) float64 {
	r0 := (1 - ratio) / (1 + ratio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
