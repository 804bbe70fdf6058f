package material

import (
	"math"

	"github.com/lumenforge/ppmpa/pkg/physics"
)

// Material is emittance + transmittance + per-band index of refraction +
// a scattering Surface.
type Material struct {
	Emittance     physics.Radiance
	Transmittance physics.Color
	IOR           physics.Color
	Surface       Surface
}

// NewMaterial builds a Material from its four components.
func NewMaterial(emittance physics.Radiance, transmittance, ior physics.Color, surface Surface) Material {
	return Material{Emittance: emittance, Transmittance: transmittance, IOR: ior, Surface: surface}
}

// AverageIOR returns the mean of the three per-band indices of refraction,
// used for the macro (non-dispersive) refraction direction.
func (m Material) AverageIOR() float64 {
	return (m.IOR.R + m.IOR.G + m.IOR.B) / 3.0
}

// FresnelF0 returns the Fresnel reflectance-at-normal-incidence used to
// weight this material's specular branch: the Surface's own specular
// albedo for Simple, and the Schlick approximation from the average IOR
// for TS (whose specular behavior is driven by a real refractive index).
func (m Material) FresnelF0() physics.Color {
	if m.Surface.Kind == KindTS {
		f0 := physics.SchlickF0FromIOR(m.AverageIOR())
		return physics.NewColor(f0, f0, f0)
	}
	return m.Surface.SpecularRefl
}

// Fresnel evaluates the Schlick reflectance at the given cosine of
// incidence for this material.
func (m Material) Fresnel(cos float64) physics.Color {
	return physics.SchlickReflectanceColor(m.FresnelF0(), cos)
}

// EmittanceTerm returns the material's own emitted radiance contribution,
// E/(2*pi), added by callers on top of the BSDF so emitters contribute
// Lambertian radiance equal to flux/area/pi on the emissive hemisphere.
func (m Material) EmittanceTerm() physics.Radiance {
	return m.Emittance.Multiply(1 / (2 * math.Pi))
}
