// Package material implements the Material/Surface data model: the
// reflect/refract/bsdf/next_direction contract every surface answers, and
// the glossy reflection sampler that drives both photon scattering and
// eye-ray specular recursion.
package material

import (
	"math"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/physics"
)

// Kind tags which Surface variant a value holds.
type Kind int

const (
	KindSimple Kind = iota
	KindTS
	KindNothing
)

// Surface is a closed tagged variant over the scattering models: a
// Phong-like "Simple" model, a Torrance-Sparrow microfacet model, and the
// null surface used for the ambient medium. Only the fields relevant to
// Kind are meaningful.
type Surface struct {
	Kind Kind

	// Simple
	Reflectance  physics.Color
	SpecularRefl physics.Color
	Diffuseness  float64
	Metalness    float64
	Roughness    float64

	// TS
	AlbedoDiff  physics.Color
	AlbedoSpec  physics.Color
	Scatterness float64
	Alpha       float64

	// derived at construction, shared by both variants
	DensityPow float64
}

func densityPow(roughness float64) float64 {
	return 1.0 / (math.Pow(10, 5*(1-math.Sqrt(roughness))) + 1)
}

// NewSimpleSurface builds a Simple surface, pre-computing density_pow per
// the construction-time invariant (must match bit-for-bit across runs to
// preserve reproducibility under identical seeds).
func NewSimpleSurface(reflectance, specularRefl physics.Color, diffuseness, metalness, roughness float64) Surface {
	return Surface{
		Kind:         KindSimple,
		Reflectance:  reflectance,
		SpecularRefl: specularRefl,
		Diffuseness:  diffuseness,
		Metalness:    metalness,
		Roughness:    roughness,
		DensityPow:   densityPow(roughness),
	}
}

// NewTSSurface builds a Torrance-Sparrow surface, pre-computing density_pow
// and alpha = roughness^4.
func NewTSSurface(albedoDiff, albedoSpec physics.Color, scatterness, metalness, roughness float64) Surface {
	return Surface{
		Kind:        KindTS,
		AlbedoDiff:  albedoDiff,
		AlbedoSpec:  albedoSpec,
		Scatterness: scatterness,
		Metalness:   metalness,
		Roughness:   roughness,
		Alpha:       roughness * roughness * roughness * roughness,
		DensityPow:  densityPow(roughness),
	}
}

// NewNothingSurface builds the null surface used for the ambient medium.
func NewNothingSurface() Surface {
	return Surface{Kind: KindNothing}
}

// diffuseAlbedo returns the per-band diffuse reflectance used by the
// generic next_direction dispatch, unifying Simple.Reflectance and
// TS.AlbedoDiff under one name.
func (s Surface) diffuseAlbedo() physics.Color {
	if s.Kind == KindTS {
		return s.AlbedoDiff
	}
	return s.Reflectance
}

// specularAlbedo returns the per-band specular reflectance used by the
// generic next_direction dispatch, unifying Simple.SpecularRefl and
// TS.AlbedoSpec under one name.
func (s Surface) specularAlbedo() physics.Color {
	if s.Kind == KindTS {
		return s.AlbedoSpec
	}
	return s.SpecularRefl
}

// scatterProb returns the probability that, past the specular/diffuse
// fork, the walk scatters diffusely rather than transmits: Diffuseness for
// Simple, Scatterness for TS.
func (s Surface) scatterProb() float64 {
	if s.Kind == KindTS {
		return s.Scatterness
	}
	return s.Diffuseness
}

// Reflect reports whether this surface contributes a specular reflection
// branch at the given cosine of incidence.
func (s Surface) Reflect(cos float64) bool {
	switch s.Kind {
	case KindTS:
		return s.Metalness != 0 || !s.AlbedoSpec.IsBlack()
	case KindSimple:
		if s.Diffuseness >= 1 {
			return false
		}
		if cos == 1 && s.SpecularRefl.IsBlack() {
			return false
		}
		return true
	default:
		return false
	}
}

// Refract reports whether this surface contributes a transmission branch
// at the given cosine of incidence.
func (s Surface) Refract(cos float64) bool {
	switch s.Kind {
	case KindSimple:
		return !(s.Diffuseness == 0 && s.Metalness != 0)
	case KindTS:
		return s.Metalness == 0 && s.Scatterness < 1 && !s.AlbedoDiff.IsBlack()
	default:
		return false
	}
}

// StorePhoton reports whether hits on this surface should be cached into
// the photon map.
func (s Surface) StorePhoton() bool {
	switch s.Kind {
	case KindSimple:
		return s.Diffuseness > 0
	case KindTS:
		return s.Metalness == 0 && s.Scatterness > 0
	default:
		return false
	}
}

// BSDF combines the three irradiance components (direct+indirect Ld,
// specular-reflected Ls, transmitted Lt) into outgoing radiance. f is the
// Fresnel reflectance already evaluated at the hit's cosine of incidence
// (Simple uses SpecularRefl as F0; TS uses the material's average IOR).
func (s Surface) BSDF(f physics.Color, ld, ls, lt physics.Radiance) physics.Radiance {
	switch s.Kind {
	case KindSimple:
		diffuse := ld.MultiplyColor(s.Reflectance.Multiply(1.0 / math.Pi)).Multiply(s.Diffuseness)
		oneMinusF := f.OneMinus()
		specTrans := ls.MultiplyColor(f).Add(lt.MultiplyColor(oneMinusF).Multiply(1 - s.Metalness))
		return diffuse.Add(specTrans.Multiply(1 - s.Diffuseness))
	case KindTS:
		if s.Metalness != 0 {
			return ls.MultiplyColor(f)
		}
		oneMinusF := f.OneMinus()
		diffuse := ld.MultiplyColor(s.AlbedoDiff.Multiply(s.Scatterness / math.Pi)).Add(lt.Multiply(1 - s.Scatterness))
		return diffuse.MultiplyColor(oneMinusF).Add(ls.MultiplyColor(f))
	default:
		return physics.Radiance{}
	}
}

// NextDirectionResult is the outcome of a photon-tracer branch decision.
type NextDirectionResult struct {
	Direction core.Vec3
	Above     bool // true: direction leaves into the surface's outward side; false: below surface (refraction)
	Absorbed  bool
}

// NextDirection implements the photon-tracer's per-hit branch dispatch
// (spec's next_direction): Russian-roulette against the specular albedo
// picks reflection, against the diffuse albedo picks absorption-or-not,
// against the scatter probability picks diffuse-vs-transmission.
func (s Surface) NextDirection(sampler *core.Sampler, eta float64, n, v core.Vec3, band physics.Wavelength) NextDirectionResult {
	mirror := physics.Reflect(v, n)
	glossy := GlossyReflect(sampler, n, mirror, s.DensityPow)

	refr := physics.Refract(v, n, eta)

	cosRefl := n.Dot(mirror)
	cosRefr := cosRefl
	if !refr.TIR {
		cosRefr = refr.CosOut
	}
	cos := math.Min(cosRefl, cosRefr)

	if physics.Accept(physics.SchlickReflectance(s.specularAlbedo().Band(band), cos), sampler.Get1D()) {
		return NextDirectionResult{Direction: glossy, Above: true}
	}

	if !physics.Accept(s.diffuseAlbedo().Band(band), sampler.Get1D()) {
		return NextDirectionResult{Absorbed: true}
	}

	if physics.Accept(s.scatterProb(), sampler.Get1D()) {
		return NextDirectionResult{Direction: sampler.RandomDirAbove(n), Above: true}
	}

	if refr.TIR {
		return NextDirectionResult{Absorbed: true}
	}
	return NextDirectionResult{Direction: refr.Direction, Above: false}
}

// GlossyReflect samples a direction around the ideal reflection direction
// r, with lobe width controlled by p = densityPow*(n·r). The literal
// formula (including the cosine factor folded into the exponent at
// sampling time) is taken as the contract rather than "fixed" to match the
// more commonly cited Phong sampler.
func GlossyReflect(sampler *core.Sampler, n, r core.Vec3, densityPow float64) core.Vec3 {
	fixed := core.NewVec3(0.00424, 1, 0.00764)
	u, ok := fixed.Cross(r).Normalize()
	if !ok {
		u, ok = core.NewVec3(1, 0, 0).Cross(r).Normalize()
		if !ok {
			u = core.NewVec3(0, 0, 1)
		}
	}
	v := u.Cross(r)

	xi1, xi2raw := sampler.Get2D()
	xi2 := xi2raw * 2 * math.Pi

	p := densityPow * n.Dot(r)
	y := math.Pow(xi1, p)
	radial := math.Sqrt(math.Max(0, 1-y*y))
	x := math.Cos(xi2) * radial
	z := math.Sin(xi2) * radial

	dir := u.Multiply(x).Add(r.Multiply(y)).Add(v.Multiply(z))

	if dir.Dot(n) < 0 {
		tangential := dir.Subtract(n.Multiply(dir.Dot(n)))
		dir = dir.Subtract(tangential.Multiply(2))
	}

	if norm, ok := dir.Normalize(); ok {
		return norm
	}
	return r
}
