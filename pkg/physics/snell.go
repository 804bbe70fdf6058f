package physics

import (
	"math"

	"github.com/lumenforge/ppmpa/pkg/core"
)

// Reflect returns the mirror reflection of v about a surface with normal n:
// r = v - 2(v·n)n.
func Reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// RefractionResult carries the outcome of attempting to refract a ray
// through an interface of relative index of refraction eta.
type RefractionResult struct {
	Direction core.Vec3 // refracted direction, valid only if TIR is false
	CosIn     float64   // cos of the incidence angle
	CosOut    float64   // cos of the transmission angle, valid only if TIR is false
	TIR       bool      // true when no real transmission direction exists
}

// Refract implements spec §4.2's Snell/specular-refraction construction.
// v points toward the surface (the incoming propagation direction), n
// points back toward the incoming side, and eta = n_to/n_from is the
// relative index of refraction across the interface.
//
//	cos1 = -v·n
//	g^2  = eta^2 + cos1^2 - 1        (g^2 < 0 => total internal reflection)
//	t    = (v + (cos1 - sqrt(g^2))n) / eta, normalized
//	cos2 = sqrt(g^2) / eta
func Refract(v, n core.Vec3, eta float64) RefractionResult {
	cos1 := -v.Dot(n)
	g2 := eta*eta + cos1*cos1 - 1
	if g2 < 0 {
		return RefractionResult{CosIn: cos1, TIR: true}
	}
	g := math.Sqrt(g2)
	t := v.Add(n.Multiply(cos1 - g)).Multiply(1.0 / eta)
	dir, ok := t.Normalize()
	if !ok {
		return RefractionResult{CosIn: cos1, TIR: true}
	}
	return RefractionResult{
		Direction: dir,
		CosIn:     cos1,
		CosOut:    g / eta,
		TIR:       false,
	}
}

// AverageIOR returns the mean of the three per-band indices of refraction,
// used for the macro (non-dispersive) refraction direction; per-band IOR is
// reserved for photon transport, where it carries chromatic dispersion.
func AverageIOR(ior Color) float64 {
	return (ior.R + ior.G + ior.B) / 3.0
}
