// Package optics implements the photon data type and the density-estimate
// projection (photon -> radiance) shared by the photon tracer and the
// photon map.
package optics

import (
	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/physics"
)

// Photon is a single band of light deposited at a surface point. Ray.Origin
// is where the photon is stored; Ray.Direction is the photon's incoming
// direction at that surface point (the direction of propagation just
// before the hit). Photons are immutable after creation.
type Photon struct {
	Wavelength physics.Wavelength
	Ray        core.Ray
}

// NewPhoton creates a Photon.
func NewPhoton(w physics.Wavelength, ray core.Ray) Photon {
	return Photon{Wavelength: w, Ray: ray}
}

// Position returns the surface point this photon was stored at.
func (p Photon) Position() core.Vec3 {
	return p.Ray.Origin
}

// ToRadiance projects this photon onto radiance at a hit with surface
// normal n, weighted by the given power (caller multiplies in both the
// photon map's per-photon power and any filter-kernel weight). Only the
// band this photon carries receives a non-zero value, and only when the
// photon's incoming direction opposes the normal (the photon arrived from
// above the surface).
func (p Photon) ToRadiance(n core.Vec3, power float64) physics.Radiance {
	cos := -n.Dot(p.Ray.Direction)
	if cos <= 0 {
		return physics.Radiance{}
	}
	v := power * cos
	switch p.Wavelength {
	case physics.Red:
		return physics.NewRadiance(v, 0, 0)
	case physics.Green:
		return physics.NewRadiance(0, v, 0)
	default:
		return physics.NewRadiance(0, 0, v)
	}
}
