// Package tracer implements the two passes that drive the renderer: the
// photon random walk that populates the photon map, and the recursive
// eye-ray trace that combines direct lighting, the photon-map density
// estimate, and specular/transmitted recursion into a final radiance.
package tracer

import (
	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/material"
	"github.com/lumenforge/ppmpa/pkg/optics"
	"github.com/lumenforge/ppmpa/pkg/physics"
	"github.com/lumenforge/ppmpa/pkg/scene"
)

// MaxDepth bounds both the photon random walk and the eye-ray recursion.
const MaxDepth = 10

// air is the ambient medium's material: unit IOR, no scattering surface.
var air = material.NewMaterial(physics.Radiance{}, physics.NewColor(1, 1, 1), physics.NewColor(1, 1, 1), material.NewNothingSurface())

// Air returns the ambient medium material both tracer passes start a walk
// in, for callers (the render driver) that need to seed the initial medium.
func Air() material.Material {
	return air
}

// PhotonTracer performs the photon emission pass.
type PhotonTracer struct {
	Scene            *scene.Scene
	ClassicDirectOff bool // -nc: fold direct illumination into the photon estimate
}

// Trace walks a single emitted photon through the scene, bounded by
// MaxDepth bounces, and returns every surface hit that should be cached
// into the photon map.
func (t *PhotonTracer) Trace(photon optics.Photon, sampler *core.Sampler) []optics.Photon {
	var cached []optics.Photon
	medium := air
	ray := photon.Ray
	w := photon.Wavelength

	for bounce := 0; bounce < MaxDepth; bounce++ {
		hit, ok := t.Scene.Intersect(ray)
		if !ok {
			break
		}

		mat := hit.Object.Material
		if mat.Surface.StorePhoton() && (t.ClassicDirectOff || bounce >= 1) {
			cached = append(cached, optics.NewPhoton(w, core.NewRay(hit.Position, ray.Direction)))
		}

		other := mat
		if hit.Side == scene.Out {
			other = air
		}
		eta := other.IOR.Band(w) / medium.IOR.Band(w)

		res := mat.Surface.NextDirection(sampler, eta, hit.Normal, ray.Direction, w)
		if res.Absorbed {
			break
		}

		ray = core.NewRay(hit.Position, res.Direction)
		if !res.Above {
			medium = other
		}
	}

	return cached
}
