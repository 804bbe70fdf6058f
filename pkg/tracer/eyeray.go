package tracer

import (
	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/light"
	"github.com/lumenforge/ppmpa/pkg/material"
	"github.com/lumenforge/ppmpa/pkg/photonmap"
	"github.com/lumenforge/ppmpa/pkg/physics"
	"github.com/lumenforge/ppmpa/pkg/scene"
)

// shadowTolerance is the squared-distance slack a shadow-ray hit is
// allowed before it's considered to have struck the light itself rather
// than an occluder.
const shadowTolerance = 0.002

// EyeTracer performs the eye-ray pass: direct lighting (optional),
// photon-map indirect estimation, and specular/transmitted recursion.
type EyeTracer struct {
	Scene         *scene.Scene
	Map           *photonmap.Map
	RadiusSq      float64
	Filter        photonmap.Filter
	ClassicDirect bool // off folds direct illumination into the photon estimate instead
}

// Trace returns the radiance arriving back along ray, recursing up to
// MaxDepth bounces.
func (t *EyeTracer) Trace(ray core.Ray, depth int, medium material.Material, sampler *core.Sampler) physics.Radiance {
	if depth >= MaxDepth {
		return physics.Radiance{}
	}

	hit, ok := t.Scene.Intersect(ray)
	if !ok {
		return physics.Radiance{}
	}

	mat := hit.Object.Material
	n := hit.Normal

	other := mat
	if hit.Side == scene.Out {
		other = air
	}

	refr := physics.Refract(ray.Direction, n, other.AverageIOR()/medium.AverageIOR())
	cos1 := refr.CosIn

	ld := t.directRadiance(hit, n)
	if t.Map != nil {
		ld = ld.Add(t.Map.Estimate(hit.Position, n, t.RadiusSq, t.Filter))
	}

	var ls, lt physics.Radiance
	if mat.Surface.Reflect(cos1) {
		mirror := physics.Reflect(ray.Direction, n)
		glossy := material.GlossyReflect(sampler, n, mirror, mat.Surface.DensityPow)
		ls = t.Trace(core.NewRay(hit.Position, glossy), depth+1, medium, sampler)
	}
	if mat.Surface.Refract(cos1) && !refr.TIR {
		lt = t.Trace(core.NewRay(hit.Position, refr.Direction), depth+1, other, sampler)
	}

	f := mat.Fresnel(cos1)
	out := mat.Surface.BSDF(f, ld, ls, lt)
	return out.Add(mat.EmittanceTerm())
}

// directRadiance sums get_radiance_from_light over every light, gated by
// classic-direct and a per-sample shadow-ray visibility test. Each visible
// sample is weighted by cos^2 of its angle to the surface normal; samples
// below the surface contribute nothing.
func (t *EyeTracer) directRadiance(hit scene.Intersection, n core.Vec3) physics.Radiance {
	if !t.ClassicDirect {
		return physics.Radiance{}
	}

	total := physics.Radiance{}
	origin := hit.Position.Add(n.Multiply(1e-4))

	for _, lt := range t.Scene.Lights {
		for _, s := range lt.Samples(hit.Position) {
			cos := n.Dot(s.Direction)
			if cos <= 0 || !t.visible(origin, s) {
				continue
			}
			total = total.Add(lt.Radiance([]light.Sample{s}).Multiply(cos * cos))
		}
	}

	return total
}

func (t *EyeTracer) visible(origin core.Vec3, s light.Sample) bool {
	ray := core.NewRay(origin, s.Direction)
	hit, ok := t.Scene.Intersect(ray)
	if !ok {
		return true
	}
	d2 := hit.Position.Subtract(origin).LengthSquared()
	diff := d2 - s.DistSq
	if diff < 0 {
		diff = -diff
	}
	return diff <= shadowTolerance
}
