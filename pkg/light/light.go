// Package light implements the tagged-variant Light model: point, area
// (parallelogram), and directional (sun) emitters, their photon emission,
// and their direct-illumination sampling toward a shading point.
package light

import (
	"math"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/geometry"
	"github.com/lumenforge/ppmpa/pkg/optics"
	"github.com/lumenforge/ppmpa/pkg/physics"
)

// Kind tags which Light variant a value holds.
type Kind int

const (
	KindPoint Kind = iota
	KindParallelogram
	KindSun
)

// stratumOffsets are the five fixed parametric offsets used by the area
// light's 5x5 stratified sampling grid.
var stratumOffsets = [5]float64{0.1, 0.3, 0.5, 0.7, 0.9}

// stratumDelta is the stratum width (1/5 of the unit parametric square).
const stratumDelta = 0.2

// Light is a closed tagged variant over the emitter kinds spec.md §3
// lists. Only the fields relevant to Kind are meaningful.
type Light struct {
	Kind Kind

	Color physics.Color
	Flux  float64
	Pos   core.Vec3

	// Parallelogram, Sun
	Normal core.Vec3
	D1, D2 core.Vec3

	// Sun
	Dir core.Vec3
}

// NewPointLight creates a point light.
func NewPointLight(color physics.Color, flux float64, pos core.Vec3) Light {
	return Light{Kind: KindPoint, Color: color, Flux: flux, Pos: pos}
}

// NewParallelogramLight creates a parallelogram area light spanned by
// pos, pos+d1, pos+d2, pos+d1+d2 with outward normal n.
func NewParallelogramLight(color physics.Color, flux float64, pos, n, d1, d2 core.Vec3) Light {
	return Light{Kind: KindParallelogram, Color: color, Flux: flux, Pos: pos, Normal: n, D1: d1, D2: d2}
}

// NewSunLight creates a directional light that only illuminates points
// that, cast along -dir, fall within the parallelogram window (pos, d1,
// d2).
func NewSunLight(color physics.Color, flux float64, pos, n, d1, d2, dir core.Vec3) Light {
	return Light{Kind: KindSun, Color: color, Flux: flux, Pos: pos, Normal: n, D1: d1, D2: d2, Dir: dir}
}

// FluxValue returns the light's total emitted power.
func (l Light) FluxValue() float64 {
	return l.Flux
}

// Sample is one candidate direct-illumination sample: a direction and
// point on the light as seen from a shading point, plus the squared
// distance between them (used both for the shadow-ray visibility test's
// tolerance and for falloff).
type Sample struct {
	Direction core.Vec3
	Point     core.Vec3
	DistSq    float64
}

// Samples returns the candidate directions from point toward this light,
// pre-filtered by any back-face test the light variant defines. Point: a
// single sample. Parallelogram: up to 25 stratified samples. Sun: zero or
// one sample, depending on whether the point falls in the light's window.
func (l Light) Samples(point core.Vec3) []Sample {
	switch l.Kind {
	case KindPoint:
		d := l.Pos.Subtract(point)
		return []Sample{{Direction: unit(d), Point: l.Pos, DistSq: d.LengthSquared()}}

	case KindParallelogram:
		samples := make([]Sample, 0, 25)
		for _, su := range stratumOffsets {
			for _, sv := range stratumOffsets {
				p := l.Pos.Add(l.D1.Multiply(su)).Add(l.D2.Multiply(sv))
				d := p.Subtract(point)
				dir := unit(d)
				if l.Normal.Dot(dir) >= 0 {
					continue // light's back face: not visible from point
				}
				samples = append(samples, Sample{Direction: dir, Point: p, DistSq: d.LengthSquared()})
			}
		}
		return samples

	case KindSun:
		dir := l.Dir.Negate() // direction from point toward the sun
		ray := core.NewRay(point, dir)
		shape := geometry.NewParallelogram(l.Pos, l.D1, l.D2)
		if ts := shape.DistancesAlong(ray); len(ts) > 0 && ts[0] > 0 {
			return []Sample{{Direction: dir, Point: point.Add(dir.Multiply(ts[0])), DistSq: ts[0] * ts[0]}}
		}
		return nil

	default:
		return nil
	}
}

// Radiance sums the direct-illumination contribution of the given
// (already visibility-tested) samples. Point: flux/(4*pi*d^2). Area:
// 2*flux*delta^2/(4*pi*d^2) per surviving stratum, delta=0.2 the stratum
// width. Sun: flux*color per sample (at most one).
func (l Light) Radiance(samples []Sample) physics.Radiance {
	switch l.Kind {
	case KindPoint:
		total := physics.Radiance{}
		for _, s := range samples {
			total = total.Add(physics.FromColor(l.Color).Multiply(l.Flux / (4 * math.Pi * s.DistSq)))
		}
		return total

	case KindParallelogram:
		total := physics.Radiance{}
		for _, s := range samples {
			contrib := 2 * l.Flux * stratumDelta * stratumDelta / (4 * math.Pi * s.DistSq)
			total = total.Add(physics.FromColor(l.Color).Multiply(contrib))
		}
		return total

	case KindSun:
		if len(samples) == 0 {
			return physics.Radiance{}
		}
		return physics.FromColor(l.Color).Multiply(l.Flux)

	default:
		return physics.Radiance{}
	}
}

// GeneratePhoton emits one photon from this light: a wavelength sampled
// from the light's color treated as a PMF, an origin on the light's
// surface, and an outgoing direction of propagation. Point: origin at the
// point, uniform random direction. Parallelogram: origin uniform over the
// parallelogram, uniformly random direction over the emissive hemisphere
// (sample a random direction, flip if it opposes the normal). Sun is not
// a photon-emitting light in this model (it models illumination only) and
// returns the zero value with ok=false.
func (l Light) GeneratePhoton(sampler *core.Sampler) (optics.Photon, bool) {
	w := l.Color.DecideWavelength(sampler.Get1D())

	switch l.Kind {
	case KindPoint:
		dir := sampler.GenerateRandomDir()
		return optics.NewPhoton(w, core.NewRay(l.Pos, dir)), true

	case KindParallelogram:
		u, v := sampler.Get2D()
		origin := l.Pos.Add(l.D1.Multiply(u)).Add(l.D2.Multiply(v))
		dir := sampler.RandomDirAbove(l.Normal)
		return optics.NewPhoton(w, core.NewRay(origin, dir)), true

	default:
		return optics.Photon{}, false
	}
}

func unit(v core.Vec3) core.Vec3 {
	u, ok := v.Normalize()
	if !ok {
		return core.Vec3{}
	}
	return u
}
