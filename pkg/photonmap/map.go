package photonmap

import (
	"math"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/optics"
	"github.com/lumenforge/ppmpa/pkg/physics"
)

// Map is the immutable, bulk-loaded photon map: a k-d tree over photon
// positions plus the per-photon power (total emitted flux / photon
// count) and the sample budget it was built from.
type Map struct {
	root    *node
	power   float64
	nSample int
}

// Build bulk-loads a Map from the emitted photon list and the sample
// budget (photon count) that flux was divided across to get power.
func Build(photons []optics.Photon, power float64, nSample int) *Map {
	photonsCopy := make([]optics.Photon, len(photons))
	copy(photonsCopy, photons)
	return &Map{root: build(photonsCopy), power: power, nSample: nSample}
}

// Power returns the per-photon power this map was built with.
func (m *Map) Power() float64 {
	return m.power
}

// NSample returns the sample budget (photon count) this map was built
// from.
func (m *Map) NSample() int {
	return m.nSample
}

// Query returns every stored photon within radiusSq of the query point.
func (m *Map) Query(point core.Vec3, radiusSq float64) []optics.Photon {
	var out []optics.Photon
	m.root.queryRadius(point, radiusSq, &out)
	return out
}

// Filter is a density-estimate kernel weighting a photon's contribution
// by its squared distance from the query point relative to the query
// radius.
type Filter int

const (
	// FilterNone applies no distance weighting.
	FilterNone Filter = iota
	// FilterCone applies the k=1.1 cone filter.
	FilterCone
	// FilterGauss applies the alpha=0.918, beta=1.953 Gaussian filter.
	FilterGauss
)

const (
	coneK     = 1.1
	gaussAlph = 0.918
	gaussBeta = 1.953
)

// weight returns the filter's weight for a photon at squared distance d
// from the query point, within squared query radius r2.
func (f Filter) weight(d, r2 float64) float64 {
	switch f {
	case FilterCone:
		dist := math.Sqrt(d / r2)
		if dist >= coneK {
			return 0
		}
		return (1 - dist/coneK) / (1 - 2/(3*coneK))
	case FilterGauss:
		eR := 1 - math.Exp(-gaussBeta*d/(2*r2))
		eBeta := 1 - math.Exp(-gaussBeta)
		if eR > eBeta {
			return 0
		}
		return gaussAlph*(1-eR/eBeta) + 0.5
	default:
		return 1
	}
}

// Estimate computes the indirect radiance at an intersection with surface
// normal n within squared radius r2, using the given filter kernel. Each
// stored photon within r2 contributes photon.ToRadiance(n, weight*power);
// the sum is divided by r2 (the implicit pi from the disc area cancels
// against the caller's 1/pi BSDF factor).
func (m *Map) Estimate(point, n core.Vec3, r2 float64, filter Filter) physics.Radiance {
	photons := m.Query(point, r2)

	total := physics.Radiance{}
	for _, p := range photons {
		d := p.Position().Subtract(point).LengthSquared()
		w := filter.weight(d, r2)
		if w <= 0 {
			continue
		}
		total = total.Add(p.ToRadiance(n, w*m.power))
	}

	return total.Multiply(1 / r2)
}
