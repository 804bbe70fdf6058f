// Package photonmap implements the photon map: a 3D k-d tree bulk-loaded
// from the emitted photon list, queried by squared radius, and the
// density-estimate filter kernels (Cone, Gauss, None) used to turn a
// photon neighborhood into indirect radiance.
package photonmap

import (
	"sort"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/optics"
)

// leafThreshold is the leaf-size cutoff: small enough subtrees are stored
// flat rather than split further.
const leafThreshold = 8

type node struct {
	photons []optics.Photon // leaf: held directly; internal: nil
	axis    int
	split   float64
	left    *node
	right   *node
}

func axisValue(p core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func longestAxis(photons []optics.Photon) int {
	min := photons[0].Position()
	max := min
	for _, p := range photons[1:] {
		pos := p.Position()
		if pos.X < min.X {
			min.X = pos.X
		}
		if pos.Y < min.Y {
			min.Y = pos.Y
		}
		if pos.Z < min.Z {
			min.Z = pos.Z
		}
		if pos.X > max.X {
			max.X = pos.X
		}
		if pos.Y > max.Y {
			max.Y = pos.Y
		}
		if pos.Z > max.Z {
			max.Z = pos.Z
		}
	}
	dx, dy, dz := max.X-min.X, max.Y-min.Y, max.Z-min.Z
	if dx >= dy && dx >= dz {
		return 0
	}
	if dy >= dz {
		return 1
	}
	return 2
}

// build recursively splits photons on the median of the longest axis.
func build(photons []optics.Photon) *node {
	if len(photons) <= leafThreshold {
		return &node{photons: photons}
	}

	axis := longestAxis(photons)
	sort.Slice(photons, func(i, j int) bool {
		return axisValue(photons[i].Position(), axis) < axisValue(photons[j].Position(), axis)
	})

	mid := len(photons) / 2
	split := axisValue(photons[mid].Position(), axis)

	return &node{
		axis:  axis,
		split: split,
		left:  build(photons[:mid]),
		right: build(photons[mid:]),
	}
}

// queryRadius appends every photon within radiusSq of query to out.
func (n *node) queryRadius(query core.Vec3, radiusSq float64, out *[]optics.Photon) {
	if n == nil {
		return
	}
	if n.photons != nil {
		for _, p := range n.photons {
			if p.Position().Subtract(query).LengthSquared() <= radiusSq {
				*out = append(*out, p)
			}
		}
		return
	}

	d := axisValue(query, n.axis) - n.split
	if d <= 0 {
		n.left.queryRadius(query, radiusSq, out)
		if d*d <= radiusSq {
			n.right.queryRadius(query, radiusSq, out)
		}
	} else {
		n.right.queryRadius(query, radiusSq, out)
		if d*d <= radiusSq {
			n.left.queryRadius(query, radiusSq, out)
		}
	}
}
