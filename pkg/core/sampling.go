package core

import "math/rand"

// Sampler is the thread-local random source threaded through every
// stochastic call site: photon emission, Russian-roulette draws, glossy
// lobe sampling, camera jitter and depth-of-field offsets. Wrapping
// *rand.Rand behind a named type keeps a render reproducible from a single
// seed even once rendering is parallelized across workers (spec §9,
// "Random state": thread-local PRNG, seed from a deterministic source when
// reproducibility is required).
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler seeded deterministically.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Get1D returns a uniform float64 in [0, 1).
func (s *Sampler) Get1D() float64 {
	return s.rng.Float64()
}

// Get2D returns a pair of independent uniform floats in [0, 1).
func (s *Sampler) Get2D() (float64, float64) {
	return s.rng.Float64(), s.rng.Float64()
}

// Get3D returns a vector whose components are independent uniform floats in
// [-1, 1), suitable as raw input to rejection sampling.
func (s *Sampler) Get3D() Vec3 {
	return Vec3{
		X: s.rng.Float64()*2 - 1,
		Y: s.rng.Float64()*2 - 1,
		Z: s.rng.Float64()*2 - 1,
	}
}

// GenerateRandomDir uniformly samples a point inside the unit ball by
// rejection and returns its normalized direction. Rejection sampling this
// way (rather than sampling angles directly) yields a direction uniformly
// distributed over the unit sphere's surface.
func (s *Sampler) GenerateRandomDir() Vec3 {
	for {
		p := s.Get3D()
		if p.LengthSquared() >= 1 {
			continue
		}
		if dir, ok := p.Normalize(); ok {
			return dir
		}
	}
}

// RandomDirAbove samples a uniformly random direction and flips it if it
// opposes the given normal, so the result always lies in the normal's
// hemisphere. This mirrors the cosine-agnostic "random on hemisphere"
// variant used by the source rather than a cosine-weighted sampler.
func (s *Sampler) RandomDirAbove(normal Vec3) Vec3 {
	dir := s.GenerateRandomDir()
	if dir.Dot(normal) < 0 {
		return dir.Negate()
	}
	return dir
}
