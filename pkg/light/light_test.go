package light

import (
	"math"
	"testing"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/physics"
)

func TestPointLightRadiance(t *testing.T) {
	l := NewPointLight(physics.NewColor(1, 1, 1), 10, core.NewVec3(0, 5, 0))
	point := core.NewVec3(0, 0, 0)

	samples := l.Samples(point)
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}

	want := 10.0 / (4 * math.Pi * 25)
	got := l.Radiance(samples)
	if math.Abs(got.R-want) > 1e-9 {
		t.Errorf("radiance.R = %v, want %v", got.R, want)
	}
}

func TestParallelogramLightBackfaceCulled(t *testing.T) {
	// Light faces +Y; a point below the light (on the back side) should
	// see zero surviving samples.
	l := NewParallelogramLight(physics.NewColor(1, 1, 1), 5,
		core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))

	behind := core.NewVec3(0.5, -1, 0.5)
	if samples := l.Samples(behind); len(samples) != 0 {
		t.Errorf("expected all samples culled from behind the light, got %d", len(samples))
	}

	front := core.NewVec3(0.5, 2, 0.5)
	samples := l.Samples(front)
	if len(samples) == 0 {
		t.Fatal("expected surviving samples in front of the light")
	}
	if len(samples) > 25 {
		t.Errorf("expected at most 25 samples, got %d", len(samples))
	}
}

func TestParallelogramLightGeneratePhotonAboveSurface(t *testing.T) {
	l := NewParallelogramLight(physics.NewColor(1, 1, 1), 5,
		core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	sampler := core.NewSampler(3)

	for i := 0; i < 200; i++ {
		p, ok := l.GeneratePhoton(sampler)
		if !ok {
			t.Fatal("expected parallelogram light to emit photons")
		}
		if p.Ray.Direction.Dot(l.Normal) < 0 {
			t.Fatalf("emitted direction %v should not oppose light normal %v", p.Ray.Direction, l.Normal)
		}
	}
}

func TestSunLightMissesOutsideWindow(t *testing.T) {
	l := NewSunLight(physics.NewColor(1, 1, 1), 3,
		core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, -1))

	inside := core.NewVec3(0.5, 0.5, -5)
	if samples := l.Samples(inside); len(samples) != 1 {
		t.Errorf("expected 1 sample within the sun window, got %d", len(samples))
	}

	outside := core.NewVec3(5, 5, -5)
	if samples := l.Samples(outside); len(samples) != 0 {
		t.Errorf("expected 0 samples outside the sun window, got %d", len(samples))
	}
}

func TestSunLightDoesNotEmitPhotons(t *testing.T) {
	l := NewSunLight(physics.NewColor(1, 1, 1), 3,
		core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, -1))
	if _, ok := l.GeneratePhoton(core.NewSampler(1)); ok {
		t.Error("sun light should not emit photons")
	}
}
