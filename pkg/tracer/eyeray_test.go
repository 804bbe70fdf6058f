package tracer

import (
	"math"
	"testing"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/geometry"
	"github.com/lumenforge/ppmpa/pkg/light"
	"github.com/lumenforge/ppmpa/pkg/material"
	"github.com/lumenforge/ppmpa/pkg/optics"
	"github.com/lumenforge/ppmpa/pkg/photonmap"
	"github.com/lumenforge/ppmpa/pkg/physics"
	"github.com/lumenforge/ppmpa/pkg/scene"
)

func TestEyeTracerNoHitIsZero(t *testing.T) {
	sc := scene.NewScene(nil, nil)
	et := &EyeTracer{Scene: sc}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	got := et.Trace(ray, 0, air, core.NewSampler(1))
	if got != (physics.Radiance{}) {
		t.Errorf("expected zero radiance on miss, got %v", got)
	}
}

func TestEyeTracerDirectLightingOnLitFloor(t *testing.T) {
	floor := diffuseFloor()
	pointLight := light.NewPointLight(physics.NewColor(1, 1, 1), 20, core.NewVec3(0, 5, 0))
	sc := scene.NewScene([]*scene.Object{floor}, []light.Light{pointLight})

	et := &EyeTracer{Scene: sc, ClassicDirect: true}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	got := et.Trace(ray, 0, air, core.NewSampler(1))
	if got.R <= 0 {
		t.Errorf("expected positive radiance under a lit floor, got %v", got)
	}
}

func TestEyeTracerRespectsMaxDepth(t *testing.T) {
	mirror := material.NewMaterial(physics.Radiance{}, physics.Color{}, physics.NewColor(1, 1, 1),
		material.NewSimpleSurface(physics.Color{}, physics.NewColor(0.95, 0.95, 0.95), 0, 1, 0))
	a := scene.NewObject(geometry.NewPlane(core.NewVec3(0, 0, 1), 5), mirror)
	b := scene.NewObject(geometry.NewPlane(core.NewVec3(0, 0, -1), 5), mirror)
	sc := scene.NewScene([]*scene.Object{a, b}, nil)

	et := &EyeTracer{Scene: sc}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	got := et.Trace(ray, 0, air, core.NewSampler(3))
	if math.IsNaN(got.R) || math.IsInf(got.R, 0) {
		t.Errorf("expected finite radiance from bounded mirror recursion, got %v", got)
	}
}

func TestEyeTracerAddsPhotonMapEstimate(t *testing.T) {
	floor := diffuseFloor()
	sc := scene.NewScene([]*scene.Object{floor}, nil)

	hitPoint := core.NewVec3(0, 0, 0)
	photons := []optics.Photon{
		optics.NewPhoton(physics.Red, core.NewRay(hitPoint, core.NewVec3(0, -1, 0))),
	}
	pm := photonmap.Build(photons, 1.0, len(photons))

	withMap := &EyeTracer{Scene: sc, Map: pm, RadiusSq: 1.0, Filter: photonmap.FilterNone}
	withoutMap := &EyeTracer{Scene: sc}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	got := withMap.Trace(ray, 0, air, core.NewSampler(1))
	baseline := withoutMap.Trace(ray, 0, air, core.NewSampler(1))
	if got.R <= baseline.R {
		t.Errorf("expected photon-map estimate to add radiance: got %v, baseline %v", got, baseline)
	}
}
