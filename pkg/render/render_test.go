package render

import (
	"testing"

	"github.com/lumenforge/ppmpa/pkg/camera"
	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/geometry"
	"github.com/lumenforge/ppmpa/pkg/light"
	"github.com/lumenforge/ppmpa/pkg/material"
	"github.com/lumenforge/ppmpa/pkg/photonmap"
	"github.com/lumenforge/ppmpa/pkg/physics"
	"github.com/lumenforge/ppmpa/pkg/scene"
)

func testScene() *scene.Scene {
	surface := material.NewSimpleSurface(physics.NewColor(0.8, 0.8, 0.8), physics.Color{}, 1.0, 0, 1.0)
	mat := material.NewMaterial(physics.Radiance{}, physics.Color{}, physics.NewColor(1, 1, 1), surface)
	floor := scene.NewObject(geometry.NewPlane(core.NewVec3(0, 1, 0), 0), mat)
	pointLight := light.NewPointLight(physics.NewColor(1, 1, 1), 20, core.NewVec3(0, 5, 0))
	return scene.NewScene([]*scene.Object{floor}, []light.Light{pointLight})
}

func TestEmitPhotonsProducesCachedHits(t *testing.T) {
	sc := testScene()
	photons, power := EmitPhotons(sc, Options{NumPhotons: 200, NumWorkers: 2, Seed: 1, ClassicDirect: false})
	if len(photons) == 0 {
		t.Error("expected at least one cached photon from a diffuse floor under a point light")
	}
	if power <= 0 {
		t.Errorf("expected positive per-photon power, got %v", power)
	}
}

func TestEmitPhotonsWithNoLightsProducesNothing(t *testing.T) {
	sc := scene.NewScene(nil, nil)
	photons, power := EmitPhotons(sc, Options{NumPhotons: 50, NumWorkers: 2, Seed: 1})
	if len(photons) != 0 {
		t.Errorf("expected no photons with no lights in the scene, got %d", len(photons))
	}
	if power != 0 {
		t.Errorf("expected zero power with no lights, got %v", power)
	}
}

func TestRenderImageProducesRasterOrderedImage(t *testing.T) {
	sc := testScene()
	photons, power := EmitPhotons(sc, Options{NumPhotons: 500, NumWorkers: 2, Seed: 1, ClassicDirect: false})
	pm := photonmap.Build(photons, power, 500)

	cam, err := camera.NewCamera(camera.Config{
		Eye: core.NewVec3(0, 2, -5), LookAt: core.NewVec3(0, 0, 0), Up: core.NewVec3(0, 1, 0),
		Width: 8, Height: 8, FocalLength: 50, FNumber: 8, FocusDist: 5,
	})
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	img := RenderImage(sc, cam, pm, 8, 8, Options{RadiusSq: 0.25, Filter: photonmap.FilterCone, NumWorkers: 2, Seed: 2})
	if len(img) != 8 || len(img[0]) != 8 {
		t.Fatalf("expected an 8x8 image, got %dx%d", len(img), len(img[0]))
	}
}
