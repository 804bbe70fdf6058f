package camera

import (
	"math"
	"testing"

	"github.com/lumenforge/ppmpa/pkg/core"
)

func basicConfig() Config {
	return Config{
		Eye:         core.NewVec3(0, 0, -5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       100,
		Height:      100,
		FocalLength: 50,
		FNumber:     8,
		FocusDist:   5,
	}
}

func TestNewCameraRejectsCoincidentEyeAndLookAt(t *testing.T) {
	cfg := basicConfig()
	cfg.LookAt = cfg.Eye
	if _, err := NewCamera(cfg); err == nil {
		t.Error("expected an error when eye and look-at coincide")
	}
}

func TestNewCameraRejectsParallelUp(t *testing.T) {
	cfg := basicConfig()
	cfg.Up = core.NewVec3(0, 0, 1) // parallel to the view direction (0,0,1)
	if _, err := NewCamera(cfg); err == nil {
		t.Error("expected an error when up is parallel to the view direction")
	}
}

func TestGetRayCenterPixelPointsForward(t *testing.T) {
	cfg := basicConfig()
	cam, err := NewCamera(cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	ray := cam.GetRay(cfg.Width/2, cfg.Height/2, core.NewSampler(1))
	if math.Abs(ray.Direction.Length()-1) > 1e-9 {
		t.Errorf("expected a unit-length ray direction, got length %v", ray.Direction.Length())
	}
	if ray.Direction.Z < 0.99 {
		t.Errorf("expected the center pixel ray to point nearly straight at +Z, got %v", ray.Direction)
	}
}

func TestGetRayWithoutAntialiasIsDeterministic(t *testing.T) {
	cfg := basicConfig()
	cam, err := NewCamera(cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	a := cam.GetRay(10, 10, core.NewSampler(1))
	b := cam.GetRay(10, 10, core.NewSampler(2))
	if a.Direction != b.Direction {
		t.Errorf("expected identical rays for the same pixel with antialias off, got %v and %v", a, b)
	}
}

func TestGetRayWithAntialiasVaries(t *testing.T) {
	cfg := basicConfig()
	cfg.Antialias = true
	cam, err := NewCamera(cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	a := cam.GetRay(10, 10, core.NewSampler(1))
	b := cam.GetRay(10, 10, core.NewSampler(2))
	if a.Direction == b.Direction {
		t.Error("expected antialias jitter to vary the ray direction across samplers")
	}
}

func TestGetRayWithBlurVariesOrigin(t *testing.T) {
	cfg := basicConfig()
	cfg.Blur = true
	cam, err := NewCamera(cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	a := cam.GetRay(10, 10, core.NewSampler(1))
	b := cam.GetRay(10, 10, core.NewSampler(2))
	if a.Origin == b.Origin {
		t.Error("expected lens blur to vary the ray origin across samplers")
	}
}
