package scene

import (
	"math"
	"testing"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/geometry"
	"github.com/lumenforge/ppmpa/pkg/material"
	"github.com/lumenforge/ppmpa/pkg/physics"
)

func plainObject(shape geometry.Shape) *Object {
	surface := material.NewSimpleSurface(physics.NewColor(0.8, 0.8, 0.8), physics.Color{}, 1.0, 0, 1.0)
	return NewObject(shape, material.NewMaterial(physics.Radiance{}, physics.Color{}, physics.NewColor(1, 1, 1), surface))
}

func TestIntersectSphereHit(t *testing.T) {
	objects := []*Object{plainObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1))}
	ray := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1))

	hit, ok := Intersect(objects, ray)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.Distance-2) > 1e-9 {
		t.Errorf("distance = %v, want 2", hit.Distance)
	}
	want := core.NewVec3(0, 0, -1)
	if hit.Position.Subtract(want).Length() > 1e-9 {
		t.Errorf("position = %v, want %v", hit.Position, want)
	}
	if hit.Normal.Subtract(want).Length() > 1e-9 {
		t.Errorf("normal = %v, want %v", hit.Normal, want)
	}
	if hit.Side != In {
		t.Errorf("side = %v, want In", hit.Side)
	}
}

func TestIntersectPlaneMiss(t *testing.T) {
	objects := []*Object{plainObject(geometry.NewPlane(core.NewVec3(0, 1, 0), 0))}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	if _, ok := Intersect(objects, ray); ok {
		t.Error("expected no hit for ray pointing away from plane")
	}
}

func TestIntersectTakesNearest(t *testing.T) {
	near := plainObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1))
	far := plainObject(geometry.NewSphere(core.NewVec3(0, 0, 10), 1))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	hit, ok := Intersect([]*Object{far, near}, ray)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Object != near {
		t.Error("expected nearest object to win regardless of list order")
	}
}

func TestIntersectFlipsNormalWhenExiting(t *testing.T) {
	objects := []*Object{plainObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1))}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, ok := Intersect(objects, ray)
	if !ok {
		t.Fatal("expected hit from inside the sphere")
	}
	if hit.Side != Out {
		t.Errorf("side = %v, want Out", hit.Side)
	}
	if hit.Normal.Dot(ray.Direction) >= 0 {
		t.Errorf("normal %v should oppose ray direction %v", hit.Normal, ray.Direction)
	}
}
