package scene

import (
	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/light"
)

// Scene is the fully resolved, read-only collection of objects and lights
// a render pass draws from. Construction (from a scene file) happens in
// pkg/loaders; the core only ever sees this immutable, already-built form.
type Scene struct {
	Objects []*Object
	Lights  []light.Light
}

// NewScene builds a Scene from its objects and lights.
func NewScene(objects []*Object, lights []light.Light) *Scene {
	return &Scene{Objects: objects, Lights: lights}
}

// Intersect finds the nearest hit along ray among this scene's objects.
func (s *Scene) Intersect(ray core.Ray) (Intersection, bool) {
	return Intersect(s.Objects, ray)
}
