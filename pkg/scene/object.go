// Package scene composes shapes, materials, and lights into a renderable
// scene, and implements the linear-list scene intersection shared by the
// photon tracer and the eye-ray tracer.
package scene

import (
	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/geometry"
	"github.com/lumenforge/ppmpa/pkg/material"
)

// Object pairs a shape with the material it's made of.
type Object struct {
	Shape    geometry.Shape
	Material material.Material
}

// NewObject creates an Object.
func NewObject(shape geometry.Shape, mat material.Material) *Object {
	return &Object{Shape: shape, Material: mat}
}

// Side records which side of a shape's geometric normal a ray arrived
// from.
type Side int

const (
	// In means the ray struck the front of the geometric normal.
	In Side = iota
	// Out means the ray struck the back of the geometric normal (it was
	// already inside the volume the shape bounds, e.g. exiting a sphere).
	Out
)

// Intersection is the result of a successful scene intersection: the hit
// position, the surface normal oriented against the incoming ray, the
// object hit, and which side of the geometric normal the ray arrived from.
type Intersection struct {
	Position core.Vec3
	Normal   core.Vec3
	Object   *Object
	Side     Side
	Distance float64
}

// Intersect walks the linear object list, gathers every (t, object) pair
// with t > geometry.Epsilon, and returns the nearest one. The returned
// normal is flipped to face against the ray, with Side recording which way
// the flip went, so callers can treat cosines uniformly downstream.
func Intersect(objects []*Object, ray core.Ray) (Intersection, bool) {
	bestT := 0.0
	var bestObj *Object
	found := false

	for _, obj := range objects {
		for _, t := range obj.Shape.DistancesAlong(ray) {
			if t <= geometry.Epsilon {
				continue
			}
			if !found || t < bestT {
				bestT = t
				bestObj = obj
				found = true
			}
		}
	}

	if !found {
		return Intersection{}, false
	}

	pos := ray.At(bestT)
	normal := bestObj.Shape.NormalAt(pos)

	side := In
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
		side = Out
	}

	return Intersection{
		Position: pos,
		Normal:   normal,
		Object:   bestObj,
		Side:     side,
		Distance: bestT,
	}, true
}
