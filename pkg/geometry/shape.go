// Package geometry implements the scene's shape primitives and ray-shape
// intersection; the linear-list scene intersection built on it lives in
// pkg/scene.
//
// Shapes are a closed tagged union rather than a set of types behind a
// polymorphic interface (spec design note: this keeps the inner loop free
// of virtual-call dispatch and keeps shape data compact) — Kind selects
// which of the variant-specific fields are meaningful.
package geometry

import (
	"math"

	"github.com/lumenforge/ppmpa/pkg/core"
)

// Kind tags which shape variant a Shape value holds.
type Kind int

const (
	KindPoint Kind = iota
	KindPlane
	KindSphere
	KindPolygon
	KindParallelogram
)

// Epsilon is the "nearly zero" constant spec.md uses to reject
// self-intersections: ray distances at or below it are discarded.
const Epsilon = 1e-4

// Shape is a closed tagged variant over the primitives spec.md §3 lists.
// Only the fields relevant to Kind are meaningful.
type Shape struct {
	Kind Kind

	// Point
	Point core.Vec3

	// Plane: { p : p·Normal = Distance }
	Normal   core.Vec3
	Distance float64

	// Sphere
	Center core.Vec3
	Radius float64

	// Polygon / Parallelogram, spanned by Origin + u*D1 + v*D2
	Origin core.Vec3
	D1, D2 core.Vec3
	// normal is precomputed from D1 x D2 at construction time for Polygon
	// and Parallelogram, per spec.md §3.
	normal core.Vec3
}

// NewPointShape creates a degenerate point "shape", used by point lights
// that need a Shape wrapper but never participate in ray intersection.
func NewPointShape(p core.Vec3) Shape {
	return Shape{Kind: KindPoint, Point: p}
}

// NewPlane creates an infinite plane { p : p·normal = distance }. normal
// must already be a unit vector.
func NewPlane(normal core.Vec3, distance float64) Shape {
	return Shape{Kind: KindPlane, Normal: normal, Distance: distance}
}

// NewSphere creates a sphere of the given center and radius.
func NewSphere(center core.Vec3, radius float64) Shape {
	return Shape{Kind: KindSphere, Center: center, Radius: radius}
}

// NewPolygon creates a triangle spanned by origin, origin+d1, origin+d2.
// The normal is precomputed from d1 x d2.
func NewPolygon(origin, d1, d2 core.Vec3) Shape {
	n, _ := d1.Cross(d2).Normalize()
	return Shape{Kind: KindPolygon, Origin: origin, D1: d1, D2: d2, normal: n}
}

// NewParallelogram creates a parallelogram spanned by origin, origin+d1,
// origin+d2, origin+d1+d2. The normal is precomputed from d1 x d2.
func NewParallelogram(origin, d1, d2 core.Vec3) Shape {
	n, _ := d1.Cross(d2).Normalize()
	return Shape{Kind: KindParallelogram, Origin: origin, D1: d1, D2: d2, normal: n}
}

// PlaneNormal returns the precomputed normal for Polygon/Parallelogram
// shapes (meaningless for other kinds).
func (s Shape) PlaneNormal() core.Vec3 {
	return s.normal
}

// DistancesAlong returns every ray parameter t at which the ray crosses the
// shape's boundary, in ascending order, empty if the ray misses. Plane,
// Polygon and Parallelogram return at most one root (empty for a grazing
// or missed ray); Sphere returns zero, one (tangent) or two roots.
func (s Shape) DistancesAlong(ray core.Ray) []float64 {
	switch s.Kind {
	case KindPlane:
		return planeDistances(ray, s.Normal, s.Distance)
	case KindSphere:
		return sphereDistances(ray, s.Center, s.Radius)
	case KindPolygon:
		if t, ok := mollerTrumbore(ray, s.Origin, s.D1, s.D2, 1.0); ok {
			return []float64{t}
		}
		return nil
	case KindParallelogram:
		if t, ok := mollerTrumbore(ray, s.Origin, s.D1, s.D2, 2.0); ok {
			return []float64{t}
		}
		return nil
	default:
		return nil
	}
}

// NormalAt returns the outward-facing surface normal at point p, which is
// assumed to lie on the shape.
func (s Shape) NormalAt(p core.Vec3) core.Vec3 {
	switch s.Kind {
	case KindPlane:
		return s.Normal
	case KindSphere:
		n, ok := p.Subtract(s.Center).Normalize()
		if !ok {
			return core.NewVec3(0, 1, 0) // degenerate: point at the center
		}
		return n
	case KindPolygon, KindParallelogram:
		return s.normal
	default:
		return core.Vec3{}
	}
}

func planeDistances(ray core.Ray, normal core.Vec3, distance float64) []float64 {
	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) < 1e-12 {
		return nil
	}
	t := (distance - ray.Origin.Dot(normal)) / denom
	return []float64{t}
}

func sphereDistances(ray core.Ray, center core.Vec3, radius float64) []float64 {
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil
	}
	if discriminant == 0 {
		return []float64{-halfB / a}
	}
	sqrtD := math.Sqrt(discriminant)
	t1 := (-halfB - sqrtD) / a
	t2 := (-halfB + sqrtD) / a
	return []float64{t1, t2}
}

// mollerTrumbore implements the ray/parallelogram-plane test over the
// region spanned by origin + u*d1 + v*d2, u,v in [0,1], bounded further by
// u+v<=uvMax: uvMax=1 restricts to the triangle half (Polygon), uvMax=2
// leaves the full parallelogram unrestricted since u,v already cap at 1
// each. This mirrors method_moller in the original ray tracer's geometry
// module, which checks u<0||u>1, v<0||v>1 and u+v>l as one joint rejection
// rather than special-casing the triangle.
func mollerTrumbore(ray core.Ray, origin, d1, d2 core.Vec3, uvMax float64) (float64, bool) {
	const epsilon = 1e-8

	h := ray.Direction.Cross(d2)
	a := d1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false // ray parallel to the plane
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(origin)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(d1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || v > 1 || u+v > uvMax {
		return 0, false
	}

	t := f * d2.Dot(q)
	return t, true
}
