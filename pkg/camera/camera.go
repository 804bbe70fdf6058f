// Package camera implements ray generation from a thin-lens/pinhole model
// and the PNM image writer the render driver hands finished radiance to.
package camera

import (
	"fmt"

	"github.com/lumenforge/ppmpa/pkg/core"
)

// Config holds the parameters a camera is built from (typically parsed
// from a YAML camera file by pkg/loaders).
type Config struct {
	Eye    core.Vec3
	LookAt core.Vec3
	Up     core.Vec3

	Width  int
	Height int

	// FocalLength, FNumber, FocusDist and SensorSize are scene-unit
	// scalars, not physical millimeters, even though they follow the
	// naming of a real lens (sensor size 35mm is the conventional default
	// when SensorSize is left zero).
	FocalLength float64
	FNumber     float64
	FocusDist   float64
	SensorSize  float64

	Blur      bool // enables the thin-lens depth-of-field offset
	Antialias bool // enables per-pixel jitter
}

// Camera generates eye rays per spec §4.9's thin-lens + pinhole model:
// eye <- eyePos + blurOffset; target <- origin + (x+jx)*esx + (y+jy)*esy -
// blurOffset; ray <- (eye, normalize(target-eye)).
type Camera struct {
	eye           core.Vec3
	right, trueUp core.Vec3

	origin, esx, esy core.Vec3

	lensRadius float64
	blur       bool
	antialias  bool
}

// NewCamera derives a Camera's pixel and lens basis from cfg. It fails
// when eye and look-at coincide or up is parallel to the view direction,
// since no orthonormal basis exists in either case.
func NewCamera(cfg Config) (*Camera, error) {
	forward, ok := cfg.LookAt.Subtract(cfg.Eye).Normalize()
	if !ok {
		return nil, fmt.Errorf("camera: eye and look-at must not coincide")
	}
	right, ok := forward.Cross(cfg.Up).Normalize()
	if !ok {
		return nil, fmt.Errorf("camera: up vector must not be parallel to the view direction")
	}
	trueUp := right.Cross(forward)

	sensorSize := cfg.SensorSize
	if sensorSize == 0 {
		sensorSize = 35
	}

	viewHeight := cfg.FocusDist * sensorSize / cfg.FocalLength
	viewWidth := viewHeight * float64(cfg.Width) / float64(cfg.Height)

	esx := right.Multiply(viewWidth / float64(cfg.Width))
	esy := trueUp.Multiply(-viewHeight / float64(cfg.Height))

	focusCenter := cfg.Eye.Add(forward.Multiply(cfg.FocusDist))
	corner := focusCenter.
		Subtract(right.Multiply(viewWidth / 2)).
		Add(trueUp.Multiply(viewHeight / 2))
	origin := corner.Add(esx.Multiply(0.5)).Add(esy.Multiply(0.5))

	lensRadius := 0.0
	if cfg.FNumber > 0 {
		lensRadius = cfg.FocalLength / (2 * cfg.FNumber)
	}

	return &Camera{
		eye:        cfg.Eye,
		right:      right,
		trueUp:     trueUp,
		origin:     origin,
		esx:        esx,
		esy:        esy,
		lensRadius: lensRadius,
		blur:       cfg.Blur,
		antialias:  cfg.Antialias,
	}, nil
}

// GetRay generates the eye ray for pixel (x, y), 0-indexed from the
// top-left, applying antialias jitter and lens blur when enabled.
func (c *Camera) GetRay(x, y int, sampler *core.Sampler) core.Ray {
	jx, jy := 0.0, 0.0
	if c.antialias {
		jx = sampler.Get1D() - 0.5
		jy = sampler.Get1D() - 0.5
	}

	blurOffset := core.Vec3{}
	if c.blur && c.lensRadius > 0 {
		dx, dy := randomInUnitDisk(sampler)
		blurOffset = c.right.Multiply(dx * c.lensRadius).Add(c.trueUp.Multiply(dy * c.lensRadius))
	}

	eye := c.eye.Add(blurOffset)
	target := c.origin.
		Add(c.esx.Multiply(float64(x) + jx)).
		Add(c.esy.Multiply(float64(y) + jy)).
		Subtract(blurOffset)

	dir, ok := target.Subtract(eye).Normalize()
	if !ok {
		dir = core.NewVec3(0, 0, 1)
	}
	return core.NewRay(eye, dir)
}

// randomInUnitDisk rejection-samples a uniform point in the unit disk,
// mirroring core.Sampler.GenerateRandomDir's rejection approach in 2D.
func randomInUnitDisk(sampler *core.Sampler) (float64, float64) {
	for {
		x := sampler.Get1D()*2 - 1
		y := sampler.Get1D()*2 - 1
		if x*x+y*y < 1 {
			return x, y
		}
	}
}
