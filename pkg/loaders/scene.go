package loaders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/geometry"
	"github.com/lumenforge/ppmpa/pkg/light"
	"github.com/lumenforge/ppmpa/pkg/material"
	"github.com/lumenforge/ppmpa/pkg/physics"
	"github.com/lumenforge/ppmpa/pkg/scene"
)

// vec3YAML is the [x, y, z] array form scene files use for every vector
// field.
type vec3YAML [3]float64

func (v vec3YAML) vec() core.Vec3    { return core.NewVec3(v[0], v[1], v[2]) }
func (v vec3YAML) color() physics.Color { return physics.NewColor(v[0], v[1], v[2]) }

// sceneConfig is the top-level YAML document for a scene file.
type sceneConfig struct {
	Epsilon    float64       `yaml:"epsilon"`
	AmbientIOR vec3YAML      `yaml:"ambient_ior"`
	Objects    []objectYAML  `yaml:"objects"`
	Lights     []lightYAML   `yaml:"lights"`
}

type objectYAML struct {
	Shape    shapeYAML    `yaml:"shape"`
	Material materialYAML `yaml:"material"`
}

type shapeYAML struct {
	Kind     string   `yaml:"kind"`
	Center   vec3YAML `yaml:"center"`
	Radius   float64  `yaml:"radius"`
	Normal   vec3YAML `yaml:"normal"`
	Distance float64  `yaml:"distance"`
	Origin   vec3YAML `yaml:"origin"`
	D1       vec3YAML `yaml:"d1"`
	D2       vec3YAML `yaml:"d2"`
}

type materialYAML struct {
	Emittance     vec3YAML    `yaml:"emittance"`
	Transmittance vec3YAML    `yaml:"transmittance"`
	IOR           vec3YAML    `yaml:"ior"`
	Surface       surfaceYAML `yaml:"surface"`
}

type surfaceYAML struct {
	Kind         string   `yaml:"kind"` // "simple", "ts", or "nothing"
	Reflectance  vec3YAML `yaml:"reflectance"`
	SpecularRefl vec3YAML `yaml:"specular_refl"`
	AlbedoDiff   vec3YAML `yaml:"albedo_diff"`
	AlbedoSpec   vec3YAML `yaml:"albedo_spec"`
	Diffuseness  float64  `yaml:"diffuseness"`
	Scatterness  float64  `yaml:"scatterness"`
	Metalness    float64  `yaml:"metalness"`
	Roughness    float64  `yaml:"roughness"`
}

type lightYAML struct {
	Kind   string   `yaml:"kind"` // "point", "parallelogram", or "sun"
	Color  vec3YAML `yaml:"color"`
	Flux   float64  `yaml:"flux"`
	Pos    vec3YAML `yaml:"pos"`
	Normal vec3YAML `yaml:"normal"`
	D1     vec3YAML `yaml:"d1"`
	D2     vec3YAML `yaml:"d2"`
	Dir    vec3YAML `yaml:"dir"`
}

// LoadScene reads and resolves a YAML scene file into a scene.Scene.
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: reading scene file: %w", err)
	}

	var cfg sceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loaders: parsing scene YAML: %w", err)
	}

	return buildScene(&cfg)
}

func buildScene(cfg *sceneConfig) (*scene.Scene, error) {
	objects := make([]*scene.Object, 0, len(cfg.Objects))
	for i, o := range cfg.Objects {
		shape, err := buildShape(o.Shape)
		if err != nil {
			return nil, fmt.Errorf("loaders: object %d: %w", i, err)
		}
		mat, err := buildMaterial(o.Material)
		if err != nil {
			return nil, fmt.Errorf("loaders: object %d: %w", i, err)
		}
		objects = append(objects, scene.NewObject(shape, mat))
	}

	lights := make([]light.Light, 0, len(cfg.Lights))
	for i, l := range cfg.Lights {
		built, err := buildLight(l)
		if err != nil {
			return nil, fmt.Errorf("loaders: light %d: %w", i, err)
		}
		lights = append(lights, built)
	}

	return scene.NewScene(objects, lights), nil
}

func buildShape(s shapeYAML) (geometry.Shape, error) {
	switch s.Kind {
	case "plane":
		return geometry.NewPlane(s.Normal.vec(), s.Distance), nil
	case "sphere":
		return geometry.NewSphere(s.Center.vec(), s.Radius), nil
	case "polygon":
		return geometry.NewPolygon(s.Origin.vec(), s.D1.vec(), s.D2.vec()), nil
	case "parallelogram":
		return geometry.NewParallelogram(s.Origin.vec(), s.D1.vec(), s.D2.vec()), nil
	default:
		return geometry.Shape{}, fmt.Errorf("unknown shape kind %q", s.Kind)
	}
}

func buildMaterial(m materialYAML) (material.Material, error) {
	surface, err := buildSurface(m.Surface)
	if err != nil {
		return material.Material{}, err
	}
	return material.NewMaterial(
		physics.FromColor(m.Emittance.color()),
		m.Transmittance.color(),
		m.IOR.color(),
		surface,
	), nil
}

func buildSurface(s surfaceYAML) (material.Surface, error) {
	switch s.Kind {
	case "simple":
		return material.NewSimpleSurface(s.Reflectance.color(), s.SpecularRefl.color(), s.Diffuseness, s.Metalness, s.Roughness), nil
	case "ts":
		return material.NewTSSurface(s.AlbedoDiff.color(), s.AlbedoSpec.color(), s.Scatterness, s.Metalness, s.Roughness), nil
	case "nothing", "":
		return material.NewNothingSurface(), nil
	default:
		return material.Surface{}, fmt.Errorf("unknown surface kind %q", s.Kind)
	}
}

func buildLight(l lightYAML) (light.Light, error) {
	switch l.Kind {
	case "point":
		return light.NewPointLight(l.Color.color(), l.Flux, l.Pos.vec()), nil
	case "parallelogram":
		return light.NewParallelogramLight(l.Color.color(), l.Flux, l.Pos.vec(), l.Normal.vec(), l.D1.vec(), l.D2.vec()), nil
	case "sun":
		return light.NewSunLight(l.Color.color(), l.Flux, l.Pos.vec(), l.Normal.vec(), l.D1.vec(), l.D2.vec(), l.Dir.vec()), nil
	default:
		return light.Light{}, fmt.Errorf("unknown light kind %q", l.Kind)
	}
}
