package loaders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumenforge/ppmpa/pkg/camera"
)

// cameraConfig is the top-level YAML document for a camera file, mirroring
// camera.Config field-for-field with yaml tags.
type cameraConfig struct {
	Eye    vec3YAML `yaml:"eye"`
	LookAt vec3YAML `yaml:"look_at"`
	Up     vec3YAML `yaml:"up"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	FocalLength float64 `yaml:"focal_length"`
	FNumber     float64 `yaml:"f_number"`
	FocusDist   float64 `yaml:"focus_dist"`
	SensorSize  float64 `yaml:"sensor_size"`

	Blur      bool `yaml:"blur"`
	Antialias bool `yaml:"antialias"`
}

// LoadCamera reads and resolves a YAML camera file into a camera.Camera.
func LoadCamera(path string) (*camera.Camera, camera.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, camera.Config{}, fmt.Errorf("loaders: reading camera file: %w", err)
	}

	var cfg cameraConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, camera.Config{}, fmt.Errorf("loaders: parsing camera YAML: %w", err)
	}

	camCfg := camera.Config{
		Eye:         cfg.Eye.vec(),
		LookAt:      cfg.LookAt.vec(),
		Up:          cfg.Up.vec(),
		Width:       cfg.Width,
		Height:      cfg.Height,
		FocalLength: cfg.FocalLength,
		FNumber:     cfg.FNumber,
		FocusDist:   cfg.FocusDist,
		SensorSize:  cfg.SensorSize,
		Blur:        cfg.Blur,
		Antialias:   cfg.Antialias,
	}

	cam, err := camera.NewCamera(camCfg)
	if err != nil {
		return nil, camera.Config{}, fmt.Errorf("loaders: building camera: %w", err)
	}
	return cam, camCfg, nil
}
