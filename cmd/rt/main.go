// Command rt reads a photon map from stdin and runs the eye-ray pass,
// writing a PNM image to stdout.
//
// Usage: rt <scene_path> <camera_path> [<radius>]
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/lumenforge/ppmpa/internal/rlog"
	"github.com/lumenforge/ppmpa/pkg/camera"
	"github.com/lumenforge/ppmpa/pkg/loaders"
	"github.com/lumenforge/ppmpa/pkg/photonmap"
	"github.com/lumenforge/ppmpa/pkg/render"
)

const defaultRadius = 0.1

func main() {
	help := flag.Bool("h", false, "show usage")
	flag.Parse()

	if *help || flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: rt <scene_path> <camera_path> [<radius>]")
		flag.PrintDefaults()
		if *help {
			return
		}
		os.Exit(1)
	}

	logger, err := rlog.New(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	scenePath, cameraPath := flag.Arg(0), flag.Arg(1)
	radius := defaultRadius
	if flag.NArg() >= 3 {
		r, err := strconv.ParseFloat(flag.Arg(2), 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing radius: %v\n", err)
			os.Exit(1)
		}
		radius = r
	}

	sc, err := loaders.LoadScene(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}
	cam, camCfg, err := loaders.LoadCamera(cameraPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading camera: %v\n", err)
		os.Exit(1)
	}

	data, err := loaders.ReadPhotonMap(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading photon map: %v\n", err)
		os.Exit(1)
	}

	logger.Sugar().Infof("rendering %dx%d with %d photons, radius %g", camCfg.Width, camCfg.Height, len(data.Photons), radius)

	pm := photonmap.Build(data.Photons, data.Power, len(data.Photons))
	img := render.RenderImage(sc, cam, pm, camCfg.Width, camCfg.Height, render.Options{
		RadiusSq:      radius * radius,
		Filter:        photonmap.FilterCone,
		ClassicDirect: true,
	})

	comment := fmt.Sprintf("camera=%s radius=%g", cameraPath, radius)
	if err := camera.WritePNM(os.Stdout, img, maxRadiance(img), false, comment); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing image: %v\n", err)
		os.Exit(1)
	}
}

// maxRadiance finds the brightest component across img, used to normalize
// the PNM's gamma-mapped 8-bit output.
func maxRadiance(img camera.Image) float64 {
	max := 0.0
	for _, row := range img {
		for _, rad := range row {
			for _, v := range []float64{rad.R, rad.G, rad.B} {
				if v > max {
					max = v
				}
			}
		}
	}
	if max == 0 {
		return 1
	}
	return max
}
