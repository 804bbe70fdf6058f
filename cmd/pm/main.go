// Command pm runs the photon-emission pass and writes the resulting
// photon map to stdout in the spec §6 text format.
//
// Usage: pm [-c|-h] <scene_path> [<#photons>]
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/lumenforge/ppmpa/internal/rlog"
	"github.com/lumenforge/ppmpa/pkg/loaders"
	"github.com/lumenforge/ppmpa/pkg/render"
)

const defaultPhotons = 100_000

func main() {
	classicDirect := flag.Bool("c", false, "skip bounce-0 photon storage (assumes a downstream classic-direct eye pass)")
	help := flag.Bool("h", false, "show usage")
	flag.Parse()

	if *help || flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pm [-c|-h] <scene_path> [<#photons>]")
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

	scenePath := flag.Arg(0)
	numPhotons := defaultPhotons
	if flag.NArg() >= 2 {
		n, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing photon count: %v\n", err)
			os.Exit(1)
		}
		numPhotons = n
	}

	sc, err := loaders.LoadScene(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	logger.Sugar().Infof("emitting %d photons from %s", numPhotons, scenePath)

	photons, power := render.EmitPhotons(sc, render.Options{
		NumPhotons:    numPhotons,
		ClassicDirect: *classicDirect,
	})

	logger.Sugar().Infof("stored %d photons at power %g", len(photons), power)

	if err := loaders.WritePhotonMap(os.Stdout, &loaders.PhotonMapData{Photons: photons, Power: power}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing photon map: %v\n", err)
		os.Exit(1)
	}
}
