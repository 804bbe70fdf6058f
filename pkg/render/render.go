// Package render drives the two PPMPA passes (photon emission, then
// eye-ray tracing) over a fixed-size worker pool, generalizing the
// teacher's tile-based WorkerPool/Worker shape from eye-ray-only tiles to
// both per-photon emission and per-pixel tracing (spec §5, §4.13).
package render

import (
	"runtime"
	"sync"

	"github.com/lumenforge/ppmpa/pkg/camera"
	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/light"
	"github.com/lumenforge/ppmpa/pkg/optics"
	"github.com/lumenforge/ppmpa/pkg/photonmap"
	"github.com/lumenforge/ppmpa/pkg/physics"
	"github.com/lumenforge/ppmpa/pkg/scene"
	"github.com/lumenforge/ppmpa/pkg/tracer"
)

// Options configures a render driver run.
type Options struct {
	NumPhotons    int
	NumWorkers    int // 0 = runtime.NumCPU()
	RadiusSq      float64
	Filter        photonmap.Filter
	ClassicDirect bool  // off folds direct illumination into the photon estimate (-nc)
	Seed          int64 // base seed; each worker derives its own thread-local sampler from it
}

func workerCount(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// EmitPhotons runs the photon-emission pass: opts.NumPhotons photons are
// emitted, each from a light chosen with probability proportional to its
// flux, walked by the photon tracer, and every cached hit collected. Work
// is spread across a worker pool with a thread-local sampler per worker
// (spec §5, §9 "Random state") — across-worker ordering doesn't matter
// since only the union of cached photons is kept.
func EmitPhotons(sc *scene.Scene, opts Options) ([]optics.Photon, float64) {
	numWorkers := workerCount(opts.NumWorkers)
	pt := &tracer.PhotonTracer{Scene: sc, ClassicDirectOff: !opts.ClassicDirect}
	cumFlux, totalFlux := fluxTable(sc.Lights)

	jobs := make(chan struct{}, numWorkers)
	results := make(chan []optics.Photon, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			sampler := core.NewSampler(opts.Seed + int64(workerID))
			var local []optics.Photon
			for range jobs {
				idx := physics.RussianRoulette(cumFlux, sampler.Get1D())
				if idx >= len(sc.Lights) {
					continue
				}
				photon, ok := sc.Lights[idx].GeneratePhoton(sampler)
				if !ok {
					continue
				}
				local = append(local, pt.Trace(photon, sampler)...)
			}
			results <- local
		}(w)
	}

	for i := 0; i < opts.NumPhotons; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []optics.Photon
	for r := range results {
		all = append(all, r...)
	}

	power := 0.0
	if opts.NumPhotons > 0 {
		power = totalFlux / float64(opts.NumPhotons)
	}
	return all, power
}

// fluxTable builds the cumulative-probability table physics.RussianRoulette
// expects for weighted light selection: each entry is the running fraction
// of total flux covered by lights up to and including that index.
func fluxTable(lights []light.Light) ([]float64, float64) {
	total := 0.0
	for _, l := range lights {
		total += l.FluxValue()
	}

	cum := make([]float64, len(lights))
	running := 0.0
	for i, l := range lights {
		if total > 0 {
			running += l.FluxValue() / total
		}
		cum[i] = running
	}
	return cum, total
}

// RenderImage runs the eye-ray pass over every pixel of a width x height
// image, in parallel across rows, and returns the image in raster order
// (spec §5: output order is independent of execution order since each
// worker writes into its own pre-allocated row slice).
func RenderImage(sc *scene.Scene, cam *camera.Camera, pm *photonmap.Map, width, height int, opts Options) camera.Image {
	numWorkers := workerCount(opts.NumWorkers)
	et := &tracer.EyeTracer{Scene: sc, Map: pm, RadiusSq: opts.RadiusSq, Filter: opts.Filter, ClassicDirect: opts.ClassicDirect}

	img := make(camera.Image, height)
	for y := range img {
		img[y] = make([]physics.Radiance, width)
	}

	rows := make(chan int, height)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			sampler := core.NewSampler(opts.Seed + 1_000_000 + int64(workerID))
			for y := range rows {
				for x := 0; x < width; x++ {
					ray := cam.GetRay(x, y, sampler)
					img[y][x] = et.Trace(ray, 0, tracer.Air(), sampler)
				}
			}
		}(w)
	}

	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	return img
}
