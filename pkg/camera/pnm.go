package camera

import (
	"bufio"
	"fmt"
	"io"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lumenforge/ppmpa/pkg/physics"
)

// Image is a finished raster of per-pixel radiance, row-major, top-left
// origin (row 0 = top) to match Camera.GetRay's pixel convention.
type Image [][]physics.Radiance

// WritePNM emits img as a P3 ASCII pixmap per spec §6: a P3 header with
// comment lines recording maxRadiance and the camera settings, then
// either gamma-mapped 8-bit triples (progressive=false) or
// scientific-notation float triples per component (progressive=true, left
// for an external tone-mapper to consume).
func WritePNM(w io.Writer, img Image, maxRadiance float64, progressive bool, comment string) error {
	if len(img) == 0 {
		return fmt.Errorf("camera: cannot write an empty image")
	}
	height := len(img)
	width := len(img[0])

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "P3")
	fmt.Fprintf(bw, "# max-radiance %g\n", maxRadiance)
	if comment != "" {
		fmt.Fprintf(bw, "# %s\n", comment)
	}
	fmt.Fprintf(bw, "%d %d\n", width, height)
	fmt.Fprintln(bw, "255")

	for _, row := range img {
		for _, rad := range row {
			if progressive {
				fmt.Fprintf(bw, "%e %e %e\n", rad.R, rad.G, rad.B)
				continue
			}
			r, g, b := tonemap(rad, maxRadiance)
			fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
		}
	}

	return bw.Flush()
}

// tonemap clips rad's components to maxRadiance, normalizes to [0,1], and
// applies go-colorful's linear-to-sRGB companding curve to get 8-bit
// output, instead of a hand-rolled math.Pow(x, 1/2.2) gamma table.
func tonemap(rad physics.Radiance, maxRadiance float64) (uint8, uint8, uint8) {
	if maxRadiance <= 0 {
		return 0, 0, 0
	}
	clip := func(v float64) float64 {
		return math.Max(0, math.Min(v, maxRadiance)) / maxRadiance
	}
	c := colorful.LinearRgb(clip(rad.R), clip(rad.G), clip(rad.B))
	return c.Clamped().RGB255()
}
