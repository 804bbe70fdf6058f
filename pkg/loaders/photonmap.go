package loaders

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/optics"
	"github.com/lumenforge/ppmpa/pkg/physics"
)

// PhotonMapData is the photon list plus the per-photon power read back from
// (or about to be written to) the spec §6 text format.
type PhotonMapData struct {
	Photons []optics.Photon
	Power   float64
}

// ReadPhotonMap parses the photon-map text format: line 1 is the photon
// count, line 2 the power-per-photon, and each following line is
// "<Red|Green|Blue> px py pz dx dy dz".
func ReadPhotonMap(r io.Reader) (*PhotonMapData, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	count, err := scanNumberLine(scanner, "photon count")
	if err != nil {
		return nil, err
	}
	power, err := scanNumberLine(scanner, "power-per-photon")
	if err != nil {
		return nil, err
	}

	photons := make([]optics.Photon, 0, int(count))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		photon, err := parsePhotonLine(line)
		if err != nil {
			return nil, err
		}
		photons = append(photons, photon)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("photonmap: reading photons: %w", err)
	}

	if len(photons) != int(count) {
		return nil, fmt.Errorf("photonmap: header declared %d photons, found %d", int(count), len(photons))
	}

	return &PhotonMapData{Photons: photons, Power: power}, nil
}

func scanNumberLine(scanner *bufio.Scanner, what string) (float64, error) {
	if !scanner.Scan() {
		return 0, fmt.Errorf("photonmap: missing %s line", what)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("photonmap: parsing %s: %w", what, err)
	}
	return v, nil
}

func parsePhotonLine(line string) (optics.Photon, error) {
	fields := strings.Fields(line)
	if len(fields) != 7 {
		return optics.Photon{}, fmt.Errorf("photonmap: expected 7 fields, got %d in %q", len(fields), line)
	}

	w, ok := physics.ParseWavelength(fields[0])
	if !ok {
		return optics.Photon{}, fmt.Errorf("photonmap: unknown wavelength band %q", fields[0])
	}

	nums := make([]float64, 6)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return optics.Photon{}, fmt.Errorf("photonmap: parsing coordinate %q: %w", f, err)
		}
		nums[i] = v
	}

	pos := core.NewVec3(nums[0], nums[1], nums[2])
	dir := core.NewVec3(nums[3], nums[4], nums[5])
	return optics.NewPhoton(w, core.NewRay(pos, dir)), nil
}

// WritePhotonMap streams data to w in the spec §6 text format.
func WritePhotonMap(w io.Writer, data *PhotonMapData) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(data.Photons))
	fmt.Fprintf(bw, "%g\n", data.Power)
	for _, p := range data.Photons {
		pos := p.Ray.Origin
		dir := p.Ray.Direction
		fmt.Fprintf(bw, "%s %g %g %g %g %g %g\n", p.Wavelength, pos.X, pos.Y, pos.Z, dir.X, dir.Y, dir.Z)
	}
	return bw.Flush()
}
