package loaders

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lumenforge/ppmpa/pkg/core"
	"github.com/lumenforge/ppmpa/pkg/optics"
	"github.com/lumenforge/ppmpa/pkg/physics"
)

func TestWriteThenReadPhotonMapRoundTrips(t *testing.T) {
	data := &PhotonMapData{
		Power: 0.125,
		Photons: []optics.Photon{
			optics.NewPhoton(physics.Red, core.NewRay(core.NewVec3(1, 2, 3), core.NewVec3(0, -1, 0))),
			optics.NewPhoton(physics.Blue, core.NewRay(core.NewVec3(-1, 0, 2), core.NewVec3(1, 0, 0))),
		},
	}

	var buf bytes.Buffer
	if err := WritePhotonMap(&buf, data); err != nil {
		t.Fatalf("WritePhotonMap: %v", err)
	}

	got, err := ReadPhotonMap(&buf)
	if err != nil {
		t.Fatalf("ReadPhotonMap: %v", err)
	}

	if got.Power != data.Power {
		t.Errorf("power mismatch: got %v, want %v", got.Power, data.Power)
	}
	if len(got.Photons) != len(data.Photons) {
		t.Fatalf("photon count mismatch: got %d, want %d", len(got.Photons), len(data.Photons))
	}
	for i, p := range got.Photons {
		want := data.Photons[i]
		if p.Wavelength != want.Wavelength || p.Ray.Origin != want.Ray.Origin || p.Ray.Direction != want.Ray.Direction {
			t.Errorf("photon %d mismatch: got %+v, want %+v", i, p, want)
		}
	}
}

func TestReadPhotonMapRejectsCountMismatch(t *testing.T) {
	r := strings.NewReader("2\n0.5\nRed 0 0 0 0 1 0\n")
	if _, err := ReadPhotonMap(r); err == nil {
		t.Error("expected an error when the declared count doesn't match the photon lines present")
	}
}

func TestReadPhotonMapRejectsUnknownBand(t *testing.T) {
	r := strings.NewReader("1\n0.5\nPurple 0 0 0 0 1 0\n")
	if _, err := ReadPhotonMap(r); err == nil {
		t.Error("expected an error for an unknown wavelength band")
	}
}
