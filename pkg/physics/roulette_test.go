package physics

import (
	"math"
	"math/rand"
	"testing"
)

func TestRussianRouletteEmpiricalRatio(t *testing.T) {
	const n = 1_000_000
	p := 0.3
	rng := rand.New(rand.NewSource(7))

	hits := 0
	for i := 0; i < n; i++ {
		if RussianRoulette([]float64{p}, rng.Float64()) == 0 {
			hits++
		}
	}

	ratio := float64(hits) / n
	stddev := math.Sqrt(p * (1 - p) / n)
	if math.Abs(ratio-p) > 3*stddev {
		t.Errorf("empirical hit ratio %f deviates from p=%f by more than 3 sigma (%f)", ratio, p, 3*stddev)
	}
}

func TestRussianRouletteOverflowIndex(t *testing.T) {
	table := []float64{0.2, 0.5}
	if got := RussianRoulette(table, 0.9); got != len(table) {
		t.Errorf("expected overflow index %d, got %d", len(table), got)
	}
	if got := RussianRoulette(table, 0.1); got != 0 {
		t.Errorf("expected index 0, got %d", got)
	}
	if got := RussianRoulette(table, 0.3); got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}
}

func TestAcceptMatchesSingleElementRoulette(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 1000; i++ {
		u := rng.Float64()
		if Accept(0.4, u) != (RussianRoulette([]float64{0.4}, u) == 0) {
			t.Fatalf("Accept/RussianRoulette disagreement at u=%f", u)
		}
	}
}
