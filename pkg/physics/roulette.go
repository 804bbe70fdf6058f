package physics

// RussianRoulette takes a uniform draw u and returns the smallest index i
// such that u <= probabilities[i]; if no such index exists it returns
// len(probabilities), the "overflow" index. The table's sum need not equal
// 1 — the overflow index encodes "none of the above" (e.g. absorption).
// Callers use this both for branch selection (probabilities summing to 1)
// and for accept/reject tests (a single-element table).
func RussianRoulette(probabilities []float64, u float64) int {
	for i, p := range probabilities {
		if u <= p {
			return i
		}
	}
	return len(probabilities)
}

// Accept is the single-element-table accept/reject form of RussianRoulette:
// it returns true with probability p.
func Accept(p float64, u float64) bool {
	return u <= p
}
