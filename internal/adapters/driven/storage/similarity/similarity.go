// Package similarity provides brute-force cosine ranking for stores that keep
// vectors themselves (memory, SQLite).
package similarity

import (
	"math"
	"sort"
)

// Cosine returns the cosine similarity of a and b.
// Vectors of different length or with zero norm score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Candidate is a scored item awaiting ranking.
type Candidate[T any] struct {
	Item  T
	Score float64
}

// TopK sorts candidates by descending score and keeps at most k.
// Ties keep their input order.
func TopK[T any](candidates []Candidate[T], k int) []Candidate[T] {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if k >= 0 && len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
