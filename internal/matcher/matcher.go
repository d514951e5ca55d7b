package matcher

import (
	"math"

	"github.com/kozaktomas/face-attendance/internal/gallery"
)

// candidateK is how many HNSW candidates get the exact re-rank.
const candidateK = 8

// Matcher decides identity by nearest gallery embedding under an acceptance
// threshold.
type Matcher struct {
	threshold   float64
	approximate bool
}

// New creates a matcher. When approximate is true and a snapshot carries a
// candidate index, the scan narrows to HNSW candidates before the exact
// re-rank; otherwise every entry is scanned.
func New(threshold float64, approximate bool) *Matcher {
	return &Matcher{
		threshold:   threshold,
		approximate: approximate,
	}
}

// Threshold returns the acceptance threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// EuclideanDistance computes the L2 distance between two vectors.
// Returns +Inf on dimension mismatch or empty input.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Match finds the gallery entry nearest to the query embedding. ok is true
// only when the minimum distance falls below the threshold. Ties keep the
// first entry in gallery-iteration order, so results are deterministic.
func (m *Matcher) Match(snap *gallery.Snapshot, query []float32) (identity string, distance float64, ok bool) {
	entries := snap.Entries()
	if len(entries) == 0 || len(query) == 0 {
		return "", math.Inf(1), false
	}

	bestIdx := -1
	best := math.Inf(1)

	if m.approximate && snap.Index() != nil {
		for _, i := range snap.Index().Candidates(query, candidateK) {
			if i < 0 || i >= len(entries) {
				continue
			}
			// Candidates arrive in ascending position order, so strict <
			// keeps the first among equal distances.
			if d := EuclideanDistance(query, entries[i].Embedding); d < best {
				best = d
				bestIdx = i
			}
		}
	} else {
		for i := range entries {
			if d := EuclideanDistance(query, entries[i].Embedding); d < best {
				best = d
				bestIdx = i
			}
		}
	}

	if bestIdx < 0 || best >= m.threshold {
		return "", best, false
	}
	return entries[bestIdx].Identity, best, true
}
