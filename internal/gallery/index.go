package gallery

import (
	"github.com/coder/hnsw"
)

// maxNeighbors is the HNSW M parameter.
const maxNeighbors = 16

// candidateIndex is an HNSW graph over snapshot entries, keyed by entry
// position. It only proposes candidates; exact distances and tie-breaks
// are the matcher's job.
type candidateIndex struct {
	graph *hnsw.Graph[int]
}

// buildCandidateIndex builds the graph for a snapshot's entries.
func buildCandidateIndex(entries []Entry) *candidateIndex {
	g := hnsw.NewGraph[int]()
	g.M = maxNeighbors
	g.Ml = 1.0 / float64(maxNeighbors) // standard HNSW formula
	g.Distance = hnsw.EuclideanDistance

	for i := range entries {
		if len(entries[i].Embedding) == 0 {
			continue
		}
		g.Add(hnsw.MakeNode(i, entries[i].Embedding))
	}

	return &candidateIndex{graph: g}
}

// Candidates returns up to k entry positions near the query, in ascending
// position order so downstream tie-breaking stays deterministic.
func (c *candidateIndex) Candidates(query []float32, k int) []int {
	if c == nil || c.graph == nil {
		return nil
	}

	neighbors := c.graph.Search(query, k)
	positions := make([]int, 0, len(neighbors))
	for _, n := range neighbors {
		positions = append(positions, n.Key)
	}

	// Insertion sort, candidate sets are tiny.
	for i := 1; i < len(positions); i++ {
		for j := i; j > 0 && positions[j] < positions[j-1]; j-- {
			positions[j], positions[j-1] = positions[j-1], positions[j]
		}
	}
	return positions
}
