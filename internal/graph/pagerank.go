package graph

import "math"

// PageRank defaults.
const (
	DefaultDampingFactor = 0.85
	DefaultMaxIterations = 100
	DefaultConvergence   = 1e-6
)

// PageRankOptions configures PageRank.
type PageRankOptions struct {
	DampingFactor float64
	MaxIterations int
	// Convergence is the per-node tolerance; iteration stops once the L1
	// change across all nodes drops below n * Convergence.
	Convergence float64
}

// Validate applies defaults for out-of-range values.
func (o *PageRankOptions) Validate() {
	if o.DampingFactor < 0 || o.DampingFactor > 1 {
		o.DampingFactor = DefaultDampingFactor
	}

	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}

	if o.Convergence <= 0 {
		o.Convergence = DefaultConvergence
	}
}

// DefaultPageRankOptions returns the standard damping and tolerance.
func DefaultPageRankOptions() *PageRankOptions {
	return &PageRankOptions{
		DampingFactor: DefaultDampingFactor,
		MaxIterations: DefaultMaxIterations,
		Convergence:   DefaultConvergence,
	}
}

// PageRank runs power iteration over an adjacency list indexed 0..n-1.
// Rank held by sink vertices is spread evenly over all vertices so scores
// keep summing to 1. Iteration order is fixed, so results are reproducible.
func PageRank(succ [][]int, opts *PageRankOptions) []float64 {
	n := len(succ)
	if n == 0 {
		return []float64{}
	}

	if opts == nil {
		opts = DefaultPageRankOptions()
	}

	opts.Validate()

	d := opts.DampingFactor
	size := float64(n)
	rank := make([]float64, n)
	next := make([]float64, n)

	for i := range rank {
		rank[i] = 1 / size
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		dangling := 0.0
		for u := 0; u < n; u++ {
			if len(succ[u]) == 0 {
				dangling += rank[u]
			}
		}

		base := (1-d)/size + d*dangling/size
		for v := range next {
			next[v] = base
		}

		for u := 0; u < n; u++ {
			if len(succ[u]) == 0 {
				continue
			}

			share := d * rank[u] / float64(len(succ[u]))
			for _, v := range succ[u] {
				next[v] += share
			}
		}

		diff := 0.0
		for v := range rank {
			diff += math.Abs(next[v] - rank[v])
		}

		rank, next = next, rank

		if diff < size*opts.Convergence {
			break
		}
	}

	return rank
}
