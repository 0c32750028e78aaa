package graph

import (
	"fmt"
	"slices"

	"github.com/followscope/followscope/internal/models"
)

// Unreachable marks a shortest-path entry with no directed path. It can never
// be a real path length.
const Unreachable = -1

// structure is the simple directed graph behind a snapshot: duplicate ordered
// pairs are collapsed and self-loops set aside. Vertices are indexed in
// snapshot node order so every loop below is deterministic.
type structure struct {
	n          int
	succ       [][]int
	pred       [][]int
	neighbours [][]int // undirected, sorted
	linked     map[[2]int]struct{}
	edges      int
	duplicates int
	selfLoops  int
}

func newStructure(s *models.Snapshot) (*structure, error) {
	n := len(s.Nodes)
	index := make(map[models.NodeID]int, n)

	for i := range s.Nodes {
		id := s.Nodes[i].ID
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate node %q", models.ErrMalformedSnapshot, id)
		}

		index[id] = i
	}

	st := &structure{
		n:          n,
		succ:       make([][]int, n),
		pred:       make([][]int, n),
		neighbours: make([][]int, n),
		linked:     make(map[[2]int]struct{}, len(s.Links)),
	}

	seen := make(map[[2]int]bool, len(s.Links))

	for i := range s.Links {
		link := &s.Links[i]

		src, ok := index[link.Source.ID()]
		if !ok {
			return nil, fmt.Errorf("%w: link %d source %q is not a snapshot node", models.ErrMalformedSnapshot, i, link.Source.ID())
		}

		dst, ok := index[link.Target.ID()]
		if !ok {
			return nil, fmt.Errorf("%w: link %d target %q is not a snapshot node", models.ErrMalformedSnapshot, i, link.Target.ID())
		}

		if src == dst {
			st.selfLoops++
			continue
		}

		pair := [2]int{src, dst}
		if seen[pair] {
			st.duplicates++
			continue
		}

		seen[pair] = true
		st.edges++
		st.succ[src] = append(st.succ[src], dst)
		st.pred[dst] = append(st.pred[dst], src)

		key := undirectedKey(src, dst)
		if _, ok := st.linked[key]; !ok {
			st.linked[key] = struct{}{}
			st.neighbours[src] = append(st.neighbours[src], dst)
			st.neighbours[dst] = append(st.neighbours[dst], src)
		}
	}

	for i := range st.neighbours {
		slices.Sort(st.neighbours[i])
	}

	return st, nil
}

func undirectedKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}

	return [2]int{a, b}
}

// ComputeMetrics derives density, clustering, per-node metrics, the adjacency
// matrix, and the all-pairs shortest-path matrix for one snapshot.
//
// Adjacency and shortest paths are directed; clustering treats the graph as
// undirected. Duplicate links between the same ordered pair count once and
// are reported in DuplicateEdges. A snapshot without a node or link list, or
// with a link pointing outside its nodes, is rejected with
// models.ErrMalformedSnapshot rather than producing zeroed metrics.
func ComputeMetrics(s *models.Snapshot) (*models.Metrics, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil snapshot", models.ErrMalformedSnapshot)
	}

	if s.Nodes == nil {
		return nil, fmt.Errorf("%w: nodes missing", models.ErrMalformedSnapshot)
	}

	if s.Links == nil {
		return nil, fmt.Errorf("%w: links missing", models.ErrMalformedSnapshot)
	}

	st, err := newStructure(s)
	if err != nil {
		return nil, err
	}

	paths := st.shortestPaths()
	clustering := st.clustering()
	closeness := st.closeness(paths)
	ranks := PageRank(st.succ, DefaultPageRankOptions())

	m := &models.Metrics{
		NumNodes:           st.n,
		NumEdges:           st.edges,
		Density:            density(st.n, st.edges),
		DuplicateEdges:     st.duplicates,
		SelfLoops:          st.selfLoops,
		NodeOrder:          s.NodeIDs(),
		NodeMetrics:        make(map[models.NodeID]models.NodeMetrics, st.n),
		AdjacencyMatrix:    st.adjacency(),
		ShortestPathMatrix: paths,
	}

	norm := 0.0
	if st.n > 1 {
		norm = 1 / float64(st.n-1)
	}

	sum := 0.0

	for i := 0; i < st.n; i++ {
		in, out := len(st.pred[i]), len(st.succ[i])
		m.NodeMetrics[s.Nodes[i].ID] = models.NodeMetrics{
			InDegree:            in,
			OutDegree:           out,
			Degree:              in + out,
			InDegreeCentrality:  float64(in) * norm,
			OutDegreeCentrality: float64(out) * norm,
			DegreeCentrality:    float64(in+out) * norm,
			Clustering:          clustering[i],
			Closeness:           closeness[i],
			PageRank:            ranks[i],
		}
		sum += clustering[i]
	}

	if st.n > 0 {
		m.AvgClustering = sum / float64(st.n)
	}

	return m, nil
}

// density is E / (N * (N-1)) for a directed graph without self-loops.
func density(nodes, edges int) float64 {
	if nodes <= 1 {
		return 0
	}

	return float64(edges) / float64(nodes*(nodes-1))
}

func (st *structure) adjacency() [][]int {
	adj := make([][]int, st.n)
	for i := range adj {
		adj[i] = make([]int, st.n)
		for _, j := range st.succ[i] {
			adj[i][j] = 1
		}
	}

	return adj
}

// shortestPaths runs one BFS per source over outgoing edges.
func (st *structure) shortestPaths() [][]int {
	dist := make([][]int, st.n)
	queue := make([]int, 0, st.n)

	for src := 0; src < st.n; src++ {
		row := make([]int, st.n)
		for j := range row {
			row[j] = Unreachable
		}

		row[src] = 0
		queue = append(queue[:0], src)

		for head := 0; head < len(queue); head++ {
			u := queue[head]
			for _, v := range st.succ[u] {
				if row[v] != Unreachable {
					continue
				}

				row[v] = row[u] + 1
				queue = append(queue, v)
			}
		}

		dist[src] = row
	}

	return dist
}

// clustering returns each vertex's local clustering coefficient on the
// undirected view. Vertices with fewer than two neighbours score 0.
func (st *structure) clustering() []float64 {
	out := make([]float64, st.n)

	for v := 0; v < st.n; v++ {
		neighbours := st.neighbours[v]

		k := len(neighbours)
		if k < 2 {
			continue
		}

		triangles := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if _, ok := st.linked[undirectedKey(neighbours[a], neighbours[b])]; ok {
					triangles++
				}
			}
		}

		out[v] = 2 * float64(triangles) / float64(k*(k-1))
	}

	return out
}

// closeness uses incoming distances with the Wasserman-Faust correction for
// partially reachable graphs.
func (st *structure) closeness(dist [][]int) []float64 {
	out := make([]float64, st.n)
	if st.n <= 1 {
		return out
	}

	for v := 0; v < st.n; v++ {
		reach, total := 0, 0
		for u := 0; u < st.n; u++ {
			if u == v || dist[u][v] == Unreachable {
				continue
			}

			reach++
			total += dist[u][v]
		}

		if total == 0 {
			continue
		}

		r := float64(reach)
		out[v] = (r / float64(total)) * (r / float64(st.n-1))
	}

	return out
}
