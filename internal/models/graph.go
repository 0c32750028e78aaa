package models

// Dataset is the full, unfiltered follow graph fetched for one query.
type Dataset struct {
	Nodes      []Node  `json:"nodes"`
	Links      []Link  `json:"links"`
	Timestamps []int64 `json:"timestamps"`
}

// Snapshot is the induced subgraph of everything introduced at or before Cutoff.
type Snapshot struct {
	Cutoff int64  `json:"cutoff"`
	Nodes  []Node `json:"nodes"`
	Links  []Link `json:"links"`
}

// NodeIDs returns the snapshot's node ids in order.
func (s *Snapshot) NodeIDs() []NodeID {
	ids := make([]NodeID, len(s.Nodes))
	for i := range s.Nodes {
		ids[i] = s.Nodes[i].ID
	}

	return ids
}

// NodeMetrics is the per-node metric bundle.
type NodeMetrics struct {
	InDegree            int     `json:"in_degree"`
	OutDegree           int     `json:"out_degree"`
	Degree              int     `json:"degree"`
	InDegreeCentrality  float64 `json:"in_degree_centrality"`
	OutDegreeCentrality float64 `json:"out_degree_centrality"`
	DegreeCentrality    float64 `json:"degree_centrality"`
	Clustering          float64 `json:"clustering"`
	Closeness           float64 `json:"closeness"`
	PageRank            float64 `json:"pagerank"`
}

// Metrics is derived from exactly one Snapshot. Matrix rows and columns
// follow NodeOrder.
type Metrics struct {
	NumNodes           int                    `json:"num_nodes"`
	NumEdges           int                    `json:"num_edges"`
	Density            float64                `json:"density"`
	AvgClustering      float64                `json:"avg_clustering"`
	DuplicateEdges     int                    `json:"duplicate_edges"`
	SelfLoops          int                    `json:"self_loops"`
	NodeOrder          []NodeID               `json:"node_order"`
	NodeMetrics        map[NodeID]NodeMetrics `json:"node_metrics"`
	AdjacencyMatrix    [][]int                `json:"adjacency_matrix"`
	ShortestPathMatrix [][]int                `json:"shortest_path_matrix"`
}

// GraphStructure is the node/link payload returned to viewers.
type GraphStructure struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}
