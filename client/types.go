package client

// Node is an account in the follow graph.
type Node struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Timestamp int64  `json:"timestamp"`
}

// Link is a directed follow edge between two node ids.
type Link struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Timestamp int64  `json:"timestamp"`
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

// Metrics are graph-level and per-node metrics for one snapshot.
type Metrics struct {
	NumNodes           int                    `json:"num_nodes"`
	NumEdges           int                    `json:"num_edges"`
	Density            float64                `json:"density"`
	AvgClustering      float64                `json:"avg_clustering"`
	DuplicateEdges     int                    `json:"duplicate_edges"`
	SelfLoops          int                    `json:"self_loops"`
	NodeOrder          []string               `json:"node_order"`
	NodeMetrics        map[string]NodeMetrics `json:"node_metrics"`
	AdjacencyMatrix    [][]int                `json:"adjacency_matrix"`
	ShortestPathMatrix [][]int                `json:"shortest_path_matrix"`
}

// GraphStructure is the full node/link payload.
type GraphStructure struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// GraphData is the response to a graph submission.
type GraphData struct {
	SessionID      string         `json:"session_id"`
	GraphStructure GraphStructure `json:"graph_structure"`
	GraphMetrics   *Metrics       `json:"graph_metrics"`
	Timestamps     []int64        `json:"timestamps"`
}

// Position is a pinned viewer position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ViewNode is a node as drawn at a cutoff.
type ViewNode struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Timestamp int64     `json:"timestamp"`
	Degree    int       `json:"degree"`
	Radius    float64   `json:"radius"`
	Pin       *Position `json:"pin,omitempty"`
}

// Heatmap is the adjacency matrix with axis labels.
type Heatmap struct {
	Labels []string `json:"labels"`
	Cells  [][]int  `json:"cells"`
}

// View is the graph resliced at a cutoff.
type View struct {
	Cutoff      int64      `json:"cutoff"`
	CutoffLabel string     `json:"cutoff_label"`
	Nodes       []ViewNode `json:"nodes"`
	Links       []Link     `json:"links"`
	Metrics     *Metrics   `json:"metrics"`
	Heatmap     *Heatmap   `json:"heatmap"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Sessions      int     `json:"sessions"`
	LogViewers    int     `json:"log_viewers"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
