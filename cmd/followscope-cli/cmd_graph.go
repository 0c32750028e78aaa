package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/followscope/followscope/client"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <username>...",
		Short: "Fetch the follow graph between the given accounts",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := apiClient.Graph.Data(context.Background(), args...)
			if err != nil {
				fatal("graph", err)
			}
			if flagFmt == "table" {
				fmt.Fprintf(os.Stderr, "session %s: %d nodes, %d edges\n",
					data.SessionID, data.GraphMetrics.NumNodes, data.GraphMetrics.NumEdges)
			}
			output(data, data.SessionID, func() ([]string, [][]string) {
				return metricsTable(data.GraphMetrics, usernames(data.GraphStructure.Nodes))
			})
		},
	}
}

func usernames(nodes []client.Node) map[string]string {
	out := make(map[string]string, len(nodes))
	for _, n := range nodes {
		out[n.ID] = n.Username
	}
	return out
}

// metricsTable renders per-node metrics ranked by PageRank.
func metricsTable(m *client.Metrics, labels map[string]string) ([]string, [][]string) {
	headers := []string{"ID", "LABEL", "IN", "OUT", "CLUSTERING", "CLOSENESS", "PAGERANK"}
	if m == nil {
		return headers, nil
	}

	ids := append([]string(nil), m.NodeOrder...)
	sort.SliceStable(ids, func(i, j int) bool {
		return m.NodeMetrics[ids[i]].PageRank > m.NodeMetrics[ids[j]].PageRank
	})

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		nm := m.NodeMetrics[id]
		label := labels[id]
		if label == "" {
			label = "fid:" + id
		}
		rows = append(rows, []string{
			id, label,
			strconv.Itoa(nm.InDegree), strconv.Itoa(nm.OutDegree),
			ftoa(nm.Clustering), ftoa(nm.Closeness), ftoa(nm.PageRank),
		})
	}
	return headers, rows
}
