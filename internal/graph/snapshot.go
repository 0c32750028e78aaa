// Package graph slices timestamped follow graphs and computes their metrics.
package graph

import (
	"slices"

	"github.com/followscope/followscope/internal/models"
)

// BuildSnapshot returns the induced subgraph of every node and link whose
// timestamp is at or before cutoff. A link is dropped when either endpoint
// is absent from the kept nodes, so the result never has dangling edges.
// Input order is preserved and endpoints are emitted as bare ids.
func BuildSnapshot(nodes []models.Node, links []models.Link, cutoff int64) *models.Snapshot {
	snap := &models.Snapshot{
		Cutoff: cutoff,
		Nodes:  make([]models.Node, 0, len(nodes)),
		Links:  make([]models.Link, 0, len(links)),
	}

	present := make(map[models.NodeID]struct{}, len(nodes))

	for i := range nodes {
		if nodes[i].Timestamp > cutoff {
			continue
		}

		snap.Nodes = append(snap.Nodes, nodes[i])
		present[nodes[i].ID] = struct{}{}
	}

	for i := range links {
		if links[i].Timestamp > cutoff {
			continue
		}

		source, target := links[i].Source.ID(), links[i].Target.ID()
		if _, ok := present[source]; !ok {
			continue
		}

		if _, ok := present[target]; !ok {
			continue
		}

		snap.Links = append(snap.Links, models.NewLink(source, target, links[i].Timestamp))
	}

	return snap
}

// SnapshotAt slices a full dataset at cutoff.
func SnapshotAt(ds *models.Dataset, cutoff int64) *models.Snapshot {
	if ds == nil {
		return BuildSnapshot(nil, nil, cutoff)
	}

	return BuildSnapshot(ds.Nodes, ds.Links, cutoff)
}

// TimestampIndex returns the strictly ascending, de-duplicated union of all
// node and link timestamps. These are the selectable cursor positions.
func TimestampIndex(nodes []models.Node, links []models.Link) []int64 {
	ts := make([]int64, 0, len(nodes)+len(links))

	for i := range nodes {
		ts = append(ts, nodes[i].Timestamp)
	}

	for i := range links {
		ts = append(ts, links[i].Timestamp)
	}

	slices.Sort(ts)

	return slices.Compact(ts)
}

// Latest returns the last timestamp of an index, or 0 when it is empty.
func Latest(index []int64) int64 {
	if len(index) == 0 {
		return 0
	}

	return index[len(index)-1]
}
